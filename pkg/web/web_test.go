package web

import (
	"errors"
	"testing"

	"webcore/pkg/uri"
)

type fakeSink struct {
	wrote   bool
	closed  bool
	status  int
	reason  string
	header  Header
	trailer Header
	body    []byte
	writeErr error
}

func (f *fakeSink) WriteResponse(status int, reason string, header, trailer Header, body []byte) error {
	f.wrote = true
	f.status = status
	f.reason = reason
	f.header = header
	f.trailer = trailer
	f.body = append([]byte(nil), body...)
	return f.writeErr
}

func (f *fakeSink) Close() error {
	f.closed = true
	return nil
}

func TestResponseSendIdempotent(t *testing.T) {
	sink := &fakeSink{}
	res := NewResponse(sink)
	defer res.Release()

	res.SendText("a")
	res.SendJSON(`{"b":1}`)

	if string(res.bodyBytes()) != "a" && !sink.wrote {
		t.Fatal("expected first send to win")
	}
	if string(sink.body) != "a" {
		t.Errorf("body = %q, want %q", sink.body, "a")
	}
	if got := sink.header.first("Content-Type"); got != "text/plain" {
		t.Errorf("Content-Type = %q, want text/plain", got)
	}
}

func TestResponseDefaultHeaders(t *testing.T) {
	sink := &fakeSink{}
	res := NewResponse(sink)
	defer res.Release()

	res.SetBody([]byte("hello"))
	res.Send()

	if got := sink.header.first("Connection"); got != "close" {
		t.Errorf("Connection = %q, want close", got)
	}
	if got := sink.header.first("Content-Length"); got != "5" {
		t.Errorf("Content-Length = %q, want 5", got)
	}
}

func TestResponseSendThenEnd(t *testing.T) {
	sink := &fakeSink{}
	res := NewResponse(sink)
	defer res.Release()

	res.Send()
	res.Send()
	res.End()
	res.End()

	if !sink.wrote {
		t.Error("expected WriteResponse to be called")
	}
	if !sink.closed {
		t.Error("expected Close to be called")
	}
}

func TestResponseSendErrorTriggersEnd(t *testing.T) {
	sink := &fakeSink{writeErr: errors.New("boom")}
	res := NewResponse(sink)
	defer res.Release()

	res.Send()

	if !sink.closed {
		t.Error("expected End to be invoked after a failed send")
	}
}

func TestRequestPathParamsAndScratch(t *testing.T) {
	req := NewRequest("get", "/stress/42?x=1", "HTTP/1.1", nil, nil)
	if req.Method() != "GET" {
		t.Errorf("Method = %q", req.Method())
	}
	if req.Path() != "/stress/42" {
		t.Errorf("Path = %q", req.Path())
	}

	req.SetPathParams([]uri.KV{{Name: "id", Value: "42"}})
	v, ok := req.PathParam("id")
	if !ok || v != "42" {
		t.Fatalf("PathParam(id) = %q, %v", v, ok)
	}

	req.SetParam("k", "v")
	got, ok := req.GetParam("k")
	if !ok || got != "v" {
		t.Fatalf("GetParam(k) = %q, %v", got, ok)
	}
	req.RemoveParam("k")
	if _, ok := req.GetParam("k"); ok {
		t.Fatal("expected k removed")
	}
}

func TestHTTPErrorDefaults(t *testing.T) {
	e := NewHTTPError("boom")
	if e.Code() != 500 || e.Reason() != "Internal Server Error" {
		t.Fatalf("unexpected defaults: %d %s", e.Code(), e.Reason())
	}
	if e.Error() == "" {
		t.Fatal("expected non-empty Error() string")
	}
}
