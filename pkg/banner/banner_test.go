package banner

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"webcore/pkg/config"
)

func capturePrint(fn func()) string {
	r, w, _ := os.Pipe()
	old := os.Stdout
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestPrintIncludesListenAndWorkers(t *testing.T) {
	cfg := config.Defaults()
	cfg.Server.Address = "127.0.0.1"
	cfg.Server.Port = 9999

	out := capturePrint(func() { Print(cfg, 4, []string{"./viewer"}, "test-version") })

	if !strings.Contains(out, "127.0.0.1:9999") {
		t.Fatalf("banner missing listen address, got:\n%s", out)
	}
	if !strings.Contains(out, "Workers:  4") {
		t.Fatalf("banner missing worker count, got:\n%s", out)
	}
	if !strings.Contains(out, "test-version") {
		t.Fatalf("banner missing version, got:\n%s", out)
	}
	if !strings.Contains(out, "./viewer") {
		t.Fatalf("banner missing static root, got:\n%s", out)
	}
}

func TestPrintNoStaticRootsNotesNone(t *testing.T) {
	cfg := config.Defaults()
	out := capturePrint(func() { Print(cfg, 1, nil, "") })
	if !strings.Contains(out, "(none registered)") {
		t.Fatalf("banner missing empty-static-roots note, got:\n%s", out)
	}
}

func TestPrintReportsDisabledEndpoints(t *testing.T) {
	cfg := config.Defaults()
	cfg.Metrics.Enabled = false
	cfg.Docs.Enabled = false
	out := capturePrint(func() { Print(cfg, 1, nil, "") })
	if !strings.Contains(out, "Metrics:  disabled") {
		t.Fatalf("banner missing disabled metrics note, got:\n%s", out)
	}
	if !strings.Contains(out, "Docs:     disabled") {
		t.Fatalf("banner missing disabled docs note, got:\n%s", out)
	}
}
