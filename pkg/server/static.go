package server

import (
	"os"
	"path/filepath"
	"strings"

	"webcore/pkg/uri"
	"webcore/pkg/web"
)

// serveStatic looks up req's sanitized path under each registered static
// root, in registration order, and serves the first file found. It always
// reports handled=true: a miss produces a 404 body itself rather than
// falling through to the unmatched-route handler. A sanitized path is never
// passed further than this function; filesystem containment is still
// enforced via filepath.Clean + a root-prefix check before opening.
func (s *Server) serveStatic(req *web.Request, res *web.Response) bool {
	sanitized := uri.SanitizePath(req.Path())

	for _, dir := range s.staticDirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		candidate := filepath.Join(absDir, filepath.Clean("/"+sanitized))
		if !isWithin(absDir, candidate) {
			continue
		}

		data, err := os.ReadFile(candidate)
		if err == nil {
			res.SetContentType(uri.MIMEType(candidate))
			res.SetStatus(200, "OK")
			res.SetBody(data)
			res.Send()
			return true
		}
		if !os.IsNotExist(err) {
			panic(err)
		}
	}

	res.SetStatus(404, "Not Found")
	res.SendText("404 Not Found")
	return true
}

func isWithin(root, candidate string) bool {
	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
