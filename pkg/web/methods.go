package web

// Recognized HTTP methods. Any request whose method is outside this set is
// rejected with 405 at the dispatch boundary rather than being routed.
const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodDelete  = "DELETE"
	MethodPatch   = "PATCH"
	MethodHead    = "HEAD"
	MethodOptions = "OPTIONS"
)

var knownMethods = map[string]bool{
	MethodGet: true, MethodPost: true, MethodPut: true, MethodDelete: true,
	MethodPatch: true, MethodHead: true, MethodOptions: true,
}

// IsKnownMethod reports whether method (already upper-cased) is recognized.
func IsKnownMethod(method string) bool { return knownMethods[method] }
