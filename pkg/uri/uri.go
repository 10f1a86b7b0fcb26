// Package uri provides the URL/path utilities the routing engine builds on:
// percent-encoding, query parsing, path normalization, the route
// pattern-matcher, and static-asset classification.
package uri

import (
	"strconv"
	"strings"
)

// isUnreserved reports whether b is in the RFC 3986 unreserved set.
func isUnreserved(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.' || b == '~':
		return true
	}
	return false
}

const upperHex = "0123456789ABCDEF"

// Encode percent-encodes every byte outside the unreserved set as %HH with
// uppercase hex digits.
func Encode(value string) string {
	var needsEscape bool
	for i := 0; i < len(value); i++ {
		if !isUnreserved(value[i]) {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return value
	}

	var b strings.Builder
	b.Grow(len(value) * 3)
	for i := 0; i < len(value); i++ {
		c := value[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

// Decode reverses Encode. A malformed trailing "%" (fewer than two hex
// digits remaining) is dropped silently rather than erroring.
func Decode(value string) string {
	if !strings.ContainsRune(value, '%') {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if value[i] != '%' {
			b.WriteByte(value[i])
			continue
		}
		if i+2 >= len(value) {
			// Not enough hex digits left; drop the stray '%'.
			break
		}
		n, err := strconv.ParseUint(value[i+1:i+3], 16, 8)
		if err != nil {
			// Not valid hex; drop the '%' and resume after it.
			continue
		}
		b.WriteByte(byte(n))
		i += 2
	}
	return b.String()
}

// KV is an ordered name/value pair, used for query parameters and path
// parameters alike.
type KV struct {
	Name  string
	Value string
}

// Path strips the query string (everything from the first "?") from a URI.
func Path(uri string) string {
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		return uri[:i]
	}
	return uri
}

// ParseQuery splits the query component of uri on "&", then each pair on
// the first "=". Names and values are trimmed of surrounding whitespace but
// not URL-decoded; callers decode explicitly via Decode.
func ParseQuery(uri string) []KV {
	i := strings.IndexByte(uri, '?')
	if i < 0 {
		return nil
	}
	query := uri[i+1:]
	if query == "" {
		return nil
	}

	var out []KV
	for _, pair := range strings.Split(query, "&") {
		eq := strings.IndexByte(pair, '=')
		if eq < 0 {
			continue
		}
		name := strings.TrimSpace(pair[:eq])
		value := strings.TrimSpace(pair[eq+1:])
		out = append(out, KV{Name: name, Value: value})
	}
	return out
}

// SanitizePath deletes every occurrence of ".." from path, then collapses
// each run of "/" left behind into a single "/". This is defense-in-depth
// text sanitation only; callers must still resolve and verify filesystem
// containment before opening a file.
func SanitizePath(path string) string {
	for {
		i := strings.Index(path, "..")
		if i < 0 {
			break
		}
		path = path[:i] + path[i+2:]
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	return path
}

// normalize strips every leading and every trailing slash, leaving "/"
// itself untouched.
func normalize(s string) string {
	if s == "" || s == "/" {
		return s
	}
	start := 0
	for start < len(s) && s[start] == '/' {
		start++
	}
	end := len(s)
	for end > start+1 && s[end-1] == '/' {
		end--
	}
	if start >= end {
		return ""
	}
	return s[start:end]
}

func splitSegments(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}

// MatchPath matches a route pattern against a concrete, query-stripped
// request path. A segment beginning with ":" captures the corresponding
// concrete segment (URL-decoded) under the name after the colon. A segment
// equal to "*" captures the remaining concrete segments (URL-decoded, joined
// by "/") under the name "*", and matches immediately even mid-pattern.
// Returns the match flag and the ordered captures.
func MatchPath(expression, path string) (bool, []KV) {
	if path == expression {
		return true, nil
	}

	expr := normalize(expression)
	p := normalize(path)
	if expr == "" && p == "" {
		return true, nil
	}

	exprSegs := splitSegments(expr)
	pathSegs := splitSegments(p)

	var params []KV
	ei, pi := 0, 0
	for ei < len(exprSegs) && pi < len(pathSegs) {
		es := exprSegs[ei]
		ps := pathSegs[pi]

		if es == "*" {
			remainder := strings.Join(pathSegs[pi:], "/")
			if remainder != "" {
				params = append(params, KV{Name: "*", Value: Decode(remainder)})
			}
			return true, params
		}

		if len(es) > 0 && es[0] == ':' {
			params = append(params, KV{Name: es[1:], Value: Decode(ps)})
			ei++
			pi++
			continue
		}

		if es != ps {
			return false, nil
		}
		ei++
		pi++
	}

	if ei < len(exprSegs) {
		if ei+1 == len(exprSegs) && exprSegs[ei] == "*" {
			return true, params
		}
		return false, nil
	}
	if pi < len(pathSegs) {
		return false, nil
	}
	return true, params
}

// staticExtensions is the fixed allowlist used by IsStaticAsset.
var staticExtensions = map[string]bool{
	// Web documents
	"html": true, "htm": true, "xhtml": true, "xml": true,
	// Stylesheets
	"css": true, "scss": true, "sass": true, "less": true,
	// JavaScript
	"js": true, "mjs": true, "jsx": true, "ts": true, "tsx": true,
	// Images
	"png": true, "jpg": true, "jpeg": true, "gif": true, "bmp": true, "tiff": true, "tif": true,
	"svg": true, "webp": true, "ico": true, "cur": true, "avif": true,
	// Fonts
	"woff": true, "woff2": true, "ttf": true, "otf": true, "eot": true,
	// Audio
	"mp3": true, "wav": true, "ogg": true, "m4a": true, "aac": true, "flac": true,
	// Video
	"mp4": true, "webm": true, "avi": true, "mov": true, "wmv": true, "flv": true, "mkv": true,
	// Documents
	"pdf": true, "doc": true, "docx": true, "xls": true, "xlsx": true, "ppt": true, "pptx": true,
	"txt": true, "rtf": true, "odt": true, "ods": true, "odp": true,
	// Archives
	"zip": true, "rar": true, "7z": true, "tar": true, "gz": true, "bz2": true,
	// Data formats
	"json": true, "csv": true, "yaml": true, "yml": true, "toml": true,
	// Web manifests & config
	"manifest": true, "webmanifest": true, "map": true, "htaccess": true,
	// Other common formats
	"swf": true, "eps": true, "ai": true, "psd": true, "sketch": true,
}

var mimeTypes = map[string]string{
	// Web documents
	"html": "text/html", "htm": "text/html", "xhtml": "application/xhtml+xml", "xml": "application/xml",
	// Stylesheets
	"css": "text/css", "scss": "text/x-scss", "sass": "text/x-sass", "less": "text/x-less",
	// JavaScript
	"js": "application/javascript", "mjs": "application/javascript", "jsx": "text/jsx",
	"ts": "application/typescript", "tsx": "text/tsx",
	// Images
	"png": "image/png", "jpg": "image/jpeg", "jpeg": "image/jpeg", "gif": "image/gif",
	"bmp": "image/bmp", "tiff": "image/tiff", "tif": "image/tiff",
	"svg": "image/svg+xml", "webp": "image/webp", "ico": "image/x-icon", "cur": "image/x-icon",
	"avif": "image/avif",
	// Fonts
	"woff": "font/woff", "woff2": "font/woff2", "ttf": "font/ttf", "otf": "font/otf",
	"eot": "application/vnd.ms-fontobject",
	// Audio
	"mp3": "audio/mpeg", "wav": "audio/wav", "ogg": "audio/ogg", "m4a": "audio/mp4",
	"aac": "audio/aac", "flac": "audio/flac",
	// Video
	"mp4": "video/mp4", "webm": "video/webm", "avi": "video/x-msvideo", "mov": "video/quicktime",
	"wmv": "video/x-ms-wmv", "flv": "video/x-flv", "mkv": "video/x-matroska",
	// Documents
	"pdf": "application/pdf", "doc": "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls": "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt": "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"txt": "text/plain", "rtf": "application/rtf",
	"odt": "application/vnd.oasis.opendocument.text",
	"ods": "application/vnd.oasis.opendocument.spreadsheet",
	"odp": "application/vnd.oasis.opendocument.presentation",
	// Archives
	"zip": "application/zip", "rar": "application/vnd.rar", "7z": "application/x-7z-compressed",
	"tar": "application/x-tar", "gz": "application/gzip", "bz2": "application/x-bzip2",
	// Data formats
	"json": "application/json", "csv": "text/csv", "yaml": "application/x-yaml",
	"yml": "application/x-yaml", "toml": "application/toml",
	// Web manifests & config
	"manifest": "text/cache-manifest", "webmanifest": "application/manifest+json",
	"map": "application/json", "htaccess": "text/plain",
	// Other common formats
	"swf": "application/x-shockwave-flash", "eps": "application/postscript",
	"ai": "application/postscript", "psd": "image/vnd.adobe.photoshop",
	"sketch": "application/x-sketch",
}

// DefaultMIMEType is used when an extension has no known MIME mapping.
const DefaultMIMEType = "application/octet-stream"

// Extension returns the text after the last "." in path, or "" if there is
// none, if path ends with ".", or if the last "." sits in a directory
// segment rather than the final one. path must already have its query
// string stripped.
func Extension(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || i == len(path)-1 {
		return ""
	}
	// A dot in a directory segment, as in "a.b/c", yields no extension.
	if slash := strings.LastIndexByte(path, '/'); slash > i {
		return ""
	}
	return path[i+1:]
}

// IsStaticAsset reports whether path's extension is in the static allowlist.
func IsStaticAsset(path string) bool {
	return staticExtensions[Extension(path)]
}

// MIMEType returns the MIME type for path's extension, or DefaultMIMEType.
func MIMEType(path string) string {
	if mt, ok := mimeTypes[Extension(path)]; ok {
		return mt
	}
	return DefaultMIMEType
}
