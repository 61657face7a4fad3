package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// Unmatched is the label used for paths the router does not serve.
const Unmatched = "/:unmatched"

var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/stories/\d+$`), Template: "/stories/:id"},
	{Pattern: regexp.MustCompile(`^/stories/\d+/votes$`), Template: "/stories/:id/votes"},
}

// staticPaths are the fixed routes served by the API.
var staticPaths = map[string]struct{}{
	"/":        {},
	"/add":     {},
	"/scrape":  {},
	"/stories": {},
	"/health":  {},
	"/ready":   {},
	"/live":    {},
	"/metrics": {},
}

// NormalizePath maps a request path to a bounded set of metric labels.
//
//	NormalizePath("/stories/123")        // "/stories/:id"
//	NormalizePath("/stories/123/votes")  // "/stories/:id/votes"
//	NormalizePath("/stories?sort=title") // "/stories"
//	NormalizePath("/swagger/index.html") // "/swagger"
//	NormalizePath("/wp-login.php")       // "/:unmatched"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}
	if path == "/swagger" || strings.HasPrefix(path, "/swagger/") {
		return "/swagger"
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	// Scanners probing random paths would otherwise create one series each.
	return Unmatched
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath can produce.
func GetExpectedCardinality() int {
	return len(staticPaths) + len(pathPatterns) + 2
}
