package davkit

import (
	"net/http"
	"strings"

	"github.com/vfaronov/httpheader"
)

// ETagMatches evaluates an If-Match style condition against a resource's
// current entity tag. An empty condition means no precondition and always
// matches. An empty currentETag means the resource has no entity tag, which
// satisfies no condition, "*" included.
//
// Tags are compared with the strong comparison of RFC 7232 section 2.3.2,
// as required for If-Match; weak tags in the condition never match.
// currentETag is the opaque tag data, without quotes.
func ETagMatches(condition, currentETag string) bool {
	if condition == "" {
		return true
	}

	if currentETag == "" {
		return false
	}

	for _, el := range strings.Split(condition, ",") {
		if strings.TrimSpace(el) == "*" {
			return true
		}
	}

	h := http.Header{}
	h.Set("If-Match", condition)

	return httpheader.Match(httpheader.IfMatch(h), httpheader.EntityTag{Opaque: currentETag})
}
