package descriptor

import "net/http"

// HeaderValue returns the value of the named header and whether the header
// was present at all. A header repeated in the response yields its last
// value. The value is returned untouched, an empty string included.
func HeaderValue(h http.Header, name string) (string, bool) {
	values, ok := h[http.CanonicalHeaderKey(name)]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}
