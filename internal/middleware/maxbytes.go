package middleware

import "net/http"

// DefaultMaxBodyBytes caps request bodies at 256 KiB. The largest legitimate
// payload is a batch of work entries, which stays far below that.
const DefaultMaxBodyBytes = 256 << 10

// MaxBytes rejects oversized request bodies with 413 before a handler starts
// decoding them.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
