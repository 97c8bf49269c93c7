package middleware

import "net/http"

// NoStore disables caching of dynamic catalog responses.
func NoStore() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}

// StaticCache marks embedded assets as cacheable for maxAge seconds.
func StaticCache(maxAge string) func(http.Handler) http.Handler {
	value := "public, max-age=" + maxAge
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
