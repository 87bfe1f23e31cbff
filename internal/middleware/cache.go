// Package middleware contains http middlewares of the service.
package middleware

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/readon-gr/readon/internal/tagcache"
)

type response struct {
	header  http.Header
	content []byte
}

// Cached caches successful responses of the handler by request uri.
func Cached(c *tagcache.Cache, ttl time.Duration, handler http.HandlerFunc, tags ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if v, ok := c.Get(r.RequestURI); ok {
			resp := v.(response)
			for k, v := range resp.header {
				w.Header()[k] = v
			}
			_, _ = w.Write(resp.content)
			return
		}

		rec := httptest.NewRecorder()
		handler(rec, r)

		for k, v := range rec.Header() {
			w.Header()[k] = v
		}

		w.WriteHeader(rec.Code)
		content := rec.Body.Bytes()

		if rec.Code == http.StatusOK {
			c.Set(r.RequestURI, response{header: rec.Header().Clone(), content: content}, ttl, tags...)
		}

		_, _ = w.Write(content)
	}
}
