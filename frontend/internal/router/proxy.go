package router

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/admissible-dev/admissible-demo/shared/logger"
)

// NewAPIProxy forwards /api/* to the gateway so browser scripts can use
// relative URLs on the site's own origin.
func NewAPIProxy(target *url.URL) http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.Out.Header.Del("True-Client-IP")
			r.Out.Header.Del("X-Real-IP")
			r.SetXForwarded()
		},
		ModifyResponse: func(resp *http.Response) error {
			resp.Header.Del("Server")
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Log.Error("api proxy", "path", r.URL.Path, "error", err)
			http.Error(w, "API unavailable", http.StatusBadGateway)
		},
	}
}
