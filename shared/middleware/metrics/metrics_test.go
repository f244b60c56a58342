package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware("test"))
	r.Get("/api/hello", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("test", "GET", "/api/hello", "403"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/hello", nil))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("test", "GET", "/api/hello", "403"))
	assert.Equal(t, before+1, after)
}

func TestHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}
