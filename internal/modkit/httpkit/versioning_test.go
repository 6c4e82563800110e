package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "bazi/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestAPIPrefix(t *testing.T) {
	assert.Equal(t, "/api/v1", APIPrefix("v1"))
	assert.Equal(t, "/api/v2", APIPrefix("/v2/"))
}

func TestMountAPIScopesAndStamps(t *testing.T) {
	m := chi.NewRouter()
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	MountAPI(phttp.AdaptChi(m), "/v2", []func(http.Handler) http.Handler{mw("a"), mw("b")}, func(api Router) {
		Get(api, "/chart/backends", func(*http.Request) (any, error) { return []string{"vsop87"}, nil })
	})

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v2/chart/backends", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v2", rec.Header().Get("API-Version"))
	assert.Equal(t, []string{"a", "b"}, order)

	rec = httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chart/backends", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMountAPIV1ListsRoutes(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	MountAPIV1(r, nil, func(api Router) {
		api.Route("/chart", func(c Router) {
			PostJSON(c, "/bazi", func(*http.Request, struct{}) (any, error) { return nil, nil })
		})
	})

	assert.Equal(t, []RouteInfo{{Method: "POST", Pattern: "/api/v1/chart/bazi"}}, Routes(r))
}
