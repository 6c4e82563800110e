package httpkit

import (
	"net/http"
	"strings"
)

// APIVersion is the version every module mounts under today
const APIVersion = "v1"

// APIPrefix returns the mount point of version, e.g. /api/v1
func APIPrefix(version string) string {
	return "/api/" + strings.Trim(version, "/")
}

// MountAPI scopes a router under APIPrefix(version), applies mw, and hands
// it to mount. Every response from the scope carries an API-Version header.
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	ver := strings.Trim(version, "/")
	r.Route(APIPrefix(ver), func(api Router) {
		api.Use(stampVersion(ver))
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}

// MountAPIV1 is MountAPI for APIVersion
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, APIVersion, mw, mount)
}

func stampVersion(ver string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("API-Version", ver)
			next.ServeHTTP(w, r)
		})
	}
}
