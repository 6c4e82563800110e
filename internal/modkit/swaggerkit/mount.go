// Package swaggerkit serves the OpenAPI document and Swagger UI
package swaggerkit

import (
	"net/http"

	"bazi/internal/platform/config"
	phttp "bazi/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Options controls where the docs live and what the document advertises
type Options struct {
	Enabled     bool
	Path        string // UI mount point, default /api/docs
	BasePath    string // servers[0].url, default /api/v1
	TitleSuffix string // appended to info.title, e.g. "(staging)"
}

// FromConfig reads SWAGGER and DOCS_TITLE_SUFFIX
func FromConfig(cfg config.Conf) Options {
	return Options{
		Enabled:     cfg.MayBool("SWAGGER", true),
		TitleSuffix: cfg.MayString("DOCS_TITLE_SUFFIX", ""),
	}
}

// Mount serves Path/doc.json and the UI under Path when enabled
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	if o.Path == "" {
		o.Path = "/api/docs"
	}
	if o.BasePath == "" {
		o.BasePath = "/api/v1"
	}
	r.Get(o.Path, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, o.Path+"/", http.StatusPermanentRedirect)
	})
	r.Get(o.Path+"/doc.json", serveDocJSON(o))
	r.Handle(o.Path+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("bazi"),
		httpSwagger.URL(o.Path+"/doc.json"),
	))
}
