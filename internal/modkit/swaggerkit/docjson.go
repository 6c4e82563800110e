package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"sync"

	"bazi/internal/platform/logger"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openapiYAML string

// docReader returns the raw YAML document; tests swap it
var docReader = func() string { return openapiYAML }

// SpecMutator adjusts the parsed document before it is served
type SpecMutator func(map[string]any)

var (
	mutatorsMu sync.Mutex
	mutators   []SpecMutator
)

// Register adds a spec mutator applied on every doc.json request
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mutatorsMu.Lock()
	mutators = append(mutators, m)
	mutatorsMu.Unlock()
}

// build parses the YAML document and applies the shared fixups
func build(o Options) (map[string]any, error) {
	var spec map[string]any
	if err := yaml.Unmarshal([]byte(docReader()), &spec); err != nil {
		return nil, err
	}
	spec["servers"] = []any{map[string]any{"url": o.BasePath}}
	if o.TitleSuffix != "" {
		if info, ok := spec["info"].(map[string]any); ok {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + o.TitleSuffix
			}
		}
	}
	addErrorSchema(spec)
	addDefaultResponses(spec)

	mutatorsMu.Lock()
	ms := append([]SpecMutator(nil), mutators...)
	mutatorsMu.Unlock()
	for _, m := range ms {
		m(spec)
	}
	return spec, nil
}

// serveDocJSON renders the document as JSON for the UI
func serveDocJSON(o Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec, err := build(o)
		if err != nil {
			logger.C(r.Context()).Error().Err(err).Msg("openapi document does not parse")
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// addErrorSchema declares the error envelope every handler writes on failure
func addErrorSchema(spec map[string]any) {
	comps, _ := spec["components"].(map[string]any)
	if comps == nil {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, _ := comps["schemas"].(map[string]any)
	if schemas == nil {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	str := map[string]any{"type": "string"}
	schemas["ErrorResponse"] = map[string]any{
		"type":     "object",
		"required": []any{"status_code", "status"},
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer"},
			"status":      str,
			"code":        map[string]any{"type": "integer"},
			"kind":        str,
			"error":       str,
			"field":       str,
			"stage":       str,
			"request_id":  str,
		},
	}
}

// defaultResponses are added to each operation that does not declare them
var defaultResponses = map[string]map[string]any{
	"400": {
		"status_code": 400,
		"status":      "Bad Request",
		"code":        4,
		"kind":        "Validation",
		"error":       "day_boundary must be one of [midnight zi]",
		"field":       "day_boundary",
	},
	"500": {
		"status_code": 500,
		"status":      "Internal Server Error",
		"code":        1,
		"kind":        "Panic",
		"error":       "internal error",
	},
}

func addDefaultResponses(spec map[string]any) {
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, opAny := range ops {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps, _ := op["responses"].(map[string]any)
			if resps == nil {
				resps = map[string]any{}
				op["responses"] = resps
			}
			for code, example := range defaultResponses {
				if _, ok := resps[code]; ok {
					continue
				}
				resps[code] = map[string]any{
					"description": http.StatusText(example["status_code"].(int)),
					"content": map[string]any{
						"application/json": map[string]any{
							"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
							"example": example,
						},
					},
				}
			}
		}
	}
}
