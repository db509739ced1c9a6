package http_test

import (
	"encoding/json"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/pos-ventas/docs"
)

var fiberParam = regexp.MustCompile(`:([A-Za-z]+)`)

// La documentación OpenAPI debe describir exactamente las rutas registradas en /api.
func TestRouter_RutasDocumentadas(t *testing.T) {
	s := newServer(t)

	registered := map[string]bool{}
	for _, r := range s.app.GetRoutes(true) {
		if !strings.HasPrefix(r.Path, "/api/") || r.Method == http.MethodHead {
			continue
		}
		path := strings.TrimSuffix(fiberParam.ReplaceAllString(r.Path, "{$1}"), "/")
		registered[strings.ToLower(r.Method)+" "+path] = true
	}

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	documented := map[string]bool{}
	for path, ops := range doc.Paths {
		for method := range ops {
			documented[method+" "+path] = true
		}
	}

	assert.Equal(t, keys(documented), keys(registered))
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
