package handlers_test

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_engine/cmd/docs"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

var pathParam = regexp.MustCompile(`:(\w+)`)

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{JWTSecret: testSecret}, &portssvc.ServiceContainer{})

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		path, ok := strings.CutPrefix(route.Path, docs.SwaggerInfo.BasePath)
		if !ok {
			continue
		}
		path = pathParam.ReplaceAllString(path, "{$1}")
		method := strings.ToLower(route.Method)
		registered[method+" "+path] = true
		assert.Contains(t, doc.Paths[path], method, "%s %s is not documented", route.Method, path)
	}

	for path, ops := range doc.Paths {
		for method := range ops {
			assert.True(t, registered[method+" "+path], "%s %s is documented but not routed", method, path)
		}
	}
}
