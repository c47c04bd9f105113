package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	graphqlgo "github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testSchema is a minimal schema; transport behavior is what is under test.
func testSchema(t *testing.T) graphqlgo.Schema {
	t.Helper()
	schema, err := graphqlgo.NewSchema(graphqlgo.SchemaConfig{
		Query: graphqlgo.NewObject(graphqlgo.ObjectConfig{
			Name: "Query",
			Fields: graphqlgo.Fields{
				"ping": &graphqlgo.Field{
					Type: graphqlgo.String,
					Args: graphqlgo.FieldConfigArgument{
						"echo": &graphqlgo.ArgumentConfig{Type: graphqlgo.String},
					},
					Resolve: func(p graphqlgo.ResolveParams) (interface{}, error) {
						if echo, ok := p.Args["echo"].(string); ok {
							return echo, nil
						}
						return "pong", nil
					},
				},
			},
		}),
	})
	require.NoError(t, err)
	return schema
}

func graphqlRouter(t *testing.T) *gin.Engine {
	t.Helper()
	h := NewGraphQLHandler(testSchema(t), nil)
	r := gin.New()
	r.POST("/graphql", h.Execute)
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestExecuteQuery(t *testing.T) {
	w := post(graphqlRouter(t), `{"query": "{ ping }"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pong", resp.Data["ping"])
}

func TestExecuteWithVariables(t *testing.T) {
	w := post(graphqlRouter(t), `{
		"query": "query Ping($msg: String) { ping(echo: $msg) }",
		"variables": {"msg": "hello"}
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello")
}

func TestExecuteRejectsMalformedBody(t *testing.T) {
	w := post(graphqlRouter(t), `not-json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "graphql-input")
}

func TestExecuteRejectsMissingQuery(t *testing.T) {
	w := post(graphqlRouter(t), `{"variables": {}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Query is missing")
}

func TestExecuteSyntaxErrorIsHTTP200(t *testing.T) {
	w := post(graphqlRouter(t), `{"query": "{ ping"}`)
	// Execution errors ride in the errors array, not the status code.
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "errors")
}
