// Package handler provides the HTTP handlers of the storefront bridge.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	graphqlgo "github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/storefront/bridge/internal/interfaces/graphql"
	"github.com/storefront/bridge/internal/interfaces/http/middleware"
)

// GraphQLHandler executes storefront GraphQL requests against the schema.
type GraphQLHandler struct {
	schema graphqlgo.Schema
	logger *zap.Logger
}

// NewGraphQLHandler creates a GraphQLHandler.
func NewGraphQLHandler(schema graphqlgo.Schema, logger *zap.Logger) *GraphQLHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphQLHandler{
		schema: schema,
		logger: logger.Named("graphql_http"),
	}
}

// graphqlRequest is the standard GraphQL-over-HTTP POST body.
type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Execute handles POST /graphql. Execution errors land in the response's
// errors array with HTTP 200, per GraphQL convention; only transport-level
// problems produce a non-200 status.
func (h *GraphQLHandler) Execute(c *gin.Context) {
	var req graphqlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []gin.H{{
				"message":    "Invalid request body: expected a JSON GraphQL request",
				"extensions": gin.H{"category": "graphql-input"},
			}},
		})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []gin.H{{
				"message":    "Query is missing",
				"extensions": gin.H{"category": "graphql-input"},
			}},
		})
		return
	}

	sess := middleware.SessionFrom(c)
	ctx := graphql.WithSession(c.Request.Context(), sess)

	result := graphqlgo.Do(graphqlgo.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})

	c.JSON(http.StatusOK, result)
}
