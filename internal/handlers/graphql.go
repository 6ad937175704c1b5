package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog/log"
)

// GraphQLHandler serves the single GraphQL-over-HTTP endpoint.
type GraphQLHandler struct {
	schema graphql.Schema
}

// NewGraphQLHandler creates a new GraphQL handler over an executable schema.
func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

// request is a GraphQL-over-HTTP document.
type request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Serve handles POST /graphql. Identity, when present, was already attached
// to the request context by the middleware; resolvers decide authorization
// themselves, so execution failures still answer 200 with the standard
// {data, errors} envelope.
func (h *GraphQLHandler) Serve(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Failed to parse request body", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		respondError(w, "Must provide query string", http.StatusBadRequest)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Error().Err(err).Msg("Failed to encode GraphQL response")
	}
}
