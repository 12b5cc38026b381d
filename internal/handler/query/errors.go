package query

import (
	"errors"
	"net/http"

	"solana-lifecycle/internal/rpcs"

	"github.com/zeromicro/go-zero/rest/httpx"
)

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps lookups of absent accounts to 404 and unreachable nodes to 502.
// Everything else is a bad request.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var connErr *rpcs.ConnectionError
	switch {
	case errors.Is(err, rpcs.ErrAccountNotFound):
		httpx.WriteJsonCtx(r.Context(), w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.As(err, &connErr):
		httpx.WriteJsonCtx(r.Context(), w, http.StatusBadGateway, errorBody{Error: err.Error()})
	default:
		httpx.ErrorCtx(r.Context(), w, err)
	}
}
