package handler

import (
	"net/http"

	"solana-lifecycle/internal/handler/query"
	"solana-lifecycle/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/pda",
				Handler: query.Derive(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/accounts/:address",
				Handler: query.GetAccount(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/balance/:address",
				Handler: query.GetBalance(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/sysvar/clock",
				Handler: query.GetClock(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/estimate",
				Handler: query.Estimate(serverCtx),
			},
		},
		rest.WithPrefix("/v1"),
	)
}
