package query

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"solana-lifecycle/internal/logic/query"
	"solana-lifecycle/internal/svc"
	"solana-lifecycle/internal/types"
)

func Estimate(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.EstimateRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := query.NewEstimate(r.Context(), svcCtx)
		resp, err := l.Estimate(&req)
		if err != nil {
			writeError(w, r, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
