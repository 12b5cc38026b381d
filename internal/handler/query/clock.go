package query

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"solana-lifecycle/internal/logic/query"
	"solana-lifecycle/internal/svc"
)

func GetClock(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := query.NewGetClock(r.Context(), svcCtx)
		resp, err := l.GetClock()
		if err != nil {
			writeError(w, r, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
