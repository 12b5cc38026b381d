package query

import (
	"context"
	"errors"

	"solana-lifecycle/internal/compute"
	"solana-lifecycle/internal/instructions"
	"solana-lifecycle/internal/svc"
	"solana-lifecycle/internal/types"

	"github.com/gagliardetto/solana-go"
	"github.com/zeromicro/go-zero/core/logx"
)

var errZeroAmount = errors.New("lamports must be positive")

type Estimate struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewEstimate(ctx context.Context, svcCtx *svc.ServiceContext) *Estimate {
	return &Estimate{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Estimate sizes a transfer from From to To. Nothing is signed or sent.
func (l *Estimate) Estimate(req *types.EstimateRequest) (resp *types.EstimateResponse, err error) {
	from, err := solana.PublicKeyFromBase58(req.From)
	if err != nil {
		return nil, err
	}
	to, err := solana.PublicKeyFromBase58(req.To)
	if err != nil {
		return nil, err
	}
	if req.Lamports == 0 {
		return nil, errZeroAmount
	}

	est, err := l.svcCtx.Estimator.EstimateDetailed(l.ctx, []solana.Instruction{instructions.Transfer(from, to, req.Lamports)}, from)
	if err != nil {
		return nil, err
	}
	return &types.EstimateResponse{
		Units:     est.Units,
		UnitLimit: compute.WithMargin(est.Units, l.svcCtx.Config.Compute.MarginPercent),
		Fallback:  est.Fallback,
	}, nil
}
