package query

import (
	"context"
	"strings"

	"solana-lifecycle/internal/pda"
	"solana-lifecycle/internal/svc"
	"solana-lifecycle/internal/types"

	"github.com/gagliardetto/solana-go"
	"github.com/zeromicro/go-zero/core/logx"
)

type Derive struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDerive(ctx context.Context, svcCtx *svc.ServiceContext) *Derive {
	return &Derive{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *Derive) Derive(req *types.DeriveRequest) (resp *types.DeriveResponse, err error) {
	program, err := solana.PublicKeyFromBase58(req.Program)
	if err != nil {
		return nil, err
	}
	var raw []string
	if req.Seeds != "" {
		raw = strings.Split(req.Seeds, ",")
	}
	seeds, err := pda.ParseSeeds(raw)
	if err != nil {
		return nil, err
	}
	addr, bump, err := pda.FindAddress(seeds, program)
	if err != nil {
		return nil, err
	}
	return &types.DeriveResponse{
		Program: program.String(),
		Address: addr.String(),
		Bump:    bump,
	}, nil
}
