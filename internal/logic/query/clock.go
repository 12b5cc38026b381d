package query

import (
	"context"

	"solana-lifecycle/internal/svc"
	"solana-lifecycle/internal/sysvar"
	"solana-lifecycle/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type GetClock struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetClock(ctx context.Context, svcCtx *svc.ServiceContext) *GetClock {
	return &GetClock{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetClock) GetClock() (resp *types.ClockResponse, err error) {
	snap, err := sysvar.FetchClock(l.ctx, l.svcCtx.Conn)
	if err != nil {
		return nil, err
	}
	c := snap.Value
	return &types.ClockResponse{
		Slot:                c.Slot,
		EpochStartTimestamp: c.EpochStartTimestamp,
		Epoch:               c.Epoch,
		LeaderScheduleEpoch: c.LeaderScheduleEpoch,
		UnixTimestamp:       c.UnixTimestamp,
	}, nil
}
