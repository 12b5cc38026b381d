package query

import (
	"context"
	"encoding/base64"

	"solana-lifecycle/internal/svc"
	"solana-lifecycle/internal/types"

	"github.com/gagliardetto/solana-go"
	"github.com/zeromicro/go-zero/core/logx"
)

type GetAccount struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetAccount(ctx context.Context, svcCtx *svc.ServiceContext) *GetAccount {
	return &GetAccount{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetAccount) GetAccount(req *types.AccountRequest) (resp *types.AccountResponse, err error) {
	addr, err := solana.PublicKeyFromBase58(req.Address)
	if err != nil {
		return nil, err
	}
	acc, err := l.svcCtx.Conn.GetAccount(l.ctx, addr)
	if err != nil {
		return nil, err
	}
	return &types.AccountResponse{
		Address:    acc.Address.String(),
		Owner:      acc.Owner.String(),
		Lamports:   acc.Lamports,
		Executable: acc.Executable,
		Space:      len(acc.Data),
		Data:       base64.StdEncoding.EncodeToString(acc.Data),
	}, nil
}

type GetBalance struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetBalance(ctx context.Context, svcCtx *svc.ServiceContext) *GetBalance {
	return &GetBalance{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetBalance) GetBalance(req *types.AccountRequest) (resp *types.BalanceResponse, err error) {
	addr, err := solana.PublicKeyFromBase58(req.Address)
	if err != nil {
		return nil, err
	}
	lamports, err := l.svcCtx.Conn.GetBalance(l.ctx, addr)
	if err != nil {
		return nil, err
	}
	return &types.BalanceResponse{Address: addr.String(), Lamports: lamports}, nil
}
