package workflow

import (
	"context"

	"solana-lifecycle/internal/identity"
	"solana-lifecycle/internal/instructions"
	"solana-lifecycle/internal/rpcs"
	"solana-lifecycle/internal/svc"
	"solana-lifecycle/internal/sysvar"
	"solana-lifecycle/pkg/token2022"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/pkg/errors"
)

type SystemAccountResult struct {
	Address solana.PublicKey
	Airdrop solana.Signature
	Account *rpcs.AccountSnapshot
}

// SystemAccount funds a fresh keypair, which creates a system-owned account.
type SystemAccount struct {
	base
	Owner identity.Identity
}

func NewSystemAccount(ctx context.Context, svcCtx *svc.ServiceContext) *SystemAccount {
	return &SystemAccount{base: newBase(ctx, svcCtx)}
}

func (l *SystemAccount) Run() (*SystemAccountResult, error) {
	owner := orGenerate(l.Owner)
	l.Infof("public key: %s", owner)

	sig, err := l.fund(owner)
	if err != nil {
		return nil, err
	}
	acc, err := l.svcCtx.Conn.GetAccount(l.ctx, owner.Address())
	if err != nil {
		return nil, errors.Wrapf(err, "get account %s", owner)
	}
	l.Info(spew.Sdump(acc))

	return &SystemAccountResult{Address: owner.Address(), Airdrop: sig, Account: acc}, nil
}

type SysvarResult struct {
	Clock         *sysvar.Snapshot[sysvar.Clock]
	Rent          *sysvar.Snapshot[sysvar.Rent]
	EpochSchedule *sysvar.Snapshot[sysvar.EpochSchedule]
}

// Sysvar reads the clock, rent and epoch schedule accounts.
type Sysvar struct {
	base
}

func NewSysvar(ctx context.Context, svcCtx *svc.ServiceContext) *Sysvar {
	return &Sysvar{base: newBase(ctx, svcCtx)}
}

func (l *Sysvar) Run() (*SysvarResult, error) {
	var (
		res SysvarResult
		err error
	)
	if res.Clock, err = sysvar.FetchClock(l.ctx, l.svcCtx.Conn); err != nil {
		return nil, errors.Wrap(err, "clock")
	}
	if res.Rent, err = sysvar.FetchRent(l.ctx, l.svcCtx.Conn); err != nil {
		return nil, errors.Wrap(err, "rent")
	}
	if res.EpochSchedule, err = sysvar.FetchEpochSchedule(l.ctx, l.svcCtx.Conn); err != nil {
		return nil, errors.Wrap(err, "epoch schedule")
	}
	l.Infof("clock: slot %d epoch %d at %s", res.Clock.Value.Slot, res.Clock.Value.Epoch, res.Clock.Value.Time())
	l.Debug(spew.Sdump(res.Rent.Value, res.EpochSchedule.Value))
	return &res, nil
}

// ProgramAccount reads an executable account, the Token program unless told otherwise.
type ProgramAccount struct {
	base
	Program solana.PublicKey
}

func NewProgramAccount(ctx context.Context, svcCtx *svc.ServiceContext) *ProgramAccount {
	return &ProgramAccount{base: newBase(ctx, svcCtx), Program: solana.TokenProgramID}
}

func (l *ProgramAccount) Run() (*rpcs.AccountSnapshot, error) {
	acc, err := l.svcCtx.Conn.GetAccount(l.ctx, l.Program)
	if err != nil {
		return nil, errors.Wrapf(err, "get program %s", l.Program)
	}
	if !acc.Executable {
		return acc, errors.Errorf("%s is not executable", l.Program)
	}
	l.Infof("program %s owned by %s, %d bytes", l.Program, acc.Owner, len(acc.Data))
	return acc, nil
}

type DataAccountResult struct {
	Payer                 solana.PublicKey
	Mint                  solana.PublicKey
	Signature             solana.Signature
	Account               *rpcs.AccountSnapshot
	State                 *token.Mint
	TokenAccount          solana.PublicKey
	TokenAccountSignature solana.Signature
}

// DataAccount creates and initializes a Token-2022 mint, then the payer's associated
// token account for it.
type DataAccount struct {
	base
	Payer    identity.Identity
	Mint     identity.Identity
	Decimals uint8
}

func NewDataAccount(ctx context.Context, svcCtx *svc.ServiceContext) *DataAccount {
	return &DataAccount{base: newBase(ctx, svcCtx), Decimals: 9}
}

func (l *DataAccount) Run() (*DataAccountResult, error) {
	payer, err := l.funded(l.Payer)
	if err != nil {
		return nil, err
	}
	mint := orGenerate(l.Mint)

	rent, err := l.svcCtx.Conn.GetMinimumBalanceForRentExemption(l.ctx, token2022.MintSize)
	if err != nil {
		return nil, errors.Wrap(err, "mint rent")
	}
	freeze := payer.Address()
	initMint, err := instructions.InitializeMint(mint.Address(), l.Decimals, payer.Address(), &freeze)
	if err != nil {
		return nil, err
	}
	instrs := []solana.Instruction{
		instructions.CreateAccount(payer.Address(), mint.Address(), rent, token2022.MintSize, token2022.ProgramID),
		initMint,
	}
	tx, err := l.sign(instrs, payer, mint)
	if err != nil {
		return nil, err
	}
	sig, err := l.submit(tx)
	if err != nil {
		return nil, errors.Wrap(err, "create mint")
	}
	l.Infof("fee payer: %s, mint: %s, signature: %s", payer, mint, sig)

	// the mint exists from here on, so later failures still report it
	res := &DataAccountResult{
		Payer:     payer.Address(),
		Mint:      mint.Address(),
		Signature: sig,
	}

	if res.Account, err = l.svcCtx.Conn.GetAccount(l.ctx, mint.Address()); err != nil {
		return res, errors.Wrapf(err, "get mint %s", mint)
	}
	if res.State, err = token2022.DecodeMint(res.Account.Data); err != nil {
		return res, err
	}
	l.Info(spew.Sdump(res.State))

	ata, _, err := token2022.FindAssociatedTokenAddress(payer.Address(), mint.Address())
	if err != nil {
		return res, err
	}
	createATA, err := instructions.CreateAssociatedTokenAccount(payer.Address(), payer.Address(), mint.Address())
	if err != nil {
		return res, err
	}
	if tx, err = l.sign([]solana.Instruction{createATA}, payer); err != nil {
		return res, err
	}
	if res.TokenAccountSignature, err = l.submit(tx); err != nil {
		return res, errors.Wrap(err, "create token account")
	}
	res.TokenAccount = ata
	l.Infof("token account %s: %s", ata, res.TokenAccountSignature)
	return res, nil
}
