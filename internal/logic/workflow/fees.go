package workflow

import (
	"context"

	"solana-lifecycle/internal/identity"
	"solana-lifecycle/internal/instructions"
	"solana-lifecycle/internal/svc"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

const (
	// FixedUnitLimit and FixedUnitPrice are the hand-picked budget of ComputeBudget.
	FixedUnitLimit uint32 = 300_000
	FixedUnitPrice uint64 = 1

	// OptimizeLamports is the 0.5 SOL moved by OptimizeCompute.
	OptimizeLamports = solana.LAMPORTS_PER_SOL / 2
)

type FeeResult struct {
	Sender      solana.PublicKey
	Receiver    solana.PublicKey
	Signature   solana.Signature
	RawUnits    uint32
	UnitLimit   uint32
	PriorityFee uint64
}

// ComputeBudget attaches a fixed unit limit and price to a transfer.
type ComputeBudget struct {
	base
	Sender identity.Identity
}

func NewComputeBudget(ctx context.Context, svcCtx *svc.ServiceContext) *ComputeBudget {
	return &ComputeBudget{base: newBase(ctx, svcCtx)}
}

func (l *ComputeBudget) Run() (*FeeResult, error) {
	sender, err := l.funded(l.Sender)
	if err != nil {
		return nil, err
	}
	receiver := identity.Generate().Address()

	tx, err := l.sign([]solana.Instruction{
		instructions.SetComputeUnitLimit(FixedUnitLimit),
		instructions.SetComputeUnitPrice(FixedUnitPrice),
		instructions.Transfer(sender.Address(), receiver, DefaultTransferLamports),
	}, sender)
	if err != nil {
		return nil, err
	}
	sig, err := l.submit(tx)
	if err != nil {
		return nil, errors.Wrap(err, "compute budget transfer")
	}
	return &FeeResult{
		Sender:      sender.Address(),
		Receiver:    receiver,
		Signature:   sig,
		UnitLimit:   FixedUnitLimit,
		PriorityFee: FixedUnitPrice,
	}, nil
}

// OptimizeCompute sizes the unit limit of a 0.5 SOL transfer from a simulation.
type OptimizeCompute struct {
	base
	Sender      identity.Identity
	PriorityFee uint64
}

func NewOptimizeCompute(ctx context.Context, svcCtx *svc.ServiceContext) *OptimizeCompute {
	return &OptimizeCompute{base: newBase(ctx, svcCtx), PriorityFee: svcCtx.Config.Compute.PriorityFee}
}

func (l *OptimizeCompute) Run() (*FeeResult, error) {
	sender, err := l.funded(l.Sender)
	if err != nil {
		return nil, err
	}
	receiver := identity.Generate().Address()

	plan, err := l.svcCtx.Estimator.BuildOptimal(l.ctx,
		[]solana.Instruction{instructions.Transfer(sender.Address(), receiver, OptimizeLamports)},
		sender, l.PriorityFee)
	if err != nil {
		return nil, errors.Wrap(err, "build optimal transaction")
	}
	l.Infof("compute units simulated: %d, with margin: %d", plan.RawUnits, plan.UnitLimit)

	sig, err := l.submit(plan.Transaction)
	if err != nil {
		return nil, errors.Wrap(err, "optimized transfer")
	}
	return &FeeResult{
		Sender:      sender.Address(),
		Receiver:    receiver,
		Signature:   sig,
		RawUnits:    plan.RawUnits,
		UnitLimit:   plan.UnitLimit,
		PriorityFee: plan.PriorityFee,
	}, nil
}
