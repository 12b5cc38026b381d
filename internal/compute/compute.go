// Package compute estimates compute-unit consumption by simulation and prepends
// compute-budget instructions sized from the estimate.
package compute

import (
	"context"
	"fmt"
	"math"

	"solana-lifecycle/internal/config"
	"solana-lifecycle/internal/identity"
	"solana-lifecycle/internal/instructions"
	"solana-lifecycle/internal/rpcs"
	"solana-lifecycle/internal/txn"

	"github.com/gagliardetto/solana-go"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"
)

const (
	// FallbackUnits is used when simulation does not produce a usable figure.
	FallbackUnits uint32 = 200_000
	// SimulationUnitLimit caps the dry run so that it does not fail on the default limit.
	SimulationUnitLimit uint32 = 400_000
	// SimulationUnitPrice is the priority fee attached to the dry run, in micro-lamports.
	SimulationUnitPrice uint64 = 100
	// MaxUnitLimit is the most a single transaction may request.
	MaxUnitLimit uint32 = 1_400_000
	// DefaultMarginPercent is added on top of the estimate.
	DefaultMarginPercent uint32 = 10
)

// Estimator runs simulations through one connection.
type Estimator struct {
	conn          *rpcs.Connection
	fallbackUnits uint32
	marginPercent uint32
}

func NewEstimator(conn *rpcs.Connection, c config.ComputeConf) *Estimator {
	e := &Estimator{
		conn:          conn,
		fallbackUnits: c.FallbackUnits,
		marginPercent: c.MarginPercent,
	}
	if e.fallbackUnits == 0 {
		e.fallbackUnits = FallbackUnits
	}
	return e
}

func (e *Estimator) FallbackUnits() uint32 { return e.fallbackUnits }

// Estimation is the outcome of a single estimate. Fallback is set when the
// simulation gave no usable unit count.
type Estimation struct {
	Units    uint32
	Fallback bool
}

// Estimate simulates instrs paid by payer and returns the units consumed.
// Only a failure to fetch a blockhash is returned as an error; a failed or
// inconclusive simulation yields the fallback.
func (e *Estimator) Estimate(ctx context.Context, instrs []solana.Instruction, payer solana.PublicKey) (uint32, error) {
	est, err := e.EstimateDetailed(ctx, instrs, payer)
	return est.Units, err
}

// EstimateDetailed is Estimate that also reports whether the fallback was used.
func (e *Estimator) EstimateDetailed(ctx context.Context, instrs []solana.Instruction, payer solana.PublicKey) (Estimation, error) {
	bh, err := e.conn.GetLatestBlockhash(ctx)
	if err != nil {
		return Estimation{}, fmt.Errorf("estimate compute units: %w", err)
	}

	logger := logx.WithContext(ctx)
	fallback := Estimation{Units: e.fallbackUnits, Fallback: true}
	sim := make([]solana.Instruction, 0, len(instrs)+2)
	sim = append(sim,
		instructions.SetComputeUnitPrice(SimulationUnitPrice),
		instructions.SetComputeUnitLimit(SimulationUnitLimit),
	)
	sim = append(sim, instrs...)

	tx, err := txn.Assemble(sim, payer, bh.Hash)
	if err != nil {
		logger.Errorf("assemble simulation: %v, using %d units", err, e.fallbackUnits)
		return fallback, nil
	}
	// signatures are not verified but their slots must be present
	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)

	res, err := e.conn.Simulate(ctx, tx)
	switch {
	case err != nil:
		logger.Errorf("simulate: %v, using %d units", err, e.fallbackUnits)
		return fallback, nil
	case res.Err != nil:
		logger.Errorf("simulation failed: %v, using %d units", res.Err, e.fallbackUnits)
		for _, line := range res.Logs {
			logger.Debug(line)
		}
		return fallback, nil
	case res.UnitsConsumed == nil:
		logger.Infof("simulation reported no units, using %d", e.fallbackUnits)
		return fallback, nil
	}

	units := *res.UnitsConsumed
	if units > math.MaxUint32 {
		units = math.MaxUint32
	}
	return Estimation{Units: uint32(units)}, nil
}

// WithMargin adds percent of units, rounding down. The result is clamped to
// MaxUnitLimit unless that would go below units.
func WithMargin(units, percent uint32) uint32 {
	limit := uint64(units) + uint64(units)*uint64(percent)/100
	if limit > uint64(MaxUnitLimit) {
		if units > MaxUnitLimit {
			return units
		}
		return MaxUnitLimit
	}
	return uint32(limit)
}

// Plan is a signed transaction together with the figures that sized it.
type Plan struct {
	RawUnits        uint32
	UnitLimit       uint32
	PriorityFee     uint64
	LastValidHeight uint64
	Transaction     *solana.Transaction
}

// BuildOptimal estimates instrs, then returns them behind a unit price and a unit limit
// with margin, assembled and signed by signer plus extra. signer pays the fee.
func (e *Estimator) BuildOptimal(ctx context.Context, instrs []solana.Instruction, signer identity.Identity, priorityFee uint64, extra ...identity.Identity) (*Plan, error) {
	var (
		raw uint32
		bh  rpcs.Blockhash
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = e.Estimate(gctx, instrs, signer.Address())
		return err
	})
	g.Go(func() error {
		var err error
		bh, err = e.conn.GetLatestBlockhash(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	limit := WithMargin(raw, e.marginPercent)
	final := make([]solana.Instruction, 0, len(instrs)+2)
	final = append(final,
		instructions.SetComputeUnitPrice(priorityFee),
		instructions.SetComputeUnitLimit(limit),
	)
	final = append(final, instrs...)

	unsigned, err := txn.Assemble(final, signer.Address(), bh.Hash)
	if err != nil {
		return nil, err
	}
	signed, err := txn.Sign(unsigned, append([]identity.Identity{signer}, extra...)...)
	if err != nil {
		return nil, err
	}

	return &Plan{
		RawUnits:        raw,
		UnitLimit:       limit,
		PriorityFee:     priorityFee,
		LastValidHeight: bh.LastValidBlockHeight,
		Transaction:     signed,
	}, nil
}
