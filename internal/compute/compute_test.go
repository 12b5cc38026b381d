package compute

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"solana-lifecycle/internal/config"
	"solana-lifecycle/internal/identity"
	"solana-lifecycle/internal/instructions"
	"solana-lifecycle/internal/rpcs"
	"solana-lifecycle/internal/rpcs/rpcstest"
	"solana-lifecycle/internal/txn"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEstimator(fake *rpcstest.Client) *Estimator {
	conn := rpcs.NewWithClient("http://fake:8899", rpc.CommitmentConfirmed, fake)
	return NewEstimator(conn, config.ComputeConf{FallbackUnits: FallbackUnits, MarginPercent: DefaultMarginPercent})
}

func transfer(from solana.PublicKey) []solana.Instruction {
	return []solana.Instruction{instructions.Transfer(from, solana.NewWallet().PublicKey(), solana.LAMPORTS_PER_SOL/2)}
}

func TestEstimateUsesSimulation(t *testing.T) {
	fake := rpcstest.New()
	fake.SimulateUnits = rpcstest.Units(450)
	payer := solana.NewWallet().PublicKey()

	units, err := newEstimator(fake).Estimate(context.Background(), transfer(payer), payer)
	require.NoError(t, err)
	assert.EqualValues(t, 450, units)

	require.Len(t, fake.Simulated, 1)
	sim := fake.Simulated[0]
	assert.Len(t, sim.Signatures, 1)
	require.Len(t, sim.Message.Instructions, 3)
	price := sim.Message.Instructions[0].Data
	assert.Equal(t, byte(3), price[0])
	assert.EqualValues(t, SimulationUnitPrice, binary.LittleEndian.Uint64(price[1:]))
	limit := sim.Message.Instructions[1].Data
	assert.Equal(t, byte(2), limit[0])
	assert.EqualValues(t, SimulationUnitLimit, binary.LittleEndian.Uint32(limit[1:]))
}

func TestEstimateFallsBack(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	cases := map[string]func(*rpcstest.Client){
		"remote error": func(c *rpcstest.Client) { c.SimulateFail = errors.New("node unhealthy") },
		"simulation error": func(c *rpcstest.Client) {
			c.SimulateErr = map[string]any{"InstructionError": []any{0, "InsufficientFunds"}}
			c.SimulateUnits = rpcstest.Units(150)
		},
		"no units": func(c *rpcstest.Client) {},
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			fake := rpcstest.New()
			setup(fake)
			est, err := newEstimator(fake).EstimateDetailed(context.Background(), transfer(payer), payer)
			require.NoError(t, err)
			assert.Equal(t, FallbackUnits, est.Units)
			assert.True(t, est.Fallback)
		})
	}
}

func TestEstimateExactlyFallbackUnitsIsNotFallback(t *testing.T) {
	fake := rpcstest.New()
	fake.SimulateUnits = rpcstest.Units(uint64(FallbackUnits))
	payer := solana.NewWallet().PublicKey()

	est, err := newEstimator(fake).EstimateDetailed(context.Background(), transfer(payer), payer)
	require.NoError(t, err)
	assert.Equal(t, FallbackUnits, est.Units)
	assert.False(t, est.Fallback)
}

func TestEstimateBlockhashErrorPropagates(t *testing.T) {
	fake := rpcstest.New()
	fake.CallErr = errors.New("connection refused")
	payer := solana.NewWallet().PublicKey()

	_, err := newEstimator(fake).Estimate(context.Background(), transfer(payer), payer)
	var connErr *rpcs.ConnectionError
	assert.ErrorAs(t, err, &connErr)
	assert.Zero(t, fake.Count("simulateTransaction"))
}

func TestConfiguredFallback(t *testing.T) {
	conn := rpcs.NewWithClient("http://fake:8899", rpc.CommitmentConfirmed, rpcstest.New())
	assert.Equal(t, FallbackUnits, NewEstimator(conn, config.ComputeConf{}).FallbackUnits())
	assert.EqualValues(t, 50_000, NewEstimator(conn, config.ComputeConf{FallbackUnits: 50_000}).FallbackUnits())
}

func TestWithMargin(t *testing.T) {
	assert.EqualValues(t, 495, WithMargin(450, 10))
	assert.EqualValues(t, 220_000, WithMargin(200_000, 10))
	assert.EqualValues(t, 9, WithMargin(9, 10))
	assert.EqualValues(t, 100, WithMargin(100, 0))
	assert.Equal(t, MaxUnitLimit, WithMargin(1_300_000, 10))
	assert.EqualValues(t, 1_500_000, WithMargin(1_500_000, 10))

	for _, units := range []uint32{0, 1, 7, 450, 200_000, 1_399_999, math32} {
		assert.GreaterOrEqual(t, WithMargin(units, DefaultMarginPercent), units)
	}
}

const math32 = ^uint32(0)

func TestBuildOptimal(t *testing.T) {
	fake := rpcstest.New()
	fake.SimulateUnits = rpcstest.Units(450)
	signer := identity.Generate()

	plan, err := newEstimator(fake).BuildOptimal(context.Background(), transfer(signer.Address()), signer, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 450, plan.RawUnits)
	assert.EqualValues(t, 495, plan.UnitLimit)
	assert.GreaterOrEqual(t, plan.UnitLimit, plan.RawUnits)
	assert.EqualValues(t, 1, plan.PriorityFee)

	tx := plan.Transaction
	require.NoError(t, txn.Verify(tx))
	require.Len(t, tx.Message.Instructions, 3)
	for i, tag := range []byte{3, 2} {
		ix := tx.Message.Instructions[i]
		assert.Equal(t, solana.ComputeBudget, tx.Message.AccountKeys[ix.ProgramIDIndex])
		assert.Equal(t, tag, ix.Data[0])
	}
	assert.EqualValues(t, 495, binary.LittleEndian.Uint32(tx.Message.Instructions[1].Data[1:]))
	assert.Equal(t, solana.SystemProgramID, tx.Message.AccountKeys[tx.Message.Instructions[2].ProgramIDIndex])
	assert.Equal(t, fake.Blockhash, tx.Message.RecentBlockhash)
	assert.Zero(t, fake.Count("sendTransaction"))
}

func TestBuildOptimalFallbackStillSigns(t *testing.T) {
	fake := rpcstest.New()
	fake.SimulateFail = errors.New("timeout")
	signer := identity.Generate()

	plan, err := newEstimator(fake).BuildOptimal(context.Background(), transfer(signer.Address()), signer, 1)
	require.NoError(t, err)
	assert.Equal(t, FallbackUnits, plan.RawUnits)
	assert.EqualValues(t, 220_000, plan.UnitLimit)
}

func TestBuildOptimalMissingSigner(t *testing.T) {
	fake := rpcstest.New()
	signer := identity.Generate()
	other := identity.Generate()
	instrs := append(transfer(signer.Address()), transfer(other.Address())...)

	_, err := newEstimator(fake).BuildOptimal(context.Background(), instrs, signer, 1)
	assert.ErrorIs(t, err, txn.ErrMissingSigner)

	plan, err := newEstimator(fake).BuildOptimal(context.Background(), instrs, signer, 1, other)
	require.NoError(t, err)
	assert.Len(t, plan.Transaction.Signatures, 2)
}
