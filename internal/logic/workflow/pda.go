package workflow

import (
	"context"

	"solana-lifecycle/internal/pda"
	"solana-lifecycle/internal/svc"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// SeedAddress is the address used as a seed by the derivation examples.
var SeedAddress = solana.MustPublicKeyFromBase58("DC7R43exz5Uhgi6dxFzNG64YUWooVB7PWnzvbAuLd561")

type Derivation struct {
	Name    string
	Seeds   []string
	Program solana.PublicKey
	Address solana.PublicKey
	Bump    uint8
}

// DerivePDAs derives the example addresses against the system program. It is pure.
type DerivePDAs struct {
	base
	Program solana.PublicKey
}

func NewDerivePDAs(ctx context.Context, svcCtx *svc.ServiceContext) *DerivePDAs {
	return &DerivePDAs{base: newBase(ctx, svcCtx), Program: solana.SystemProgramID}
}

func (l *DerivePDAs) Run() ([]Derivation, error) {
	examples := []struct {
		name  string
		seeds []string
	}{
		{"string seed", []string{"str:helloWorld"}},
		{"address seed", []string{"pubkey:" + SeedAddress.String()}},
		{"multiple seeds", []string{"str:this sis a seed", "pubkey:" + SeedAddress.String()}},
	}

	out := make([]Derivation, 0, len(examples))
	for _, ex := range examples {
		seeds, err := pda.ParseSeeds(ex.seeds)
		if err != nil {
			return nil, errors.Wrap(err, ex.name)
		}
		addr, bump, err := pda.FindAddress(seeds, l.Program)
		if err != nil {
			return nil, errors.Wrap(err, ex.name)
		}
		l.Infof("%s: pda %s bump %d", ex.name, addr, bump)
		out = append(out, Derivation{
			Name:    ex.name,
			Seeds:   ex.seeds,
			Program: l.Program,
			Address: addr,
			Bump:    bump,
		})
	}
	return out, nil
}
