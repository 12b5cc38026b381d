package pda

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
)

const (
	MaxSeeds      = 16
	MaxSeedLength = 32
)

var ErrInvalidSeeds = errors.New("invalid seeds")

// IsOnCurve reports whether b decodes to a point on the ed25519 curve.
func IsOnCurve(b []byte) bool {
	if len(b) != solana.PublicKeyLength {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return fmt.Errorf("%w: %d seeds, max %d", ErrInvalidSeeds, len(seeds), MaxSeeds)
	}
	for i, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return fmt.Errorf("%w: seed %d is %d bytes, max %d", ErrInvalidSeeds, i, len(seed), MaxSeedLength)
		}
	}
	return nil
}

// CreateAddress derives the address of seeds under program with a single attempt.
// The result must be off curve.
func CreateAddress(seeds [][]byte, program solana.PublicKey) (solana.PublicKey, error) {
	if err := validateSeeds(seeds); err != nil {
		return solana.PublicKey{}, err
	}
	addr, err := solana.CreateProgramAddress(seeds, program)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidSeeds, err)
	}
	return addr, nil
}

// FindAddress walks the bump from 255 down and returns the first off-curve address.
func FindAddress(seeds [][]byte, program solana.PublicKey) (solana.PublicKey, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %d seeds leaves no room for the bump", ErrInvalidSeeds, len(seeds))
	}
	if err := validateSeeds(seeds); err != nil {
		return solana.PublicKey{}, 0, err
	}
	addr, bump, err := solana.FindProgramAddress(seeds, program)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %v", ErrInvalidSeeds, err)
	}
	return addr, bump, nil
}

// FindAssociatedTokenAddress derives the associated token account of wallet for mint
// under the given token program.
func FindAssociatedTokenAddress(wallet, mint, tokenProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		wallet[:],
		tokenProgram[:],
		mint[:],
	}, solana.SPLAssociatedTokenAccountProgramID)
}
