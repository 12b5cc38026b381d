package pda

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// ParseSeed decodes one seed written as "<kind>:<value>".
//
//	str:helloWorld    utf-8 bytes (also the default when no kind is given)
//	pubkey:<base58>   the 32 bytes of an address
//	b58:<base58>      raw base58 bytes
//	hex:<hex>         raw hex bytes
func ParseSeed(s string) ([]byte, error) {
	kind, value, ok := strings.Cut(s, ":")
	if !ok {
		return []byte(s), nil
	}
	switch kind {
	case "str":
		return []byte(value), nil
	case "pubkey":
		pk, err := solana.PublicKeyFromBase58(value)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", s, err)
		}
		return pk.Bytes(), nil
	case "b58":
		b, err := base58.Decode(value)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", s, err)
		}
		return b, nil
	case "hex":
		b, err := hex.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", s, err)
		}
		return b, nil
	default:
		// a colon inside a plain string seed
		return []byte(s), nil
	}
}

func ParseSeeds(in []string) ([][]byte, error) {
	seeds := make([][]byte, 0, len(in))
	for _, s := range in {
		seed, err := ParseSeed(s)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}
