// Package txn assembles, signs and verifies transactions without touching the network.
package txn

import (
	"errors"
	"fmt"

	"solana-lifecycle/internal/identity"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrMissingSigner  = errors.New("missing signer")
	ErrNoInstructions = errors.New("no instructions")
)

// Assemble builds an unsigned transaction paid for by feePayer.
func Assemble(instrs []solana.Instruction, feePayer solana.PublicKey, blockhash solana.Hash) (*solana.Transaction, error) {
	if len(instrs) == 0 {
		return nil, ErrNoInstructions
	}
	tx, err := solana.NewTransaction(instrs, blockhash, solana.TransactionPayer(feePayer))
	if err != nil {
		return nil, fmt.Errorf("assemble transaction: %w", err)
	}
	return tx, nil
}

// RequiredSigners lists the accounts that must sign tx, fee payer first.
func RequiredSigners(tx *solana.Transaction) []solana.PublicKey {
	n := int(tx.Message.Header.NumRequiredSignatures)
	if n > len(tx.Message.AccountKeys) {
		n = len(tx.Message.AccountKeys)
	}
	out := make([]solana.PublicKey, n)
	copy(out, tx.Message.AccountKeys[:n])
	return out
}

// Sign returns a signed copy of unsigned. Every required signer must be among ids,
// in any order; otherwise nothing is signed and the error names the first absent address.
func Sign(unsigned *solana.Transaction, ids ...identity.Identity) (*solana.Transaction, error) {
	keys := keyring(ids)
	if err := checkSigners(unsigned, keys); err != nil {
		return nil, err
	}

	signed := &solana.Transaction{Message: unsigned.Message}
	_, err := signed.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if pk, ok := keys[key]; ok {
			return &pk
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	return signed, nil
}

// CheckSigners reports ErrMissingSigner when a signer required by tx is not among ids.
func CheckSigners(tx *solana.Transaction, ids ...identity.Identity) error {
	return checkSigners(tx, keyring(ids))
}

func checkSigners(tx *solana.Transaction, keys map[solana.PublicKey]solana.PrivateKey) error {
	for _, signer := range RequiredSigners(tx) {
		if _, ok := keys[signer]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingSigner, signer)
		}
	}
	return nil
}

func keyring(ids []identity.Identity) map[solana.PublicKey]solana.PrivateKey {
	keys := make(map[solana.PublicKey]solana.PrivateKey, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		keys[id.Address()] = id.PrivateKey()
	}
	return keys
}

// Verify checks every signature of tx against its serialized message.
func Verify(tx *solana.Transaction) error {
	signers := RequiredSigners(tx)
	if len(tx.Signatures) != len(signers) {
		return fmt.Errorf("%w: have %d signatures, want %d", ErrMissingSigner, len(tx.Signatures), len(signers))
	}
	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("serialize message: %w", err)
	}
	for i, signer := range signers {
		if !tx.Signatures[i].Verify(signer, msg) {
			return fmt.Errorf("invalid signature for %s", signer)
		}
	}
	return nil
}
