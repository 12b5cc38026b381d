// Package instructions builds the instructions the workflows put into transactions.
// Every constructor is pure.
package instructions

import (
	"encoding/hex"
	"fmt"

	"solana-lifecycle/pkg/token2022"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"
	format "github.com/gagliardetto/solana-go/text/format"
	"github.com/gagliardetto/treeout"
)

func Transfer(from, to solana.PublicKey, lamports uint64) solana.Instruction {
	return system.NewTransferInstruction(lamports, from, to).Build()
}

// CreateAccount allocates space bytes owned by owner. Both payer and newAccount sign.
func CreateAccount(payer, newAccount solana.PublicKey, lamports, space uint64, owner solana.PublicKey) solana.Instruction {
	return system.NewCreateAccountInstruction(lamports, space, owner, payer, newAccount).Build()
}

// InitializeMint initializes a Token-2022 mint. freezeAuthority may be nil.
func InitializeMint(mint solana.PublicKey, decimals uint8, mintAuthority solana.PublicKey, freezeAuthority *solana.PublicKey) (solana.Instruction, error) {
	return token2022.NewInitializeMintInstruction(decimals, mintAuthority, freezeAuthority, mint).ValidateAndBuild()
}

// CreateAssociatedTokenAccount creates the wallet's Token-2022 account for mint when it
// does not exist yet.
func CreateAssociatedTokenAccount(payer, wallet, mint solana.PublicKey) (solana.Instruction, error) {
	return token2022.NewCreateAssociatedAccountInstruction(payer, wallet, mint).ValidateAndBuild()
}

func SetComputeUnitLimit(units uint32) solana.Instruction {
	return computebudget.NewSetComputeUnitLimitInstruction(units).Build()
}

func SetComputeUnitPrice(microLamports uint64) solana.Instruction {
	return computebudget.NewSetComputeUnitPriceInstruction(microLamports).Build()
}

type treeEncoder interface {
	EncodeToTree(parent treeout.Branches)
}

// Describe renders ix as a tree. Instructions that cannot draw themselves are shown
// as program, accounts and hex data.
func Describe(ix solana.Instruction) string {
	tree := treeout.New("")
	if enc, ok := ix.(treeEncoder); ok {
		enc.EncodeToTree(tree)
		return tree.String()
	}

	data, err := ix.Data()
	tree.Child(format.Program("Unknown", ix.ProgramID())).ParentFunc(func(b treeout.Branches) {
		accounts := ix.Accounts()
		b.Child(fmt.Sprintf("Accounts[len=%d]", len(accounts))).ParentFunc(func(ab treeout.Branches) {
			for i, meta := range accounts {
				ab.Child(format.Meta(fmt.Sprintf("[%d]", i), meta))
			}
		})
		if err != nil {
			b.Child("Data: " + err.Error())
			return
		}
		b.Child("Data: " + hex.EncodeToString(data))
	})
	return tree.String()
}
