// Copyright 2025 github.com/dwnfan
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token2022

import (
	"errors"
	"fmt"

	"solana-lifecycle/internal/pda"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	format "github.com/gagliardetto/solana-go/text/format"
	treeout "github.com/gagliardetto/treeout"
)

// AssociatedProgramName is the name of the Associated Token Account program.
const AssociatedProgramName = "Associated Token Account Program"

// instructionCreateIdempotent succeeds when the account already exists.
const instructionCreateIdempotent uint8 = 1

// FindAssociatedTokenAddress returns the Token-2022 associated token account of wallet.
func FindAssociatedTokenAddress(wallet, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return pda.FindAssociatedTokenAddress(wallet, mint, ProgramID)
}

type CreateAssociatedAccount struct {
	Payer  solana.PublicKey `bin:"-" borsh_skip:"true"`
	Wallet solana.PublicKey `bin:"-" borsh_skip:"true"`
	Mint   solana.PublicKey `bin:"-" borsh_skip:"true"`

	// [0] = [WRITE, SIGNER] Payer
	// ··········· Funding account
	//
	// [1] = [WRITE] AssociatedTokenAccount
	// ··········· Associated token account address to be created
	//
	// [2] = [] Wallet
	// ··········· Wallet address for the new associated token account
	//
	// [3] = [] TokenMint
	// ··········· The token mint for the new associated token account
	//
	// [4] = [] SystemProgram
	// ··········· System program ID
	//
	// [5] = [] TokenProgram
	// ··········· Token-2022 program ID
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

// NewCreateAssociatedAccountInstructionBuilder creates a new `CreateAssociatedAccount` instruction builder.
func NewCreateAssociatedAccountInstructionBuilder() *CreateAssociatedAccount {
	return &CreateAssociatedAccount{}
}

func (inst *CreateAssociatedAccount) SetPayer(payer solana.PublicKey) *CreateAssociatedAccount {
	inst.Payer = payer
	return inst
}

func (inst *CreateAssociatedAccount) SetWallet(wallet solana.PublicKey) *CreateAssociatedAccount {
	inst.Wallet = wallet
	return inst
}

func (inst *CreateAssociatedAccount) SetMint(mint solana.PublicKey) *CreateAssociatedAccount {
	inst.Mint = mint
	return inst
}

func (inst CreateAssociatedAccount) Build() *Instruction {
	associatedTokenAddress, _, _ := FindAssociatedTokenAddress(inst.Wallet, inst.Mint)

	inst.AccountMetaSlice = solana.AccountMetaSlice{
		solana.Meta(inst.Payer).WRITE().SIGNER(),
		solana.Meta(associatedTokenAddress).WRITE(),
		solana.Meta(inst.Wallet),
		solana.Meta(inst.Mint),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(ProgramID),
	}
	return wrap(&inst)
}

// ValidateAndBuild validates the instruction accounts.
// If there is a validation error, return the error.
// Otherwise, build and return the instruction.
func (inst CreateAssociatedAccount) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *CreateAssociatedAccount) Validate() error {
	if inst.Payer.IsZero() {
		return errors.New("Payer not set")
	}
	if inst.Wallet.IsZero() {
		return errors.New("Wallet not set")
	}
	if inst.Mint.IsZero() {
		return errors.New("Mint not set")
	}
	if _, _, err := FindAssociatedTokenAddress(inst.Wallet, inst.Mint); err != nil {
		return fmt.Errorf("error while FindAssociatedTokenAddress: %w", err)
	}
	return nil
}

func (inst *CreateAssociatedAccount) ProgramID() solana.PublicKey {
	return solana.SPLAssociatedTokenAccountProgramID
}

func (inst *CreateAssociatedAccount) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *CreateAssociatedAccount) EncodeToTree(parent treeout.Branches) {
	parent.Child(format.Program(AssociatedProgramName, solana.SPLAssociatedTokenAccountProgramID)).
		//
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction("CreateIdempotent")).
				//
				ParentFunc(func(instructionBranch treeout.Branches) {

					// Parameters of the instruction:
					instructionBranch.Child("Params[len=0]").ParentFunc(func(paramsBranch treeout.Branches) {})

					// Accounts of the instruction:
					instructionBranch.Child("Accounts[len=6]").ParentFunc(func(accountsBranch treeout.Branches) {
						accountsBranch.Child(format.Meta("                 payer", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(format.Meta("associatedTokenAddress", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(format.Meta("                wallet", inst.AccountMetaSlice.Get(2)))
						accountsBranch.Child(format.Meta("             tokenMint", inst.AccountMetaSlice.Get(3)))
						accountsBranch.Child(format.Meta("         systemProgram", inst.AccountMetaSlice.Get(4)))
						accountsBranch.Child(format.Meta("      token2022Program", inst.AccountMetaSlice.Get(5)))
					})
				})
		})
}

func (inst CreateAssociatedAccount) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteUint8(instructionCreateIdempotent)
}

func (inst *CreateAssociatedAccount) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	_, err := decoder.ReadUint8()
	return err
}

// NewCreateAssociatedAccountInstruction creates wallet's Token-2022 account for mint,
// paid for by payer.
func NewCreateAssociatedAccountInstruction(
	payer solana.PublicKey,
	walletAddress solana.PublicKey,
	mint solana.PublicKey,
) *CreateAssociatedAccount {
	return NewCreateAssociatedAccountInstructionBuilder().
		SetPayer(payer).
		SetWallet(walletAddress).
		SetMint(mint)
}
