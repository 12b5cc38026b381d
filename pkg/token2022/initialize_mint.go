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

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	format "github.com/gagliardetto/solana-go/text/format"
	treeout "github.com/gagliardetto/treeout"
)

// ProgramName is the name of the Token-2022 program.
const ProgramName = "Token-2022 Program"

// ProgramID is the ID of the Token-2022 program.
var ProgramID = solana.Token2022ProgramID

const (
	instructionInitializeMint uint8 = 0

	// MintSize is the length of a base mint account without extensions.
	MintSize = 82
)

type InitializeMint struct {
	Decimals        uint8
	MintAuthority   solana.PublicKey
	FreezeAuthority *solana.PublicKey

	// [0] = [WRITE] Mint
	// ··········· The mint to initialize
	//
	// [1] = [] SysVarRent
	// ··········· Rent sysvar
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

// NewInitializeMintInstructionBuilder creates a new `InitializeMint` instruction builder.
func NewInitializeMintInstructionBuilder() *InitializeMint {
	return &InitializeMint{
		AccountMetaSlice: make(solana.AccountMetaSlice, 2),
	}
}

func (inst *InitializeMint) SetDecimals(decimals uint8) *InitializeMint {
	inst.Decimals = decimals
	return inst
}

func (inst *InitializeMint) SetMintAuthority(authority solana.PublicKey) *InitializeMint {
	inst.MintAuthority = authority
	return inst
}

func (inst *InitializeMint) SetFreezeAuthority(authority solana.PublicKey) *InitializeMint {
	inst.FreezeAuthority = &authority
	return inst
}

func (inst *InitializeMint) SetMintAccount(mint solana.PublicKey) *InitializeMint {
	inst.AccountMetaSlice[0] = solana.Meta(mint).WRITE()
	inst.AccountMetaSlice[1] = solana.Meta(solana.SysVarRentPubkey)
	return inst
}

func (inst *InitializeMint) GetMintAccount() *solana.AccountMeta {
	return inst.AccountMetaSlice.Get(0)
}

func (inst InitializeMint) Build() *Instruction {
	return wrap(&inst)
}

// ValidateAndBuild validates the instruction accounts.
// If there is a validation error, return the error.
// Otherwise, build and return the instruction.
func (inst InitializeMint) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *InitializeMint) Validate() error {
	if inst.MintAuthority.IsZero() {
		return errors.New("MintAuthority not set")
	}
	if inst.GetMintAccount() == nil {
		return errors.New("Mint account not set")
	}
	if inst.FreezeAuthority != nil && inst.FreezeAuthority.IsZero() {
		return fmt.Errorf("FreezeAuthority set to the zero address")
	}
	return nil
}

func (inst *InitializeMint) ProgramID() solana.PublicKey {
	return ProgramID
}

func (inst *InitializeMint) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *InitializeMint) EncodeToTree(parent treeout.Branches) {
	parent.Child(format.Program(ProgramName, ProgramID)).
		//
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction("InitializeMint")).
				//
				ParentFunc(func(instructionBranch treeout.Branches) {

					// Parameters of the instruction:
					instructionBranch.Child("Params[len=3]").ParentFunc(func(paramsBranch treeout.Branches) {
						paramsBranch.Child(format.Param("       Decimals", inst.Decimals))
						paramsBranch.Child(format.Param("  MintAuthority", inst.MintAuthority))
						paramsBranch.Child(format.Param("FreezeAuthority (OPT)", inst.FreezeAuthority))
					})

					// Accounts of the instruction:
					instructionBranch.Child("Accounts[len=2]").ParentFunc(func(accountsBranch treeout.Branches) {
						accountsBranch.Child(format.Meta("      mint", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(format.Meta("sysVarRent", inst.AccountMetaSlice.Get(1)))
					})
				})
		})
}

// MarshalWithEncoder writes the instruction tag followed by the packed arguments.
// The freeze authority is a one byte option flag, followed by the key only when set.
func (inst InitializeMint) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(instructionInitializeMint); err != nil {
		return err
	}
	if err := encoder.WriteUint8(inst.Decimals); err != nil {
		return err
	}
	if err := encoder.WriteBytes(inst.MintAuthority[:], false); err != nil {
		return err
	}
	if inst.FreezeAuthority == nil {
		return encoder.WriteUint8(0)
	}
	if err := encoder.WriteUint8(1); err != nil {
		return err
	}
	return encoder.WriteBytes(inst.FreezeAuthority[:], false)
}

func (inst *InitializeMint) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	tag, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	if tag != instructionInitializeMint {
		return fmt.Errorf("unexpected instruction tag %d", tag)
	}
	if inst.Decimals, err = decoder.ReadUint8(); err != nil {
		return err
	}
	raw, err := decoder.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	inst.MintAuthority = solana.PublicKeyFromBytes(raw)
	flag, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	if flag == 0 {
		inst.FreezeAuthority = nil
		return nil
	}
	raw, err = decoder.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	freeze := solana.PublicKeyFromBytes(raw)
	inst.FreezeAuthority = &freeze
	return nil
}

// NewInitializeMintInstruction initializes mint with the given authorities.
// freezeAuthority may be nil.
func NewInitializeMintInstruction(
	decimals uint8,
	mintAuthority solana.PublicKey,
	freezeAuthority *solana.PublicKey,
	mint solana.PublicKey,
) *InitializeMint {
	b := NewInitializeMintInstructionBuilder().
		SetDecimals(decimals).
		SetMintAuthority(mintAuthority).
		SetMintAccount(mint)
	if freezeAuthority != nil {
		b.SetFreezeAuthority(*freezeAuthority)
	}
	return b
}
