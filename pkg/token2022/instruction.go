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
	"bytes"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	treeout "github.com/gagliardetto/treeout"
)

// InstructionImpl is the interface that all instructions implement.
type InstructionImpl interface {
	bin.EncoderDecoder
	Validate() error
	ProgramID() solana.PublicKey
	GetAccounts() []*solana.AccountMeta
	EncodeToTree(parent treeout.Branches)
}

// Instruction wraps one of the builders in this package as a solana.Instruction.
type Instruction struct {
	bin.BaseVariant
}

func (inst *Instruction) impl() InstructionImpl {
	return inst.Impl.(InstructionImpl)
}

func (inst *Instruction) ProgramID() solana.PublicKey {
	return inst.impl().ProgramID()
}

func (inst *Instruction) Accounts() []*solana.AccountMeta {
	return inst.impl().GetAccounts()
}

// Data serializes the instruction data.
func (inst *Instruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBinEncoder(buf).Encode(inst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (inst *Instruction) EncodeToTree(parent treeout.Branches) {
	inst.impl().EncodeToTree(parent)
}

// Describe renders the instruction as a tree.
func (inst *Instruction) Describe() string {
	tree := treeout.New("")
	inst.EncodeToTree(tree)
	return tree.String()
}

func (inst *Instruction) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.Encode(inst.Impl)
}

func (inst *Instruction) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	return decoder.Decode(inst.Impl)
}

func wrap(impl InstructionImpl) *Instruction {
	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   impl,
		TypeID: bin.NoTypeIDDefaultID,
	}}
}

var _ solana.Instruction = (*Instruction)(nil)
var _ bin.EncoderDecoder = (*Instruction)(nil)
