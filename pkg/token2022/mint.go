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
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go/programs/token"
)

// DecodeMint reads the base mint state. Token-2022 extensions after the first
// MintSize bytes are ignored.
func DecodeMint(data []byte) (*token.Mint, error) {
	if len(data) < MintSize {
		return nil, fmt.Errorf("mint data is %d bytes, want at least %d", len(data), MintSize)
	}
	mint := new(token.Mint)
	if err := bin.NewBinDecoder(data[:MintSize]).Decode(mint); err != nil {
		return nil, fmt.Errorf("decode mint: %w", err)
	}
	return mint, nil
}
