package pda

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var optionSeedAddress = solana.MustPublicKeyFromBase58("DC7R43exz5Uhgi6dxFzNG64YUWooVB7PWnzvbAuLd561")

func TestFindAddress_HelloWorldFixture(t *testing.T) {
	seeds := [][]byte{[]byte("helloWorld")}

	addr, bump, err := FindAddress(seeds, solana.SystemProgramID)
	require.NoError(t, err)
	assert.Equal(t, "46GZzzetjCURsdFPb7rcnspbEMnCBXe9kpjrsZAkKb6X", addr.String())
	assert.Equal(t, uint8(254), bump)

	again, againBump, err := FindAddress(seeds, solana.SystemProgramID)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, bump, againBump)
}

func TestFindAddress_MatchesSDK(t *testing.T) {
	cases := map[string][][]byte{
		"address seed":   {optionSeedAddress[:]},
		"multiple seeds": {[]byte("this sis a seed"), optionSeedAddress[:]},
		"empty seed":     {{}},
		"no seeds":       {},
		"max length":     {bytes.Repeat([]byte{7}, MaxSeedLength)},
	}
	for name, seeds := range cases {
		t.Run(name, func(t *testing.T) {
			addr, bump, err := FindAddress(seeds, solana.TokenProgramID)
			require.NoError(t, err)

			want, wantBump, err := solana.FindProgramAddress(seeds, solana.TokenProgramID)
			require.NoError(t, err)
			assert.Equal(t, want, addr)
			assert.Equal(t, wantBump, bump)
			assert.False(t, IsOnCurve(addr[:]))
		})
	}
}

func TestFindAddress_Fixtures(t *testing.T) {
	addr, bump, err := FindAddress([][]byte{optionSeedAddress[:]}, solana.SystemProgramID)
	require.NoError(t, err)
	assert.Equal(t, "8vUT2MU4qp6rba4qYF2Tzx79WTXc1M2m8nSykF112zsh", addr.String())
	assert.Equal(t, uint8(255), bump)

	addr, bump, err = FindAddress([][]byte{[]byte("this sis a seed"), optionSeedAddress[:]}, solana.SystemProgramID)
	require.NoError(t, err)
	assert.Equal(t, "Ea32AgM489ErqAmPYqRePoDTiFwC9ETmFjiRMvgkJGxe", addr.String())
	assert.Equal(t, uint8(255), bump)
}

func TestCreateAddress_OnCurve(t *testing.T) {
	// bump 255 of helloWorld lands on the curve, which is why 254 is found
	_, err := CreateAddress([][]byte{[]byte("helloWorld"), {255}}, solana.SystemProgramID)
	assert.ErrorIs(t, err, ErrInvalidSeeds)
}

func TestCreateAddress_UsesBump(t *testing.T) {
	seeds := [][]byte{[]byte("helloWorld")}
	addr, bump, err := FindAddress(seeds, solana.SystemProgramID)
	require.NoError(t, err)

	created, err := CreateAddress(append(seeds, []byte{bump}), solana.SystemProgramID)
	require.NoError(t, err)
	assert.Equal(t, addr, created)
}

func TestFindAddress_InvalidSeeds(t *testing.T) {
	_, _, err := FindAddress([][]byte{bytes.Repeat([]byte{1}, MaxSeedLength+1)}, solana.SystemProgramID)
	assert.ErrorIs(t, err, ErrInvalidSeeds)

	tooMany := make([][]byte, MaxSeeds)
	_, _, err = FindAddress(tooMany, solana.SystemProgramID)
	assert.ErrorIs(t, err, ErrInvalidSeeds)

	_, err = CreateAddress(make([][]byte, MaxSeeds+1), solana.SystemProgramID)
	assert.ErrorIs(t, err, ErrInvalidSeeds)
}

func TestIsOnCurve(t *testing.T) {
	wallet := solana.NewWallet()
	assert.True(t, IsOnCurve(wallet.PublicKey().Bytes()))
	assert.False(t, IsOnCurve([]byte{1, 2, 3}))
}

func TestFindAssociatedTokenAddress(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	got, _, err := FindAssociatedTokenAddress(wallet, mint, solana.TokenProgramID)
	require.NoError(t, err)
	want, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseSeed(t *testing.T) {
	b, err := ParseSeed("helloWorld")
	require.NoError(t, err)
	assert.Equal(t, []byte("helloWorld"), b)

	b, err = ParseSeed("str:a:b")
	require.NoError(t, err)
	assert.Equal(t, []byte("a:b"), b)

	b, err = ParseSeed("pubkey:" + optionSeedAddress.String())
	require.NoError(t, err)
	assert.Equal(t, optionSeedAddress.Bytes(), b)

	b, err = ParseSeed("hex:0aff")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0xff}, b)

	b, err = ParseSeed("b58:2g")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x61}, b)

	_, err = ParseSeed("pubkey:not-an-address")
	assert.Error(t, err)

	seeds, err := ParseSeeds([]string{"this sis a seed", "pubkey:" + optionSeedAddress.String()})
	require.NoError(t, err)
	assert.Len(t, seeds, 2)
}
