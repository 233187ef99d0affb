package wallet

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	owner     = "0x1111111111111111111111111111111111111111"
	recipient = "0x82EdA563621E15EF35c780Fe1ea8861DF7558ca9"
)

func TestAllowanceData(t *testing.T) {
	got := AllowanceData(owner, recipient)
	want := "0xdd62ed3e" +
		"0000000000000000000000001111111111111111111111111111111111111111" +
		"00000000000000000000000082eda563621e15ef35c780fe1ea8861df7558ca9"
	assert.Equal(t, want, got)
	assert.Len(t, got, 2+8+64+64)
}

func TestApproveData(t *testing.T) {
	got := ApproveData(recipient)
	want := "0x095ea7b3" +
		"00000000000000000000000082eda563621e15ef35c780fe1ea8861df7558ca9" +
		"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	assert.Equal(t, want, got)
}

func TestTransferData(t *testing.T) {
	got := TransferData(recipient, big.NewInt(12345678))
	want := "0xa9059cbb" +
		"00000000000000000000000082eda563621e15ef35c780fe1ea8861df7558ca9" +
		"0000000000000000000000000000000000000000000000000000000000bc614e"
	assert.Equal(t, want, got)

	// Zero still encodes a full word.
	got = TransferData(recipient, big.NewInt(0))
	assert.Len(t, got, 2+8+64+64)
}

func TestParseHexUint(t *testing.T) {
	v, err := ParseHexUint("0xf4240")
	require.NoError(t, err)
	assert.Equal(t, "1000000", v.String())

	v, err = ParseHexUint("0x0")
	require.NoError(t, err)
	assert.Zero(t, v.Sign())

	// Empty results mean zero allowance.
	v, err = ParseHexUint("0x")
	require.NoError(t, err)
	assert.Zero(t, v.Sign())

	_, err = ParseHexUint("0xnothex")
	assert.Error(t, err)
}
