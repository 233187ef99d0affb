package wallet

import (
	"fmt"
	"math/big"
	"strings"
)

// ERC-20 function selectors.
const (
	selAllowance = "0xdd62ed3e" // allowance(address,address)
	selApprove   = "0x095ea7b3" // approve(address,uint256)
	selTransfer  = "0xa9059cbb" // transfer(address,uint256)
)

// maxUint256Hex grants an unlimited allowance.
const maxUint256Hex = "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"

// AllowanceData encodes allowance(owner, spender).
func AllowanceData(owner, spender string) string {
	return selAllowance + padAddress(owner) + padAddress(spender)
}

// ApproveData encodes approve(spender, maxUint256).
func ApproveData(spender string) string {
	return selApprove + padAddress(spender) + maxUint256Hex
}

// TransferData encodes transfer(recipient, amount).
func TransferData(recipient string, amount *big.Int) string {
	return selTransfer + padAddress(recipient) + padAmount(amount)
}

// ParseHexUint reads a 0x-prefixed integer as returned by eth_call.
func ParseHexUint(s string) (*big.Int, error) {
	t := strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if t == "" {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(t, 16)
	if !ok {
		return nil, fmt.Errorf("not a hex integer: %q", s)
	}
	return v, nil
}

// Arguments are zero-left-padded to 32 bytes (64 hex characters).

func padAddress(addr string) string {
	a := strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X")
	return pad64(strings.ToLower(a))
}

func padAmount(v *big.Int) string {
	return pad64(v.Text(16))
}

func pad64(s string) string {
	if len(s) >= 64 {
		return s
	}
	return strings.Repeat("0", 64-len(s)) + s
}
