package contract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// TokenDecimals is the scale human amounts use, 1 THX == 1e18 base units.
const TokenDecimals int32 = 18

// ParseAmount turns a human amount like "50" or "0.25" into base units at the given scale.
// Fractions finer than the scale are rejected, not rounded.
// Example payload: ParseAmount("50", 18)
func ParseAmount(val string, decimals int32) (*Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(val))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", val, err)
	}
	if d.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount %q: negative", val)
	}
	scaled := d.Shift(decimals)
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("invalid amount %q: more than %d decimals", val, decimals)
	}
	v, overflow := uint256.FromBig(scaled.BigInt())
	if overflow {
		return nil, fmt.Errorf("invalid amount %q: too large", val)
	}
	return v, nil
}

// FormatAmount renders base units back as a human amount, trailing zeros trimmed.
// Example payload: FormatAmount(uint256.NewInt(5e17), 18) == "0.5"
func FormatAmount(v *Amount, decimals int32) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v.ToBig(), -decimals).String()
}

// ParseUintField reads ids and durations.
func ParseUintField(val string, field string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(val), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", field, val)
	}
	return n, nil
}

// ParseBoolField accepts the spellings people actually type for a yes/no vote.
func ParseBoolField(val string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "y", "agree":
		return true, nil
	case "0", "false", "no", "n", "disagree":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", val)
	}
}

// ParseSignature decodes a hex signature with or without 0x prefix.
func ParseSignature(val string) ([]byte, error) {
	val = strings.TrimSpace(val)
	trimmed := strings.TrimPrefix(strings.TrimPrefix(val, "0x"), "0X")
	if len(trimmed) != 130 {
		return nil, fmt.Errorf("signature must be 65 bytes of hex, got %d chars", len(trimmed))
	}
	for _, r := range trimmed {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return nil, fmt.Errorf("signature is not hex")
		}
	}
	return common.FromHex(trimmed), nil
}
