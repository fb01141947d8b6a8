package sdk

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type AddressDomain string

const (
	AddressDomainUser     AddressDomain = "user"
	AddressDomainContract AddressDomain = "contract"
	AddressDomainSystem   AddressDomain = "system"
)

type AddressType string

const (
	AddressTypeEVM      AddressType = "evm"
	AddressTypeHive     AddressType = "hive"
	AddressTypeContract AddressType = "contract"
	AddressTypeSystem   AddressType = "system"
	AddressTypeUnknown  AddressType = "unknown"
)

const evmDIDPrefix = "did:pkh:eip155:1:"

type Address string

// ParseAddress trims the input and normalizes evm addresses to their checksummed 0x form, so
// 0xabc.. and did:pkh:eip155:1:0xABC.. end up as the same key.
// Example payload: sdk.ParseAddress("0x8c3de2...")
func ParseAddress(s string) Address {
	s = strings.TrimSpace(s)
	raw := strings.TrimPrefix(s, evmDIDPrefix)
	if common.IsHexAddress(raw) && strings.HasPrefix(strings.ToLower(raw), "0x") {
		return Address(common.HexToAddress(raw).Hex())
	}
	return Address(s)
}

// AddressFromCommon wraps an go-ethereum address, used after signature recovery.
func AddressFromCommon(a common.Address) Address {
	return Address(a.Hex())
}

// String returns the literal representation (like hive:alice) of the address.
// Example payload: sdk.Address("hive:foo").String()
func (a Address) String() string {
	return string(a)
}

// Domain quickly checks the prefix to guess if we deal with user/contract/system domain.
// Example payload: sdk.Address("contract:rewardpool").Domain()
func (a Address) Domain() AddressDomain {
	if strings.HasPrefix(a.String(), "system:") {
		return AddressDomainSystem
	}
	if strings.HasPrefix(a.String(), "contract:") {
		return AddressDomainContract
	}
	return AddressDomainUser
}

// Type inspects the prefix to categorize the address (evm, hive, contract,...).
// Example payload: sdk.Address("0x8c3De2...").Type()
func (a Address) Type() AddressType {
	s := a.String()
	switch {
	case strings.HasPrefix(s, "0x") && common.IsHexAddress(s):
		return AddressTypeEVM
	case strings.HasPrefix(s, "hive:") && len(s) > len("hive:"):
		return AddressTypeHive
	case strings.HasPrefix(s, "contract:") && len(s) > len("contract:"):
		return AddressTypeContract
	case strings.HasPrefix(s, "system:") && len(s) > len("system:"):
		return AddressTypeSystem
	default:
		return AddressTypeUnknown
	}
}

// IsValid returns false if the address type detection failed, used as a light sanity check.
// Example payload: sdk.Address("foo").IsValid()
func (a Address) IsValid() bool {
	return a.Type() != AddressTypeUnknown
}

// Common returns the 20 byte evm form. Only evm addresses can sign relayed votes.
func (a Address) Common() (common.Address, bool) {
	if a.Type() != AddressTypeEVM {
		return common.Address{}, false
	}
	return common.HexToAddress(a.String()), true
}
