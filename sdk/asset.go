package sdk

// Asset is the ticker of a fungible token, e.g. THX.
type Asset string

const AssetTHX Asset = "THX"

// String returns the raw ticker string for logging.
// Example payload: sdk.AssetTHX.String()
func (a Asset) String() string {
	return string(a)
}

// IsValid accepts short upper case tickers only.
func (a Asset) IsValid() bool {
	if len(a) == 0 || len(a) > 12 {
		return false
	}
	for _, r := range a {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
