package types

// Waiver accepts EOL findings for matching dependencies until Expires
// (an ISO date, empty means no expiry).
type Waiver struct {
	Match   string `json:"match" yaml:"match" mapstructure:"match"`
	Reason  string `json:"reason" yaml:"reason" mapstructure:"reason"`
	Owner   string `json:"owner,omitempty" yaml:"owner,omitempty" mapstructure:"owner"`
	Expires string `json:"expires,omitempty" yaml:"expires,omitempty" mapstructure:"expires"`
}
