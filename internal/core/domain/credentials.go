package domain

import "strings"

// ManualSetupURL is where NordVPN account holders generate service
// credentials for manual OpenVPN configuration.
const ManualSetupURL = "https://my.nordaccount.com/dashboard/nordvpn/manual-configuration/"

// Credentials are NordVPN service credentials used inside OpenVPN profiles.
// They are generated in the NordVPN dashboard and are NOT the account
// email/password.
type Credentials struct {
	// Username is the service username (NORD_USER).
	Username string

	// Password is the service password (NORD_PASS).
	Password string
}

// Validate returns ErrNoCredentials when either field is empty.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" || strings.TrimSpace(c.Password) == "" {
		return ErrNoCredentials
	}
	return nil
}

// IsSet returns true when both fields are non-empty.
func (c Credentials) IsSet() bool {
	return c.Validate() == nil
}

// MaskedUsername returns the username with the middle elided, safe for
// display in status output.
func (c Credentials) MaskedUsername() string {
	return maskSecret(c.Username)
}

// maskSecret elides all but the first and last four characters.
func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
