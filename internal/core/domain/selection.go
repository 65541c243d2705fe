package domain

// SelectionCriteria narrows server listing and selection.
type SelectionCriteria struct {
	// CountryCode is the two-letter country code, "" for any country.
	CountryCode string

	// City filters servers whose city name contains this substring
	// (case-insensitive). When no server matches, selection falls back
	// to the unfiltered list.
	City string

	// MaxLoad is the load threshold for accepting a recommended server.
	// Zero means DefaultMaxLoad.
	MaxLoad int

	// Limit caps how many servers to request. Zero means
	// DefaultServerLimit.
	Limit int

	// Protocol restricts listing to servers supporting this transport.
	// Empty means ProtocolUDP.
	Protocol Protocol
}

// Normalised returns a copy with zero values replaced by defaults.
func (c SelectionCriteria) Normalised() SelectionCriteria {
	if c.MaxLoad <= 0 {
		c.MaxLoad = DefaultMaxLoad
	}
	if c.Limit <= 0 {
		c.Limit = DefaultServerLimit
	}
	if !c.Protocol.IsValid() {
		c.Protocol = ProtocolUDP
	}
	return c
}

// ConnectRequest describes a connection target. Exactly one of Hostname or
// CountryCode drives selection; City refines a country pick.
type ConnectRequest struct {
	// Hostname targets a specific server ("de750" or "de750.nordvpn.com").
	Hostname string

	// CountryCode asks for the optimal server in a country.
	CountryCode string

	// City refines the country pick to a city substring.
	City string

	// Protocol is the transport for the profile. Empty means ProtocolUDP.
	Protocol Protocol
}

// HasTarget returns true when the request names a server or a country.
func (r ConnectRequest) HasTarget() bool {
	return r.Hostname != "" || r.CountryCode != ""
}
