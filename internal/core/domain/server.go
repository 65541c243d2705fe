package domain

import "strings"

// NordHostSuffix is the domain suffix shared by every NordVPN server.
// Bare names like "de750" are normalised to the full hostname before use.
const NordHostSuffix = ".nordvpn.com"

// Technology describes a VPN technology supported by a server.
type Technology struct {
	// ID is the NordVPN technology identifier.
	ID int `json:"id"`

	// Name is the human-readable technology name.
	Name string `json:"name"`

	// Identifier is the machine name used in API filters
	// (e.g., "openvpn_udp").
	Identifier string `json:"identifier"`
}

// City is a NordVPN city location.
type City struct {
	// ID is the NordVPN city identifier.
	ID int64 `json:"id"`

	// Name is the city name.
	Name string `json:"name"`

	// Latitude of the city.
	Latitude float64 `json:"latitude"`

	// Longitude of the city.
	Longitude float64 `json:"longitude"`

	// DNSName is the lowercase, hyphenated city name.
	DNSName string `json:"dns_name,omitempty"`

	// HubScore is NordVPN's internal ranking for the city hub.
	HubScore int `json:"hub_score,omitempty"`
}

// Country is a NordVPN country.
// City is populated only in server location contexts; Cities only by the
// country listing endpoint.
type Country struct {
	// ID is the NordVPN country identifier used in API filters.
	ID int `json:"id"`

	// Name is the country name.
	Name string `json:"name"`

	// Code is the two-letter country code (e.g., "DE").
	Code string `json:"code"`

	// City is the city within the country, when known.
	City *City `json:"city,omitempty"`

	// Cities lists the country's server cities, when known.
	Cities []City `json:"cities,omitempty"`
}

// CityNames returns the names of the country's server cities.
func (c *Country) CityNames() []string {
	names := make([]string, 0, len(c.Cities))
	for _, city := range c.Cities {
		names = append(names, city.Name)
	}
	return names
}

// Matches reports whether the given name identifies this country by
// two-letter code or full name. Matching is case-insensitive.
func (c *Country) Matches(name string) bool {
	name = strings.TrimSpace(name)
	return strings.EqualFold(c.Code, name) || strings.EqualFold(c.Name, name)
}

// ServerLocation is a physical location of a server.
type ServerLocation struct {
	// ID is the NordVPN location identifier.
	ID int `json:"id"`

	// Country holds the country (and city) for this location.
	Country Country `json:"country"`

	// Latitude of the location.
	Latitude float64 `json:"latitude"`

	// Longitude of the location.
	Longitude float64 `json:"longitude"`
}

// ServerIP is an IP address assigned to a server.
type ServerIP struct {
	// ID is the NordVPN address identifier.
	ID int `json:"id"`

	// IP is the address in dotted or colon notation.
	IP string `json:"ip"`

	// Version is the IP version (4 or 6).
	Version int `json:"version"`
}

// Server is a NordVPN server as reported by the public API.
type Server struct {
	// ID is the NordVPN server identifier.
	ID int `json:"id"`

	// Name is the display name (e.g., "Germany #750").
	Name string `json:"name"`

	// Station is the server's public IPv4 address.
	Station string `json:"station"`

	// Hostname is the fully qualified name (e.g., "de750.nordvpn.com").
	Hostname string `json:"hostname"`

	// Load is the current load percentage (0-100).
	Load int `json:"load"`

	// Status is the operational status (e.g., "online").
	Status string `json:"status"`

	// Locations lists the physical locations of the server.
	Locations []ServerLocation `json:"locations,omitempty"`

	// Technologies lists supported VPN technologies.
	Technologies []Technology `json:"technologies,omitempty"`

	// IPs lists the addresses assigned to the server.
	IPs []ServerIP `json:"ips,omitempty"`
}

// Country returns the server's first location country, or nil when the API
// response carried no locations.
func (s *Server) Country() *Country {
	if len(s.Locations) == 0 {
		return nil
	}
	return &s.Locations[0].Country
}

// CountryCode returns the upper-case country code, or "" when unknown.
func (s *Server) CountryCode() string {
	c := s.Country()
	if c == nil {
		return ""
	}
	return strings.ToUpper(c.Code)
}

// CityName returns the server's city name, or "" when unknown.
func (s *Server) CityName() string {
	c := s.Country()
	if c == nil || c.City == nil {
		return ""
	}
	return c.City.Name
}

// SupportsProtocol reports whether the server lists the protocol's
// technology identifier.
func (s *Server) SupportsProtocol(p Protocol) bool {
	for _, t := range s.Technologies {
		if t.Identifier == p.Identifier() {
			return true
		}
	}
	return false
}

// NormalizeHostname appends the NordVPN domain suffix to bare server names.
// Already-qualified hostnames are returned lowercased but otherwise unchanged.
func NormalizeHostname(hostname string) string {
	hostname = strings.ToLower(strings.TrimSpace(hostname))
	if hostname == "" {
		return ""
	}
	if strings.HasSuffix(hostname, NordHostSuffix) {
		return hostname
	}
	return hostname + NordHostSuffix
}

// ShortHostname strips the NordVPN domain suffix (e.g., "de750.nordvpn.com"
// becomes "de750").
func ShortHostname(hostname string) string {
	return strings.TrimSuffix(strings.ToLower(hostname), NordHostSuffix)
}
