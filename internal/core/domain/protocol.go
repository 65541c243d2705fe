package domain

// Protocol identifies the OpenVPN transport used for a connection.
type Protocol string

// Available protocols.
const (
	// ProtocolUDP is OpenVPN over UDP (faster, the NordVPN default).
	ProtocolUDP Protocol = "openvpn_udp"

	// ProtocolTCP is OpenVPN over TCP (slower, traverses strict firewalls).
	ProtocolTCP Protocol = "openvpn_tcp"
)

// IsValid returns true if the protocol is recognised.
func (p Protocol) IsValid() bool {
	switch p {
	case ProtocolUDP, ProtocolTCP:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p Protocol) String() string {
	return string(p)
}

// Identifier returns the technology identifier used in API filters.
func (p Protocol) Identifier() string {
	return string(p)
}

// ConfigSuffix returns the short transport name used in profile and
// configuration names (e.g., "de750.nordvpn.com.udp").
func (p Protocol) ConfigSuffix() string {
	switch p {
	case ProtocolTCP:
		return "tcp"
	default:
		return "udp"
	}
}

// Description returns a human-readable description of the protocol.
func (p Protocol) Description() string {
	switch p {
	case ProtocolUDP:
		return "OpenVPN UDP (recommended)"
	case ProtocolTCP:
		return "OpenVPN TCP (firewall friendly)"
	default:
		return unknownDescription
	}
}

// AllProtocols returns all available protocols.
func AllProtocols() []Protocol {
	return []Protocol{ProtocolUDP, ProtocolTCP}
}

// ParseProtocol maps a user-supplied name ("udp", "tcp", or the full
// identifier) to a Protocol. Unrecognised input returns ProtocolUDP and false.
func ParseProtocol(s string) (Protocol, bool) {
	switch s {
	case "udp", string(ProtocolUDP):
		return ProtocolUDP, true
	case "tcp", string(ProtocolTCP):
		return ProtocolTCP, true
	default:
		return ProtocolUDP, false
	}
}
