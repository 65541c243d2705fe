package domain

// GeoLocation is the geolocated position of a public IP address.
type GeoLocation struct {
	// IP is the address that was looked up.
	IP string `json:"ip"`

	// City is the geolocated city, "" when the lookup had none.
	City string `json:"city,omitempty"`

	// Country is the geolocated country code, "" when unknown.
	Country string `json:"country,omitempty"`
}
