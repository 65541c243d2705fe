package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for nordvpn resources.
	uriScheme = "nordvpn://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing countries.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "countries",
		Name:        "countries",
		Description: "Countries with NordVPN servers and their two-letter codes",
		MIMEType:    "application/json",
	}, s.handleCountriesResource)

	// Template for a country's recommended servers.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "servers/{countryCode}",
		Name:        "country-servers",
		Description: "Recommended NordVPN servers in a country, best first",
		MIMEType:    "application/json",
	}, s.handleServersResource)
}

// handleCountriesResource returns all countries with NordVPN servers.
func (s *Server) handleCountriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	countries, err := s.ports.Servers.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing countries: %w", err)
	}

	type countryInfo struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}

	infos := make([]countryInfo, len(countries))
	for i, country := range countries {
		infos[i] = countryInfo{Code: country.Code, Name: country.Name}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling countries: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleServersResource returns recommended servers for a country.
func (s *Server) handleServersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract the code from a URI like nordvpn://servers/{countryCode}.
	countryCode := extractCountryCode(req.Params.URI)
	if countryCode == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	servers, err := s.ports.Servers.Recommended(ctx, domain.SelectionCriteria{
		CountryCode: countryCode,
	})
	if err != nil {
		return nil, fmt.Errorf("listing servers: %w", err)
	}

	type serverInfo struct {
		Hostname string `json:"hostname"`
		City     string `json:"city,omitempty"`
		Load     int    `json:"load"`
		Status   string `json:"status"`
	}

	infos := make([]serverInfo, len(servers))
	for i := range servers {
		infos[i] = serverInfo{
			Hostname: servers[i].Hostname,
			City:     servers[i].CityName(),
			Load:     servers[i].Load,
			Status:   servers[i].Status,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling servers: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCountryCode extracts the country code from a URI like
// nordvpn://servers/{countryCode}.
func extractCountryCode(uri string) string {
	const prefix = uriScheme + "servers/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	code := strings.TrimPrefix(uri, prefix)
	if strings.ContainsRune(code, '/') {
		return ""
	}
	return code
}
