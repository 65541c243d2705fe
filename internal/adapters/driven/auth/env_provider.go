// Package auth provides NordVPN service credentials to the core.
//
// Credentials come from the NORD_USER and NORD_PASS environment
// variables. A .env file in the working directory, when present, seeds
// the environment first; variables already set in the process
// environment take precedence over the file.
package auth

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driven"
	"github.com/RobGruhl/nordvpn-cli/internal/logger"
)

// EnvFileName is the dotenv file read from the working directory.
const EnvFileName = ".env"

// Ensure EnvProvider implements the CredentialsProvider interface.
var _ driven.CredentialsProvider = (*EnvProvider)(nil)

// envCredentials is the environment shape read by go-envconfig.
type envCredentials struct {
	Username string `env:"NORD_USER"`
	Password string `env:"NORD_PASS"`
}

// EnvProvider reads service credentials from the environment, optionally
// seeded from a dotenv file.
type EnvProvider struct {
	envFile string
}

// NewEnvProvider creates a provider that reads EnvFileName from the
// working directory before consulting the environment.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{envFile: EnvFileName}
}

// NewEnvProviderWithFile creates a provider that seeds the environment
// from the given dotenv file.
func NewEnvProviderWithFile(envFile string) *EnvProvider {
	return &EnvProvider{envFile: envFile}
}

// Credentials returns the configured service credentials. Both values
// must be present; a wrapped ErrNoCredentials names the dashboard page
// where they are generated.
func (p *EnvProvider) Credentials(ctx context.Context) (domain.Credentials, error) {
	p.loadEnvFile()

	var env envCredentials
	if err := envconfig.Process(ctx, &env); err != nil {
		return domain.Credentials{}, fmt.Errorf("read environment: %w", err)
	}

	creds := domain.Credentials{Username: env.Username, Password: env.Password}
	if err := creds.Validate(); err != nil {
		return domain.Credentials{}, fmt.Errorf(
			"%w: set NORD_USER and NORD_PASS (generate them at %s)",
			err, domain.ManualSetupURL)
	}

	logger.Debug("loaded credentials for %s", creds.MaskedUsername())
	return creds, nil
}

// loadEnvFile seeds the process environment from the dotenv file when it
// exists. Existing variables are never overwritten.
func (p *EnvProvider) loadEnvFile() {
	if p.envFile == "" {
		return
	}
	if _, err := os.Stat(p.envFile); err != nil {
		return
	}
	if err := godotenv.Load(p.envFile); err != nil {
		logger.Warn("failed to load %s: %v", p.envFile, err)
	}
}
