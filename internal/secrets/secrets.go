// Package secrets resolves warehouse and signing credentials from the
// process environment or from Azure Key Vault.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gage_backend/internal/config"
)

// Canonical secret names. The vault provider derives its own names from these.
const (
	DatabricksHost     = "DATABRICKS_HOST"
	DatabricksHTTPPath = "DATABRICKS_HTTP_PATH"
	DatabricksToken    = "DATABRICKS_TOKEN"
	JWTSecret          = "JWT_SECRET"
)

// ErrNotFound is returned by providers when a secret does not exist or is empty.
var ErrNotFound = errors.New("secret not found")

// Provider looks up a single secret by its canonical name.
type Provider interface {
	Get(ctx context.Context, name string) (string, error)
}

// Credentials is everything the server needs from the secret store.
type Credentials struct {
	Host      string
	HTTPPath  string
	Token     string
	JWTSecret string
}

// NewProvider builds the provider selected by cfg.Provider.
func NewProvider(cfg config.SecretsConfig) (Provider, error) {
	switch cfg.Provider {
	case config.SecretsEnv, "":
		return NewEnvProvider(), nil
	case config.SecretsVault:
		return NewVaultProvider(cfg.VaultURL)
	default:
		return nil, fmt.Errorf("unknown secrets provider %q", cfg.Provider)
	}
}

// Resolve fetches the credentials needed for the given warehouse driver.
// The JWT secret is always required; Databricks connection secrets only
// when driver is databricks.
func Resolve(ctx context.Context, p Provider, driver string) (Credentials, error) {
	names := []string{JWTSecret}
	if driver == config.DriverDatabricks {
		names = append(names, DatabricksHost, DatabricksHTTPPath, DatabricksToken)
	}

	values := make(map[string]string, len(names))
	for _, name := range names {
		v, err := p.Get(ctx, name)
		if err != nil {
			return Credentials{}, fmt.Errorf("resolve secret %s: %w", name, err)
		}
		values[name] = v
	}

	return Credentials{
		Host:      normalizeHost(values[DatabricksHost]),
		HTTPPath:  values[DatabricksHTTPPath],
		Token:     values[DatabricksToken],
		JWTSecret: values[JWTSecret],
	}, nil
}

// normalizeHost accepts workspace URLs copied from the browser.
func normalizeHost(h string) string {
	h = strings.TrimSpace(h)
	h = strings.TrimPrefix(h, "https://")
	h = strings.TrimPrefix(h, "http://")
	return strings.TrimSuffix(h, "/")
}
