package secrets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// secretGetter is the subset of *azsecrets.Client used here.
type secretGetter interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// VaultProvider reads the latest version of each secret from Azure Key Vault.
type VaultProvider struct {
	client secretGetter
}

var _ Provider = (*VaultProvider)(nil)

// NewVaultProvider authenticates with the default Azure credential chain
// (env vars, workload identity, managed identity, az CLI).
func NewVaultProvider(vaultURL string) (*VaultProvider, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}
	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("key vault client for %q: %w", vaultURL, err)
	}
	return &VaultProvider{client: client}, nil
}

// Get fetches name after mapping it to Key Vault naming rules.
func (p *VaultProvider) Get(ctx context.Context, name string) (string, error) {
	vaultName := VaultName(name)
	resp, err := p.client.GetSecret(ctx, vaultName, "", nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get %q from key vault: %w", vaultName, err)
	}
	if resp.Value == nil || strings.TrimSpace(*resp.Value) == "" {
		return "", ErrNotFound
	}
	return *resp.Value, nil
}

// VaultName converts DATABRICKS_HTTP_PATH into databricks-http-path;
// Key Vault names allow only alphanumerics and dashes.
func VaultName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}
