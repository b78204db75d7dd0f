package secrets

import (
	"context"
	"os"
	"strings"
)

// EnvProvider reads secrets from the process environment.
type EnvProvider struct {
	lookup func(string) (string, bool)
}

func NewEnvProvider() *EnvProvider {
	return &EnvProvider{lookup: os.LookupEnv}
}

var _ Provider = (*EnvProvider)(nil)

func (p *EnvProvider) Get(_ context.Context, name string) (string, error) {
	v, ok := p.lookup(name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", ErrNotFound
	}
	return v, nil
}
