package registry

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	dto "wallet-wrapped/internal/adapter/storage/registry/dto"
	"wallet-wrapped/internal/config"
	"wallet-wrapped/internal/domain"
	"wallet-wrapped/internal/domain/entity"
	domainRepo "wallet-wrapped/internal/domain/repository"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed chains.yaml
var defaultRegistry []byte

// Compile-time check
var _ domainRepo.ChainRepository = (*Repository)(nil)

// Repository implements ChainRepository over a YAML registry, either a file on disk or the
// built-in default.
type Repository struct {
	path   string
	logger *zap.Logger
}

// NewRepository creates a registry repository. An empty cfg.Path selects the built-in registry.
func NewRepository(cfg config.RegistryConfig, logger *zap.Logger) *Repository {
	return &Repository{
		path:   cfg.Path,
		logger: logger.Named("RegistryStorage"),
	}
}

// GetAllChains reads and parses the registry on every call; callers cache the result.
func (r *Repository) GetAllChains(_ context.Context) ([]entity.Chain, error) {
	data := defaultRegistry
	source := "built-in"
	if r.path != "" {
		fileData, err := os.ReadFile(r.path)
		if err != nil {
			r.logger.Error("Failed to read registry file", zap.String("path", r.path), zap.Error(err))
			return nil, fmt.Errorf("%w: read %s: %v", domain.ErrRegistryUnavailable, r.path, err)
		}
		data = fileData
		source = r.path
	}

	var raw dto.RegistryRaw
	if err := yaml.Unmarshal(data, &raw); err != nil {
		r.logger.Error("Failed to parse registry", zap.String("source", source), zap.Error(err))
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrRegistryUnavailable, source, err)
	}

	chains := toDomainChains(raw.Chains, r.logger)
	r.logger.Info("Loaded chain registry",
		zap.String("source", source),
		zap.Int("entries", len(raw.Chains)),
		zap.Int("chains", len(chains)),
	)
	return chains, nil
}
