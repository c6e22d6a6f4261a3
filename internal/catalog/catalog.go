package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/recommendation-service/internal/domain"
	"github.com/spec-kit/recommendation-service/internal/repository"
)

// Catalog is the seed data loaded by the seed command.
type Catalog struct {
	RequestTypes []string   `yaml:"request_types"`
	Users        []SeedUser `yaml:"users"`
}

// SeedUser describes a user to upsert by email.
type SeedUser struct {
	Email      string `yaml:"email"`
	FullName   string `yaml:"full_name"`
	GivenName  string `yaml:"given_name"`
	FamilyName string `yaml:"family_name"`
	Professor  bool   `yaml:"professor"`
	Admin      bool   `yaml:"admin"`
}

// Result counts what Apply touched.
type Result struct {
	RequestTypes int
	Users        int
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a YAML catalog. Unknown keys are rejected.
func Parse(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := map[string]bool{}
	for i, name := range c.RequestTypes {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("request_types[%d]: empty name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("request_types[%d]: duplicate %q", i, name)
		}
		seen[name] = true
		c.RequestTypes[i] = name
	}
	for i, u := range c.Users {
		if strings.TrimSpace(u.Email) == "" {
			return nil, fmt.Errorf("users[%d]: email is required", i)
		}
	}
	return &c, nil
}

// Apply writes the catalog. Existing request types are left alone and users are
// upserted, so running it twice is harmless.
func (c *Catalog) Apply(ctx context.Context, types repository.RequestTypeRepository, users repository.UserRepository, logger *zap.Logger) (Result, error) {
	var res Result
	for _, name := range c.RequestTypes {
		rt, err := types.CreateIfAbsent(ctx, name)
		if err != nil {
			return res, fmt.Errorf("seed request type %q: %w", name, err)
		}
		logger.Debug("request type seeded", zap.Int64("id", rt.ID), zap.String("name", rt.Name))
		res.RequestTypes++
	}
	for _, su := range c.Users {
		user := &domain.User{
			Email:         strings.TrimSpace(su.Email),
			FullName:      su.FullName,
			GivenName:     su.GivenName,
			FamilyName:    su.FamilyName,
			EmailVerified: true,
			Professor:     su.Professor,
			Admin:         su.Admin,
		}
		if err := users.Upsert(ctx, user); err != nil {
			return res, fmt.Errorf("seed user %s: %w", user.Email, err)
		}
		logger.Debug("user seeded", zap.Int64("id", user.ID), zap.String("email", user.Email))
		res.Users++
	}
	return res, nil
}
