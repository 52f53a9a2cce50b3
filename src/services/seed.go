package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reelclub/leads-backend/src/logging"
	"github.com/reelclub/leads-backend/src/models"
	"github.com/reelclub/leads-backend/src/repositories"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// SeedAccount is one account definition from the seed file
type SeedAccount struct {
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	Role           string `yaml:"role"`
	CanViewReviews bool   `yaml:"canViewReviews"`
}

// seedFile is the top-level structure of the yaml seed file
type seedFile struct {
	Accounts []SeedAccount `yaml:"accounts"`
}

// SeedService creates initial accounts from a yaml file on startup.
// Existing usernames are skipped; passwords are never overwritten.
type SeedService struct {
	repo   repositories.AccountRepository
	logger zerolog.Logger
}

// NewSeedService creates a seed service backed by the database pool
func NewSeedService(pool *pgxpool.Pool) *SeedService {
	return &SeedService{
		repo:   repositories.NewAccountRepository(pool),
		logger: logging.NewLogger("seed"),
	}
}

// NewSeedServiceWithRepo creates a seed service with an explicit repository (for testing)
func NewSeedServiceWithRepo(repo repositories.AccountRepository) *SeedService {
	return &SeedService{repo: repo, logger: logging.NewLogger("seed")}
}

// ApplyFile reads the seed file and creates any missing accounts.
// Returns the number of accounts created.
func (s *SeedService) ApplyFile(ctx context.Context, path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return s.Apply(ctx, file.Accounts)
}

// Apply creates any accounts from the list that do not already exist
func (s *SeedService) Apply(ctx context.Context, accounts []SeedAccount) (int, error) {
	created := 0
	for _, seed := range accounts {
		if seed.Username == "" || seed.Password == "" {
			return created, fmt.Errorf("%w: seed accounts need username and password", ErrValidation)
		}

		role := models.Role(seed.Role)
		if seed.Role == "" {
			role = models.RoleLead
		}
		if !models.ValidRole(role) {
			return created, fmt.Errorf("%w: unknown role %q for %q", ErrValidation, seed.Role, seed.Username)
		}

		_, err := s.repo.GetByUsername(ctx, seed.Username)
		if err == nil {
			continue // already present, never touch it
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return created, fmt.Errorf("failed to check seed account %q: %w", seed.Username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, fmt.Errorf("failed to hash seed password: %w", err)
		}

		account := &models.Account{
			Username:       seed.Username,
			PasswordHash:   string(hash),
			Role:           role,
			CanViewReviews: seed.CanViewReviews,
		}
		if err := s.repo.Create(ctx, account); err != nil {
			// Another instance may have raced us on the same seed file
			if repositories.IsUniqueViolation(err) {
				continue
			}
			return created, fmt.Errorf("failed to create seed account %q: %w", seed.Username, err)
		}

		s.logger.Info().Str("username", seed.Username).Str("role", string(role)).Msg("seed account created")
		created++
	}
	return created, nil
}
