package repository

import (
	"context"
	"strings"

	"github.com/spec-kit/recommendation-service/internal/domain"
)

// UserRepository defines persistence access for identities.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListProfessors(ctx context.Context) ([]domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}

var userColumnNames = []string{
	"id", "email", "google_sub", "picture_url", "full_name", "given_name", "family_name",
	"email_verified", "locale", "hosted_domain", "admin", "professor", "created_at", "updated_at",
}

var userColumns = userColumnList("")

type userRepository struct {
	db DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepository) ListProfessors(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE professor = TRUE ORDER BY full_name, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

// Upsert inserts the user or refreshes profile and role flags of an existing email.
func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (email, google_sub, picture_url, full_name, given_name, family_name,
                           email_verified, locale, hosted_domain, admin, professor)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        ON CONFLICT (email) DO UPDATE SET
            google_sub=EXCLUDED.google_sub, picture_url=EXCLUDED.picture_url,
            full_name=EXCLUDED.full_name, given_name=EXCLUDED.given_name,
            family_name=EXCLUDED.family_name, email_verified=EXCLUDED.email_verified,
            locale=EXCLUDED.locale, hosted_domain=EXCLUDED.hosted_domain,
            admin=EXCLUDED.admin, professor=EXCLUDED.professor, updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		user.Email,
		user.GoogleSub,
		user.PictureURL,
		user.FullName,
		user.GivenName,
		user.FamilyName,
		user.EmailVerified,
		user.Locale,
		user.HostedDomain,
		user.Admin,
		user.Professor,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(userScanTargets(&user)...); err != nil {
		return nil, err
	}
	return &user, nil
}

// userColumnList renders the user columns, qualified by alias when given.
func userColumnList(alias string) string {
	cols := make([]string, len(userColumnNames))
	for i, name := range userColumnNames {
		if alias != "" {
			name = alias + "." + name
		}
		cols[i] = name
	}
	return strings.Join(cols, ", ")
}

// userScanTargets must stay in the order of userColumnNames.
func userScanTargets(user *domain.User) []any {
	return []any{
		&user.ID,
		&user.Email,
		&user.GoogleSub,
		&user.PictureURL,
		&user.FullName,
		&user.GivenName,
		&user.FamilyName,
		&user.EmailVerified,
		&user.Locale,
		&user.HostedDomain,
		&user.Admin,
		&user.Professor,
		&user.CreatedAt,
		&user.UpdatedAt,
	}
}
