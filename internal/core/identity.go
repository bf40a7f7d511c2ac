package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// User is an account owner. The engine only ever sees the numeric ID as an
// opaque owner identifier; the profile fields feed InvoiceDefaults.
type User struct {
	ID             int
	Username       string
	Email          string
	PasswordHash   string
	CompanyName    string
	CompanyEmail   string
	CompanyPhone   string
	CompanyAddress string
	LogoURL        string
	IsActive       bool
	CreatedAt      time.Time
}

// InvoiceDefaults returns the issuer profile defaults for new drafts.
// They are defaults only — a user override on the draft wins.
func (u *User) InvoiceDefaults() InvoiceDefaults {
	return InvoiceDefaults{
		CompanyName:    u.CompanyName,
		CompanyEmail:   u.CompanyEmail,
		CompanyPhone:   u.CompanyPhone,
		CompanyAddress: u.CompanyAddress,
		LogoURL:        u.LogoURL,
	}
}

// IdentityService is the identity collaborator: credential verification and
// owner profile lookup.
type IdentityService interface {
	// Authenticate verifies a username/password pair against the stored hash.
	// Returns ErrInvalidCredentials on any mismatch or unknown user.
	Authenticate(ctx context.Context, username, password string) (*User, error)

	// GetByID returns a user by primary key, or ErrNotFound.
	GetByID(ctx context.Context, userID int) (*User, error)
}

type identityService struct {
	pool *pgxpool.Pool
}

// NewIdentityService constructs an IdentityService backed by PostgreSQL.
func NewIdentityService(pool *pgxpool.Pool) IdentityService {
	return &identityService{pool: pool}
}

const userColumns = `
	id, username, email, password_hash,
	company_name, company_email, company_phone, company_address, logo_url,
	is_active, created_at`

func scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.CompanyName, &u.CompanyEmail, &u.CompanyPhone, &u.CompanyAddress, &u.LogoURL,
		&u.IsActive, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *identityService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM users
		WHERE username = $1 AND is_active = true
		LIMIT 1
	`, userColumns), username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user %q: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *identityService) GetByID(ctx context.Context, userID int) (*User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM users
		WHERE id = $1
	`, userColumns), userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user id=%d: %w", userID, err)
	}
	return u, nil
}
