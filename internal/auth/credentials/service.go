package credentials

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gla-dpsingh/Animal-Care/internal/db"

	"github.com/lib/pq"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// dummyHash keeps Authenticate's timing flat when the email does not
// exist: the bcrypt compare runs either way.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type Service struct {
	db *db.DB
}

func NewService(db *db.DB) *Service {
	return &Service{db: db}
}

// Register stores a new user with a freshly salted hash. Duplicate
// emails lose at the unique index, not at an application-level check,
// so concurrent registrations cannot both win.
func (s *Service) Register(
	ctx context.Context,
	username string,
	email string,
	password string,
	phone string,
) (int64, error) {

	hash, err := HashPassword(password)
	if err != nil {
		return 0, err
	}

	var userID int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash, phone_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, username, email, hash, phone).Scan(&userID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrEmailTaken
		}
		return 0, err
	}

	return userID, nil
}

// Authenticate verifies an email/password pair. A lookup miss and a
// hash mismatch both come back as ErrInvalidCredentials; the caller
// must not be able to tell them apart.
func (s *Service) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (int64, error) {

	var (
		userID       int64
		passwordHash string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&userID, &passwordHash)

	if err != nil {
		// burn a compare so the miss is not observably faster
		_ = VerifyPassword(dummyHash, password)
		return 0, ErrInvalidCredentials
	}

	if err := VerifyPassword(passwordHash, password); err != nil {
		return 0, ErrInvalidCredentials
	}

	return userID, nil
}

// FindByEmail resolves a user record for the OTP flow.
func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, `
		SELECT id, username, email, password_hash,
		       COALESCE(full_name, ''), COALESCE(phone_number, ''),
		       COALESCE(address, ''), COALESCE(profile_picture, ''),
		       created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)
}

// FindByID resolves a user record by primary key.
func (s *Service) FindByID(ctx context.Context, id int64) (*User, error) {
	return s.findOne(ctx, `
		SELECT id, username, email, password_hash,
		       COALESCE(full_name, ''), COALESCE(phone_number, ''),
		       COALESCE(address, ''), COALESCE(profile_picture, ''),
		       created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
}

func (s *Service) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FullName, &u.PhoneNumber,
		&u.Address, &u.ProfilePicture,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
