package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/AnshRaj112/diary-backend/internal/models"
	"github.com/AnshRaj112/diary-backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

const uniqueViolation = "23505"

// UserService owns the users table. Usernames are stored lowercased.
type UserService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Create registers a new account.
func (s *UserService) Create(ctx context.Context, username, password string) (*models.User, error) {
	if err := utils.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     utils.NormalizeUsername(username),
		PasswordHash: hash,
		IsActive:     true,
	}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, user.ID, user.Username, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username/password pair. Unknown users, inactive users and wrong
// passwords all yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var (
		user      models.User
		createdAt time.Time
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at, is_active
		FROM users WHERE username = $1
	`, utils.NormalizeUsername(username)).Scan(&user.ID, &user.Username, &user.PasswordHash, &createdAt, &user.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	user.CreatedAt = createdAt
	return &user, nil
}

// GetByID returns an active user.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, created_at, is_active
		FROM users WHERE id = $1 AND is_active = TRUE
	`, id).Scan(&user.ID, &user.Username, &user.CreatedAt, &user.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUsername renames an active user.
func (s *UserService) UpdateUsername(ctx context.Context, id uuid.UUID, username string) (*models.User, error) {
	if err := utils.ValidateUsername(username); err != nil {
		return nil, err
	}

	user := models.User{ID: id, Username: utils.NormalizeUsername(username)}
	err := s.db.QueryRowContext(ctx, `
		UPDATE users SET username = $2
		WHERE id = $1 AND is_active = TRUE
		RETURNING created_at, is_active
	`, id, user.Username).Scan(&user.CreatedAt, &user.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}
