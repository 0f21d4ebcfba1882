package repository

import (
	"database/sql"
	"errors"

	"platform-auth/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	GetUserByUsernameFold(username string) (*models.User, error)
}

type userRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewUserRepository(db *sqlx.DB, log *zap.Logger) UserRepository {
	return &userRepository{db: db, log: log}
}

// CreateUser inserts a new user row and fills in the store-assigned id.
func (r *userRepository) CreateUser(user *models.User) error {
	query := `INSERT INTO platform_users (hash_id, username, email, pass_hash) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowx(query, user.HashID, user.Username, user.Email, user.PassHash).Scan(&user.ID)
	if err != nil {
		r.log.Error("Failed to insert user", zap.String("username", user.Username), zap.Error(err))
		return err
	}
	return nil
}

func (r *userRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, hash_id, username, email, pass_hash, is_active FROM platform_users WHERE username = $1 AND is_active = 1`
	err := r.db.Get(&user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsernameFold matches the username case-insensitively. The unique
// constraint on the table is case-sensitive, so duplicate checks go through
// this lookup instead.
func (r *userRepository) GetUserByUsernameFold(username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, hash_id, username, email, pass_hash, is_active FROM platform_users WHERE LOWER(username) = LOWER($1) AND is_active = 1`
	err := r.db.Get(&user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
