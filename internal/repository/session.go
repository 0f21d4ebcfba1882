package repository

import (
	"database/sql"
	"errors"

	"platform-auth/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type SessionRepository interface {
	CreateSession(session *models.Session) error
	GetActiveByID(id string) (*models.Session, error)
	GetActiveByUserID(userID string) (*models.Session, error)
	SetInactive(id string) (bool, error)
}

type sessionRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewSessionRepository(db *sqlx.DB, log *zap.Logger) SessionRepository {
	return &sessionRepository{db: db, log: log}
}

func (r *sessionRepository) CreateSession(session *models.Session) error {
	query := `INSERT INTO sessions (id, platform_user_id) VALUES ($1, $2)`
	if _, err := r.db.Exec(query, session.ID, session.UserID); err != nil {
		r.log.Error("Failed to insert session", zap.String("user_id", session.UserID), zap.Error(err))
		return err
	}
	session.IsActive = 1
	return nil
}

func (r *sessionRepository) GetActiveByID(id string) (*models.Session, error) {
	var session models.Session
	query := `SELECT id, platform_user_id, is_active FROM sessions WHERE id = $1 AND is_active = 1`
	err := r.db.Get(&session, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) GetActiveByUserID(userID string) (*models.Session, error) {
	var session models.Session
	query := `SELECT id, platform_user_id, is_active FROM sessions WHERE platform_user_id = $1 AND is_active = 1`
	err := r.db.Get(&session, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SetInactive soft-invalidates a session. The boolean reports whether a row
// actually changed, so callers can treat an already-inactive session as a
// no-op rather than a failure.
func (r *sessionRepository) SetInactive(id string) (bool, error) {
	query := `UPDATE sessions SET is_active = 0 WHERE id = $1 AND is_active = 1`
	res, err := r.db.Exec(query, id)
	if err != nil {
		r.log.Error("Failed to set session as inactive", zap.String("session_id", id), zap.Error(err))
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
