package service

import (
	"errors"

	"platform-auth/internal/apperr"
	"platform-auth/internal/models"
	"platform-auth/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// SessionService enforces the single-active-session-per-user policy. A session
// moves NoSession -> Active -> Inactive; a new login gets a fresh row, an
// invalidated row is never reused.
type SessionService struct {
	repo   repository.SessionRepository
	logger *zap.Logger
}

func NewSessionService(repo repository.SessionRepository, logger *zap.Logger) *SessionService {
	return &SessionService{repo: repo, logger: logger}
}

// CreateSession inserts a new active session for the user. It fails with
// Conflict when an active session already exists. The application-level check
// races under concurrent logins, so the partial unique index on the sessions
// table backs it up; a unique violation from the insert reports the same
// Conflict.
func (s *SessionService) CreateSession(userID string) (string, error) {
	_, err := s.repo.GetActiveByUserID(userID)
	if err == nil {
		s.logger.Debug("User has an active session", zap.String("user_id", userID))
		return "", apperr.New(apperr.Conflict, apperr.MsgExistingSession)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to look up active session", zap.String("user_id", userID), zap.Error(err))
		return "", apperr.NewInternal()
	}

	session := &models.Session{ID: uuid.NewString(), UserID: userID}
	if err := s.repo.CreateSession(session); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return "", apperr.New(apperr.Conflict, apperr.MsgExistingSession)
		}
		s.logger.Error("Failed to create session", zap.String("user_id", userID), zap.Error(err))
		return "", apperr.NewInternal()
	}

	return session.ID, nil
}

// GetSessionByID returns the active session row or repository.ErrNotFound.
// Inactive rows are never returned.
func (s *SessionService) GetSessionByID(id string) (*models.Session, error) {
	session, err := s.repo.GetActiveByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug("Session not found", zap.String("session_id", id))
		return nil, err
	}
	return session, err
}

// GetSessionByUserID returns the user's active session or repository.ErrNotFound.
func (s *SessionService) GetSessionByUserID(userID string) (*models.Session, error) {
	session, err := s.repo.GetActiveByUserID(userID)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug("No active session for user", zap.String("user_id", userID))
		return nil, err
	}
	return session, err
}

// BlacklistSession sets the session inactive. Blacklisting an already-inactive
// or unknown session is not an error; the boolean tells the caller whether a
// row actually changed.
func (s *SessionService) BlacklistSession(id string) (bool, error) {
	return s.repo.SetInactive(id)
}
