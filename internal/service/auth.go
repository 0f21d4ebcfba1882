package service

import (
	"errors"
	"time"
	"unicode"

	"platform-auth/internal/apperr"
	"platform-auth/internal/models"
	"platform-auth/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxUsernameChars = 25
	tokenType        = "bearer"
)

// LoginResult is handed back to the client after a successful login.
// ExpiresIn is in minutes.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type AuthService interface {
	Register(username, email, password string) (*models.User, error)
	Login(username, password string) (*LoginResult, error)
	Logout(sessionID string) error
	VerifyToken(token string) (*models.Claims, error)
	ValidateSession(claims *models.Claims) (*models.Session, error)
}

type authService struct {
	users    repository.UserRepository
	sessions *SessionService
	hasher   *PasswordHasher
	codec    *TokenCodec
	tokenTTL time.Duration
	logger   *zap.Logger
}

func NewAuthService(users repository.UserRepository, sessions *SessionService, hasher *PasswordHasher, codec *TokenCodec, tokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		codec:    codec,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Register validates the username, rejects case-insensitive duplicates, and
// persists the new user with a hashed password and a fresh hash id.
func (s *authService) Register(username, email, password string) (*models.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	_, err := s.users.GetUserByUsernameFold(username)
	if err == nil {
		return nil, apperr.New(apperr.Conflict, apperr.MsgRegisteredUsername)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to check existing username", zap.String("username", username), zap.Error(err))
		return nil, apperr.NewInternal()
	}

	passHash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, apperr.NewInternal()
	}

	user := &models.User{
		HashID:   uuid.NewString(),
		Username: username,
		Email:    email,
		PassHash: passHash,
		IsActive: 1,
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, apperr.NewInternal()
	}

	return user, nil
}

// Login verifies credentials, opens a session, and issues a signed token. An
// existing active session rejects the login rather than silently superseding
// the previous one.
func (s *authService) Login(username, password string) (*LoginResult, error) {
	user, err := s.authenticateUser(username, password)
	if err != nil {
		return nil, err
	}

	sessionID, err := s.sessions.CreateSession(user.HashID)
	if err != nil {
		if apperr.KindOf(err) == apperr.Conflict {
			return nil, apperr.New(apperr.Unauthorized, apperr.MsgOccupiedSession)
		}
		return nil, err
	}

	claims := &models.Claims{
		SubID:   user.HashID,
		Session: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.Username,
		},
	}
	accessToken, err := s.codec.Issue(claims, s.tokenTTL)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.String("username", user.Username), zap.Error(err))
		return nil, apperr.NewInternal()
	}

	s.logger.Info("User logged in", zap.String("username", user.Username), zap.String("session_id", sessionID))
	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   tokenType,
		ExpiresIn:   int(s.tokenTTL.Minutes()),
	}, nil
}

// Logout blacklists the session. An unknown session is a silent no-op so a
// repeated logout does not error.
func (s *authService) Logout(sessionID string) error {
	session, err := s.sessions.GetSessionByID(sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return apperr.NewInternal()
	}

	if _, err := s.sessions.BlacklistSession(session.ID); err != nil {
		return apperr.NewInternal()
	}

	s.logger.Info("User logged out", zap.String("session_id", sessionID))
	return nil
}

// VerifyToken decodes and verifies the bearer token, mapping codec failures
// onto the error taxonomy.
func (s *authService) VerifyToken(token string) (*models.Claims, error) {
	claims, err := s.codec.Parse(token)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, ErrTokenExpired):
		s.logger.Debug("Token has expired")
		return nil, apperr.New(apperr.Unauthorized, apperr.MsgExpiredSession)
	case errors.Is(err, ErrTokenMalformed):
		s.logger.Debug("Token is invalid")
		return nil, apperr.New(apperr.Unauthorized, apperr.MsgInvalidCreds)
	default:
		s.logger.Error("Failed to decode token", zap.Error(err))
		return nil, apperr.NewInternal()
	}
}

// ValidateSession checks that the session named in the claims is still active
// and owned by the token's subject. A blacklisted or superseded session
// rejects the token even when its signature and expiry are fine.
func (s *authService) ValidateSession(claims *models.Claims) (*models.Session, error) {
	session, err := s.sessions.GetSessionByID(claims.Session)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.New(apperr.Unauthorized, apperr.MsgInvalidCreds)
	}
	if err != nil {
		return nil, apperr.NewInternal()
	}

	if session.UserID != claims.SubID {
		s.logger.Debug("Session owner mismatch",
			zap.String("session_id", claims.Session), zap.String("sub_id", claims.SubID))
		return nil, apperr.New(apperr.Unauthorized, apperr.MsgInvalidCreds)
	}

	return session, nil
}

func (s *authService) authenticateUser(username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(username)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug("Unknown username", zap.String("username", username))
		return nil, apperr.New(apperr.Unauthorized, apperr.MsgUnauthorizedUser)
	}
	if err != nil {
		s.logger.Error("Failed to look up user", zap.String("username", username), zap.Error(err))
		return nil, apperr.NewInternal()
	}

	if !s.hasher.Verify(password, user.PassHash) {
		s.logger.Debug("Wrong password", zap.String("username", username))
		return nil, apperr.New(apperr.Unauthorized, apperr.MsgUnauthorizedUser)
	}

	return user, nil
}

func validateUsername(username string) error {
	if username == "" {
		return apperr.New(apperr.BadRequest, apperr.MsgEmptyUsername)
	}
	hasAlpha := false
	for _, r := range username {
		if unicode.IsLetter(r) {
			hasAlpha = true
			break
		}
	}
	if !hasAlpha {
		return apperr.New(apperr.BadRequest, apperr.MsgNoAlphabetUsername)
	}
	if len([]rune(username)) > maxUsernameChars {
		return apperr.New(apperr.BadRequest, apperr.MsgMaxCharUsername)
	}
	return nil
}
