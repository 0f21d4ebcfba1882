package service

import (
	"strings"

	"platform-auth/internal/models"
	"platform-auth/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

func claimsFor(username, subID, sessionID string) *models.Claims {
	return &models.Claims{
		SubID:   subID,
		Session: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: username,
		},
	}
}

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users     map[string]*models.User // keyed by username
	createErr error
	lookupErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = int64(len(f.users) + 1)
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	user, ok := f.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByUsernameFold(username string) (*models.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for name, user := range f.users {
		if strings.EqualFold(name, username) {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeSessionRepo struct {
	sessions    map[string]*models.Session // keyed by session id
	createErr   error
	lookupErr   error
	inactiveErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionRepo) CreateSession(session *models.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	session.IsActive = 1
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetActiveByID(id string) (*models.Session, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	session, ok := f.sessions[id]
	if !ok || session.IsActive != 1 {
		return nil, repository.ErrNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) GetActiveByUserID(userID string) (*models.Session, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, session := range f.sessions {
		if session.UserID == userID && session.IsActive == 1 {
			return session, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSessionRepo) SetInactive(id string) (bool, error) {
	if f.inactiveErr != nil {
		return false, f.inactiveErr
	}
	session, ok := f.sessions[id]
	if !ok || session.IsActive != 1 {
		return false, nil
	}
	session.IsActive = 0
	return true, nil
}
