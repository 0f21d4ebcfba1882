package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"platform-auth/internal/apperr"
	"platform-auth/internal/models"
	"platform-auth/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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

type fakeAuthService struct {
	verifyClaims  *models.Claims
	verifyErr     error
	validateErr   error
	validatedWith *models.Claims
}

func (f *fakeAuthService) Register(username, email, password string) (*models.User, error) {
	panic("not used")
}
func (f *fakeAuthService) Login(username, password string) (*service.LoginResult, error) {
	panic("not used")
}
func (f *fakeAuthService) Logout(sessionID string) error { panic("not used") }

func (f *fakeAuthService) VerifyToken(token string) (*models.Claims, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifyClaims, nil
}

func (f *fakeAuthService) ValidateSession(claims *models.Claims) (*models.Session, error) {
	f.validatedWith = claims
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return &models.Session{ID: claims.Session, UserID: claims.SubID, IsActive: 1}, nil
}

func newGateRouter(auth service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(auth, zap.NewNop()))

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.POST("/auth/register", ok)
	router.POST("/auth/login", ok)
	router.GET("/healthz", ok)
	router.GET("/metrics", ok)
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username":   c.GetString("username"),
			"user_id":    c.GetString("user_id"),
			"session_id": c.GetString("session_id"),
		})
	})
	return router
}

func TestAuthMiddleware_AllowList(t *testing.T) {
	// A nil-claims fake would blow up if verification ran; allow-listed paths
	// must never reach it.
	router := newGateRouter(&fakeAuthService{verifyErr: apperr.New(apperr.Unauthorized, apperr.MsgInvalidCreds)})

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/auth/register"},
		{http.MethodPost, "/auth/login"},
		{http.MethodGet, "/healthz"},
		{http.MethodGet, "/metrics"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, tc.path)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := newGateRouter(&fakeAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"status":"Fail","detail":"Could not validate credentials"}`, w.Body.String())
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	auth := &fakeAuthService{verifyClaims: claimsFor("alice", "hash-1", "sess-1")}
	router := newGateRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some.valid.token")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"alice","user_id":"hash-1","session_id":"sess-1"}`, w.Body.String())
	require.NotNil(t, auth.validatedWith)
	assert.Equal(t, "sess-1", auth.validatedWith.Session)
}

func TestAuthMiddleware_VerifyFailures(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"expired", apperr.New(apperr.Unauthorized, apperr.MsgExpiredSession), http.StatusUnauthorized, apperr.MsgExpiredSession},
		{"malformed", apperr.New(apperr.Unauthorized, apperr.MsgInvalidCreds), http.StatusUnauthorized, apperr.MsgInvalidCreds},
		{"internal", apperr.NewInternal(), http.StatusInternalServerError, apperr.MsgInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newGateRouter(&fakeAuthService{verifyErr: tc.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer whatever")
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, `{"status":"Fail","detail":"`+tc.detail+`"}`, w.Body.String())
			if tc.status == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestAuthMiddleware_RevokedSession(t *testing.T) {
	auth := &fakeAuthService{
		verifyClaims: claimsFor("alice", "hash-1", "sess-1"),
		validateErr:  apperr.New(apperr.Unauthorized, apperr.MsgInvalidCreds),
	}
	router := newGateRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer signed.but.revoked")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
