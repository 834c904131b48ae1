package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-service/internal/audit"
	"account-service/internal/auth"
	"account-service/internal/domain"
	"account-service/internal/service"
)

const apiTestSecret = "api-test-secret"

type fakeAccounts struct {
	registerErr error
	loginToken  string
	loginErr    error
	user        *domain.User
	getErr      error

	gotRequested string
	gotCaller    string
}

func (f *fakeAccounts) Register(ctx context.Context, username, displayName, password, profilePicture string) error {
	return f.registerErr
}

func (f *fakeAccounts) Login(ctx context.Context, username, password string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeAccounts) GetUserByUsername(ctx context.Context, requestedUsername, callerUsername string) (*domain.User, error) {
	f.gotRequested = requestedUsername
	f.gotCaller = callerUsername
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.user, nil
}

type noopRecorder struct {
	events []string
}

func (r *noopRecorder) Record(message string, severity audit.Severity) {
	r.events = append(r.events, message)
}

func newAPITestRouter(t *testing.T, accounts *fakeAccounts) (*gin.Engine, *noopRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := &noopRecorder{}
	router := gin.New()
	NewHandler(accounts, recorder, nil, "", "", "", apiTestSecret).RegisterRoutes(router)
	return router, recorder
}

func bearerToken(t *testing.T, username string) string {
	t.Helper()
	token, err := auth.IssueToken(username, "somehash", apiTestSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint_Success(t *testing.T) {
	router, _ := newAPITestRouter(t, &fakeAccounts{})

	rec := postJSON(router, "/api/users", gin.H{
		"username": "newuser", "displayName": "New User", "password": "pw",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Success"}`, rec.Body.String())
}

func TestRegisterEndpoint_MissingField(t *testing.T) {
	router, _ := newAPITestRouter(t, &fakeAccounts{registerErr: service.ErrMissingField})

	rec := postJSON(router, "/api/users", gin.H{"displayName": "New User", "password": "pw"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterEndpoint_Conflict(t *testing.T) {
	router, _ := newAPITestRouter(t, &fakeAccounts{registerErr: service.ErrTaken})

	rec := postJSON(router, "/api/users", gin.H{
		"username": "existinguser", "displayName": "New User", "password": "pw",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterEndpoint_InternalError(t *testing.T) {
	router, recorder := newAPITestRouter(t, &fakeAccounts{registerErr: errors.New("store unavailable")})

	rec := postJSON(router, "/api/users", gin.H{
		"username": "u", "displayName": "D", "password": "pw",
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "store unavailable", "internal detail must not leak")
	assert.NotEmpty(t, recorder.events, "internal errors go to the internal-error channel")
}

func TestLoginEndpoint_ReturnsTokenAsText(t *testing.T) {
	router, _ := newAPITestRouter(t, &fakeAccounts{loginToken: "issued.token.value"})

	rec := postJSON(router, "/api/tokens", gin.H{"username": "testuser", "password": "pw"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "issued.token.value", rec.Body.String())
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	router, _ := newAPITestRouter(t, &fakeAccounts{loginErr: service.ErrInvalidCredentials})

	rec := postJSON(router, "/api/tokens", gin.H{"username": "testuser", "password": "wrong"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"invalid username and or password"}`, rec.Body.String())
}

func TestLoginEndpoint_MissingFieldsLookLikeBadCredentials(t *testing.T) {
	router, _ := newAPITestRouter(t, &fakeAccounts{loginErr: service.ErrMissingField})

	rec := postJSON(router, "/api/tokens", gin.H{"username": "testuser"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"invalid username and or password"}`, rec.Body.String())
}

func TestGetUserEndpoint_Success(t *testing.T) {
	registered := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	accounts := &fakeAccounts{user: &domain.User{
		Username:       "testuser",
		DisplayName:    "Test User",
		PasswordHash:   "must-not-appear",
		ProfilePicture: "default",
		RegisterDate:   registered,
	}}
	router, _ := newAPITestRouter(t, accounts)

	req := httptest.NewRequest(http.MethodGet, "/api/users/testuser", nil)
	req.Header.Set("Authorization", bearerToken(t, "testuser"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "testuser", accounts.gotRequested)
	assert.Equal(t, "testuser", accounts.gotCaller)

	var resp userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "testuser", resp.Username)
	assert.Equal(t, "Test User", resp.DisplayName)
	assert.Equal(t, registered.Format(time.RFC3339), resp.RegisterDate)
	assert.NotContains(t, rec.Body.String(), "must-not-appear")
}

func TestGetUserEndpoint_ForbiddenLooksLikeNotFound(t *testing.T) {
	for _, svcErr := range []error{service.ErrForbidden, service.ErrUserNotFound} {
		router, _ := newAPITestRouter(t, &fakeAccounts{getErr: svcErr})

		req := httptest.NewRequest(http.MethodGet, "/api/users/testuser", nil)
		req.Header.Set("Authorization", bearerToken(t, "anotheruser"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String())
	}
}

func TestGetUserEndpoint_RequiresToken(t *testing.T) {
	router, _ := newAPITestRouter(t, &fakeAccounts{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/testuser", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadAvatarEndpoint_StorageNotConfigured(t *testing.T) {
	router, _ := newAPITestRouter(t, &fakeAccounts{})

	req := httptest.NewRequest(http.MethodPost, "/api/avatars", nil)
	req.Header.Set("Authorization", bearerToken(t, "testuser"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"storage service not configured"}`, rec.Body.String())
}

func TestGetAvatarEndpoint_DefaultPictureIsNotFound(t *testing.T) {
	accounts := &fakeAccounts{user: &domain.User{
		Username:       "testuser",
		ProfilePicture: "default",
	}}
	router, _ := newAPITestRouter(t, accounts)

	req := httptest.NewRequest(http.MethodGet, "/api/users/testuser/avatar", nil)
	req.Header.Set("Authorization", bearerToken(t, "testuser"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
