package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/psgrkcw/faculty-portal-api/internal/models"
	"github.com/psgrkcw/faculty-portal-api/internal/service"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
}

type fakeUserRepo struct {
	userByEmail    *models.User
	userByID       *models.User
	findByEmailErr error
	findByIDErr    error
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.findByEmailErr != nil {
		return nil, f.findByEmailErr
	}
	return f.userByEmail, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if f.findByIDErr != nil {
		return nil, f.findByIDErr
	}
	return f.userByID, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = "user-1"
	return nil
}

func newAuthTestService(repo *fakeUserRepo) *service.AuthService {
	return service.NewAuthService(repo, nil, nil, service.AuthConfig{
		Secret:          "test_secret",
		TokenExpiration: time.Hour,
		AllowedDomains:  []string{"psgrkcw.ac.in"},
	})
}

func postJSON(t *testing.T, target string, payload interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return rec, c
}

func TestAuthHandlerRegisterCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(newAuthTestService(&fakeUserRepo{findByEmailErr: sql.ErrNoRows}))

	rec, c := postJSON(t, "/auth/register", models.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@psgrkcw.ac.in",
		Password: "secret123",
	})
	handler.Register(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "asha@psgrkcw.ac.in", envelope.Data["email"])
	// The hash never leaves the service layer.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthHandlerRegisterForeignDomain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(newAuthTestService(&fakeUserRepo{findByEmailErr: sql.ErrNoRows}))

	rec, c := postJSON(t, "/auth/register", models.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@gmail.com",
		Password: "secret123",
	})
	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlerLoginUnknownEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(newAuthTestService(&fakeUserRepo{findByEmailErr: sql.ErrNoRows}))

	rec, c := postJSON(t, "/auth/login", models.LoginRequest{
		Email:    "nobody@psgrkcw.ac.in",
		Password: "whatever",
	})
	handler.Login(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	handler := NewAuthHandler(newAuthTestService(&fakeUserRepo{
		userByEmail: &models.User{ID: "user-1", Name: "Asha", Email: "asha@psgrkcw.ac.in", PasswordHash: string(hash)},
	}))

	rec, c := postJSON(t, "/auth/login", models.LoginRequest{
		Email:    "asha@psgrkcw.ac.in",
		Password: "secret123",
	})
	handler.Login(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data["token"])
}
