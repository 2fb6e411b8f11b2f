package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"blogapi/internal/model"
)

// fakeUserRepo serves users from a map, standing in for the database.
type fakeUserRepo struct {
	users map[uint]*model.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error { return nil }
func (f *fakeUserRepo) Update(ctx context.Context, user *model.User) error { return nil }
func (f *fakeUserRepo) List(ctx context.Context) ([]model.User, error)     { return nil, nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

const testSecret = "test-secret"

func newProtectedEcho(repo *fakeUserRepo) *echo.Echo {
	e := echo.New()
	g := e.Group("", Middleware(testSecret), LoadUser(repo))
	g.GET("/me", func(c echo.Context) error {
		user, _ := CurrentUser(c)
		return c.JSON(http.StatusOK, echo.Map{"email": user.Email})
	})
	admin := g.Group("/admin", RequireRoles(model.RoleSuperAdmin))
	admin.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func issueToken(t *testing.T, userID uint, role model.Role) string {
	t.Helper()
	token, err := NewJWTService(testSecret, 15*time.Minute).GenerateAccessToken(userID, role)
	assert.NoError(t, err)
	return token
}

func doGet(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthChain_Unauthenticated(t *testing.T) {
	repo := &fakeUserRepo{users: map[uint]*model.User{
		1: {ID: 1, Email: "active@example.com", Role: model.RoleSubscriber, IsActive: true},
		2: {ID: 2, Email: "inactive@example.com", Role: model.RoleSubscriber, IsActive: false},
	}}
	e := newProtectedEcho(repo)

	expiredToken := func() string {
		token, err := NewJWTService(testSecret, -time.Minute).GenerateAccessToken(1, model.RoleSubscriber)
		assert.NoError(t, err)
		return token
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "garbage token", token: "garbage"},
		{name: "expired token", token: expiredToken()},
		{name: "user does not exist", token: issueToken(t, 99, model.RoleSubscriber)},
		{name: "user deactivated", token: issueToken(t, 2, model.RoleSubscriber)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(e, "/me", tt.token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			// Every failure mode surfaces the same message.
			assert.Contains(t, rec.Body.String(), MsgCouldNotValidate)
		})
	}
}

func TestAuthChain_RoleReadFromFreshUser(t *testing.T) {
	user := &model.User{ID: 1, Email: "u@example.com", Role: model.RoleSubscriber, IsActive: true}
	repo := &fakeUserRepo{users: map[uint]*model.User{1: user}}
	e := newProtectedEcho(repo)

	// Token embeds the subscriber role the user held at issuance.
	token := issueToken(t, 1, model.RoleSubscriber)

	rec := doGet(e, "/admin", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Promotion takes effect on the next request with the same token.
	user.Role = model.RoleSuperAdmin
	rec = doGet(e, "/admin", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// So does demotion, even though the token still claims super_admin.
	demotedToken := issueToken(t, 1, model.RoleSuperAdmin)
	user.Role = model.RoleSubscriber
	rec = doGet(e, "/admin", demotedToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthChain_DeactivationRevokesAccess(t *testing.T) {
	user := &model.User{ID: 1, Email: "u@example.com", Role: model.RoleSubscriber, IsActive: true}
	repo := &fakeUserRepo{users: map[uint]*model.User{1: user}}
	e := newProtectedEcho(repo)

	token := issueToken(t, 1, model.RoleSubscriber)

	rec := doGet(e, "/me", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	user.IsActive = false
	rec = doGet(e, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgCouldNotValidate)
}
