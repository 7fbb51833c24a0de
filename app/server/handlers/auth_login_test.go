package handlers

import (
	"net/http"
	"testing"

	"insight-dashboard/app/server/constants"
	"insight-dashboard/app/server/models"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/require"
)

func TestAuthLoginManualAdmin(t *testing.T) {
	t.Parallel()

	a, _, st := newTestApp(t, nil)

	hash, err := argon2id.CreateHash("admin123", argon2id.DefaultParams)
	require.NoError(t, err)
	a.cfg.Security.AdminPasswordHash = hash

	c, rec := newTestJSONContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"admin123"}`)

	require.NoError(t, a.AuthLogin(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// 管理员用户已创建，角色是显式指定的 admin
	user, err := st.GetUserByOpenID(c.Request().Context(), constants.ManualAdminOpenID)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, user.Role)
	require.Equal(t, "manual", user.LoginMethod)

	// 同时种下了会话 cookie
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, constants.DefaultSessionCookieName, cookies[0].Name)
	require.NotEmpty(t, cookies[0].Value)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	t.Parallel()

	a, _, _ := newTestApp(t, nil)

	hash, err := argon2id.CreateHash("admin123", argon2id.DefaultParams)
	require.NoError(t, err)
	a.cfg.Security.AdminPasswordHash = hash

	c, rec := newTestJSONContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"wrong"}`)

	require.NoError(t, a.AuthLogin(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthLoginDisabled(t *testing.T) {
	t.Parallel()

	a, _, _ := newTestApp(t, nil)

	c, rec := newTestJSONContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"admin123"}`)

	require.NoError(t, a.AuthLogin(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
