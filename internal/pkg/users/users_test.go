package users

import (
	"testing"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/equiscribe/scribego/internal/pkg/persistence"
	"github.com/stretchr/testify/assert"
)

var (
	userStore *persistence.InMemUsers
	srv       *Service
)

func initTest(t *testing.T) {
	t.Helper()
	cmdapp.Config.Set("users.admins", "")
	userStore = persistence.NewInMemUsers()
	var err error
	srv, err = NewService(userStore)
	assert.Nil(t, err)
}

func TestNewService_Fails(t *testing.T) {
	_, err := NewService(nil)
	assert.NotNil(t, err)
}

func TestResolve_CreatesClinician(t *testing.T) {
	initTest(t)

	u, err := srv.Resolve("t1", "api-key:a1b2c3d4e5f60718")

	assert.Nil(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, domain.RoleClinician, u.Role)
	assert.Equal(t, "user+a1b2c3d4@example.com", u.Email)
	assert.Equal(t, "t1", u.TenantID)
}

func TestResolve_ReturnsExisting(t *testing.T) {
	initTest(t)
	u1, err := srv.Resolve("t1", "api-key:a1b2c3d4e5f60718")
	assert.Nil(t, err)

	u2, err := srv.Resolve("t1", "api-key:a1b2c3d4e5f60718")

	assert.Nil(t, err)
	assert.Equal(t, u1.ID, u2.ID)
}

func TestResolve_TenantsSeparated(t *testing.T) {
	initTest(t)
	u1, err := srv.Resolve("t1", "api-key:a1b2c3d4e5f60718")
	assert.Nil(t, err)

	u2, err := srv.Resolve("t2", "api-key:a1b2c3d4e5f60718")

	assert.Nil(t, err)
	assert.NotEqual(t, u1.ID, u2.ID)
	assert.Equal(t, "t2", u2.TenantID)
}

func TestResolve_Anonymous(t *testing.T) {
	initTest(t)

	u, err := srv.Resolve("t1", "")

	assert.Nil(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, "anonymous@example.com", u.Email)

	u2, err := srv.Resolve("t1", AnonymousSubject)
	assert.Nil(t, err)
	assert.Equal(t, u.ID, u2.ID)
}

func TestResolve_AdminFromConfig(t *testing.T) {
	initTest(t)
	cmdapp.Config.Set("users.admins", "api-key:a1b2c3d4e5f60718, boss")
	var err error
	srv, err = NewService(userStore)
	assert.Nil(t, err)

	u, err := srv.Resolve("t1", "api-key:a1b2c3d4e5f60718")
	assert.Nil(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	u, err = srv.Resolve("t1", "boss")
	assert.Nil(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	u, err = srv.Resolve("t1", "api-key:ffffffffffffffff")
	assert.Nil(t, err)
	assert.Equal(t, domain.RoleClinician, u.Role)
}

func TestGuestEmail(t *testing.T) {
	assert.Equal(t, "user+a1b2c3d4@example.com", guestEmail("api-key:a1b2c3d4e5f60718"))
	assert.Equal(t, "user+olia@example.com", guestEmail("olia"))
}
