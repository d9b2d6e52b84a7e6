package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/app/repositories"
	"github.com/mcreations/storefront/app/services"
	"github.com/mcreations/storefront/pkg/auth"
)

func newAuthService() *services.AuthService {
	return services.NewAuthService(repositories.NewUserRepository())
}

func registerInput() services.RegisterInput {
	return services.RegisterInput{
		Name:                 "Jane Shopper",
		Email:                "jane@example.com",
		Phone:                "5551234567",
		Password:             "hunter2hunter2",
		PasswordConfirmation: "hunter2hunter2",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	newTestDB(t)
	svc := newAuthService()

	user, token, err := svc.Register(registerInput())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "hunter2hunter2", user.Password) // stored hashed

	logged, token, err := svc.Login("5551234567", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	newTestDB(t)
	svc := newAuthService()

	_, _, err := svc.Register(registerInput())
	require.NoError(t, err)

	dup := registerInput()
	dup.Email = "other@example.com"
	_, _, err = svc.Register(dup)
	assert.ErrorIs(t, err, services.ErrPhoneTaken)
}

func TestLoginBadCredentials(t *testing.T) {
	newTestDB(t)
	svc := newAuthService()

	_, _, err := svc.Register(registerInput())
	require.NoError(t, err)

	_, _, err = svc.Login("5551234567", "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login("0000000000", "hunter2hunter2")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestStaffLoginRequiresExistingRole(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService()

	user, _, err := svc.Register(registerInput())
	require.NoError(t, err)

	// A regular account is refused and, critically, never promoted.
	_, _, err = svc.StaffLogin("5551234567", "hunter2hunter2")
	assert.ErrorIs(t, err, services.ErrNotStaff)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, models.RoleUser, got.Role)

	hash, err := auth.HashPassword("changeme123")
	require.NoError(t, err)
	staff := models.User{Name: "Store Admin", Email: "admin@example.com", Phone: "5559999999", Password: hash, Role: models.RoleStaff}
	require.NoError(t, db.Create(&staff).Error)

	logged, token, err := svc.StaffLogin("5559999999", "changeme123")
	require.NoError(t, err)
	assert.True(t, logged.IsStaff())
	assert.NotEmpty(t, token)
}
