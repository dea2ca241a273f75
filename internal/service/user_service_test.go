package service

import (
	"testing"

	"greenscore/internal/dto"
	"greenscore/internal/models"
	"greenscore/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)
	admin := env.newUser(t, "root_admin", models.RoleAdmin)

	info, err := env.users.Create(ctx, admin, &dto.CreateUserRequest{Username: "newbie", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, info.Role)

	_, err = env.users.Create(ctx, admin, &dto.CreateUserRequest{Username: "newbie", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Username: "newbie", Password: "secret1"})
	assert.NoError(t, err)
}

func TestUserService_DeleteRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)
	admin := env.newUser(t, "root_admin", models.RoleAdmin)
	victim := env.newUser(t, "victim", models.RoleUser)

	_, err := env.measurements.Create(ctx, victim, scoring.Energy, &dto.MeasurementRequest{Value: floatPtr(10), Month: 1, Year: 2025})
	require.NoError(t, err)

	assert.ErrorIs(t, env.users.Delete(ctx, admin, admin.UserID), ErrSelfDelete)
	_, err = env.userRepo.GetByID(ctx, admin.UserID)
	assert.NoError(t, err, "self-delete must not remove the account")

	require.NoError(t, env.users.Delete(ctx, admin, victim.UserID))
	assert.ErrorIs(t, env.users.Delete(ctx, admin, victim.UserID), ErrNotFound)

	avg, err := env.measurementRepo.Average(ctx, scoring.Energy, 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, 10.0, avg, "measurements survive their author")
}

func TestUserService_ResetPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)
	admin := env.newUser(t, "root_admin", models.RoleAdmin)
	user := env.newUser(t, "forgetful", models.RoleUser)

	resp, err := env.users.ResetPassword(ctx, admin, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "password123", resp.Password)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Username: "forgetful", Password: "password123"})
	assert.NoError(t, err)

	_, err = env.users.ResetPassword(ctx, admin, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_ListAndActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)
	env.newUser(t, "root_admin", models.RoleAdmin)
	user := env.newUser(t, "green_bean", models.RoleUser)

	for i := 0; i < 2; i++ {
		_, err := env.measurements.Create(ctx, user, scoring.Water, &dto.MeasurementRequest{Value: floatPtr(5), Month: 1, Year: 2025})
		require.NoError(t, err)
	}

	list, total, err := env.users.List(ctx, &dto.UserListQuery{Search: "bean"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].WaterCount)
	assert.Equal(t, int64(2), list[0].ActivityCount)

	_, total, err = env.users.List(ctx, &dto.UserListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	entries, total, err := env.users.Activity(ctx, user.UserID, &dto.PageQuery{PerPage: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, entries, 1)
	assert.Contains(t, entries[0].Action, "water")

	_, _, err = env.users.Activity(ctx, 9999, &dto.PageQuery{})
	assert.ErrorIs(t, err, ErrNotFound)
}
