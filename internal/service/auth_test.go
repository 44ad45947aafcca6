package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackathonweekly/community-api/internal/domain"
	"github.com/hackathonweekly/community-api/internal/repository"
)

type fakeAuthUserRepo struct {
	byEmail map[string]domain.User
	nextID  uint
}

func newFakeAuthUserRepo() *fakeAuthUserRepo {
	return &fakeAuthUserRepo{byEmail: make(map[string]domain.User)}
}

func (f *fakeAuthUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}

	f.nextID++
	user.ID = f.nextID
	f.byEmail[user.Email] = user

	return user, nil
}

func (f *fakeAuthUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeAuthUserRepo())
	ctx := context.Background()

	created, err := svc.Signup(ctx, domain.User{
		Email:    "jaimie@example.com",
		Name:     "Jaimie",
		Password: "test1234",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, "test1234", created.Password, "password must be stored hashed")

	user, err := svc.Login(ctx, "jaimie@example.com", "test1234")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeAuthUserRepo())
	ctx := context.Background()

	_, err := svc.Signup(ctx, domain.User{Email: "jaimie@example.com", Password: "test1234"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, domain.User{Email: "jaimie@example.com", Password: "other5678"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc := NewAuthService(newFakeAuthUserRepo())
	ctx := context.Background()

	_, err := svc.Signup(ctx, domain.User{Email: "jaimie@example.com", Password: "test1234"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "jaimie@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "nobody@example.com", "test1234")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
