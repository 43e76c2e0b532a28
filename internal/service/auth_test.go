package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-ticketing/internal/repository"
)

type mockAuthUserRepo struct {
	CreateFn      func(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmailFn func(ctx context.Context, email string) (domain.User, error)
}

func (m *mockAuthUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.CreateFn(ctx, user)
}

func (m *mockAuthUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.FindByEmailFn(ctx, email)
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("hashes the password", func(t *testing.T) {
		repo := &mockAuthUserRepo{
			CreateFn: func(ctx context.Context, user domain.User) (domain.User, error) {
				assert.NotEqual(t, "Password123", user.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Password123")))
				user.ID = 1
				return user, nil
			},
		}
		svc := NewAuthService(repo)

		created, err := svc.Signup(context.Background(), domain.User{
			Email:    "ada@example.com",
			Password: "Password123",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(1), created.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &mockAuthUserRepo{
			CreateFn: func(ctx context.Context, user domain.User) (domain.User, error) {
				return domain.User{}, repository.ErrUserEmailExists
			},
		}
		svc := NewAuthService(repo)

		_, err := svc.Signup(context.Background(), domain.User{Email: "ada@example.com", Password: "Password123"})
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockAuthUserRepo{
		FindByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
			if email != "ada@example.com" {
				return domain.User{}, repository.ErrUserNotFound
			}
			return domain.User{ID: 1, Email: email, Password: string(hash)}, nil
		},
	}
	svc := NewAuthService(repo)

	t.Run("success", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "ada@example.com", "Password123")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "Password123")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ada@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})
}
