package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/pustaka/bookstore/pkg/errors"
)

// fakeRepo 内存用户仓储
type fakeRepo struct {
	users  map[string]*User // email → user
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.users[u.Email]; ok {
		return ErrEmailRegistered
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.Email] = u
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功_密码被bcrypt加密", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		u, err := svc.Register(ctx, "alice@example.com", "password123", "alice")
		require.NoError(t, err)

		assert.NotZero(t, u.ID)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.Equal(t, "alice", u.Username)

		// 数据库里保存的绝不是明文
		assert.NotEqual(t, "password123", u.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")))
	})

	t.Run("邮箱格式不正确", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		for _, email := range []string{"", "not-an-email", "a@b", "user@.com"} {
			_, err := svc.Register(ctx, email, "password123", "alice")
			assert.ErrorIs(t, err, ErrInvalidEmail, "email=%q", email)
		}
	})

	t.Run("密码强度不足", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		// 太短、太长、只有字母、只有数字
		for _, password := range []string{"pass1", "abcdefghij1234567890x", "onlyletters", "12345678901"} {
			_, err := svc.Register(ctx, "alice@example.com", password, "alice")
			assert.ErrorIs(t, err, ErrWeakPassword, "password=%q", password)
		}
	})

	t.Run("用户名长度不合法", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		_, err := svc.Register(ctx, "alice@example.com", "password123", "a")
		assert.ErrorIs(t, err, ErrInvalidUsername)
	})

	t.Run("邮箱已被注册", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)

		_, err := svc.Register(ctx, "alice@example.com", "password123", "alice")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice@example.com", "password456", "alice2")
		assert.ErrorIs(t, err, ErrEmailRegistered)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Register(ctx, "bob@example.com", "password123", "bob")
	require.NoError(t, err)

	t.Run("登录成功", func(t *testing.T) {
		u, err := svc.Login(ctx, "bob@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", u.Email)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob@example.com", "wrongpassword1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("邮箱不存在返回同一个错误", func(t *testing.T) {
		// 与密码错误不可区分，避免暴露账号存在性
		_, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestSanitized(t *testing.T) {
	u := NewUser("alice@example.com", "$2a$12$hash", "alice")
	clone := u.Sanitized()

	assert.Empty(t, clone.Password)
	// 原实体不受影响
	assert.Equal(t, "$2a$12$hash", u.Password)
}
