package user

import (
	"context"
	"strconv"
	"testing"

	"carbook.dev/carbook/internal/entity"
	"carbook.dev/carbook/internal/modules/user/dto"
	"carbook.dev/carbook/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	nextID uint
	users  map[uint]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeUserRepo) FindByNickname(ctx context.Context, nickname string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Nickname == nickname {
			return user, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	_, err := f.FindByNickname(ctx, nickname)
	return err == nil, nil
}

func signupForm() dto.SignupForm {
	return dto.SignupForm{
		Email:    "kim@carbook.dev",
		Nickname: "kim",
		Password: "secret-pw",
	}
}

func TestSignupHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewAuthService(repo)

	require.NoError(t, service.Signup(context.Background(), signupForm()))

	user := repo.users[1]
	require.NotNil(t, user)
	assert.NotEqual(t, "secret-pw", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-pw")))
}

func TestSignupRejectsDuplicates(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewAuthService(repo)
	require.NoError(t, service.Signup(context.Background(), signupForm()))

	dupEmail := signupForm()
	dupEmail.Nickname = "other"
	assert.ErrorIs(t, service.Signup(context.Background(), dupEmail), apperror.ErrDuplicateEmail)

	dupNickname := signupForm()
	dupNickname.Email = "other@carbook.dev"
	assert.ErrorIs(t, service.Signup(context.Background(), dupNickname), apperror.ErrDuplicateNickname)

	assert.Len(t, repo.users, 1)
}

func TestLoginIssuesTokenForUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	service := NewAuthService(repo)
	require.NoError(t, service.Signup(context.Background(), signupForm()))

	resp, err := service.Login(context.Background(), dto.LoginForm{
		Email:    "kim@carbook.dev",
		Password: "secret-pw",
	})
	require.NoError(t, err)

	assert.Equal(t, "kim", resp.Nickname)
	assert.Equal(t, "Login Success", resp.Message)

	parsed, err := jwt.ParseWithClaims(resp.Token, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, strconv.FormatUint(1, 10), claims.Subject)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewAuthService(repo)

	_, err := service.Login(context.Background(), dto.LoginForm{
		Email:    "nobody@carbook.dev",
		Password: "x",
	})
	assert.ErrorIs(t, err, apperror.ErrEmailNotExist)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewAuthService(repo)
	require.NoError(t, service.Signup(context.Background(), signupForm()))

	_, err := service.Login(context.Background(), dto.LoginForm{
		Email:    "kim@carbook.dev",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperror.ErrPasswordNotMatch)
}
