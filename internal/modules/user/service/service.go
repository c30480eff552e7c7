package user

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"carbook.dev/carbook/internal/entity"
	"carbook.dev/carbook/internal/modules/user/dto"
	userRepo "carbook.dev/carbook/internal/modules/user/repository"
	"carbook.dev/carbook/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Signup(ctx context.Context, form dto.SignupForm) error
	Login(ctx context.Context, form dto.LoginForm) (*dto.AuthResponse, error)
}

type authService struct {
	repo     userRepo.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo userRepo.UserRepository) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	ttl := time.Hour
	if ttlStr := os.Getenv("JWT_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: ttl,
	}
}

func (s *authService) Signup(ctx context.Context, form dto.SignupForm) error {
	emailTaken, err := s.repo.ExistsByEmail(ctx, form.Email)
	if err != nil {
		return err
	}
	if emailTaken {
		return apperror.ErrDuplicateEmail
	}

	nicknameTaken, err := s.repo.ExistsByNickname(ctx, form.Nickname)
	if err != nil {
		return err
	}
	if nicknameTaken {
		return apperror.ErrDuplicateNickname
	}

	// Credentials are stored bcrypt-hashed, never compared by equality.
	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &entity.User{
		Email:        form.Email,
		Nickname:     form.Nickname,
		PasswordHash: string(hashed),
	}

	return s.repo.Create(ctx, user)
}

func (s *authService) Login(ctx context.Context, form dto.LoginForm) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, form.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ErrEmailNotExist
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		return nil, apperror.ErrPasswordNotMatch
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:    token,
		Nickname: user.Nickname,
		Message:  "Login Success",
	}, nil
}

func (s *authService) signToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
