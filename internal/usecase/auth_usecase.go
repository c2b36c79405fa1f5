package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthUsecase は会員登録・ログイン・トークン更新です。
// コアの各操作は認証済みActorを受け取るだけで、検証はここで完結させる
type AuthUsecase struct {
	userRepo   repo.UserRepository
	tokenRepo  repo.RefreshTokenRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	bcryptCost int
}

func NewAuthUsecase(
	userRepo repo.UserRepository,
	tokenRepo repo.RefreshTokenRepository,
	jwtSecret string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		bcryptCost: 12,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterOutput struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Role         string    `json:"role"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (RegisterOutput, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" {
		return RegisterOutput{}, NewError(KindValidation, "name required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return RegisterOutput{}, NewError(KindValidation, "invalid email")
	}
	if len(in.Password) < 8 {
		return RegisterOutput{}, NewError(KindValidation, "password must be at least 8 characters")
	}

	_, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return RegisterOutput{}, NewError(KindValidation, "email already registered")
	}
	if err != repo.ErrNotFound {
		return RegisterOutput{}, NewError(KindInternal, "db error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return RegisterOutput{}, NewError(KindInternal, "hash error")
	}

	//最初のユーザーだけ管理者にする
	count, err := u.userRepo.Count(ctx)
	if err != nil {
		return RegisterOutput{}, NewError(KindInternal, "db error")
	}
	role := model.RoleCustomer
	if count == 0 {
		role = model.RoleAdmin
	}

	now := time.Now()
	created, err := u.userRepo.Create(ctx, model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err == repo.ErrDuplicate {
		//事前チェックのあと別の登録とレースした場合
		return RegisterOutput{}, NewError(KindValidation, "email already registered")
	}
	if err != nil {
		return RegisterOutput{}, NewError(KindInternal, "db error")
	}

	return RegisterOutput{
		ID:    created.ID,
		Name:  created.Name,
		Email: created.Email,
		Role:  string(created.Role),
	}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return LoginOutput{}, NewError(KindValidation, "email and password required")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		//存在有無は漏らさない
		return LoginOutput{}, NewError(KindValidation, "invalid email or password")
	}
	if err != nil {
		return LoginOutput{}, NewError(KindInternal, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewError(KindValidation, "invalid email or password")
	}

	return u.issueTokens(ctx, user)
}

// Refresh はリフレッシュトークンを使い捨てで回転させる
func (u *AuthUsecase) Refresh(ctx context.Context, plainToken string) (LoginOutput, error) {
	plainToken = strings.TrimSpace(plainToken)
	if plainToken == "" {
		return LoginOutput{}, NewError(KindValidation, "refresh_token required")
	}

	t, err := u.tokenRepo.FindByTokenHash(ctx, hashToken(plainToken))
	if err == repo.ErrNotFound {
		return LoginOutput{}, NewError(KindForbidden, "invalid refresh token")
	}
	if err != nil {
		return LoginOutput{}, NewError(KindInternal, "db error")
	}
	if t.RevokedAt != nil || time.Now().After(t.ExpiresAt) {
		return LoginOutput{}, NewError(KindForbidden, "invalid refresh token")
	}

	user, err := u.userRepo.FindByID(ctx, t.UserID)
	if err == repo.ErrNotFound {
		return LoginOutput{}, NewError(KindForbidden, "invalid refresh token")
	}
	if err != nil {
		return LoginOutput{}, NewError(KindInternal, "db error")
	}

	//旧トークンは失効させてから発行し直す
	if err := u.tokenRepo.Revoke(ctx, t.ID); err != nil {
		return LoginOutput{}, NewError(KindInternal, "db error")
	}

	return u.issueTokens(ctx, user)
}

func (u *AuthUsecase) issueTokens(ctx context.Context, user model.User) (LoginOutput, error) {
	now := time.Now()
	expiresAt := now.Add(u.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(u.jwtSecret)
	if err != nil {
		return LoginOutput{}, NewError(KindInternal, "token error")
	}

	refreshPlain := uuid.NewString()
	if err := u.tokenRepo.Create(ctx, model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: hashToken(refreshPlain),
		ExpiresAt: now.Add(u.refreshTTL),
		CreatedAt: now,
	}); err != nil {
		return LoginOutput{}, NewError(KindInternal, "db error")
	}

	return LoginOutput{
		AccessToken:  signed,
		RefreshToken: refreshPlain,
		ExpiresAt:    expiresAt,
		Role:         string(user.Role),
	}, nil
}

// 平文は保存しない
func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
