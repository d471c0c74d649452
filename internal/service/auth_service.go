package service

import (
	"context"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"charity-merch-api/internal/model"
	"charity-merch-api/internal/repository"
)

type UserRepository interface {
	Insert(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService issues and verifies the bearer tokens that bind requests
// to a user identity and role.
type AuthService struct {
	users  UserRepository
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	UserID string `json:"uid"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func NewAuthService(users UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl}
}

func (a *AuthService) Register(ctx context.Context, name, email, phone, password string) (*model.User, string, error) {
	salt, err := newSalt()
	if err != nil {
		return nil, "", err
	}
	now := time.Now().UTC()
	u := &model.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hashPassword(password, salt),
		Salt:         salt,
		Role:         model.RoleUser,
		LastLogin:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.users.Insert(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := a.issueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	u, err := a.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if hashPassword(password, u.Salt) != u.PasswordHash {
		return nil, "", ErrInvalidCredentials
	}

	// Login still succeeds if the timestamp write fails.
	_ = a.users.UpdateLastLogin(ctx, u.ID.Hex())

	token, err := a.issueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// VerifyToken validates the signature and expiry, then loads the user
// behind the token. The role on the returned identity comes from the
// user store, never from the token payload.
func (a *AuthService) VerifyToken(ctx context.Context, tokenStr string) (model.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return model.Identity{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return model.Identity{}, ErrInvalidToken
	}

	u, err := a.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Identity{}, ErrInvalidToken
	}
	if err != nil {
		return model.Identity{}, err
	}

	return model.Identity{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}, nil
}

func (a *AuthService) issueToken(u *model.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: u.ID.Hex(),
		Name:   u.Name,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func hashPassword(raw, salt string) string {
	sum := sha256.Sum256([]byte(salt + raw))
	return hex.EncodeToString(sum[:])
}

func newSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := crand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
