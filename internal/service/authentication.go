// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lightbnb/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid session")
	ErrMissingSecret      = errors.New("jwt secret not configured")
)

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// UserStore is the part of the query gateway the authenticator needs.
type UserStore interface {
	GetUserWithEmail(ctx context.Context, email string) (*model.User, error)
	GetUserWithID(ctx context.Context, id int) (*model.User, error)
	AddUser(ctx context.Context, u *model.User) (*model.User, error)
}

// SessionClaims is the JWT payload identifying a signed-in user.
type SessionClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
}

func NewAuthenticator(users UserStore, secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{users: users, secret: []byte(secret), ttl: ttl}
}

// SignUp stores a new user with a hashed password. Emails are stored in
// lower case so later logins match regardless of how they were typed.
func (a *Authenticator) SignUp(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("SignUp: %w", err)
	}
	u, err := a.users.AddUser(ctx, &model.User{
		Name:     name,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("SignUp: %w", err)
	}
	return u, nil
}

// Login returns the user owning email when password matches.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := a.users.GetUserWithEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("Login: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := ComparePassword(u.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueSessionToken signs an HS256 token carrying the user's id.
func (a *Authenticator) IssueSessionToken(u *model.User) (string, error) {
	if len(a.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := timeNow()
	claims := SessionClaims{
		UserID: u.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// RestoreSession verifies token and loads the user it was issued for.
func (a *Authenticator) RestoreSession(ctx context.Context, tokenString string) (*model.User, error) {
	if len(a.secret) == 0 {
		return nil, ErrMissingSecret
	}

	token, err := parseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	u, err := a.users.GetUserWithID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("RestoreSession: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidSession
	}
	return u, nil
}
