package auth

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// ErrDuplicateEmail is returned when registering with an email that already exists.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrInvalidCredentials is returned on unknown email or wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is the authenticated account as seen by the rest of the system:
// the owner id that scopes every ledger query, plus display fields.
type Identity struct {
	ID    uuid.UUID
	Email string
	Name  string
}

type Service interface {
	Register(ctx context.Context, email, password, name string) (*Identity, error)
	Login(ctx context.Context, email, password string) (string, *Identity, error)
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

type service struct {
	repo   *Repository
	secret []byte
}

func NewService(repo *Repository) *service {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "supersecretdev"
	}
	return &service{repo: repo, secret: []byte(secret)}
}

// Ensure service implements Service at compile time.
var _ Service = (*service)(nil)

type claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

func (s *service) Register(ctx context.Context, email, password, name string) (*Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, email, string(hash), name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return id, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *Identity, error) {
	id, hash, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if id == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.issueToken(id)
	if err != nil {
		return "", nil, err
	}
	return token, id, nil
}

func (s *service) issueToken(id *Identity) (string, error) {
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Name: id.Name,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return tok.SignedString(s.secret)
}

func (s *service) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	tok, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	c, ok := tok.Claims.(*claims)
	if !ok || !tok.Valid {
		return uuid.Nil, errors.New("invalid token")
	}
	return uuid.Parse(c.Subject)
}
