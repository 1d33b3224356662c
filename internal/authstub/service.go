package authstub

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawconnect/platform/internal/core/domain"
)

// Service implements registration, login, and profile updates for the stub.
type Service struct {
	repo      Repository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(repo Repository, jwtSecret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Service{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// NewAccount is the registration payload.
type NewAccount struct {
	Email                string
	Password             string
	Name                 string
	Role                 domain.Role
	Phone                string
	Organization         string
	VerificationDocument string
}

// RegisterResult carries either an authenticated account (with token) or a
// pending-verification marker, never both.
type RegisterResult struct {
	Account              *Account
	Token                string
	RequiresVerification bool
}

// Register creates an account. NGO admin and veterinarian accounts start
// unverified and get no token; everyone else is authenticated immediately.
func (s *Service) Register(ctx context.Context, in NewAccount) (*RegisterResult, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &Account{
		User: domain.User{
			Email:        in.Email,
			Name:         in.Name,
			Role:         in.Role,
			Phone:        in.Phone,
			Organization: in.Organization,
			CreatedAt:    time.Now().UTC(),
		},
		PasswordHash:         string(hash),
		Verified:             !in.Role.RequiresVerification(),
		VerificationDocument: in.VerificationDocument,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	if !created.Verified {
		return &RegisterResult{Account: created, RequiresVerification: true}, nil
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}
	return &RegisterResult{Account: created, Token: token}, nil
}

// Login authenticates by email and password. Unverified accounts are
// rejected with domain.ErrVerificationPending.
func (s *Service) Login(ctx context.Context, email, password string) (string, *Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !account.Verified {
		return "", nil, domain.ErrVerificationPending
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// ProfileChanges is the profile-update payload. A password change requires
// the current password.
type ProfileChanges struct {
	Name            *string
	Phone           *string
	Organization    *string
	Avatar          *string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile applies changes to the account identified by the token. The
// role never changes through this path.
func (s *Service) UpdateProfile(ctx context.Context, token string, changes ProfileChanges) (*Account, error) {
	accountID, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		account.User.Name = *changes.Name
	}
	if changes.Phone != nil {
		account.User.Phone = *changes.Phone
	}
	if changes.Organization != nil {
		account.User.Organization = *changes.Organization
	}
	if changes.Avatar != nil {
		account.User.Avatar = *changes.Avatar
	}

	if changes.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(changes.CurrentPassword)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(changes.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = string(hash)
	}

	return s.repo.Update(ctx, account)
}

func (s *Service) generateToken(account *Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":   account.User.ID,
		"email": account.User.Email,
		"role":  string(account.User.Role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// parseToken validates the bearer token and returns the account ID.
func (s *Service) parseToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidCredentials
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrInvalidCredentials
	}
	return sub, nil
}
