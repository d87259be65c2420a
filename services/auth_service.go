package services

import (
	"errors"
	"strings"
	"time"

	"safra-backend/entity"
	"safra-backend/repository"
	"safra-backend/utils"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the one answer for every login failure so a
// caller cannot tell a wrong password from a missing account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialVerifier checks a credential pair against one concrete
// backing strategy.
type CredentialVerifier interface {
	Verify(email, password string) (*entity.User, error)
}

// tableVerifier compares against the bcrypt hash stored on the users
// table.
type tableVerifier struct {
	users *repository.UserRepository
}

func NewTableVerifier(users *repository.UserRepository) CredentialVerifier {
	return &tableVerifier{users: users}
}

func (v *tableVerifier) Verify(email, password string) (*entity.User, error) {
	user, err := v.users.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

type AuthService struct {
	userRepo  *repository.UserRepository
	verifier  CredentialVerifier
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, verifier CredentialVerifier, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		verifier:  verifier,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

// Register creates a seller account. Record creation stays open to any
// logged-in seller; only the review console needs the admin role.
func (s *AuthService) Register(email, password, name string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	user := &entity.User{
		Email:    email,
		Password: string(hashed),
		Name:     strings.TrimSpace(name),
		Role:     entity.RoleSeller,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a session token. The token
// carries isAdmin so the client can route, but the role check is redone
// server-side on every admin endpoint.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.verifier.Verify(email, password)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Name, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(userID)
}
