package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gopherblog/internal/model"
	"gopherblog/internal/pkg/jwtutil"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUserNotFound      = errors.New("user not found")
	ErrPasswordIncorrect = errors.New("password incorrect")
	ErrWeakPassword      = errors.New("password too weak: need at least 8 characters with a letter, a digit and a symbol")
	ErrDuplicateUsername = errors.New("username already exists")
)

// AccountStore is the slice of the account repository the auth service needs.
type AccountStore interface {
	Create(account *model.Account) error
	GetByUsername(username string) (*model.Account, error)
	GetByID(id uint) (*model.Account, error)
}

type AuthService struct {
	accounts      AccountStore
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token   string
	Account *model.Account
}

func NewAuthService(accounts AccountStore, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		accounts:      accounts,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register creates the account only; no session credential is issued, the
// caller is sent to the login page.
func (s *AuthService) Register(input RegisterInput) (*model.Account, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrInvalidInput
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.accounts.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	account := &model.Account{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.accounts.Create(account); err != nil {
		// Two registrations can race past the pre-check; the unique index
		// decides and the loser is rejected, never overwritten.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return account, nil
}

// Login verifies the credentials and issues a session token. It never holds
// the plaintext password beyond the bcrypt comparison.
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	account, err := s.accounts.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, account.ID, account.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Account: account}, nil
}

func (s *AuthService) GetAccountByID(id uint) (*model.Account, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.accounts.GetByID(id)
}
