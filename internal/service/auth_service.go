package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"department-service/internal/model"
	"department-service/internal/repository"
	"department-service/internal/token"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoUsers            = errors.New("no users found")
)

type AuthService interface {
	Register(ctx context.Context, newUser *model.User, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	PromoteFirstUser(ctx context.Context) (*model.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Emails are stored lowercased so uniqueness and lookups ignore casing.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, newUser *model.User, password string) (*model.User, string, error) {
	newUser.Email = normalizeEmail(newUser.Email)

	existing, err := s.userRepo.FindByEmail(ctx, newUser.Email)

	if err != nil {
		return nil, "", err
	}

	if existing != nil {
		return nil, "", ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, "", err
	}

	newUser.PasswordHash = string(hashedPassword)
	if newUser.Role == "" {
		newUser.Role = model.RoleStudent
	}

	newID, err := s.userRepo.Create(ctx, newUser)

	if err != nil {
		// The unique index backstops the check above under concurrent signups.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, "", ErrDuplicateEmail
		}
		return nil, "", err
	}

	newUser.ID = newID

	sessionToken, err := s.tokens.Issue(newUser)
	if err != nil {
		return nil, "", err
	}

	return newUser, sessionToken, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))

	if err != nil {
		return nil, "", err
	}

	// Unknown email and wrong password are reported identically.
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	sessionToken, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	return user, sessionToken, nil
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)

	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *authService) PromoteFirstUser(ctx context.Context) (*model.User, error) {
	user, err := s.userRepo.PromoteFirstUser(ctx)

	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrNoUsers
	}

	return user, nil
}

func (s *authService) CountUsers(ctx context.Context) (int, error) {
	return s.userRepo.Count(ctx)
}
