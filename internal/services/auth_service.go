package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"souq_backend/internal/auth"
	"souq_backend/internal/logger"
	"souq_backend/internal/models"
	"souq_backend/internal/provider"
	"souq_backend/internal/repositories"
	"souq_backend/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// LoginURL returns the provider consent URL for the given state.
	LoginURL(state string) string

	// HandleCallback completes the provider flow: exchanges the code,
	// finds or lazily creates the user, and issues a session token.
	HandleCallback(ctx context.Context, code string) (token string, user *models.User, err error)

	GetUser(id string) (*models.User, error)
	ListUsers() ([]models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	provider provider.Client
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repositories.UserRepository, providerClient provider.Client, tokens *auth.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		provider: providerClient,
		tokens:   tokens,
	}
}

func (s *authService) LoginURL(state string) string {
	return s.provider.AuthCodeURL(state)
}

func (s *authService) HandleCallback(ctx context.Context, code string) (string, *models.User, error) {
	profile, err := s.provider.FetchProfile(ctx, code)
	if err != nil {
		return "", nil, apperrors.Wrap(err, apperrors.CodeUnauthorized, "auth",
			"Provider login failed", http.StatusUnauthorized)
	}

	user, err := s.findOrCreateUser(ctx, profile)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, apperrors.InternalError(err)
	}
	return token, user, nil
}

func (s *authService) findOrCreateUser(ctx context.Context, profile *provider.Profile) (*models.User, error) {
	user, err := s.userRepo.FindByProviderID(profile.Subject)
	if err == nil {
		return user, nil
	}
	if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	// First login for this subject: create the record lazily. The provider
	// flow supplies no credential, so the schema-required hash is computed
	// from a generated one that can never be used to log in.
	placeholder, err := generateCredential()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(placeholder), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user = &models.User{
		ProviderID:   profile.Subject,
		DisplayName:  profile.DisplayName,
		Email:        profile.Email,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(user); err != nil {
		// A concurrent first login can win the unique-index race; in that
		// case the record now exists and is the one to use.
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			logger.CtxInfo(ctx, "concurrent first login, reusing existing user", "provider_id", profile.Subject)
			return s.userRepo.FindByProviderID(profile.Subject)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "created user on first provider login", "user_id", user.ID)
	return user, nil
}

func (s *authService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *authService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return users, nil
}

func generateCredential() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
