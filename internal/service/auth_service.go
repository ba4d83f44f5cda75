package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"hoa-service/internal/apperr"
	"hoa-service/internal/model"
	"hoa-service/internal/repository"
	"hoa-service/pkg/hash"
	"hoa-service/pkg/jwtutil"
	"hoa-service/pkg/validate"
)

// AuthService orchestrates credential verification and token issuance.
type AuthService struct {
	users  repository.UserRepository
	tokens *jwtutil.JWTUtil
	log    *zap.Logger
}

// NewAuthService creates the authentication service.
func NewAuthService(users repository.UserRepository, tokens *jwtutil.JWTUtil, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// RegisterInput carries a registration request into the service.
type RegisterInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Role       model.Role
	NationalID *string
}

// TokenPair is the access/refresh token pair issued on login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register validates and persists a new principal with a hashed credential.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if !input.Role.Valid() {
		return nil, apperr.Newf(apperr.KindValidation, "role must be %s or %s", model.RoleManager, model.RoleMember)
	}
	if !validate.Name(input.FirstName) || !validate.Name(input.LastName) {
		return nil, apperr.New(apperr.KindValidation, "names may only contain letters, spaces and hyphens")
	}
	if failures := validate.Password(input.Password); len(failures) > 0 {
		return nil, apperr.New(apperr.KindValidation, "password does not meet the policy").
			WithDetails(map[string]interface{}{"rules": failures})
	}

	var nationalID *string
	if input.NationalID != nil && *input.NationalID != "" {
		if !validate.NationalID(*input.NationalID) {
			return nil, apperr.New(apperr.KindValidation, "national id must be 10 digits with a valid day and month")
		}
		normalized := validate.NormalizeNationalID(*input.NationalID)
		nationalID = &normalized
	}

	// Pre-checks for friendlier errors; the store's unique constraints are
	// the final arbiter under races.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.New(apperr.KindAlreadyExists, "email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err)
	}
	if nationalID != nil {
		if _, err := s.users.FindByNationalID(ctx, *nationalID); err == nil {
			return nil, apperr.New(apperr.KindAlreadyExists, "national id already registered")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Internal(err)
		}
	}

	hashed, err := hash.Password(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &model.User{
		Email:      email,
		Password:   hashed,
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Role:       input.Role,
		NationalID: nationalID,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.KindAlreadyExists, "email or national id already registered")
		}
		return nil, apperr.Internal(err)
	}

	s.log.Info("User registered",
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))
	return user, nil
}

// Authenticate looks up the principal by email and verifies the credential.
// Unknown email and wrong password both return (nil, nil) so callers cannot
// produce distinguishable responses for account enumeration.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal(err)
	}

	if !hash.Verify(password, user.Password) {
		return nil, nil
	}

	return user, nil
}

// IssueTokenPair mints an access and a refresh token for the principal.
func (s *AuthService) IssueTokenPair(user *model.User) (*TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshAccessToken verifies a refresh token and mints a fresh access token.
// The principal is re-fetched so deletion or a role change since issuance
// invalidates the refresh token. Every failure collapses into the same
// invalid-refresh-token error.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken, jwtutil.KindRefresh)
	if err != nil {
		return "", apperr.New(apperr.KindTokenInvalid, "invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", apperr.New(apperr.KindTokenInvalid, "invalid refresh token")
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", apperr.Internal(err)
	}
	return accessToken, nil
}
