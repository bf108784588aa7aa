package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"trem-do-bem/internal/auth"
	"trem-do-bem/internal/model"
)

// authService implements AuthService for the single configured admin.
type authService struct {
	adminUser  string
	passwords  auth.PasswordChecker
	credential auth.Credential
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(adminUser string, passwords auth.PasswordChecker, credential auth.Credential, logger zerolog.Logger) AuthService {
	return &authService{
		adminUser:  adminUser,
		passwords:  passwords,
		credential: credential,
		logger:     logger.With().Str("service", "auth").Logger(),
	}
}

// Login checks the admin credentials and issues a session token.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req == nil {
		return nil, model.ErrMissingCredentials
	}

	user := strings.TrimSpace(req.User)
	if err := validate.Struct(&model.LoginRequest{User: user, Pass: req.Pass}); err != nil {
		return nil, model.ErrMissingCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.adminUser)) == 1
	passOK := s.passwords.Check(req.Pass)
	if !userOK || !passOK {
		s.logger.Warn().Str("user", user).Msg("rejected admin login")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.credential.Issue(user, auth.RoleAdmin)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to issue admin token")
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("user", user).Msg("admin logged in")
	return &model.LoginResponse{Token: token, User: user}, nil
}
