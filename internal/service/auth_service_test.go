package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trem-do-bem/internal/auth"
	"trem-do-bem/internal/model"
)

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name  string
		req   *model.LoginRequest
		token string
		err   error
	}{
		{
			name:  "Success",
			req:   &model.LoginRequest{User: "admin", Pass: "s3cret"},
			token: "signed-token",
		},
		{
			name: "Missing password",
			req:  &model.LoginRequest{User: "admin"},
			err:  model.ErrMissingCredentials,
		},
		{
			name: "Blank user",
			req:  &model.LoginRequest{User: "   ", Pass: "s3cret"},
			err:  model.ErrMissingCredentials,
		},
		{
			name: "Wrong password",
			req:  &model.LoginRequest{User: "admin", Pass: "nope"},
			err:  model.ErrInvalidCredentials,
		},
		{
			name: "Wrong user",
			req:  &model.LoginRequest{User: "root", Pass: "s3cret"},
			err:  model.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := new(MockCredential)
			if tt.token != "" {
				cred.On("Issue", "admin", auth.RoleAdmin).Return(tt.token, nil)
			}
			svc := NewAuthService("admin", auth.NewPasswordChecker("s3cret", ""), cred, zerolog.Nop())

			resp, err := svc.Login(context.Background(), tt.req)

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, resp)
				cred.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &model.LoginResponse{Token: tt.token, User: "admin"}, resp)
			cred.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_IssueFailure(t *testing.T) {
	cred := new(MockCredential)
	cred.On("Issue", "admin", auth.RoleAdmin).Return("", errors.New("no key"))
	svc := NewAuthService("admin", auth.NewPasswordChecker("s3cret", ""), cred, zerolog.Nop())

	_, err := svc.Login(context.Background(), &model.LoginRequest{User: "admin", Pass: "s3cret"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to issue token")
}
