package client

import "github.com/dmitrijs2005/juridik/internal/client/models"

// AuthResult is the body of a successful login or signup.
type AuthResult struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	TokenType    string      `json:"token_type,omitempty"`
	User         models.User `json:"user"`
}

// Credential returns the token pair carried by r.
func (r AuthResult) Credential() models.Credential {
	return models.Credential{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type messageResponse struct {
	Message string `json:"message"`
}
