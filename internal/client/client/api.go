package client

import (
	"context"

	"github.com/dmitrijs2005/juridik/internal/client/attachments"
	"github.com/dmitrijs2005/juridik/internal/client/models"
)

// API is the backend surface used by the managers.
type API interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Signup(ctx context.Context, data models.SignupData) (*AuthResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)

	ListConversations(ctx context.Context) ([]models.Conversation, error)
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)
	ListMessages(ctx context.Context, conversationID string) ([]models.Message, error)
	CreateConversation(ctx context.Context) (*models.Conversation, error)
	DeleteConversation(ctx context.Context, id string) error
	SendMessage(ctx context.Context, conversationID, content string, files []attachments.File) (*models.SendResult, error)

	ListDocuments(ctx context.Context) ([]models.UserDocument, error)
	UploadDocument(ctx context.Context, file attachments.File) (*models.UserDocument, error)
	DeleteDocument(ctx context.Context, id string) error

	Ping(ctx context.Context) error
}
