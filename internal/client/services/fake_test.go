package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/juridik/internal/client/attachments"
	"github.com/dmitrijs2005/juridik/internal/client/client"
	"github.com/dmitrijs2005/juridik/internal/client/models"
)

// fakeClient implements client.API for manager tests. Results are preset
// per method; arguments are recorded for assertions.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	LoginRet  *client.AuthResult
	LoginErr  error
	SignupRet *client.AuthResult
	SignupErr error
	LogoutErr error
	MeRet     *models.User
	MeErr     error

	ForgotRet string
	ForgotErr error
	ResetRet  string
	ResetErr  error

	ListConvRet   []models.Conversation
	ListConvErr   error
	GetConvRet    map[string]*models.Conversation
	GetConvErr    error
	ListMsgRet    map[string][]models.Message
	ListMsgErr    error
	CreateConvRet *models.Conversation
	CreateConvErr error
	DeleteConvErr error

	// SendHook, when set, runs before SendMessage returns.
	SendHook func()
	SendRet  *models.SendResult
	SendErr  error

	ListDocRet   []models.UserDocument
	ListDocErr   error
	UploadRet    *models.UserDocument
	UploadErr    error
	DeleteDocErr error

	LastLoginEmail    string
	LastSignup        models.SignupData
	LastSendConvID    string
	LastSendContent   string
	LastSendFiles     []attachments.File
	LastUpload        attachments.File
	LastDeletedConvID string
	LastDeletedDocID  string
}

var _ client.API = (*fakeClient)(nil)

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) count(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeClient) Login(_ context.Context, email, _ string) (*client.AuthResult, error) {
	f.record("Login")
	f.LastLoginEmail = email
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Signup(_ context.Context, data models.SignupData) (*client.AuthResult, error) {
	f.record("Signup")
	f.LastSignup = data
	return f.SignupRet, f.SignupErr
}

func (f *fakeClient) Logout(context.Context) error {
	f.record("Logout")
	return f.LogoutErr
}

func (f *fakeClient) Me(context.Context) (*models.User, error) {
	f.record("Me")
	return f.MeRet, f.MeErr
}

func (f *fakeClient) ForgotPassword(context.Context, string) (string, error) {
	f.record("ForgotPassword")
	return f.ForgotRet, f.ForgotErr
}

func (f *fakeClient) ResetPassword(context.Context, string, string) (string, error) {
	f.record("ResetPassword")
	return f.ResetRet, f.ResetErr
}

func (f *fakeClient) ListConversations(context.Context) ([]models.Conversation, error) {
	f.record("ListConversations")
	return f.ListConvRet, f.ListConvErr
}

func (f *fakeClient) GetConversation(_ context.Context, id string) (*models.Conversation, error) {
	f.record("GetConversation")
	if f.GetConvErr != nil {
		return nil, f.GetConvErr
	}
	return f.GetConvRet[id], nil
}

func (f *fakeClient) ListMessages(_ context.Context, id string) ([]models.Message, error) {
	f.record("ListMessages")
	if f.ListMsgErr != nil {
		return nil, f.ListMsgErr
	}
	return f.ListMsgRet[id], nil
}

func (f *fakeClient) CreateConversation(context.Context) (*models.Conversation, error) {
	f.record("CreateConversation")
	return f.CreateConvRet, f.CreateConvErr
}

func (f *fakeClient) DeleteConversation(_ context.Context, id string) error {
	f.record("DeleteConversation")
	f.LastDeletedConvID = id
	return f.DeleteConvErr
}

func (f *fakeClient) SendMessage(_ context.Context, convID, content string, files []attachments.File) (*models.SendResult, error) {
	f.record("SendMessage")
	f.LastSendConvID = convID
	f.LastSendContent = content
	f.LastSendFiles = files
	if f.SendHook != nil {
		f.SendHook()
	}
	return f.SendRet, f.SendErr
}

func (f *fakeClient) ListDocuments(context.Context) ([]models.UserDocument, error) {
	f.record("ListDocuments")
	return f.ListDocRet, f.ListDocErr
}

func (f *fakeClient) UploadDocument(_ context.Context, file attachments.File) (*models.UserDocument, error) {
	f.record("UploadDocument")
	f.LastUpload = file
	return f.UploadRet, f.UploadErr
}

func (f *fakeClient) DeleteDocument(_ context.Context, id string) error {
	f.record("DeleteDocument")
	f.LastDeletedDocID = id
	return f.DeleteDocErr
}

func (f *fakeClient) Ping(context.Context) error {
	f.record("Ping")
	return nil
}
