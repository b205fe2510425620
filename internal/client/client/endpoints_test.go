package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/juridik/internal/client/attachments"
	"github.com/dmitrijs2005/juridik/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sendReply = map[string]any{
	"userMessage":      map[string]any{"id": "m1", "role": "user", "content": "Hello", "createdAt": "2024-05-01T10:00:00"},
	"assistantMessage": map[string]any{"id": "m2", "role": "assistant", "content": "Hi", "sources": []any{}, "createdAt": "2024-05-01T10:00:01"},
}

func TestSendMessage_JSONWithoutAttachments(t *testing.T) {
	var contentType string
	var body sendMessageRequest

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/conversations/c1/messages", func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, sendReply)
	})

	env := newTestEnv(t, mux)
	res, err := env.client.SendMessage(context.Background(), "c1", "Hello", nil)
	require.NoError(t, err)

	assert.Contains(t, contentType, "application/json")
	assert.Equal(t, "Hello", body.Content)
	assert.Equal(t, "m1", res.UserMessage.ID)
	assert.Equal(t, models.MessageRoleAssistant, res.AssistantMessage.Role)
}

func TestSendMessage_MultipartWithAttachments(t *testing.T) {
	var content string
	var names []string
	var payloads []string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/conversations/c1/messages", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		content = r.FormValue("content")
		for _, fh := range r.MultipartForm.File["files"] {
			names = append(names, fh.Filename)
			f, err := fh.Open()
			require.NoError(t, err)
			b, _ := io.ReadAll(f)
			_ = f.Close()
			payloads = append(payloads, string(b))
		}
		writeJSON(w, http.StatusOK, sendReply)
	})

	env := newTestEnv(t, mux)
	files := []attachments.File{
		{Name: "a.txt", Data: []byte("first"), ContentType: attachments.MimeText},
		{Name: "b.txt", Data: []byte("second")},
	}
	_, err := env.client.SendMessage(context.Background(), "c1", "See attached", files)
	require.NoError(t, err)

	assert.Equal(t, "See attached", content)
	assert.Equal(t, []string{"a.txt", "b.txt"}, names)
	assert.Equal(t, []string{"first", "second"}, payloads)
}

func TestUploadDocument_Multipart(t *testing.T) {
	var field, name string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/documents/upload", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		for k, fhs := range r.MultipartForm.File {
			field = k
			name = fhs[0].Filename
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id": "d1", "fileName": name, "fileType": "pdf", "fileSize": 5,
			"status": "processing", "uploadedAt": "2024-05-01T10:00:00",
		})
	})

	env := newTestEnv(t, mux)
	doc, err := env.client.UploadDocument(context.Background(), attachments.File{Name: "lease.pdf", Data: []byte("%PDF-"), ContentType: attachments.MimePDF})
	require.NoError(t, err)

	assert.Equal(t, "file", field)
	assert.Equal(t, "d1", doc.ID)
	assert.Equal(t, models.DocumentProcessing, doc.Status)
	assert.Equal(t, "lease.pdf", doc.FileName)
}

func TestSignup_SendsSnakeCaseFields(t *testing.T) {
	var got map[string]string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "tok", "token_type": "bearer",
			"user": map[string]any{"user_id": "u1", "email": "a@b.com", "first_name": "Ada"},
		})
	})

	env := newTestEnv(t, mux)
	res, err := env.client.Signup(context.Background(), models.SignupData{Email: "a@b.com", Password: "pw", FirstName: "Ada"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"email": "a@b.com", "password": "pw", "first_name": "Ada"}, got)
	assert.Equal(t, "tok", res.AccessToken)
	assert.Equal(t, models.RoleUser, res.User.Role)
	assert.Equal(t, models.Credential{AccessToken: "tok"}, res.Credential())
}

func TestPasswordReset(t *testing.T) {
	var forgot forgotPasswordRequest
	var reset resetPasswordRequest

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&forgot)
		writeJSON(w, http.StatusOK, map[string]string{"message": "If the email exists, a reset link has been sent"})
	})
	mux.HandleFunc("POST /api/auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&reset)
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid or expired reset token"})
	})

	env := newTestEnv(t, mux)
	ctx := context.Background()

	msg, err := env.client.ForgotPassword(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", forgot.Email)
	assert.Equal(t, "If the email exists, a reset link has been sent", msg)

	_, err = env.client.ResetPassword(ctx, "tok", "newpw")
	require.Error(t, err)
	assert.Equal(t, "tok", reset.Token)
	assert.Equal(t, "newpw", reset.NewPassword)
	assert.Equal(t, "Invalid or expired reset token", UserMessage(err, ""))
}

func TestConversationEndpoints(t *testing.T) {
	var deleted string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/conversations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": "c9", "title": "New Conversation", "messageCount": 0, "lastMessageAt": nil, "createdAt": "2024-05-01T10:00:00"})
	})
	mux.HandleFunc("GET /api/conversations/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": r.PathValue("id"), "title": "T", "messageCount": 2})
	})
	mux.HandleFunc("GET /api/conversations/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{map[string]any{"id": "m1", "role": "user", "content": "q"}})
	})
	mux.HandleFunc("DELETE /api/conversations/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = r.PathValue("id")
		writeJSON(w, http.StatusOK, map[string]string{"message": "Conversation deleted successfully"})
	})

	env := newTestEnv(t, mux)
	ctx := context.Background()

	created, err := env.client.CreateConversation(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c9", created.ID)
	assert.True(t, created.LastMessageAt.IsZero())

	got, err := env.client.GetConversation(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	msgs, err := env.client.ListMessages(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	require.NoError(t, env.client.DeleteConversation(ctx, created.ID))
	assert.Equal(t, "c9", deleted)
}
