package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/juridik/internal/client/attachments"
	"github.com/dmitrijs2005/juridik/internal/client/models"
)

var _ API = (*HTTPClient)(nil)

func (h *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	resp, err := h.do(ctx, call{
		method:    http.MethodPost,
		path:      "/auth/login",
		body:      loginRequest{Email: email, Password: password},
		noRefresh: true,
	})
	if err != nil {
		return nil, err
	}
	return decode[AuthResult](resp)
}

func (h *HTTPClient) Signup(ctx context.Context, data models.SignupData) (*AuthResult, error) {
	resp, err := h.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/signup",
		body: signupRequest{
			Email:     data.Email,
			Password:  data.Password,
			FirstName: data.FirstName,
			LastName:  data.LastName,
		},
		noRefresh: true,
	})
	if err != nil {
		return nil, err
	}
	return decode[AuthResult](resp)
}

func (h *HTTPClient) Logout(ctx context.Context) error {
	_, err := h.do(ctx, call{method: http.MethodPost, path: "/auth/logout", noRefresh: true})
	return err
}

func (h *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	resp, err := h.do(ctx, call{method: http.MethodGet, path: "/auth/me"})
	if err != nil {
		return nil, err
	}
	return decode[models.User](resp)
}

// ForgotPassword asks the backend to mail a reset link and returns its
// confirmation text.
func (h *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	resp, err := h.do(ctx, call{
		method:    http.MethodPost,
		path:      "/auth/forgot-password",
		body:      forgotPasswordRequest{Email: email},
		noRefresh: true,
	})
	if err != nil {
		return "", err
	}
	return confirmation(resp.Body()), nil
}

func (h *HTTPClient) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	resp, err := h.do(ctx, call{
		method:    http.MethodPost,
		path:      "/auth/reset-password",
		body:      resetPasswordRequest{Token: token, NewPassword: newPassword},
		noRefresh: true,
	})
	if err != nil {
		return "", err
	}
	return confirmation(resp.Body()), nil
}

func (h *HTTPClient) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	resp, err := h.do(ctx, call{method: http.MethodGet, path: "/conversations"})
	if err != nil {
		return nil, err
	}
	return decodeList[models.Conversation](resp)
}

func (h *HTTPClient) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	resp, err := h.do(ctx, call{method: http.MethodGet, path: conversationPath(id)})
	if err != nil {
		return nil, err
	}
	return decode[models.Conversation](resp)
}

func (h *HTTPClient) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	resp, err := h.do(ctx, call{method: http.MethodGet, path: conversationPath(conversationID) + "/messages"})
	if err != nil {
		return nil, err
	}
	return decodeList[models.Message](resp)
}

func (h *HTTPClient) CreateConversation(ctx context.Context) (*models.Conversation, error) {
	resp, err := h.do(ctx, call{method: http.MethodPost, path: "/conversations"})
	if err != nil {
		return nil, err
	}
	return decode[models.Conversation](resp)
}

func (h *HTTPClient) DeleteConversation(ctx context.Context, id string) error {
	_, err := h.do(ctx, call{method: http.MethodDelete, path: conversationPath(id)})
	return err
}

// SendMessage posts content to the conversation. With files the body is
// multipart (a content field plus one files part per file); without, it is
// JSON. Both go to the same path.
func (h *HTTPClient) SendMessage(ctx context.Context, conversationID, content string, files []attachments.File) (*models.SendResult, error) {
	c := call{method: http.MethodPost, path: conversationPath(conversationID) + "/messages"}
	if len(files) > 0 {
		c.form = map[string]string{"content": content}
		for _, f := range files {
			c.files = append(c.files, formFile{param: "files", file: f})
		}
	} else {
		c.body = sendMessageRequest{Content: content}
	}

	resp, err := h.do(ctx, c)
	if err != nil {
		return nil, err
	}
	return decode[models.SendResult](resp)
}

func (h *HTTPClient) ListDocuments(ctx context.Context) ([]models.UserDocument, error) {
	resp, err := h.do(ctx, call{method: http.MethodGet, path: "/documents"})
	if err != nil {
		return nil, err
	}
	return decodeList[models.UserDocument](resp)
}

func (h *HTTPClient) UploadDocument(ctx context.Context, file attachments.File) (*models.UserDocument, error) {
	resp, err := h.do(ctx, call{
		method: http.MethodPost,
		path:   "/documents/upload",
		files:  []formFile{{param: "file", file: file}},
	})
	if err != nil {
		return nil, err
	}
	return decode[models.UserDocument](resp)
}

func (h *HTTPClient) DeleteDocument(ctx context.Context, id string) error {
	_, err := h.do(ctx, call{method: http.MethodDelete, path: "/documents/" + url.PathEscape(id)})
	return err
}

// Ping reports whether the backend answers at all. Any response below 500
// counts as reachable.
func (h *HTTPClient) Ping(ctx context.Context) error {
	_, err := h.do(ctx, call{method: http.MethodGet, path: "/", noRefresh: true})

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
		return nil
	}
	return err
}

func conversationPath(id string) string {
	return "/conversations/" + url.PathEscape(id)
}

func confirmation(body []byte) string {
	var m messageResponse
	_ = json.Unmarshal(body, &m)
	return m.Message
}
