package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/dmitrijs2005/juridik/internal/client/attachments"
	"github.com/dmitrijs2005/juridik/internal/client/config"
	"github.com/dmitrijs2005/juridik/internal/client/models"
	"github.com/dmitrijs2005/juridik/internal/client/services"
	"github.com/dmitrijs2005/juridik/internal/logging"
)

type fakeAuth struct {
	state services.AuthState

	loginOK    bool
	loginEmail string
	loginPass  string
	signupOK   bool
	signup     models.SignupData
	forgotOK   bool
	forgotTo   string
	resetOK    bool
	resetToken string
	resetPass  string

	failWith     string
	logoutCalled bool
	checkCalled  bool
	cleared      int
}

var _ services.AuthManager = (*fakeAuth)(nil)

func (f *fakeAuth) State() services.AuthState { return f.state }
func (f *fakeAuth) Subscribe(func(services.AuthState)) func() { return func() {} }

func (f *fakeAuth) Login(_ context.Context, email, password string) bool {
	f.loginEmail, f.loginPass = email, password
	return f.outcome(f.loginOK)
}

func (f *fakeAuth) Signup(_ context.Context, data models.SignupData) bool {
	f.signup = data
	return f.outcome(f.signupOK)
}

func (f *fakeAuth) Logout(context.Context) {
	f.logoutCalled = true
	f.state = services.AuthState{}
}

func (f *fakeAuth) CheckAuth(context.Context) { f.checkCalled = true }

func (f *fakeAuth) ForgotPassword(_ context.Context, email string) bool {
	f.forgotTo = email
	if f.forgotOK {
		f.state.Notice = "Reset link sent"
	}
	return f.outcome(f.forgotOK)
}

func (f *fakeAuth) ResetPassword(_ context.Context, token, pw string) bool {
	f.resetToken, f.resetPass = token, pw
	if f.resetOK {
		f.state.Notice = "Password updated"
	}
	return f.outcome(f.resetOK)
}

func (f *fakeAuth) ClearError() {
	f.cleared++
	f.state.Error = ""
}

func (f *fakeAuth) outcome(ok bool) bool {
	if ok {
		f.state.Authenticated = true
		f.state.User = &models.User{Email: "alice@example.org", FirstName: "Alice"}
		return true
	}
	f.state.Error = f.failWith
	return false
}

type fakeChat struct {
	state services.ChatState

	sendOK    bool
	sendText  string
	sendFiles []attachments.File
	reply     models.Message

	selectOK  bool
	selected  string
	createOK  bool
	deleteOK  bool
	deleted   string
	fetched   int
	cleared   bool
	errString string
}

var _ services.ChatManager = (*fakeChat)(nil)

func (f *fakeChat) State() services.ChatState { return f.state }
func (f *fakeChat) Subscribe(func(services.ChatState)) func() { return func() {} }
func (f *fakeChat) FetchConversations(context.Context) { f.fetched++ }
func (f *fakeChat) Wait() {}
func (f *fakeChat) ClearError() { f.state.Error = "" }

func (f *fakeChat) SelectConversation(_ context.Context, id string) bool {
	f.selected = id
	if !f.selectOK {
		f.state.Error = f.errString
		return false
	}
	f.state.Current = &models.Conversation{ID: id}
	return true
}

func (f *fakeChat) CreateConversation(context.Context) (string, bool) {
	if !f.createOK {
		f.state.Error = f.errString
		return "", false
	}
	f.state.Current = &models.Conversation{ID: "c-new"}
	return "c-new", true
}

func (f *fakeChat) DeleteConversation(_ context.Context, id string) bool {
	f.deleted = id
	if !f.deleteOK {
		f.state.Error = f.errString
	}
	return f.deleteOK
}

func (f *fakeChat) SendMessage(_ context.Context, content string, files []attachments.File) bool {
	f.sendText, f.sendFiles = content, files
	if !f.sendOK {
		f.state.Error = f.errString
		return false
	}
	f.state.Timeline, _ = f.state.Timeline.Append(models.Message{ID: "temp-1", Role: models.MessageRoleUser, Content: content})
	f.state.Timeline = f.state.Timeline.Commit(
		models.Message{ID: "u1", Role: models.MessageRoleUser, Content: content},
		f.reply,
	)
	return true
}

func (f *fakeChat) ClearMessages() {
	f.cleared = true
	f.state.Current = nil
}

type fakeDocs struct {
	state services.DocumentState

	fetchOK   bool
	uploadOK  bool
	uploaded  attachments.File
	retried   string
	deleteOK  bool
	deleted   string
	errString string
}

var _ services.DocumentManager = (*fakeDocs)(nil)

func (f *fakeDocs) State() services.DocumentState { return f.state }
func (f *fakeDocs) Subscribe(func(services.DocumentState)) func() { return func() {} }
func (f *fakeDocs) ClearError() { f.state.Error = "" }

func (f *fakeDocs) FetchDocuments(context.Context) bool {
	if !f.fetchOK {
		f.state.Error = f.errString
	}
	return f.fetchOK
}

func (f *fakeDocs) UploadDocument(_ context.Context, file attachments.File) (string, bool) {
	f.uploaded = file
	if !f.uploadOK {
		f.state.Error = f.errString
		f.state.Documents = append(f.state.Documents, models.UserDocument{
			ID: "temp-9", FileName: file.Name, Status: models.DocumentFailed,
		})
		return "", false
	}
	return "d9", true
}

func (f *fakeDocs) RetryUpload(_ context.Context, id string) (string, bool) {
	f.retried = id
	if !f.uploadOK {
		f.state.Error = f.errString
		return "", false
	}
	return "d9", true
}

func (f *fakeDocs) DeleteDocument(_ context.Context, id string) bool {
	f.deleted = id
	if !f.deleteOK {
		f.state.Error = f.errString
	}
	return f.deleteOK
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

// newTestApp builds an App reading input from lines and writing to the
// returned buffer.
func newTestApp(auth *fakeAuth, chat *fakeChat, docs *fakeDocs, lines ...string) (*App, *bytes.Buffer) {
	if auth == nil {
		auth = &fakeAuth{}
	}
	if chat == nil {
		chat = &fakeChat{}
	}
	if docs == nil {
		docs = &fakeDocs{}
	}
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()

	return &App{
		config:   cfg,
		log:      logging.Nop(),
		auth:     auth,
		chat:     chat,
		docs:     docs,
		reader:   readerFromLines(lines...),
		out:      out,
		renderer: plainRenderer{},
	}, out
}

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 {
		return bufio.NewReader(strings.NewReader(""))
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// stubPassword makes getPassword return pw without touching the terminal.
func stubPassword(pw string) func() {
	orig := getPassword
	getPassword = func(string, io.Writer) (string, error) { return pw, nil }
	return func() { getPassword = orig }
}
