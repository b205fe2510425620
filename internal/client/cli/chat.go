package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/juridik/internal/client/attachments"
	"github.com/dmitrijs2005/juridik/internal/client/models"
)

// List refreshes and prints the conversations; the open one is starred.
func (a *App) List(ctx context.Context) error {
	a.chat.FetchConversations(ctx)

	s := a.chat.State()
	if len(s.Conversations) == 0 {
		a.println("No conversations yet. Use 'send' to start one.")
		return nil
	}
	for _, c := range s.Conversations {
		mark := " "
		if s.Current != nil && s.Current.ID == c.ID {
			mark = "*"
		}
		title := c.Title
		if title == "" {
			title = "(untitled)"
		}
		a.printf("%s %s  %s  [%d messages]\n", mark, c.ID, title, c.MessageCount)
	}
	return nil
}

// New creates an empty conversation and makes it current.
func (a *App) New(ctx context.Context) error {
	id, ok := a.chat.CreateConversation(ctx)
	if !ok {
		return stateError(a.chat.State().Error, a.chat.ClearError)
	}
	a.printf("Started conversation %s\n", id)
	return nil
}

// Open makes a conversation current and prints its history.
func (a *App) Open(ctx context.Context, args []string) error {
	id, err := oneArg(args, "open <conversation-id>")
	if err != nil {
		return err
	}
	if !a.chat.SelectConversation(ctx, id) {
		return stateError(a.chat.State().Error, a.chat.ClearError)
	}
	return a.History(ctx)
}

// Delete removes a conversation after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := oneArg(args, "delete <conversation-id>")
	if err != nil {
		return err
	}
	if !a.confirm("Delete conversation " + id + "?") {
		return nil
	}
	if !a.chat.DeleteConversation(ctx, id) {
		return stateError(a.chat.State().Error, a.chat.ClearError)
	}
	a.println("Deleted")
	return nil
}

// Send posts a message with any staged attachments and prints the reply.
// Without arguments the message is read as multi-line input.
func (a *App) Send(ctx context.Context, args []string) error {
	content := strings.Join(args, " ")
	if content == "" {
		var err error
		if content, err = getMultiline(a.reader, "Your question", a.out); err != nil {
			return err
		}
	}
	if content == "" {
		return errors.New("message is empty")
	}

	if !a.chat.SendMessage(ctx, content, a.staged) {
		return stateError(a.chat.State().Error, a.chat.ClearError)
	}
	a.staged = nil

	msgs := a.chat.State().Messages()
	if n := len(msgs); n > 0 && msgs[n-1].Role == models.MessageRoleAssistant {
		a.printMessage(msgs[n-1])
	}
	return nil
}

// Attach stages a local file for the next message.
func (a *App) Attach(_ context.Context, args []string) error {
	path, err := oneArg(args, "attach <path>")
	if err != nil {
		return err
	}
	f, err := attachments.Load(path)
	if err != nil {
		return err
	}
	if err := attachments.Validate(&f, attachments.KindChat); err != nil {
		return err
	}

	a.staged = append(a.staged, f)
	a.printf("Attached %s (%d file(s) staged)\n", f.Name, len(a.staged))
	return nil
}

// History prints the messages of the current conversation.
func (a *App) History(context.Context) error {
	s := a.chat.State()
	if s.Current == nil {
		return errors.New("no conversation open")
	}

	msgs := s.Messages()
	if len(msgs) == 0 {
		a.println("(no messages)")
		return nil
	}
	for _, m := range msgs {
		a.printMessage(m)
	}
	return nil
}

func (a *App) printMessage(m models.Message) {
	switch m.Role {
	case models.MessageRoleAssistant:
		a.println("assistant:")
		a.println(a.render(m.Content))
		for _, src := range m.Sources {
			a.printf("  source: %s (%.0f%%)\n", src.Title, src.Relevance*100)
		}
	default:
		a.printf("you: %s\n", m.Content)
		for _, d := range m.AttachedDocuments {
			a.printf("  attached: %s\n", d.Filename)
		}
	}
}
