package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/juridik/internal/client/attachments"
	"github.com/dmitrijs2005/juridik/internal/client/client"
	"github.com/dmitrijs2005/juridik/internal/client/models"
	"github.com/dmitrijs2005/juridik/internal/client/observable"
	"github.com/dmitrijs2005/juridik/internal/client/optimistic"
	"github.com/dmitrijs2005/juridik/internal/common"
	"github.com/dmitrijs2005/juridik/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ChatState is the observable state of the ChatManager.
type ChatState struct {
	Conversations []models.Conversation
	Current       *models.Conversation
	Timeline      optimistic.List[models.Message]
	Loading       bool
	Error         string
}

// Messages is the timeline as it should be displayed, provisional message
// included.
func (s ChatState) Messages() []models.Message { return s.Timeline.Items() }

func (s ChatState) isCurrent(id string) bool {
	return s.Current != nil && s.Current.ID == id
}

// ChatManager owns the conversation list, the current conversation and its
// message timeline.
type ChatManager interface {
	State() ChatState
	Subscribe(fn func(ChatState)) (cancel func())

	FetchConversations(ctx context.Context)
	SelectConversation(ctx context.Context, id string) bool
	CreateConversation(ctx context.Context) (string, bool)
	DeleteConversation(ctx context.Context, id string) bool
	SendMessage(ctx context.Context, content string, files []attachments.File) bool
	ClearMessages()
	ClearError()

	// Wait blocks until background list refreshes started by SendMessage
	// have finished.
	Wait()
}

type chatManager struct {
	api   client.API
	log   logging.Logger
	state *observable.Value[ChatState]
	sends *keyedMutex
	bg    sync.WaitGroup
}

func NewChatManager(api client.API, log logging.Logger) ChatManager {
	if log == nil {
		log = logging.Nop()
	}
	return &chatManager{
		api:   api,
		log:   log.With("component", "chat"),
		state: observable.New(ChatState{}),
		sends: newKeyedMutex(),
	}
}

func (m *chatManager) State() ChatState { return m.state.Get() }

func (m *chatManager) Subscribe(fn func(ChatState)) func() { return m.state.Subscribe(fn) }

func (m *chatManager) Wait() { m.bg.Wait() }

// FetchConversations is a best-effort refresh; failures are only logged.
func (m *chatManager) FetchConversations(ctx context.Context) {
	list, err := m.api.ListConversations(ctx)
	if err != nil {
		m.log.Warn(ctx, "failed to fetch conversations", "error", err)
		return
	}

	m.state.Update(func(s ChatState) ChatState {
		s.Conversations = list
		return s
	})
}

func (m *chatManager) SelectConversation(ctx context.Context, id string) bool {
	m.setLoading(true)

	var (
		conv *models.Conversation
		msgs []models.Message
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		conv, err = m.api.GetConversation(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		msgs, err = m.api.ListMessages(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		m.log.Warn(ctx, "failed to load conversation", "conversation_id", id, "error", err)
		m.state.Update(func(s ChatState) ChatState {
			s.Loading = false
			s.Error = "Failed to load conversation"
			return s
		})
		return false
	}

	m.state.Update(func(s ChatState) ChatState {
		s.Current = conv
		s.Timeline = optimistic.NewConfirmed(msgs)
		s.Loading = false
		return s
	})
	return true
}

func (m *chatManager) CreateConversation(ctx context.Context) (string, bool) {
	conv, err := m.api.CreateConversation(ctx)
	if err != nil {
		m.log.Warn(ctx, "failed to create conversation", "error", err)
		m.state.Update(func(s ChatState) ChatState {
			s.Error = "Failed to create conversation"
			return s
		})
		return "", false
	}

	m.state.Update(func(s ChatState) ChatState {
		s.Conversations = append([]models.Conversation{*conv}, s.Conversations...)
		s.Current = conv
		s.Timeline = optimistic.NewConfirmed[models.Message](nil)
		return s
	})
	return conv.ID, true
}

// DeleteConversation removes the conversation at once and puts it back, at
// the same position, if the backend refuses.
func (m *chatManager) DeleteConversation(ctx context.Context, id string) bool {
	var (
		idx        = -1
		removed    models.Conversation
		wasCurrent bool
		prevCur    *models.Conversation
		prevTL     optimistic.List[models.Message]
	)

	m.state.Update(func(s ChatState) ChatState {
		idx = slices.IndexFunc(s.Conversations, func(c models.Conversation) bool { return c.ID == id })
		if idx >= 0 {
			removed = s.Conversations[idx]
			s.Conversations = slices.Delete(slices.Clone(s.Conversations), idx, idx+1)
		}
		if s.isCurrent(id) {
			wasCurrent = true
			prevCur, prevTL = s.Current, s.Timeline
			s.Current = nil
			s.Timeline = optimistic.NewConfirmed[models.Message](nil)
		}
		return s
	})

	if err := m.api.DeleteConversation(ctx, id); err != nil {
		m.log.Warn(ctx, "failed to delete conversation", "conversation_id", id, "error", err)
		m.state.Update(func(s ChatState) ChatState {
			if idx >= 0 && !slices.ContainsFunc(s.Conversations, func(c models.Conversation) bool { return c.ID == id }) {
				s.Conversations = slices.Insert(slices.Clone(s.Conversations), min(idx, len(s.Conversations)), removed)
			}
			if wasCurrent && s.Current == nil {
				s.Current, s.Timeline = prevCur, prevTL
			}
			s.Error = "Failed to delete conversation"
			return s
		})
		return false
	}
	return true
}

// SendMessage appends a provisional user message, submits it and replaces
// it with the confirmed user and assistant messages. Without a current
// conversation one is created first.
func (m *chatManager) SendMessage(ctx context.Context, content string, files []attachments.File) bool {
	files = slices.Clone(files)
	for i := range files {
		if err := attachments.Validate(&files[i], attachments.KindChat); err != nil {
			m.state.Update(func(s ChatState) ChatState {
				s.Error = "Attachment rejected: " + err.Error()
				return s
			})
			return false
		}
	}

	var convID string
	if cur := m.state.Get().Current; cur != nil {
		convID = cur.ID
	} else {
		id, ok := m.CreateConversation(ctx)
		if !ok {
			return false
		}
		convID = id
	}

	unlock := m.sends.Lock(convID)
	defer unlock()

	temp := provisionalMessage(content, files)
	m.state.Update(func(s ChatState) ChatState {
		if s.isCurrent(convID) {
			if tl, ok := s.Timeline.Append(temp); ok {
				s.Timeline = tl
			}
		}
		s.Loading = true
		s.Error = ""
		return s
	})

	res, err := m.api.SendMessage(ctx, convID, content, files)
	if err != nil {
		m.log.Warn(ctx, "failed to send message", "conversation_id", convID, "error", err)
		m.state.Update(func(s ChatState) ChatState {
			if ownsPending(s, convID, temp.ID) {
				s.Timeline = s.Timeline.Rollback()
			}
			s.Loading = false
			s.Error = "Failed to send message"
			return s
		})
		return false
	}

	st := m.state.Update(func(s ChatState) ChatState {
		if ownsPending(s, convID, temp.ID) {
			s.Timeline = s.Timeline.Commit(res.UserMessage, res.AssistantMessage)
		}
		s.Loading = false
		return s
	})

	// the first exchange gives the conversation its server-side title
	if st.isCurrent(convID) && st.Timeline.Len() <= 2 {
		m.bg.Add(1)
		go func() {
			defer m.bg.Done()
			m.FetchConversations(context.WithoutCancel(ctx))
		}()
	}
	return true
}

func (m *chatManager) ClearMessages() {
	m.state.Update(func(s ChatState) ChatState {
		s.Current = nil
		s.Timeline = optimistic.NewConfirmed[models.Message](nil)
		return s
	})
}

func (m *chatManager) ClearError() {
	m.state.Update(func(s ChatState) ChatState {
		s.Error = ""
		return s
	})
}

func (m *chatManager) setLoading(v bool) {
	m.state.Update(func(s ChatState) ChatState {
		s.Loading = v
		return s
	})
}

func ownsPending(s ChatState, convID, tempID string) bool {
	if !s.isCurrent(convID) {
		return false
	}
	p, ok := s.Timeline.Pending()
	return ok && p.ID == tempID
}

func provisionalMessage(content string, files []attachments.File) models.Message {
	msg := models.Message{
		ID:        provisionalID(),
		Role:      models.MessageRoleUser,
		Content:   content,
		CreatedAt: models.NewTimestamp(time.Now()),
	}
	for _, f := range files {
		msg.AttachedDocuments = append(msg.AttachedDocuments, models.AttachedDocument{
			FileID:   provisionalID(),
			Filename: f.Name,
			FileType: f.ContentType,
			FileSize: f.Size(),
		})
	}
	return msg
}

func provisionalID() string {
	return common.ProvisionalPrefix + uuid.NewString()
}
