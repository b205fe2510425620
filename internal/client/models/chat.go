package models

import (
	"strings"

	"github.com/dmitrijs2005/juridik/internal/common"
)

type Conversation struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	MessageCount  int       `json:"messageCount"`
	LastMessageAt Timestamp `json:"lastMessageAt"`
	CreatedAt     Timestamp `json:"createdAt"`
}

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Message is one entry of a conversation timeline.
type Message struct {
	ID                string             `json:"id"`
	Role              MessageRole        `json:"role"`
	Content           string             `json:"content"`
	AttachedDocuments []AttachedDocument `json:"attachedDocuments,omitempty"`
	Sources           []Source           `json:"sources,omitempty"`
	CreatedAt         Timestamp          `json:"createdAt"`
}

// Provisional reports whether m is a local placeholder not yet confirmed by
// the server.
func (m Message) Provisional() bool {
	return IsProvisionalID(m.ID)
}

// AttachedDocument describes a file sent along with a message. Counts stay
// zero until the server has processed the file.
type AttachedDocument struct {
	FileID     string `json:"file_id"`
	Filename   string `json:"filename"`
	FileType   string `json:"file_type"`
	FileSize   int64  `json:"file_size"`
	WordCount  int    `json:"word_count"`
	ChunkCount int    `json:"chunk_count"`
}

// Source is a citation attached to an assistant reply.
type Source struct {
	DocID     string  `json:"docId"`
	Title     string  `json:"title"`
	Relevance float64 `json:"relevance"`
}

// SendResult is what the backend returns for a sent message.
type SendResult struct {
	UserMessage      Message `json:"userMessage"`
	AssistantMessage Message `json:"assistantMessage"`
}

// IsProvisionalID reports whether id carries the provisional prefix.
func IsProvisionalID(id string) bool {
	return strings.HasPrefix(id, common.ProvisionalPrefix)
}
