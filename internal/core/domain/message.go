package domain

import "time"

// Role identifies the author of a chat message.
type Role string

// Chat roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageState tracks an assistant reply while it is being shown.
type MessageState string

// Message states.
const (
	// MessagePending is a placeholder waiting for the backend.
	MessagePending MessageState = "pending"

	// MessageRevealing is a reply being revealed word by word.
	MessageRevealing MessageState = "revealing"

	// MessageSettled is a message with its final text.
	MessageSettled MessageState = "settled"
)

// Fixed assistant texts.
const (
	// WelcomeText seeds every new conversation.
	WelcomeText = "Hello! Upload a legal document and I will summarise it and answer your questions about it."

	// UploadHintText answers questions asked before a session exists.
	UploadHintText = "Please upload a document first so I can answer questions about it."

	// EmptyReplyText replaces a successful but empty backend reply.
	EmptyReplyText = "The assistant did not return an answer. Please try rephrasing your question."

	// ReplyErrorPrefix starts the placeholder text when a chat request fails.
	ReplyErrorPrefix = "Sorry, something went wrong: "
)

// Message is one chat turn.
type Message struct {
	// ID is unique and time-ordered.
	ID string

	// Role is the author.
	Role Role

	// Text is the content. For assistant messages it may be a partial
	// reveal of the final reply.
	Text string

	// State is the display state.
	State MessageState

	// CreatedAt is when the message was appended.
	CreatedAt time.Time
}

// IsPending returns true if the message is waiting for a reply.
func (m Message) IsPending() bool {
	return m.State == MessagePending
}
