package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

// Conversation is the ordered message log for the current document.
// Messages are addressed by id so concurrent replies can be resolved
// independently.
type Conversation struct {
	mu        sync.RWMutex
	messages  []domain.Message
	listeners listeners
}

// NewConversation creates a conversation seeded with the welcome message.
func NewConversation() *Conversation {
	c := &Conversation{}
	c.messages = []domain.Message{c.welcome()}
	return c
}

// Append adds a message at the end of the conversation and returns it.
func (c *Conversation) Append(role domain.Role, text string, state domain.MessageState) (domain.Message, error) {
	msg, err := newMessage(role, text, state)
	if err != nil {
		return domain.Message{}, err
	}

	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()

	c.listeners.notify()
	return msg, nil
}

// AppendPair adds a settled user question and the assistant entry answering
// it as adjacent messages, so concurrent submissions never interleave.
func (c *Conversation) AppendPair(
	question, answer string,
	answerState domain.MessageState,
) (domain.Message, domain.Message, error) {
	user, err := newMessage(domain.RoleUser, question, domain.MessageSettled)
	if err != nil {
		return domain.Message{}, domain.Message{}, err
	}
	reply, err := newMessage(domain.RoleAssistant, answer, answerState)
	if err != nil {
		return domain.Message{}, domain.Message{}, err
	}

	c.mu.Lock()
	c.messages = append(c.messages, user, reply)
	c.mu.Unlock()

	c.listeners.notify()
	return user, reply, nil
}

func newMessage(role domain.Role, text string, state domain.MessageState) (domain.Message, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.Message{}, fmt.Errorf("generate message id: %w", err)
	}
	return domain.Message{
		ID:        id.String(),
		Role:      role,
		Text:      text,
		State:     state,
		CreatedAt: time.Now(),
	}, nil
}

// Update replaces the text and state of the message with the given id.
// Returns domain.ErrNotFound if the message is no longer in the conversation,
// which happens when a new upload reset it.
func (c *Conversation) Update(id, text string, state domain.MessageState) (domain.Message, error) {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return domain.Message{}, fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}
	c.messages[idx].Text = text
	c.messages[idx].State = state
	msg := c.messages[idx]
	c.mu.Unlock()

	c.listeners.notify()
	return msg, nil
}

// Get returns the message with the given id.
func (c *Conversation) Get(id string) (domain.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return domain.Message{}, false
	}
	return c.messages[idx], true
}

// Messages returns a copy of all messages in order.
func (c *Conversation) Messages() []domain.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Reset discards all messages and reseeds the welcome message.
func (c *Conversation) Reset() {
	c.mu.Lock()
	c.messages = []domain.Message{c.welcome()}
	c.mu.Unlock()

	c.listeners.notify()
}

// OnChange registers fn to be called after every mutation.
func (c *Conversation) OnChange(fn func()) {
	c.listeners.add(fn)
}

// indexOf returns the position of id, or -1 (caller must hold lock).
func (c *Conversation) indexOf(id string) int {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Conversation) welcome() domain.Message {
	// uuid.NewV7 only fails if the random source does.
	id := uuid.Must(uuid.NewV7())
	return domain.Message{
		ID:        id.String(),
		Role:      domain.RoleAssistant,
		Text:      domain.WelcomeText,
		State:     domain.MessageSettled,
		CreatedAt: time.Now(),
	}
}
