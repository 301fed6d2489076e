package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexiverse-cli/internal/logger"
)

// Ensure ChatEngine implements the interface.
var _ driving.ChatEngine = (*ChatEngine)(nil)

// ChatEngine answers questions about the current document.
type ChatEngine struct {
	gateway      driven.BackendGateway
	session      driving.SessionController
	conversation *Conversation

	mu             sync.RWMutex
	revealInterval time.Duration
}

// NewChatEngine creates a chat engine over the shared conversation.
// Replies are shown at once until SetRevealInterval is called.
func NewChatEngine(
	gateway driven.BackendGateway,
	session driving.SessionController,
	conversation *Conversation,
) *ChatEngine {
	return &ChatEngine{
		gateway:      gateway,
		session:      session,
		conversation: conversation,
	}
}

// SetRevealInterval sets the delay between revealed words. Zero disables the reveal.
func (e *ChatEngine) SetRevealInterval(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.revealInterval = d
}

// SubmitMessage appends the question and resolves an assistant reply for it.
func (e *ChatEngine) SubmitMessage(ctx context.Context, text string) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Message{}, fmt.Errorf("empty message: %w", domain.ErrInvalidInput)
	}

	snap := e.session.Snapshot()

	if !snap.CanChat() {
		_, hint, err := e.conversation.AppendPair(text, domain.UploadHintText, domain.MessageSettled)
		if err != nil {
			return domain.Message{}, err
		}
		return hint, domain.ErrNoActiveSession
	}

	_, placeholder, err := e.conversation.AppendPair(text, "", domain.MessagePending)
	if err != nil {
		return domain.Message{}, err
	}

	logger.Debug("chat: session=%s message=%q", snap.SessionID, text)
	reply, err := e.gateway.Chat(ctx, text, snap.SessionID)
	if err != nil {
		logger.Warn("chat request failed: %v", err)
		return e.settle(placeholder.ID, domain.ReplyErrorPrefix+err.Error()), err
	}

	if reply.SessionID != "" && reply.SessionID != snap.SessionID {
		if err := e.session.RefreshSessionID(ctx, snap.SessionID, reply.SessionID); err != nil {
			logger.Warn("refresh session id: %v", err)
		}
	}

	answer := reply.Text()
	if strings.TrimSpace(answer) == "" {
		answer = domain.EmptyReplyText
	}

	return e.reveal(ctx, placeholder.ID, answer), nil
}

// reveal writes answer into the placeholder word by word and settles it.
// Cancelling ctx stops the animation and writes the full text at once.
func (e *ChatEngine) reveal(ctx context.Context, id, answer string) domain.Message {
	e.mu.RLock()
	interval := e.revealInterval
	e.mu.RUnlock()

	frames := RevealFrames(answer)
	if interval > 0 && len(frames) > 1 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

	loop:
		for _, frame := range frames[:len(frames)-1] {
			if _, err := e.conversation.Update(id, frame, domain.MessageRevealing); err != nil {
				break
			}
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.C:
			}
		}
	}

	return e.settle(id, answer)
}

// settle writes the final text of a placeholder.
func (e *ChatEngine) settle(id, text string) domain.Message {
	msg, err := e.conversation.Update(id, text, domain.MessageSettled)
	if err != nil {
		// The conversation was reset by a new upload while the reply was pending.
		logger.Debug("chat: %v", err)
		return domain.Message{ID: id, Role: domain.RoleAssistant, Text: text, State: domain.MessageSettled}
	}
	return msg
}

// Messages returns a copy of the conversation.
func (e *ChatEngine) Messages() []domain.Message {
	return e.conversation.Messages()
}

// OnChange registers fn to be called after every conversation mutation.
func (e *ChatEngine) OnChange(fn func()) {
	e.conversation.OnChange(fn)
}
