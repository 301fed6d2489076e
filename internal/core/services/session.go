package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexiverse-cli/internal/logger"
)

// Ensure SessionController implements the interface.
var _ driving.SessionController = (*SessionController)(nil)

// SessionController owns the document session state machine.
type SessionController struct {
	gateway      driven.BackendGateway
	store        driven.SessionIDStore
	conversation *Conversation

	mu      sync.RWMutex
	session domain.Session

	// generation increments on every upload and reset. An upload applies its
	// result only if the generation is unchanged when both requests settle.
	generation uint64

	// idVersion increments whenever the identifier to persist changes.
	// storeMu orders store writes, which run outside mu; a write whose
	// version was superseded is skipped.
	idVersion uint64
	storeMu   sync.Mutex

	listeners listeners
}

// NewSessionController creates a session controller in the Empty state.
// The conversation is reset whenever a new upload starts.
func NewSessionController(
	gateway driven.BackendGateway,
	store driven.SessionIDStore,
	conversation *Conversation,
) *SessionController {
	return &SessionController{
		gateway:      gateway,
		store:        store,
		conversation: conversation,
		session:      domain.NewSession(),
	}
}

// StartUpload analyses the document and opens a chat session for it.
func (c *SessionController) StartUpload(ctx context.Context, doc domain.Document) error {
	c.mu.Lock()
	if c.session.Status == domain.StatusUploading {
		c.mu.Unlock()
		return domain.ErrUploadInProgress
	}
	c.generation++
	gen := c.generation
	c.session = domain.Session{
		FileName: doc.FileName,
		Status:   domain.StatusUploading,
		Clauses:  []string{},
	}
	c.mu.Unlock()

	logger.Section("Upload")
	logger.Debug("uploading %s (%d bytes)", doc.FileName, doc.Size())

	c.conversation.Reset()
	c.listeners.notify()

	var (
		g        errgroup.Group
		analysis AnalysisResult
		chatInit ChatInitResult
	)

	// Both requests always run to completion; neither returns an error to
	// the group so one failure cannot cancel the other.
	g.Go(func() error {
		resp, err := c.gateway.AnalyzeDocument(ctx, doc)
		analysis = AnalysisResult{Response: resp, Err: err}
		return nil
	})
	g.Go(func() error {
		reply, err := c.gateway.InitChat(ctx, doc)
		chatInit = ChatInitResult{Reply: reply, Err: err}
		return nil
	})
	_ = g.Wait()

	if analysis.Err != nil {
		logger.Warn("analysis request failed: %v", analysis.Err)
	}
	if chatInit.Err != nil {
		logger.Warn("chat initialisation failed: %v", chatInit.Err)
	}

	result := Reconcile(analysis, chatInit)
	logger.Debug("upload reconciled: status=%s session=%q", result.Status, result.SessionID)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		logger.Debug("discarding upload result for %s: session was reset", doc.FileName)
		return nil
	}
	c.session = domain.Session{
		FileName:     doc.FileName,
		SessionID:    result.SessionID,
		Status:       result.Status,
		Summary:      result.Summary,
		DocumentType: result.DocumentType,
		Clauses:      result.Clauses,
		Diagnostics:  result.Diagnostics,
	}
	c.idVersion++
	version := c.idVersion
	c.mu.Unlock()

	if err := c.persistID(ctx, version, result.SessionID); err != nil {
		// Store failures only affect resumption after restart.
		logger.Warn("persist session id: %v", err)
	}

	if result.Status == domain.StatusRejected {
		if _, err := c.conversation.Append(domain.RoleAssistant, result.Summary, domain.MessageSettled); err != nil {
			logger.Warn("append rejection message: %v", err)
		}
	}

	c.listeners.notify()
	return nil
}

// persistID saves id, or clears the store when id is empty, unless a later
// change has superseded version. Must be called without holding mu.
func (c *SessionController) persistID(ctx context.Context, version uint64, id string) error {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()

	c.mu.RLock()
	stale := version != c.idVersion
	c.mu.RUnlock()
	if stale {
		return nil
	}

	if id == "" {
		return c.store.Clear(ctx)
	}
	return c.store.Save(ctx, id)
}

// ResetSession returns to the Empty state and forgets the persisted identifier.
// Any upload still in flight is discarded when it settles.
func (c *SessionController) ResetSession(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	c.session = domain.NewSession()
	c.idVersion++
	version := c.idVersion
	c.mu.Unlock()

	logger.Debug("session reset")
	c.listeners.notify()

	if err := c.persistID(ctx, version, ""); err != nil {
		return fmt.Errorf("clear session id: %w", err)
	}
	return nil
}

// Restore loads the persisted identifier so chat resumes after a restart.
// It only applies while the session is Empty.
func (c *SessionController) Restore(ctx context.Context) error {
	id, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session id: %w", err)
	}
	if id == "" {
		return nil
	}

	c.mu.Lock()
	if c.session.Status != domain.StatusEmpty {
		c.mu.Unlock()
		return nil
	}
	c.session.SessionID = id
	c.session.Status = domain.StatusReady
	c.session.Summary = domain.ResumedSummary
	c.mu.Unlock()

	logger.Debug("restored session %s", id)
	c.listeners.notify()
	return nil
}

// RefreshSessionID replaces previousID with id when the backend renewed the
// session. It is a no-op unless the session still holds previousID and can
// chat, so a reply arriving after a reset or during a new upload is ignored.
func (c *SessionController) RefreshSessionID(ctx context.Context, previousID, id string) error {
	if id == "" || id == previousID {
		return nil
	}

	c.mu.Lock()
	if c.session.SessionID != previousID || !c.session.CanChat() {
		current := c.session.SessionID
		c.mu.Unlock()
		logger.Debug("ignoring renewed session id %s: session is now %q", id, current)
		return nil
	}
	c.session.SessionID = id
	c.idVersion++
	version := c.idVersion
	c.mu.Unlock()

	logger.Debug("session id refreshed to %s", id)
	c.listeners.notify()

	if err := c.persistID(ctx, version, id); err != nil {
		return fmt.Errorf("save session id: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current session.
func (c *SessionController) Snapshot() domain.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.Clone()
}

// OnChange registers fn to be called after every session mutation.
func (c *SessionController) OnChange(fn func()) {
	c.listeners.add(fn)
}
