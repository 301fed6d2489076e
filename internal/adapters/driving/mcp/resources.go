package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for LexiVerse resources.
	uriScheme = "lexiverse://"
)

// messageInfo is the JSON form of a conversation message.
type messageInfo struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "session",
		Name:        "session",
		Description: "The current document session: status, summary and important clauses",
		MIMEType:    "application/json",
	}, s.handleSessionResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "conversation",
		Name:        "conversation",
		Description: "The conversation about the current document",
		MIMEType:    "application/json",
	}, s.handleConversationResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "messages/{messageId}",
		Name:        "message",
		Description: "Text of a single conversation message",
		MIMEType:    "text/plain",
	}, s.handleMessageResource)
}

// handleSessionResource returns the session snapshot.
func (s *Server) handleSessionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(toSessionOutput(s.ports.Session.Snapshot()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling session: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleConversationResource returns the conversation in order.
func (s *Server) handleConversationResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	msgs := s.ports.Chat.Messages()

	infos := make([]messageInfo, len(msgs))
	for i := range msgs {
		infos[i] = messageInfo{
			ID:        msgs[i].ID,
			Role:      string(msgs[i].Role),
			Text:      msgs[i].Text,
			State:     string(msgs[i].State),
			CreatedAt: msgs[i].CreatedAt,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling conversation: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleMessageResource returns the text of one message.
func (s *Server) handleMessageResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractMessageID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	for _, m := range s.ports.Chat.Messages() {
		if m.ID == id {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/plain",
					Text:     m.Text,
				}},
			}, nil
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// extractMessageID extracts the message ID from a URI like lexiverse://messages/{messageId}.
func extractMessageID(uri string) string {
	const prefix = uriScheme + "messages/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
