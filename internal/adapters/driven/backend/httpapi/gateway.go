// Package httpapi provides the backend gateway adapter for the LexiVerse
// analysis service over HTTP multipart requests.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexiverse-cli/internal/logger"
)

// Ensure Gateway implements the interface.
var _ driven.BackendGateway = (*Gateway)(nil)

// Endpoint operations, also used as GatewayError.Op.
const (
	OpAnalyze = "analyze-document"
	OpChat    = "chat"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 8 << 20

// Config holds configuration for the HTTP gateway.
type Config struct {
	// BaseURL is the backend root (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds each request (default: 120s).
	Timeout time.Duration

	// RatePerSecond throttles outgoing requests. Zero disables throttling.
	RatePerSecond float64

	// HTTPClient overrides the client, mainly for tests.
	HTTPClient *http.Client
}

// Gateway talks to the analysis backend.
type Gateway struct {
	client   *http.Client
	baseURL  string
	throttle *Throttle
}

// New creates a gateway from cfg.
func New(cfg Config) *Gateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultBackendTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Gateway{
		client:   client,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		throttle: NewThrottle(cfg.RatePerSecond),
	}
}

// BaseURL returns the backend root in use.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// AnalyzeDocument uploads a document to POST /analyze-document.
func (g *Gateway) AnalyzeDocument(ctx context.Context, doc domain.Document) (*domain.AnalysisResponse, error) {
	body, contentType, err := encodeForm(doc, nil)
	if err != nil {
		return nil, &domain.GatewayError{Kind: domain.KindNetworkFailure, Op: OpAnalyze, Err: err}
	}

	raw, err := g.post(ctx, OpAnalyze, body, contentType)
	if err != nil {
		return nil, err
	}

	var resp domain.AnalysisResponse
	if err := decode(OpAnalyze, raw, &resp); err != nil {
		return nil, err
	}
	resp.Raw = string(raw)
	return &resp, nil
}

// InitChat uploads a document to POST /chat to open a session.
func (g *Gateway) InitChat(ctx context.Context, doc domain.Document) (*domain.ChatReply, error) {
	body, contentType, err := encodeForm(doc, nil)
	if err != nil {
		return nil, &domain.GatewayError{Kind: domain.KindNetworkFailure, Op: OpChat, Err: err}
	}
	return g.chat(ctx, body, contentType)
}

// Chat sends a question to POST /chat. sessionID is omitted when empty.
func (g *Gateway) Chat(ctx context.Context, message, sessionID string) (*domain.ChatReply, error) {
	fields := map[string]string{"message": message}
	if sessionID != "" {
		fields["session_id"] = sessionID
	}

	body, contentType, err := encodeForm(domain.Document{}, fields)
	if err != nil {
		return nil, &domain.GatewayError{Kind: domain.KindNetworkFailure, Op: OpChat, Err: err}
	}
	return g.chat(ctx, body, contentType)
}

func (g *Gateway) chat(ctx context.Context, body *bytes.Buffer, contentType string) (*domain.ChatReply, error) {
	raw, err := g.post(ctx, OpChat, body, contentType)
	if err != nil {
		return nil, err
	}

	var reply domain.ChatReply
	if err := decode(OpChat, raw, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// post sends a multipart body and returns the raw 2xx response body.
func (g *Gateway) post(ctx context.Context, op string, body *bytes.Buffer, contentType string) ([]byte, error) {
	if err := g.throttle.Wait(ctx); err != nil {
		return nil, &domain.GatewayError{Kind: domain.KindNetworkFailure, Op: op, Err: err}
	}

	url := g.baseURL + "/" + op
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, &domain.GatewayError{Kind: domain.KindNetworkFailure, Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	logger.Debug("POST %s (%d bytes)", url, body.Len())
	start := time.Now()

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &domain.GatewayError{Kind: domain.KindNetworkFailure, Op: op, Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	g.throttle.UpdateFromResponse(resp)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.GatewayError{
			Kind:       domain.KindNetworkFailure,
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("read response: %w", err),
		}
	}

	logger.Debug("POST %s -> %d in %s", url, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.GatewayError{
			Kind:       domain.KindNetworkFailure,
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}
	return raw, nil
}

// decode unmarshals a JSON object, reporting anything else as malformed.
func decode(op string, raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &domain.GatewayError{
			Kind: domain.KindMalformedResponse,
			Op:   op,
			Body: string(raw),
			Err:  fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// encodeForm builds a multipart body with an optional file part and text fields.
func encodeForm(doc domain.Document, fields map[string]string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if doc.FileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", multipart.FileContentDisposition("file", doc.FileName))
		h.Set("Content-Type", doc.ContentType())
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(doc.Content); err != nil {
			return nil, "", fmt.Errorf("write file part: %w", err)
		}
	}

	for _, name := range []string{"message", "session_id"} {
		value, ok := fields[name]
		if !ok {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write %s field: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
