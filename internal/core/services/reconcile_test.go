package services

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

func TestClassifyAnalysis(t *testing.T) {
	tests := []struct {
		name string
		resp *domain.AnalysisResponse
		want Outcome
	}{
		{
			name: "clean summary is ready",
			resp: &domain.AnalysisResponse{
				Summary:          "A residential lease.",
				DocumentType:     "lease",
				ImportantClauses: []string{"Rent is due monthly.", "Notice period is 30 days."},
			},
			want: Outcome{
				Status:       domain.StatusReady,
				Summary:      "A residential lease.",
				DocumentType: "lease",
				Clauses:      []string{"Rent is due monthly.", "Notice period is 30 days."},
			},
		},
		{
			name: "missing clauses become empty",
			resp: &domain.AnalysisResponse{Summary: "An NDA."},
			want: Outcome{Status: domain.StatusReady, Summary: "An NDA.", Clauses: []string{}},
		},
		{
			name: "reject decision any case",
			resp: &domain.AnalysisResponse{Decision: "  REJECT ", Raw: `{"decision":"REJECT"}`},
			want: Outcome{Status: domain.StatusRejected, Summary: domain.DefaultRejectionSummary, Clauses: []string{}},
		},
		{
			name: "reason alone is a rejection",
			resp: &domain.AnalysisResponse{Reason: strPtr("This is a recipe, not a legal document.")},
			want: Outcome{
				Status:  domain.StatusRejected,
				Summary: "This is a recipe, not a legal document.",
				Clauses: []string{},
			},
		},
		{
			name: "rejection wins over summary",
			resp: &domain.AnalysisResponse{Summary: "Some text", Decision: "rejected", Reason: strPtr("Not legal.")},
			want: Outcome{Status: domain.StatusRejected, Summary: "Not legal.", Clauses: []string{}},
		},
		{
			name: "malformed summary is an error with diagnostics",
			resp: &domain.AnalysisResponse{
				Summary: "Document analysis timed out. Please retry.",
				Raw:     `{"summary":"Document analysis timed out. Please retry."}`,
			},
			want: Outcome{
				Status:      domain.StatusError,
				Summary:     "Document analysis timed out. Please retry.",
				Clauses:     []string{},
				Diagnostics: `{"summary":"Document analysis timed out. Please retry."}`,
			},
		},
		{
			name: "error field",
			resp: &domain.AnalysisResponse{Error: "model overloaded", Raw: `{"error":"model overloaded"}`},
			want: Outcome{
				Status:      domain.StatusError,
				Summary:     "model overloaded",
				Clauses:     []string{},
				Diagnostics: `{"error":"model overloaded"}`,
			},
		},
		{
			name: "message field",
			resp: &domain.AnalysisResponse{Message: "quota exceeded", Raw: `{"message":"quota exceeded"}`},
			want: Outcome{
				Status:      domain.StatusError,
				Summary:     "quota exceeded",
				Clauses:     []string{},
				Diagnostics: `{"message":"quota exceeded"}`,
			},
		},
		{
			name: "unexpected format",
			resp: &domain.AnalysisResponse{Raw: `{"foo":1}`},
			want: Outcome{
				Status:      domain.StatusError,
				Summary:     domain.UnexpectedFormatSummary,
				Clauses:     []string{},
				Diagnostics: `{"foo":1}`,
			},
		},
		{
			name: "nil response",
			resp: nil,
			want: Outcome{Status: domain.StatusError, Summary: domain.UnexpectedFormatSummary, Clauses: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAnalysis(tt.resp)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ClassifyAnalysis() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyAnalysis_ClausesAreCopied(t *testing.T) {
	resp := &domain.AnalysisResponse{Summary: "Lease.", ImportantClauses: []string{"one"}}

	got := ClassifyAnalysis(resp)
	resp.ImportantClauses[0] = "changed"

	assert.Equal(t, []string{"one"}, got.Clauses)
}

func TestReconcile_AnalysisWins(t *testing.T) {
	got := Reconcile(
		AnalysisResult{Response: &domain.AnalysisResponse{Summary: "Lease."}},
		ChatInitResult{Reply: &domain.ChatReply{SessionID: "sess-9", Response: "Ready to chat."}},
	)

	assert.Equal(t, "sess-9", got.SessionID)
	assert.Equal(t, domain.StatusReady, got.Status)
	assert.Equal(t, "Lease.", got.Summary)
	assert.Empty(t, got.Diagnostics)
}

func TestReconcile_ChatInitFallback(t *testing.T) {
	got := Reconcile(
		AnalysisResult{Err: gatewayFailure("analyze-document", 502, "bad gateway")},
		ChatInitResult{Reply: &domain.ChatReply{SessionID: "sess-2", Reply: "Here is what I found."}},
	)

	assert.Equal(t, "sess-2", got.SessionID)
	assert.Equal(t, domain.StatusReady, got.Status)
	assert.Equal(t, "Here is what I found.", got.Summary)
	assert.Equal(t, "bad gateway", got.Diagnostics)
	assert.Empty(t, got.Clauses)
}

func TestReconcile_ChatInitEmptyReplyDoesNotRescue(t *testing.T) {
	analysisErr := errors.New("connection refused")
	got := Reconcile(
		AnalysisResult{Err: analysisErr},
		ChatInitResult{Reply: &domain.ChatReply{SessionID: "sess-3", Response: "   "}},
	)

	assert.Equal(t, "sess-3", got.SessionID)
	assert.Equal(t, domain.StatusError, got.Status)
	assert.Equal(t, "Upload failed: connection refused", got.Summary)
	assert.Equal(t, "connection refused", got.Diagnostics)
}

func TestReconcile_BothFail(t *testing.T) {
	got := Reconcile(
		AnalysisResult{Err: gatewayFailure("analyze-document", 500, "")},
		ChatInitResult{Err: errors.New("timeout")},
	)

	assert.Empty(t, got.SessionID)
	assert.Equal(t, domain.StatusError, got.Status)
	assert.Equal(t, "Upload failed: analyze-document: backend returned status 500", got.Summary)
}

func TestReconcile_ChatInitFailureOnlyDropsSessionID(t *testing.T) {
	got := Reconcile(
		AnalysisResult{Response: &domain.AnalysisResponse{Summary: "Contract."}},
		ChatInitResult{Err: errors.New("timeout")},
	)

	assert.Empty(t, got.SessionID)
	assert.Equal(t, domain.StatusReady, got.Status)
	assert.Equal(t, "Contract.", got.Summary)
}
