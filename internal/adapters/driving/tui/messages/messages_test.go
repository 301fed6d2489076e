package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputMode_String(t *testing.T) {
	tests := []struct {
		mode     InputMode
		expected string
	}{
		{ModeChat, "chat"},
		{ModeUpload, "upload"},
		{InputMode(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.String())
		})
	}
}

func TestSummaryTab_String(t *testing.T) {
	assert.Equal(t, "summary", TabSummary.String())
	assert.Equal(t, "clauses", TabClauses.String())
	assert.Equal(t, "unknown", SummaryTab(7).String())
}

func TestSummaryTab_Next(t *testing.T) {
	assert.Equal(t, TabClauses, TabSummary.Next())
	assert.Equal(t, TabSummary, TabClauses.Next())
}

func TestResultMessages_CarryErrors(t *testing.T) {
	err := errors.New("backend down")

	assert.Equal(t, err, UploadFinished{Err: err}.Err)
	assert.Equal(t, err, ChatFinished{Err: err}.Err)
	assert.Equal(t, err, ResetFinished{Err: err}.Err)
	assert.Equal(t, err, ErrorOccurred{Err: err}.Err)
}

func TestUploadRequested(t *testing.T) {
	msg := UploadRequested{Path: "/tmp/lease.pdf"}
	assert.Equal(t, "/tmp/lease.pdf", msg.Path)
}
