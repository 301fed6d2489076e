package domain

import (
	"path/filepath"
	"strings"
)

// Document is a file chosen for upload.
// Content is held in memory because it is sent in two concurrent requests.
type Document struct {
	// FileName is the base name sent as the multipart filename.
	FileName string

	// Content is the raw file bytes.
	Content []byte
}

// acceptedTypes maps the accepted document extensions to MIME types.
var acceptedTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// AcceptedExtensions returns the extensions offered in file pickers.
func AcceptedExtensions() []string {
	return []string{".pdf", ".doc", ".docx", ".txt"}
}

// IsAcceptedFile returns true if the name has an accepted document extension.
// The check is advisory; the backend performs its own validation.
func IsAcceptedFile(name string) bool {
	_, ok := acceptedTypes[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ContentType returns the MIME type for the document.
func (d Document) ContentType() string {
	if ct, ok := acceptedTypes[strings.ToLower(filepath.Ext(d.FileName))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Size returns the document size in bytes.
func (d Document) Size() int {
	return len(d.Content)
}
