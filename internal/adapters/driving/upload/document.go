// Package upload reads user-chosen files into documents for the driving
// adapters.
package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

// Load reads the file at path. Surrounding quotes left by terminal drag and
// drop are removed and a leading ~ is expanded. Unless force is set, files
// without an accepted extension are refused with domain.ErrUnsupportedType.
func Load(path string, force bool) (domain.Document, error) {
	path = strings.Trim(strings.TrimSpace(path), `"'`)
	if path == "" {
		return domain.Document{}, fmt.Errorf("no file given: %w", domain.ErrInvalidInput)
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return domain.Document{}, fmt.Errorf("expanding ~: %w", err)
		}
		path = filepath.Join(home, rest)
	}

	name := filepath.Base(path)
	if !force && !domain.IsAcceptedFile(name) {
		return domain.Document{}, fmt.Errorf("%w: %s (accepted: %s)",
			domain.ErrUnsupportedType, name, strings.Join(domain.AcceptedExtensions(), ", "))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("reading %s: %w", name, err)
	}
	return domain.Document{FileName: name, Content: content}, nil
}
