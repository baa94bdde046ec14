// internal/app/system/photokey/photokey.go

// Package photokey mints the storage keys under which uploaded photos live.
// Clients submit their original filenames; the server assigns an opaque,
// date-partitioned key and only ever persists that key. The original name is
// discarded apart from its extension.
package photokey

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// New returns a fresh storage key for an uploaded photo:
// photos/YYYY/MM/<uuid><ext>. The extension is taken from the submitted
// filename, lowercased; a name without one yields a key without one.
func New(filename string) string {
	now := time.Now().UTC()
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("photos/%04d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String(), ext)
}

// NewBatch maps submitted filenames to freshly minted keys, preserving order.
func NewBatch(filenames []string) []string {
	keys := make([]string, 0, len(filenames))
	for _, name := range filenames {
		keys = append(keys, New(name))
	}
	return keys
}
