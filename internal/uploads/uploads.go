// Package uploads stores files submitted through the admin upload endpoint
// and hands back the public URL they will be served from.
package uploads

import (
	"context"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store saves an uploaded file and returns its public URL.
type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// objectName prefixes the sanitized original filename with a fresh uuid so
// repeated uploads of the same file never collide.
func objectName(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == string(filepath.Separator) {
		base = "upload"
	}
	return uuid.NewString() + "-" + url.PathEscape(base)
}
