package middleware

import (
	"context"
	"net/http"

	"github.com/drstein77/quotedesk/internal/compress"
)

type archiveTypeKey struct{}

// ArchiveTypeMiddleware reads the archiveType query parameter and stores
// it in the request context. A missing value means zip; values other than
// zip and tar are rejected with 400.
func ArchiveTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		archiveType := r.URL.Query().Get("archiveType")
		switch archiveType {
		case "":
			archiveType = compress.Zip // Default value
		case compress.Zip, compress.Tar:
		default:
			http.Error(w, "unsupported archive type", http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), archiveTypeKey{}, archiveType)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ArchiveType returns the archive type chosen by ArchiveTypeMiddleware.
func ArchiveType(ctx context.Context) string {
	if v, ok := ctx.Value(archiveTypeKey{}).(string); ok {
		return v
	}
	return compress.Zip
}
