package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by entity type so keys never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PostUUID returns the stable key for a post id. Posts without an id map to
// uuid.Nil.
func PostUUID(postID string) uuid.UUID {
	trimmed := strings.TrimSpace(postID)
	if trimmed == "" {
		return uuid.Nil
	}
	return UUID("go-blog:post:" + trimmed)
}

// CategoryUUID returns the stable key for a category name. Category names are
// compared case-insensitively.
func CategoryUUID(category string) uuid.UUID {
	trimmed := strings.ToLower(strings.TrimSpace(category))
	if trimmed == "" {
		return uuid.Nil
	}
	return UUID("go-blog:category:" + trimmed)
}
