package usecase

import (
	"context"

	"github.com/google/uuid"
)

type BookmarkLookup interface {
	BookmarkedAmong(ctx context.Context, userID uuid.UUID, postingIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

// AnnotateBookmarks returns, parallel to ids, whether viewer bookmarked each
// posting. An authenticated viewer costs exactly one lookup whatever the
// length of ids; an anonymous one (uuid.Nil) costs none.
func AnnotateBookmarks(ctx context.Context, lookup BookmarkLookup, viewer uuid.UUID, ids []uuid.UUID) ([]bool, error) {
	out := make([]bool, len(ids))
	if viewer == uuid.Nil || lookup == nil {
		return out, nil
	}

	marked, err := lookup.BookmarkedAmong(ctx, viewer, ids)
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		out[i] = marked[id]
	}
	return out, nil
}
