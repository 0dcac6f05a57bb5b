package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jobboard/internal/domain/bookmark"
	"jobboard/internal/domain/posting"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type BookmarkUsecase interface {
	// Add reports created=false when the bookmark already existed.
	Add(ctx context.Context, viewer, postingID uuid.UUID) (bool, error)
	Remove(ctx context.Context, viewer, postingID uuid.UUID) error
	List(ctx context.Context, viewer uuid.UUID) ([]bookmark.Entry, error)
}

type Bookmarks struct {
	bookmarks repository.BookmarkRepository
	postings  repository.PostingRepository
	logger    *log.Logger
}

func NewBookmarkUsecase(bookmarks repository.BookmarkRepository, postings repository.PostingRepository, logger *log.Logger) *Bookmarks {
	return &Bookmarks{bookmarks: bookmarks, postings: postings, logger: logger}
}

func (u *Bookmarks) Add(ctx context.Context, viewer, postingID uuid.UUID) (bool, error) {
	if viewer == uuid.Nil {
		return false, ErrUnauthorized
	}
	if postingID == uuid.Nil {
		return false, ErrInvalidInput
	}

	exists, err := u.postings.Exists(ctx, postingID)
	if err != nil {
		return false, u.internal("check posting", err)
	}
	if !exists {
		return false, ErrNotFound
	}

	created, err := u.bookmarks.Add(ctx, viewer, postingID)
	if err != nil {
		// the posting can be deleted between the check and the insert
		if errors.Is(err, posting.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, u.internal("add bookmark", err)
	}
	return created, nil
}

func (u *Bookmarks) Remove(ctx context.Context, viewer, postingID uuid.UUID) error {
	if viewer == uuid.Nil {
		return ErrUnauthorized
	}
	if postingID == uuid.Nil {
		return ErrInvalidInput
	}

	removed, err := u.bookmarks.Remove(ctx, viewer, postingID)
	if err != nil {
		return u.internal("remove bookmark", err)
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (u *Bookmarks) List(ctx context.Context, viewer uuid.UUID) ([]bookmark.Entry, error) {
	if viewer == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.bookmarks.List(ctx, viewer)
	if err != nil {
		return nil, u.internal("list bookmarks", err)
	}
	return items, nil
}

func (u *Bookmarks) internal(step string, err error) error {
	if u.logger != nil {
		u.logger.Printf("[Bookmark] %s failed: %v", step, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrInternal, step, err)
}
