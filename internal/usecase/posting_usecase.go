package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jobboard/internal/domain/posting"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type PostingDetail struct {
	posting.Detail
	IsBookmarked bool
}

type PostingUsecase interface {
	Detail(ctx context.Context, id, viewer uuid.UUID) (PostingDetail, error)
}

type Postings struct {
	postings  repository.PostingRepository
	bookmarks repository.BookmarkRepository
	logger    *log.Logger
}

func NewPostingUsecase(postings repository.PostingRepository, bookmarks repository.BookmarkRepository, logger *log.Logger) *Postings {
	return &Postings{postings: postings, bookmarks: bookmarks, logger: logger}
}

func (u *Postings) Detail(ctx context.Context, id, viewer uuid.UUID) (PostingDetail, error) {
	if id == uuid.Nil {
		return PostingDetail{}, ErrInvalidInput
	}

	d, err := u.postings.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, posting.ErrNotFound) {
			return PostingDetail{}, ErrNotFound
		}
		return PostingDetail{}, u.internal("get posting", err)
	}

	out := PostingDetail{Detail: d}
	if viewer != uuid.Nil {
		ok, err := u.bookmarks.Exists(ctx, viewer, id)
		if err != nil {
			return PostingDetail{}, u.internal("check bookmark", err)
		}
		out.IsBookmarked = ok
	}
	return out, nil
}

func (u *Postings) internal(step string, err error) error {
	if u.logger != nil {
		u.logger.Printf("[Posting] %s failed: %v", step, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrInternal, step, err)
}
