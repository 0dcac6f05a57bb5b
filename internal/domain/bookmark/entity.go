package bookmark

import (
	"time"

	"github.com/google/uuid"
)

type Bookmark struct {
	ID        int64
	UserID    uuid.UUID
	PostingID uuid.UUID
	CreatedAt time.Time
}

// Entry is a bookmark joined with the posting and company it points at.
type Entry struct {
	Bookmark
	Title       string
	Summary     string
	Deadline    time.Time
	CompanyName string
	CompanyLogo *string
}
