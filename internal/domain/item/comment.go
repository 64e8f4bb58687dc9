package item

import (
	"strings"
	"time"

	"shareit/internal/pkg/errs"
)

var ErrBlankComment = errs.New("comment text must not be blank")

// Comment is immutable feedback attached to an item after a completed
// approved booking; eligibility is decided by the use case.
type Comment struct {
	id       int64
	text     string
	itemID   int64
	authorID int64
	created  time.Time
}

func NewComment(text string, itemID, authorID int64, created time.Time) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrBlankComment
	}

	return &Comment{
		text:     text,
		itemID:   itemID,
		authorID: authorID,
		created:  created,
	}, nil
}

func (c *Comment) ID() int64          { return c.id }
func (c *Comment) Text() string       { return c.text }
func (c *Comment) ItemID() int64      { return c.itemID }
func (c *Comment) AuthorID() int64    { return c.authorID }
func (c *Comment) Created() time.Time { return c.created }
