package request

import (
	"strings"
	"time"

	"shareit/internal/pkg/errs"
)

var ErrBlankDescription = errs.New("request description must not be blank")

// ItemRequest is a wish for an item that does not exist yet; items
// created later may reference it as an answer.
type ItemRequest struct {
	id          int64
	description string
	requestorID int64
	created     time.Time
}

func NewItemRequest(description string, requestorID int64, created time.Time) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrBlankDescription
	}
	return &ItemRequest{
		description: description,
		requestorID: requestorID,
		created:     created,
	}, nil
}

func (r *ItemRequest) ID() int64           { return r.id }
func (r *ItemRequest) Description() string { return r.description }
func (r *ItemRequest) RequestorID() int64  { return r.requestorID }
func (r *ItemRequest) Created() time.Time  { return r.created }
