package item

import (
	"strings"

	"shareit/internal/pkg/errs"
)

var (
	ErrBlankName        = errs.New("item name must not be blank")
	ErrBlankDescription = errs.New("item description must not be blank")
	ErrNotOwner         = errs.New("user is not the owner of the item")
)

type Item struct {
	id          int64
	name        string
	description string
	available   bool
	ownerID     int64
	requestID   *int64
}

func NewItem(name, description string, available bool, ownerID int64, requestID *int64) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrBlankName
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrBlankDescription
	}

	return &Item{
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		requestID:   requestID,
	}, nil
}

func ReconstructItem(id int64, name, description string, available bool, ownerID int64, requestID *int64) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		requestID:   requestID,
	}
}

// ApplyPatch updates only the fields present in the patch. Ownership is
// checked by the caller; blank values are rejected the same way as on
// creation.
func (i *Item) ApplyPatch(name, description *string, available *bool) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return ErrBlankName
		}
		i.name = *name
	}
	if description != nil {
		if strings.TrimSpace(*description) == "" {
			return ErrBlankDescription
		}
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
	return nil
}

func (i *Item) IsOwnedBy(userID int64) bool {
	return i.ownerID == userID
}

func (i *Item) ID() int64           { return i.id }
func (i *Item) Name() string        { return i.name }
func (i *Item) Description() string { return i.description }
func (i *Item) Available() bool     { return i.available }
func (i *Item) OwnerID() int64      { return i.ownerID }
func (i *Item) RequestID() *int64   { return i.requestID }
