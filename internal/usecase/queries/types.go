package queries

import (
	"time"
)

// Read models (DTO for the read side). Views are shaped for what a
// caller may see: BookingWindow deliberately carries neither status nor
// booker identity.

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookerRef struct {
	ID int64 `json:"id"`
}

type BookingView struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Item   ItemRef   `json:"item"`
	Booker BookerRef `json:"booker"`

	// ItemOwnerID is needed for authorization decisions and is never
	// serialized outward.
	ItemOwnerID int64 `json:"-"`
}

type BookingWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ItemView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"-"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

type ItemWithBookingsView struct {
	ItemView
	LastBooking *BookingWindow `json:"lastBooking,omitempty"`
	NextBooking *BookingWindow `json:"nextBooking,omitempty"`
	Comments    []*CommentView `json:"comments"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RequestAnswerView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

type RequestView struct {
	ID          int64                `json:"id"`
	Description string               `json:"description"`
	Created     time.Time            `json:"created"`
	Items       []*RequestAnswerView `json:"items"`
}
