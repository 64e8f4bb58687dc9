package response

import (
	"time"

	"shareit/internal/usecase/commands"
)

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func FromItemResult(res *commands.ItemResult) *ItemResponse {
	var out ItemResponse
	mustCopy(&out, res)
	return &out
}

func FromCommentResult(res *commands.CommentResult) *CommentResponse {
	var out CommentResponse
	mustCopy(&out, res)
	return &out
}
