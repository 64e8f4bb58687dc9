package response

import (
	"time"

	"shareit/internal/usecase/commands"
)

type RequestCreatedResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

func FromRequestResult(res *commands.RequestResult) *RequestCreatedResponse {
	var out RequestCreatedResponse
	mustCopy(&out, res)
	return &out
}
