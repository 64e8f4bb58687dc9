package response

import (
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
)

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func FromUserResult(res *commands.UserResult) *UserResponse {
	var out UserResponse
	mustCopy(&out, res)
	return &out
}

func FromUserView(view *queries.UserView) *UserResponse {
	var out UserResponse
	mustCopy(&out, view)
	return &out
}
