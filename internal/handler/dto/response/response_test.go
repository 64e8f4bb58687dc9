//go:build unit

package response_test

import (
	"testing"
	"time"

	"shareit/internal/handler/dto/response"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
)

func TestConverters(t *testing.T) {
	t.Run("user result maps every field", func(t *testing.T) {
		out := response.FromUserResult(&commands.UserResult{
			ID: 4, Name: "alice", Email: "alice@example.com",
		})

		assert.Equal(t, &response.UserResponse{
			ID: 4, Name: "alice", Email: "alice@example.com",
		}, out)
	})

	t.Run("user view maps every field", func(t *testing.T) {
		out := response.FromUserView(&queries.UserView{
			ID: 9, Name: "bob", Email: "bob@example.com",
		})

		assert.Equal(t, &response.UserResponse{
			ID: 9, Name: "bob", Email: "bob@example.com",
		}, out)
	})

	t.Run("item result keeps the optional request link", func(t *testing.T) {
		reqID := int64(12)
		out := response.FromItemResult(&commands.ItemResult{
			ID: 3, Name: "drill", Description: "cordless", Available: true, RequestID: &reqID,
		})

		assert.Equal(t, &response.ItemResponse{
			ID: 3, Name: "drill", Description: "cordless", Available: true, RequestID: &reqID,
		}, out)
	})

	t.Run("comment result carries the author and stamp", func(t *testing.T) {
		created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
		out := response.FromCommentResult(&commands.CommentResult{
			ID: 7, Text: "worked great", AuthorName: "alice", Created: created,
		})

		assert.Equal(t, &response.CommentResponse{
			ID: 7, Text: "worked great", AuthorName: "alice", Created: created,
		}, out)
	})

	t.Run("request result carries the creation stamp", func(t *testing.T) {
		created := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
		out := response.FromRequestResult(&commands.RequestResult{
			ID: 2, Description: "need a ladder", Created: created,
		})

		assert.Equal(t, &response.RequestCreatedResponse{
			ID: 2, Description: "need a ladder", Created: created,
		}, out)
	})
}
