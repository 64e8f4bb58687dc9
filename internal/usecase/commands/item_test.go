//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestItemAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("basic success case", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner", "owner@example.com")

		result, err := e.items.Add(ctx, owner, commands.AddItemInput{
			Name:        "drill",
			Description: "800W hammer drill",
			Available:   true,
		})
		require.NoError(t, err)
		assert.NotZero(t, result.ID)
		assert.Equal(t, "drill", result.Name)
		assert.Nil(t, result.RequestID)
	})

	t.Run("missing owner", func(t *testing.T) {
		e := newEnv(t)
		_, err := e.items.Add(ctx, 999, commands.AddItemInput{
			Name:        "drill",
			Description: "desc",
			Available:   true,
		})
		require.ErrorIs(t, err, commands.ErrUserNotFound)
	})

	t.Run("answering a request links it", func(t *testing.T) {
		e := newEnv(t)
		requestor := e.seedUser(t, "requestor", "requestor@example.com")
		owner := e.seedUser(t, "owner", "owner@example.com")

		req, err := e.requests.Add(ctx, requestor, "need a drill")
		require.NoError(t, err)

		result, err := e.items.Add(ctx, owner, commands.AddItemInput{
			Name:        "drill",
			Description: "answers the request",
			Available:   true,
			RequestID:   &req.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, result.RequestID)
		assert.Equal(t, req.ID, *result.RequestID)
	})

	t.Run("missing request", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner", "owner@example.com")
		missing := int64(777)

		_, err := e.items.Add(ctx, owner, commands.AddItemInput{
			Name:        "drill",
			Description: "desc",
			Available:   true,
			RequestID:   &missing,
		})
		require.ErrorIs(t, err, commands.ErrRequestNotFound)
	})
}

func TestItemUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("partial patch", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner", "owner@example.com")
		itemID := e.seedItem(t, "drill", owner, true)

		result, err := e.items.Update(ctx, owner, itemID, commands.UpdateItemInput{
			Available: boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, "drill", result.Name)
		assert.False(t, result.Available)
	})

	t.Run("only the owner may edit", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner", "owner@example.com")
		other := e.seedUser(t, "other", "other@example.com")
		itemID := e.seedItem(t, "drill", owner, true)

		_, err := e.items.Update(ctx, other, itemID, commands.UpdateItemInput{Name: strPtr("saw")})
		require.ErrorIs(t, err, item.ErrNotOwner)
	})

	t.Run("missing item", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner", "owner@example.com")

		_, err := e.items.Update(ctx, owner, 999, commands.UpdateItemInput{Name: strPtr("saw")})
		require.ErrorIs(t, err, commands.ErrItemNotFound)
	})
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*env, int64, int64) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner", "owner@example.com")
		booker := e.seedUser(t, "booker", "booker@example.com")
		itemID := e.seedItem(t, "drill", owner, true)
		return e, booker, itemID
	}

	t.Run("allowed after a finished approved booking", func(t *testing.T) {
		e, booker, itemID := setup(t)
		e.seedBooking(t, itemID, booker, baseTime.Add(-48*time.Hour), baseTime.Add(-24*time.Hour), booking.StatusApproved)

		result, err := e.items.AddComment(ctx, booker, itemID, "works great")
		require.NoError(t, err)
		assert.Equal(t, "works great", result.Text)
		assert.Equal(t, "booker", result.AuthorName)
		// Stamped with the skewed instant, one second behind the clock.
		assert.Equal(t, baseTime.Add(-time.Second), result.Created)
	})

	t.Run("no booking at all", func(t *testing.T) {
		e, booker, itemID := setup(t)

		_, err := e.items.AddComment(ctx, booker, itemID, "nice")
		require.ErrorIs(t, err, commands.ErrCommentNotAllowed)
	})

	t.Run("waiting booking does not qualify", func(t *testing.T) {
		e, booker, itemID := setup(t)
		e.seedBooking(t, itemID, booker, baseTime.Add(-48*time.Hour), baseTime.Add(-24*time.Hour), booking.StatusWaiting)

		_, err := e.items.AddComment(ctx, booker, itemID, "nice")
		require.ErrorIs(t, err, commands.ErrCommentNotAllowed)
	})

	t.Run("booking still running does not qualify", func(t *testing.T) {
		e, booker, itemID := setup(t)
		e.seedBooking(t, itemID, booker, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), booking.StatusApproved)

		_, err := e.items.AddComment(ctx, booker, itemID, "nice")
		require.ErrorIs(t, err, commands.ErrCommentNotAllowed)
	})

	t.Run("skew boundary", func(t *testing.T) {
		// Ends 2s before now: clears the 1s skew. Ends exactly at the
		// skewed instant: does not (strictly-before comparison).
		e, booker, itemID := setup(t)
		e.seedBooking(t, itemID, booker, baseTime.Add(-time.Hour), baseTime.Add(-2*time.Second), booking.StatusApproved)

		_, err := e.items.AddComment(ctx, booker, itemID, "just in time")
		require.NoError(t, err)

		e2, booker2, itemID2 := setup(t)
		e2.seedBooking(t, itemID2, booker2, baseTime.Add(-time.Hour), baseTime.Add(-time.Second), booking.StatusApproved)

		_, err = e2.items.AddComment(ctx, booker2, itemID2, "too early")
		require.ErrorIs(t, err, commands.ErrCommentNotAllowed)
	})

	t.Run("blank text", func(t *testing.T) {
		e, booker, itemID := setup(t)
		e.seedBooking(t, itemID, booker, baseTime.Add(-48*time.Hour), baseTime.Add(-24*time.Hour), booking.StatusApproved)

		_, err := e.items.AddComment(ctx, booker, itemID, "   ")
		require.ErrorIs(t, err, item.ErrBlankComment)
	})

	t.Run("missing item", func(t *testing.T) {
		e, booker, _ := setup(t)

		_, err := e.items.AddComment(ctx, booker, 999, "nice")
		require.ErrorIs(t, err, commands.ErrItemNotFound)
	})
}
