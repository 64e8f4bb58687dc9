package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SharerUserHeader carries the acting user's id. Callers are trusted to
// set it; there is no token exchange in front of this service.
const SharerUserHeader = "X-Sharer-User-Id"

const ctxActorIDKey = "actor_id"

// RequireActor rejects requests without a parseable actor header before
// they reach a handler.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerUserHeader)
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "X-Sharer-User-Id header required",
			})
			c.Abort()
			return
		}

		actorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "X-Sharer-User-Id header must be an integer",
			})
			c.Abort()
			return
		}

		c.Set(ctxActorIDKey, actorID)
		c.Next()
	}
}

func GetActorID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxActorIDKey)
	if !exists {
		return 0, false
	}

	id, ok := v.(int64)
	return id, ok
}
