package utils

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/condovia/reservation/booking"
)

const callerKey = "caller"

var ErrCallerNotFound = errors.New("authentication required: caller not found in context")

// SetCaller stores the resolved principal in the gin context. Called by the
// auth middleware.
func SetCaller(c *gin.Context, caller booking.Caller) {
	c.Set(callerKey, caller)
}

// GetCaller fetches the principal placed in the context by the auth
// middleware.
func GetCaller(c *gin.Context) (booking.Caller, error) {
	v, exists := c.Get(callerKey)
	if !exists {
		return booking.Caller{}, ErrCallerNotFound
	}
	caller, ok := v.(booking.Caller)
	if !ok {
		return booking.Caller{}, ErrCallerNotFound
	}
	return caller, nil
}
