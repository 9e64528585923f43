package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	db "github.com/condovia/reservation/config/redis"
	"github.com/condovia/reservation/logger"
	"github.com/condovia/reservation/utils"
)

// ParseCustomRate parses rate strings like "10-2m", "5-1h" or "20-30s".
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(rateStr, "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	unit := parts[1][len(parts[1])-1:]
	n, err := strconv.Atoi(parts[1][:len(parts[1])-1])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid period: %s", parts[1])
	}

	var period time.Duration
	switch unit {
	case "s":
		period = time.Duration(n) * time.Second
	case "m":
		period = time.Duration(n) * time.Minute
	case "h":
		period = time.Duration(n) * time.Hour
	default:
		return limiter.Rate{}, fmt.Errorf("unsupported period unit: %s", unit)
	}

	return limiter.Rate{Period: period, Limit: int64(limit)}, nil
}

// NewRateLimiter builds a per-caller, per-route rate limit middleware backed
// by Redis. When Redis is not configured the middleware passes requests
// through unchanged, matching the rest of the service's soft dependency on
// Redis.
func NewRateLimiter(rateStr, routeID string) gin.HandlerFunc {
	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		logger.ErrorLogger.Errorf("Invalid rate %q for route %s: %v", rateStr, routeID, err)
		return func(c *gin.Context) { c.Next() }
	}

	rdb, err := db.GetRedisClient()
	if err != nil {
		logger.WarnLogger.Warnf("Rate limiting disabled for route %s: %v", routeID, err)
		return func(c *gin.Context) { c.Next() }
	}

	store, err := redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:          fmt.Sprintf("rate_limiter:%s", routeID),
		MaxRetry:        3,
		CleanUpInterval: rate.Period,
	})
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create redis store for route %s: %v", routeID, err)
		return func(c *gin.Context) { c.Next() }
	}

	instance := limiter.New(store, rate)

	return ginmiddleware.NewMiddleware(instance, ginmiddleware.WithKeyGetter(func(c *gin.Context) string {
		if caller, err := utils.GetCaller(c); err == nil {
			return strconv.FormatInt(caller.ID, 10)
		}
		return c.ClientIP()
	}))
}
