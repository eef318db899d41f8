package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
	CacheWeek    = 7 * 86400
)

// CacheRouter sets the cache-control header of every response going through it.
// Uploaded files never change (their names are unique), album and image lists do.
type CacheRouter struct {
	CacheTime int // defaults to CacheNoCache = 0
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch {
		case cr.CacheTime == CacheCustom:
			// Handler decides
		case cr.CacheTime == CacheNoCache:
			c.Header("cache-control", "no-cache")
		default:
			c.Header("cache-control", "public, max-age="+strconv.Itoa(cr.CacheTime))
		}
		c.Next()
	}
}

// CacheFor is a shortcut for a per-route CacheRouter
func CacheFor(seconds int) gin.HandlerFunc {
	return (&CacheRouter{CacheTime: seconds}).Handler()
}
