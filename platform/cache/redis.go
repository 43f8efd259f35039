package cache

import (
	"time"

	"github.com/gomodule/redigo/redis"
)

// Getter hands out connections; *redis.Pool satisfies it.
type Getter interface {
	Get() redis.Conn
}

// CreateRedisPool returns a pool dialing addr.
func CreateRedisPool(addr string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 60 * time.Second,
		Dial:        func() (redis.Conn, error) { return redis.Dial("tcp", addr) },
	}
}
