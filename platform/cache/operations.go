// Package cache keeps the per-table event journal in redis lists.
package cache

import (
	"github.com/gomodule/redigo/redis"
)

func Del(key string, conn redis.Conn) error {
	_, err := conn.Do("DEL", key)
	return err
}

func RPUSH(key string, values []interface{}, conn redis.Conn) error {
	_, err := conn.Do("RPUSH", redis.Args{}.Add(key).AddFlat(values)...)
	return err
}

// LGET returns the whole list.
func LGET(key string, conn redis.Conn) ([][]byte, error) {
	return redis.ByteSlices(conn.Do("LRANGE", key, 0, -1))
}

func EXPIRE(key string, ttl int, conn redis.Conn) error {
	_, err := conn.Do("EXPIRE", key, ttl)
	return err
}
