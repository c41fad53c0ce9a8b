/*
	Redis backed key-value store for session tokens.

	The expiry contract lives here: a key set with SETEX is
	unreadable once its TTL elapsed, no sweeping required.
*/
package cache

import (
	"time"

	"github.com/gomodule/redigo/redis"
)

type Cache struct {
	pool *redis.Pool
}

// Connects to redis under provided url ("redis://host:port")
// and returns cache object
func InitCache(url string) (*Cache, error) {
	pool := &redis.Pool{
		MaxIdle:     3,
		IdleTimeout: 240 * time.Second,
		Dial:        func() (redis.Conn, error) { return redis.DialURL(url) },
	}

	// fail fast on a dead redis instead of at the first request
	conn := pool.Get()
	_, err := conn.Do("PING")
	conn.Close()
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &Cache{pool: pool}, nil
}

func (c *Cache) Close() error {
	return c.pool.Close()
}

func (c *Cache) Ping() bool {
	conn := c.pool.Get()
	defer conn.Close()

	_, err := conn.Do("PING")
	return err == nil
}

// Get returns the value under key or an empty string
// if the key is absent or expired
func (c *Cache) Get(key string) (string, error) {
	conn := c.pool.Get()
	defer conn.Close()

	value, err := redis.String(conn.Do("GET", key))
	if err == redis.ErrNil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (c *Cache) Set(key, value string, expiry time.Duration) error {
	conn := c.pool.Get()
	defer conn.Close()

	_, err := conn.Do("SETEX", key, int64(expiry.Seconds()), value)
	return err
}

func (c *Cache) Del(key string) error {
	conn := c.pool.Get()
	defer conn.Close()

	_, err := conn.Do("DEL", key)
	return err
}
