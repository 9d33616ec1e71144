package common

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var RedisEnabled = true

// InitRedisClient connects to Redis when REDIS_CONN_STRING is set; the
// service degrades to in-memory session, cache and rate-limit backends
// otherwise.
func InitRedisClient() (err error) {
	connString := os.Getenv("REDIS_CONN_STRING")
	if connString == "" {
		RedisEnabled = false
		SysLog("REDIS_CONN_STRING not set, Redis is not enabled")
		return nil
	}
	opt, err := redis.ParseURL(connString)
	if err != nil {
		FatalLog("failed to parse Redis connection string: " + err.Error())
	}
	RDB = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = RDB.Ping(ctx).Result()
	if err != nil {
		RedisEnabled = false
		SysError("Redis ping failed, falling back to memory backends: " + err.Error())
		return nil
	}
	SysLog("Redis is enabled")
	return nil
}

func ParseRedisOption() *redis.Options {
	opt, err := redis.ParseURL(os.Getenv("REDIS_CONN_STRING"))
	if err != nil {
		FatalLog("failed to parse Redis connection string: " + err.Error())
	}
	return opt
}

func RedisSet(key string, value string, expiration time.Duration) error {
	ctx := context.Background()
	return RDB.Set(ctx, key, value, expiration).Err()
}

func RedisGet(key string) (string, error) {
	ctx := context.Background()
	return RDB.Get(ctx, key).Result()
}
