package inits

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis 是可选的缓存：连接串为空时返回 nil ，调用方按无缓存运行
func Redis(conn string) (*redis.Client, error) {
	if conn == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(conn)
	if err != nil {
		return nil, fmt.Errorf("parse redis connection string: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}
