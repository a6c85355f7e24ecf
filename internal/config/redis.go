package config

import (
    "context"
    "crypto/tls"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient builds the Redis client backing the catalog response cache
// and the rate limiter. Connection settings come from the environment:
//
//	REDIS_URL       full redis:// or rediss:// URL (takes precedence)
//	REDIS_HOST/PORT host and port, default localhost:6379
//	REDIS_ADDR      host:port shorthand
//	REDIS_PASSWORD  optional password
//	REDIS_DB        database number, default 0
//	REDIS_TLS       "true"/"1" enables TLS
//
// Redis is optional infrastructure here: if the initial ping fails the
// function returns nil and the caller runs without caching or rate limiting.
func NewRedisClient() *redis.Client {
    opts := redisOptions()
    if opts == nil {
        return nil
    }
    client := redis.NewClient(opts)

    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        return nil
    }
    return client
}

func redisOptions() *redis.Options {
    if u := os.Getenv("REDIS_URL"); u != "" {
        opts, err := redis.ParseURL(u)
        if err != nil {
            return nil
        }
        return opts
    }

    addr := os.Getenv("REDIS_ADDR")
    if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
        addr = host + ":" + port
    }
    if addr == "" {
        addr = "localhost:6379"
    }

    dbNum := 0
    if s := os.Getenv("REDIS_DB"); s != "" {
        if n, err := strconv.Atoi(s); err == nil {
            dbNum = n
        }
    }

    var tlsConf *tls.Config
    if v := os.Getenv("REDIS_TLS"); strings.EqualFold(v, "true") || v == "1" {
        tlsConf = &tls.Config{InsecureSkipVerify: true}
    }

    return &redis.Options{
        Addr:      addr,
        Password:  os.Getenv("REDIS_PASSWORD"),
        DB:        dbNum,
        TLSConfig: tlsConf,
    }
}
