package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/travel-planner/internal/config"
)

// bodyRecorder duplicates the response body into a buffer while streaming it
// to the client, so a successful response can be stored afterwards. Capture
// stops at limit bytes; oversized bodies are still sent but not cached.
type bodyRecorder struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    size   int64
    limit  int64
}

func (br *bodyRecorder) WriteHeader(code int) {
    br.status = code
    br.ResponseWriter.WriteHeader(code)
}

func (br *bodyRecorder) Write(b []byte) (int, error) {
    if br.limit <= 0 {
        br.buf.Write(b)
    } else if remain := br.limit - br.size; remain > 0 {
        if int64(len(b)) <= remain {
            br.buf.Write(b)
        } else {
            br.buf.Write(b[:remain])
        }
    }
    br.size += int64(len(b))
    return br.ResponseWriter.Write(b)
}

// cachedResponse is the envelope stored in Redis. Body is base64-encoded by
// encoding/json, headers are kept so replayed responses look identical to the
// original (content type, pretty-printed JSON and so on).
type cachedResponse struct {
    Status int         `json:"status"`
    Header http.Header `json:"header"`
    Body   []byte      `json:"body"`
}

// catalogCacheKey hashes the key material chosen by the strategy so query
// strings of arbitrary length collapse into a fixed-size Redis key.
func catalogCacheKey(cfg config.CacheConfig, c echo.Context) string {
    r := c.Request()
    route := c.Path()
    query := r.URL.RawQuery

    var material string
    switch strings.ToLower(cfg.KeyStrategy) {
    case "route":
        material = "route:" + route
    case "method_route":
        material = "method:" + r.Method + ":route:" + route
    case "method_route_query":
        material = "method:" + r.Method + ":route:" + route + ":q:" + query
    default: // "route_query"
        material = "route:" + route + ":q:" + query
    }
    sum := sha1.Sum([]byte(material))
    return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// NewRedisCache caches successful responses on the public catalog routes.
// Replayed hits carry the original headers plus X-Cache: HIT. With caching
// disabled or no Redis client the middleware is a pass-through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = time.Minute
    }
    maxBody := int64(cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }

            ctx := c.Request().Context()
            key := catalogCacheKey(cfg, c)

            if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
                var stored cachedResponse
                if json.Unmarshal(raw, &stored) == nil && stored.Status != 0 {
                    for k, vals := range stored.Header {
                        if strings.EqualFold(k, "Content-Length") {
                            continue
                        }
                        for _, v := range vals {
                            c.Response().Header().Add(k, v)
                        }
                    }
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(stored.Status)
                    if len(stored.Body) > 0 {
                        _, _ = c.Response().Write(stored.Body)
                    }
                    return nil
                }
            }

            rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = rec
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            // Only fully captured 200 responses are stored.
            if rec.status != http.StatusOK {
                return nil
            }
            if maxBody > 0 && rec.size > maxBody {
                return nil
            }
            hdr := make(http.Header, len(c.Response().Header()))
            for k, vals := range c.Response().Header() {
                vv := make([]string, len(vals))
                copy(vv, vals)
                hdr[k] = vv
            }
            payload, err := json.Marshal(cachedResponse{Status: rec.status, Header: hdr, Body: rec.buf.Bytes()})
            if err == nil {
                // The request context may already be done; storing uses its own.
                _ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
            }
            return nil
        }
    }
}
