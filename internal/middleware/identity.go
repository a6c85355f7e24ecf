package middleware

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// requesterID names the caller for rate-limit bucket keys. JWTAuth stores the
// token's subject claim under "user_id"; JSON numbers decode as float64, so
// both numeric and string forms are handled. Unauthenticated traffic shares
// the "anon" identity and is only separated per IP.
func requesterID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return strconv.FormatUint(uint64(v), 10)
    case uint64:
        return strconv.FormatUint(v, 10)
    case int64:
        return strconv.FormatInt(v, 10)
    case int:
        return strconv.Itoa(v)
    }
    return "anon"
}
