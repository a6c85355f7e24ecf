package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health answers liveness probes. It deliberately touches no dependencies so
// it keeps responding while MySQL, Redis or RabbitMQ are down.
func Health(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "travel-planner"})
}
