package handler

import (
	"net/http"

	"byteapi/cmd/internal/contract"

	"github.com/labstack/echo/v4"
)

const (
	APIName    = "BYTE Website Backend API"
	APIVersion = "1.0.0"
)

func GetRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, &contract.RootResponse{
		Message: APIName,
		Version: APIVersion,
		Status:  "running",
	})
}

func GetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, &contract.HealthResponse{Status: "healthy"})
}
