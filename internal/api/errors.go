package api

import (
	"errors"
	"fmt"

	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/types"
	"github.com/gofiber/fiber/v2"
)

// ErrInvalidRequest 请求参数缺失或格式错误
var ErrInvalidRequest = errors.New("invalid request")

// InvalidRequest 构造带 ErrInvalidRequest 的错误
func InvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Required 校验必填字段，fields 按 name, value 成对传入
func Required(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if fields[i+1] == "" {
			return InvalidRequest("%s is required", fields[i])
		}
	}
	return nil
}

var statusCodes = []struct {
	err    error
	status int
}{
	{ErrInvalidRequest, fiber.StatusBadRequest},
	{types.ErrInvalidPartNumber, fiber.StatusBadRequest},
	{types.ErrSessionNotFound, fiber.StatusNotFound},
	{types.ErrNoPartsUploaded, fiber.StatusConflict},
	{types.ErrAlreadyCompleted, fiber.StatusConflict},
	{types.ErrSessionExists, fiber.StatusConflict},
	{types.ErrStoreUnavailable, fiber.StatusServiceUnavailable},
	{types.ErrBackend, fiber.StatusBadGateway},
}

// StatusCode 错误对应的 HTTP 状态码
func StatusCode(err error) int {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return sc.status
		}
	}
	return fiber.StatusInternalServerError
}

// WriteError 输出 {"error","code","retryable"}
func WriteError(c *fiber.Ctx, err error) error {
	status := StatusCode(err)
	code := types.ErrorCode(err)
	if errors.Is(err, ErrInvalidRequest) {
		code = "InvalidRequest"
	}
	if status >= fiber.StatusInternalServerError {
		log.Logger.Error("HTTP Error: ", c.Method(), " ", c.Path(), ": ", err)
	}
	return c.Status(status).JSON(types.ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		Retryable: types.IsRetryable(err),
	})
}
