package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/elastic-io/parcel/internal/config"
	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingAPI struct {
	inited bool
}

func (p *pingAPI) Init(*config.Config) { p.inited = true }

func (p *pingAPI) RegisterRoutes(app *fiber.App) {
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return fmt.Errorf("%w: get: %w", types.ErrStoreUnavailable, errors.New("i/o timeout"))
	})
}

var testAPI = &pingAPI{}

func init() {
	APIRegister("ping", testAPI)
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{InvalidRequest("x is required"), fiber.StatusBadRequest},
		{types.ErrInvalidPartNumber, fiber.StatusBadRequest},
		{fmt.Errorf("get: %w", types.ErrSessionNotFound), fiber.StatusNotFound},
		{types.ErrNoPartsUploaded, fiber.StatusConflict},
		{types.ErrAlreadyCompleted, fiber.StatusConflict},
		{types.ErrSessionExists, fiber.StatusConflict},
		{types.ErrStoreUnavailable, fiber.StatusServiceUnavailable},
		{types.ErrBackend, fiber.StatusBadGateway},
		{errors.New("unexpected"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, StatusCode(tt.err), tt.err.Error())
	}
}

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("a", "1", "b", "2"))

	err := Required("a", "1", "b", "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "b is required")
}

func TestDecodeBody(t *testing.T) {
	var req types.StartUploadRequest
	require.NoError(t, DecodeBody([]byte(`{"filename":"a.bin","user_id":"u"}`), &req))
	assert.Equal(t, "a.bin", req.Filename)
	assert.Equal(t, "u", req.OwnerID)

	assert.ErrorIs(t, DecodeBody(nil, &req), ErrInvalidRequest)
	assert.ErrorIs(t, DecodeBody([]byte(`[1,2`), &req), ErrInvalidRequest)
}

func TestServerInit(t *testing.T) {
	log.Init("", "debug")

	s := New(&config.Config{BodyLimit: types.MB, Modules: []string{"missing"}})
	assert.EqualError(t, s.Init(), "API module missing not registered")

	s = New(&config.Config{BodyLimit: types.MB, Modules: []string{"ping"}})
	require.NoError(t, s.Init())
	assert.True(t, testAPI.inited)

	resp, err := s.Router().Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "pong", string(body))
}

func TestRouterErrors(t *testing.T) {
	log.Init("", "debug")

	s := New(&config.Config{BodyLimit: types.MB, Modules: []string{"ping"}})
	require.NoError(t, s.Init())

	resp, err := s.Router().Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	var e types.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "StoreUnavailable", e.Code)
	assert.True(t, e.Retryable)

	resp, err = s.Router().Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestBasicAuth(t *testing.T) {
	log.Init("", "debug")

	s := New(&config.Config{
		BodyLimit:  types.MB,
		Modules:    []string{"ping"},
		EnableAuth: true,
		Username:   "admin",
		Password:   "secret",
	})
	require.NoError(t, s.Init())

	resp, err := s.Router().Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.SetBasicAuth("admin", "secret")
	resp, err = s.Router().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
