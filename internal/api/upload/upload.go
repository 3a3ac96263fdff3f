package upload

import (
	"context"
	"strconv"
	"time"

	"github.com/elastic-io/parcel/internal/api"
	"github.com/elastic-io/parcel/internal/config"
	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/service"
	"github.com/elastic-io/parcel/internal/storage"
	"github.com/elastic-io/parcel/internal/types"
	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 3 * time.Second

func init() {
	API := UploadAPI{name: "upload"}
	api.APIRegister(API.name, &API)
}

type UploadAPI struct {
	name    string
	service service.UploadService
	store   storage.Storage
}

func (u *UploadAPI) Init(c *config.Config) {
	u.service = service.NewUploadService(c.Storage, c.Backend, service.Options{
		PartURLExpiry: c.PartURLExpiry,
		UniqueKeys:    c.UniqueKeys,
	})
	u.store = c.Storage
}

func (u *UploadAPI) RegisterRoutes(app *fiber.App) {
	log.Logger.Info("Registering multipart upload API routes")

	app.Get("/healthz", u.handleHealth)

	g := app.Group("/api")
	g.Post("/start-upload", u.handleStartUpload)
	g.Get("/get-signed-url", u.handleGetSignedURL)
	g.Post("/upload-part", u.handleUploadPart)
	g.Post("/complete-upload", u.handleCompleteUpload)
	g.Get("/uploads/:upload_id", u.handleGetUpload)
}

func (u *UploadAPI) handleStartUpload(c *fiber.Ctx) error {
	var req types.StartUploadRequest
	if err := api.DecodeBody(c.Body(), &req); err != nil {
		return api.WriteError(c, err)
	}
	if err := api.Required("filename", req.Filename, "user_id", req.OwnerID); err != nil {
		return api.WriteError(c, err)
	}

	resp, err := u.service.StartUpload(c.UserContext(), req.Filename, req.ContentType, req.OwnerID)
	if err != nil {
		return api.WriteError(c, err)
	}
	return c.JSON(resp)
}

func (u *UploadAPI) handleGetSignedURL(c *fiber.Ctx) error {
	uploadID := c.Query("upload_id")
	key := c.Query("key")
	raw := c.Query("part_number")
	if err := api.Required("upload_id", uploadID, "key", key, "part_number", raw); err != nil {
		return api.WriteError(c, err)
	}

	partNumber, err := strconv.Atoi(raw)
	if err != nil {
		return api.WriteError(c, api.InvalidRequest("part_number must be an integer: %q", raw))
	}

	auth, err := u.service.GetPartAuthorization(c.UserContext(), uploadID, key, partNumber)
	if err != nil {
		return api.WriteError(c, err)
	}
	return c.JSON(auth)
}

func (u *UploadAPI) handleUploadPart(c *fiber.Ctx) error {
	var req types.ReportPartRequest
	if err := api.DecodeBody(c.Body(), &req); err != nil {
		return api.WriteError(c, err)
	}
	if err := api.Required("upload_id", req.UploadID, "key", req.Key, "etag", req.ETag, "user_id", req.OwnerID); err != nil {
		return api.WriteError(c, err)
	}

	if err := u.service.ReportPart(c.UserContext(), req.UploadID, req.Key, req.OwnerID, req.PartNumber, req.ETag); err != nil {
		return api.WriteError(c, err)
	}
	return c.JSON(types.ReportPartResponse{Success: true})
}

func (u *UploadAPI) handleCompleteUpload(c *fiber.Ctx) error {
	var req types.CompleteUploadRequest
	if err := api.DecodeBody(c.Body(), &req); err != nil {
		return api.WriteError(c, err)
	}
	if err := api.Required("upload_id", req.UploadID, "key", req.Key, "user_id", req.OwnerID); err != nil {
		return api.WriteError(c, err)
	}

	obj, err := u.service.CompleteUpload(c.UserContext(), req.UploadID, req.Key, req.OwnerID)
	if err != nil {
		return api.WriteError(c, err)
	}
	return c.JSON(types.CompleteUploadResponse{
		Message:  "Upload completed successfully",
		Location: obj.Location,
		Key:      obj.Key,
	})
}

func (u *UploadAPI) handleGetUpload(c *fiber.Ctx) error {
	uploadID := c.Params("upload_id")
	key := c.Query("key")
	ownerID := c.Query("user_id")
	if err := api.Required("upload_id", uploadID, "key", key, "user_id", ownerID); err != nil {
		return api.WriteError(c, err)
	}

	session, err := u.service.GetUpload(c.UserContext(), uploadID, key, ownerID)
	if err != nil {
		return api.WriteError(c, err)
	}
	return c.JSON(session)
}

func (u *UploadAPI) handleHealth(c *fiber.Ctx) error {
	if u.store == nil {
		return c.JSON(types.HealthResponse{Status: "ok"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()
	if err := u.store.Ping(ctx); err != nil {
		log.Logger.Warn("Health check failed: ", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.HealthResponse{
			Status: "unavailable",
			Store:  err.Error(),
		})
	}
	return c.JSON(types.HealthResponse{Status: "ok", Store: "ok"})
}
