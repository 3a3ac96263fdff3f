package api

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/elastic-io/parcel/internal/config"
	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/tracing"
	"github.com/elastic-io/parcel/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
)

type API interface {
	Init(*config.Config)
	RegisterRoutes(*fiber.App)
}

var apis = map[string]API{}

func APIRegister(name string, api API) {
	if _, ok := apis[name]; ok {
		panic(fmt.Errorf("API %s already registered", name))
	}
	apis[name] = api
}

type Server struct {
	config *config.Config
	router *fiber.App
	apis   []API
}

func New(c *config.Config) *Server {
	s := &Server{
		config: c,
		router: NewRouter(c),
	}

	if c.EnableAuth {
		s.router.Use(BasicAuthMiddleware(c.Username, c.Password))
	}
	return s
}

// NewRouter 创建带公共中间件的 fiber 实例
func NewRouter(c *config.Config) *fiber.App {
	router := fiber.New(fiber.Config{
		BodyLimit:             c.BodyLimit,
		DisableStartupMessage: true,
		StrictRouting:         true,
		CaseSensitive:         true,
		ReadTimeout:           time.Duration(c.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(c.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(c.IdleTimeout) * time.Second,
		ReadBufferSize:        16 * types.KB,
		WriteBufferSize:       16 * types.KB,
		JSONEncoder:           jsonEncoder,
		JSONDecoder:           jsonDecoder,

		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *fiber.Error
			if errors.As(err, &e) {
				log.Logger.Warn("HTTP Error: ", err)
				return c.Status(e.Code).JSON(types.ErrorResponse{
					Error: e.Message,
					Code:  strings.ReplaceAll(utils.StatusMessage(e.Code), " ", ""),
				})
			}
			return WriteError(c, err)
		},
	})

	router.Use(requestid.New())
	router.Use(tracing.Middleware("parcel"))

	// 添加日志中间件
	router.Use(loggingMiddleware())

	// 异常处理
	router.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Logger.Error(fmt.Sprintf("Recovered from panic: %v\n%s", e, debug.Stack()))
		},
	},
	))
	return router
}

func (s *Server) Init() error {
	if len(apis) == 0 {
		return fmt.Errorf("no APIs registered")
	}

	for _, mod := range s.config.Modules {
		api, ok := apis[mod]
		if !ok {
			return fmt.Errorf("API module %s not registered", mod)
		}
		s.apis = append(s.apis, api)
	}

	for _, api := range s.apis {
		api.Init(s.config)
		api.RegisterRoutes(s.router)
	}

	return nil
}

// Router 返回底层的 fiber 实例，测试时配合 app.Test 使用
func (s *Server) Router() *fiber.App {
	return s.router
}

func (s *Server) Serve() error {
	log.Logger.Info("Starting server on ", s.config.Endpoint)

	if s.config.CertFile != "" && s.config.KeyFile != "" {
		log.Logger.Info("Using HTTPS with certificate: ", s.config.CertFile, " and key: ", s.config.KeyFile)
		return s.router.ListenTLS(s.config.Endpoint, s.config.CertFile, s.config.KeyFile)
	}

	log.Logger.Warn("WARNING: Using insecure HTTP mode")
	return s.router.Listen(s.config.Endpoint)
}

func (s *Server) Done() error {
	if s.router != nil {
		return s.router.Shutdown()
	}
	return nil
}

func BasicAuthMiddleware(username, password string) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Users: map[string]string{
			username: password,
		},
		Realm: "parcel",
		Next: func(c *fiber.Ctx) bool {
			// 健康检查不需要认证
			return c.Path() == "/healthz"
		},
		Unauthorized: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Error: "unauthorized",
				Code:  "Unauthorized",
			})
		},
	})
}

func loggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		log.Logger.Info(c.Method(), " ", c.Path(),
			" rid=", c.GetRespHeader(fiber.HeaderXRequestID),
			" status=", c.Response().StatusCode(),
			" completed in ", time.Since(start))
		return err
	}
}
