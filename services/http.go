package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"github.com/swaggo/swag"

	_ "github.com/harborview-realty/estate_api/docs"
	"github.com/harborview-realty/estate_api/services/handlers"
	"github.com/harborview-realty/estate_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	propertySvc   *PropertyService
	postSvc       *PostService
	contactSvc    *ContactService
	settingsSvc   *SettingsService
	mediaSvc      *MediaService
	rateLimitSvc  *RateLimitService
	monitoringSvc *MonitoringService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.propertySvc = svc.Service(PROPERTY_SVC).(*PropertyService)
	svc.postSvc = svc.Service(POST_SVC).(*PostService)
	svc.contactSvc = svc.Service(CONTACT_SVC).(*ContactService)
	svc.settingsSvc = svc.Service(SETTINGS_SVC).(*SettingsService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	app := fiber.New(fiber.Config{
		AppName:               "estate_api",
		DisableStartupMessage: os.Getenv("LOG_LEVEL") == "INFO",
		ErrorHandler:          svc.handleError,
	})

	app.Use(fiberrecover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(svc.monitoringSvc.RequestMetrics())
	app.Use(svc.rateLimitSvc.Middleware())

	svc.registerRoutes(app)

	svc.server = app
	return app.Listen(fmt.Sprintf(":%d", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	propertyHandler := handlers.NewPropertyHandler(svc.propertySvc)
	postHandler := handlers.NewPostHandler(svc.postSvc)
	contactHandler := handlers.NewContactHandler(svc.contactSvc)
	settingsHandler := handlers.NewSettingsHandler(svc.settingsSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)

	app.Get("/ping", svc.ping)
	app.Get("/swagger/doc.json", svc.swaggerDoc)

	api := app.Group("/api")

	api.Get("/properties", propertyHandler.List)
	api.Get("/properties/:slug", propertyHandler.GetBySlug)
	api.Get("/posts", postHandler.List)
	api.Get("/posts/:slug", postHandler.GetBySlug)
	api.Get("/tags", postHandler.ListTags)
	api.Get("/settings", settingsHandler.Get)
	api.Post("/contact", contactHandler.Submit)

	users := api.Group("/users")
	users.Post("/login", authHandler.Login)
	users.Post("/forgot-password", authHandler.ForgotPassword)
	users.Post("/reset-password", authHandler.ResetPassword)
	users.Post("/change-password", svc.authSvc.RequiredAuth(), authHandler.ChangePassword)

	admin := api.Group("/admin", svc.authSvc.RequiredAuth())
	admin.Post("/properties", propertyHandler.Create)
	admin.Put("/properties/:id", propertyHandler.Update)
	admin.Delete("/properties/:id", propertyHandler.Delete)
	admin.Post("/properties/:id/images", mediaHandler.UploadPropertyImage)
	admin.Post("/posts", postHandler.Create)
	admin.Put("/posts/:id", postHandler.Update)
	admin.Delete("/posts/:id", postHandler.Delete)
	admin.Post("/posts/:id/cover", mediaHandler.UploadPostImage)
	admin.Delete("/media", mediaHandler.DeleteImage)
	admin.Get("/contact", contactHandler.List)
	admin.Put("/settings", svc.authSvc.RequireRole("admin"), settingsHandler.Update)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) swaggerDoc(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(doc)
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled error")
	return shared.ResponseInternalError(c, err)
}
