package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	"github.com/alpenrent/alpenrent_api/docs"
	"github.com/alpenrent/alpenrent_api/services/handlers"
	"github.com/alpenrent/alpenrent_api/shared"
)

// HttpService owns the fiber app: middleware, routing and the mapping
// from AppError to HTTP responses.
type HttpService struct {
	context.DefaultService

	jwtSvc       *JWTService
	settingsSvc  *SettingsService
	rateLimitSvc *RateLimitService

	bookingHandler *handlers.BookingHandler
	carHandler     *handlers.CarHandler
	adminHandler   *handlers.AdminHandler

	port int
	app  *fiber.App
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
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.settingsSvc = svc.Service(SETTINGS_SVC).(*SettingsService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)

	bookingSvc := svc.Service(BOOKING_SVC).(*BookingService)
	fleetSvc := svc.Service(FLEET_SVC).(*FleetService)
	availabilitySvc := svc.Service(AVAILABILITY_SVC).(*AvailabilityService)
	sqlSvc := svc.Service(POSTGRES_SVC).(*PostgresService)

	svc.bookingHandler = handlers.NewBookingHandler(bookingSvc)
	svc.carHandler = handlers.NewCarHandler(fleetSvc, availabilitySvc)
	svc.adminHandler = handlers.NewAdminHandler(fleetSvc, bookingSvc, sqlSvc, svc.settingsSvc)

	docs.SwaggerInfo.BasePath = ""

	svc.app = fiber.New(fiber.Config{
		AppName:      "alpenrent_api",
		JSONEncoder:  shared.JSONAPI.Marshal,
		JSONDecoder:  shared.JSONAPI.Unmarshal,
		ErrorHandler: svc.handleError,
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Admin-Key",
	}))
	svc.app.Use(MonitoringMiddleware())
	svc.app.Use(svc.identity())

	svc.app.Get("/ping", svc.ping)
	svc.app.Get("/swagger/*", swagger.HandlerDefault)

	v1 := svc.app.Group("/api/v1")
	v1.Get("/ping", svc.ping)
	v1.Get("/maintenance", svc.maintenanceStatus)

	public := v1.Group("", svc.maintenanceGate())
	public.Get("/cars", svc.carHandler.ListCars)
	public.Get("/cars/available", svc.carHandler.AvailableCars)
	public.Get("/extras", svc.carHandler.ListExtras)
	public.Get("/promotions/:code", svc.carHandler.GetPromotion)
	public.Get("/bookings/time-slots", svc.bookingHandler.TimeSlots)
	public.Post("/bookings", svc.bookingHandler.CreateBooking)
	public.Post("/bookings/:id/cancel", svc.requireAuth(), svc.bookingHandler.CancelBooking)

	admin := v1.Group("/admin", svc.requireAdmin())
	admin.Get("/cars", svc.adminHandler.ListCars)
	admin.Post("/cars", svc.adminHandler.CreateCar)
	admin.Put("/cars/:id", svc.adminHandler.UpdateCar)
	admin.Delete("/cars/:id", svc.adminHandler.DeleteCar)
	admin.Get("/extras", svc.adminHandler.ListExtras)
	admin.Post("/extras", svc.adminHandler.CreateExtra)
	admin.Put("/extras/:id", svc.adminHandler.UpdateExtra)
	admin.Delete("/extras/:id", svc.adminHandler.DeleteExtra)
	admin.Get("/promotions", svc.adminHandler.ListPromotions)
	admin.Post("/promotions", svc.adminHandler.CreatePromotion)
	admin.Delete("/promotions/:id", svc.adminHandler.DeletePromotion)
	admin.Get("/reservations", svc.adminHandler.ListReservations)
	admin.Get("/reservations/:id", svc.adminHandler.GetReservation)
	admin.Post("/reservations/:id/cancel", svc.adminHandler.CancelReservation)
	admin.Put("/maintenance", svc.adminHandler.SetMaintenance)
	admin.Get("/ratelimits/stats", svc.rateLimitStats)
	admin.Delete("/ratelimits/:identifier", svc.rateLimitReset)

	svc.app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	log.Printf("HTTP server listening on :%d", svc.port)
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
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

	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

// @Summary Maintenance status
// @Description Report whether the site is in maintenance mode
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=dto.MaintenanceResponse}
// @Router /api/v1/maintenance [get]
func (svc *HttpService) maintenanceStatus(c *fiber.Ctx) error {
	return shared.ResponseOK(c, svc.settingsSvc.MaintenanceStatus(c.UserContext()))
}

// @Summary Rate limiter stats
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/ratelimits/stats [get]
func (svc *HttpService) rateLimitStats(c *fiber.Ctx) error {
	return shared.ResponseOK(c, svc.rateLimitSvc.Stats())
}

// @Summary Reset a rate limit counter
// @Tags admin
// @Produce json
// @Security Bearer
// @Param identifier path string true "Caller identifier (IP)"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/ratelimits/{identifier} [delete]
func (svc *HttpService) rateLimitReset(c *fiber.Ctx) error {
	if err := svc.rateLimitSvc.Reset(c.UserContext(), c.Params("identifier")); err != nil {
		return shared.NewInternalError(err, "Failed to reset rate limit")
	}
	return shared.ResponseOK(c, nil)
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.StatusCode >= 500 {
			log.WithError(appErr.Err).WithField("path", c.Path()).Error(appErr.Message)
		}
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
	return shared.ResponseInternalError(c, err)
}

// identity resolves an optional bearer token into request locals. An
// invalid token is ignored here; routes that need authentication check
// the locals via requireAuth/requireAdmin.
func (svc *HttpService) identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return c.Next()
		}

		userID, role, err := svc.jwtSvc.VerifyToken(token)
		if err != nil {
			return c.Next()
		}

		c.Locals(shared.UserID, userID)
		c.Locals(shared.UserRole, role)
		return c.Next()
	}
}

func (svc *HttpService) requireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(shared.UserID).(string)
		if userID == "" {
			return shared.NewUnauthorizedError(nil, "Unauthorized")
		}
		return c.Next()
	}
}

// requireAdmin accepts either a bearer token with the admin role or a
// valid X-Admin-Key header for machine clients.
func (svc *HttpService) requireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals(shared.UserRole).(string); role == shared.RoleAdmin {
			return c.Next()
		}

		if svc.jwtSvc.VerifyAdminKey(c.Get("X-Admin-Key")) {
			c.Locals(shared.UserRole, shared.RoleAdmin)
			return c.Next()
		}

		return shared.NewForbiddenError(nil, "Forbidden")
	}
}

// maintenanceGate rejects public traffic while maintenance mode is on.
func (svc *HttpService) maintenanceGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := svc.settingsSvc.MaintenanceStatus(c.UserContext())
		if status.Enabled {
			return shared.NewServiceUnavailableError(status.Message)
		}
		return c.Next()
	}
}
