// Package httpapi — HTTP-поверхность кабинета: публичный рейтинг и лента,
// кабинет кадета (задания, уведомления) и админка. JSON поверх fiber.
package httpapi

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/GogaGogich123/cadet-corps-api/internal/auth"
	"github.com/GogaGogich123/cadet-corps-api/internal/config"
	"github.com/GogaGogich123/cadet-corps-api/internal/ctxutil"
	"github.com/GogaGogich123/cadet-corps-api/internal/metrics"
	"github.com/GogaGogich123/cadet-corps-api/internal/notify"
	"github.com/GogaGogich123/cadet-corps-api/internal/observability"
	"github.com/GogaGogich123/cadet-corps-api/internal/storage"
	"github.com/GogaGogich123/cadet-corps-api/internal/tasks"
)

type Server struct {
	db     *sql.DB
	log    *zap.Logger
	cfg    *config.Config
	auth   *auth.Service
	tasks  *tasks.Service
	notify *notify.Center
	store  *storage.Client // nil, если хранилище не настроено
}

func NewServer(database *sql.DB, log *zap.Logger, cfg *config.Config, authSvc *auth.Service, taskSvc *tasks.Service, center *notify.Center, store *storage.Client) *Server {
	return &Server{
		db:     database,
		log:    log,
		cfg:    cfg,
		auth:   authSvc,
		tasks:  taskSvc,
		notify: center,
		store:  store,
	}
}

// App собирает fiber-приложение с маршрутами и мидлварями.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "cadet-corps-api",
		ErrorHandler: s.errorHandler,
		BodyLimit:    32 * 1024 * 1024, // хватает на любое фото
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(s.countRequests())
	app.Use(s.withAuth())

	api := app.Group("/api")

	// публичные
	api.Post("/login", s.login)
	api.Get("/rating", s.getRating)
	api.Get("/cadets", s.listCadets)
	api.Get("/cadets/:id", s.getCadet)
	api.Get("/news", s.listNews)
	api.Get("/news/main", s.getMainNews)
	api.Get("/news/:id/comments", s.listComments)
	api.Get("/tasks", s.listTasks)
	api.Get("/tasks/:id", s.getTask)

	// требуют входа
	authed := api.Group("/", s.requireAuth())
	authed.Post("/logout", s.logout)
	authed.Get("/notifications", s.listNotifications)
	authed.Delete("/notifications/:id", s.dismissNotification)
	authed.Post("/news/:id/comments", s.addComment)
	authed.Post("/news/:id/like", s.toggleLike)
	authed.Post("/tasks/:id/take", s.takeTask)
	authed.Post("/tasks/:id/submit", s.submitTask)
	authed.Post("/tasks/:id/abandon", s.abandonTask)

	// админка
	admin := api.Group("/admin", s.requireAuth(), s.requireAdmin())
	admin.Get("/tasks", s.adminListTasks)
	admin.Post("/tasks", s.adminCreateTask)
	admin.Patch("/tasks/:id", s.adminPatchTask)
	admin.Get("/submissions", s.adminListSubmissions)
	admin.Post("/submissions/:id/review", s.adminReviewSubmission)
	admin.Post("/scores/:cadetID", s.adminAddScore)
	admin.Get("/history", s.adminListHistory)
	admin.Get("/achievements", s.adminListAchievements)
	admin.Post("/achievements", s.adminCreateAchievement)
	admin.Post("/achievements/:cadetID", s.adminAwardAchievement)
	admin.Post("/news", s.adminCreateNews)
	admin.Patch("/news/:id", s.adminPatchNews)
	admin.Patch("/cadets/:id", s.adminPatchCadet)
	admin.Post("/upload", s.adminUpload)
	admin.Get("/export/rating", s.adminExportRating)

	return app
}

// errorHandler — единая точка: клиенту короткий JSON, нам — лог и Sentry
// на пятисотых.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= 500 {
		metrics.HandlerErrors.Inc()
		observability.CaptureErr(err)
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		}
		if uid, ok := ctxutil.UserID(c.UserContext()); ok {
			fields = append(fields, zap.String("user_id", uid))
		}
		if role, ok := ctxutil.Role(c.UserContext()); ok {
			fields = append(fields, zap.String("role", role))
		}
		s.log.Error("ошибка обработчика", fields...)
		return c.Status(code).JSON(fiber.Map{"error": "внутренняя ошибка сервера"})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
