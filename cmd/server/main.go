package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/GogaGogich123/cadet-corps-api/internal/app"
	"github.com/GogaGogich123/cadet-corps-api/internal/auth"
	"github.com/GogaGogich123/cadet-corps-api/internal/config"
	"github.com/GogaGogich123/cadet-corps-api/internal/db"
	"github.com/GogaGogich123/cadet-corps-api/internal/httpapi"
	"github.com/GogaGogich123/cadet-corps-api/internal/jobs"
	"github.com/GogaGogich123/cadet-corps-api/internal/logging"
	"github.com/GogaGogich123/cadet-corps-api/internal/notify"
	"github.com/GogaGogich123/cadet-corps-api/internal/observability"
	"github.com/GogaGogich123/cadet-corps-api/internal/storage"
	"github.com/GogaGogich123/cadet-corps-api/internal/tasks"
)

const release = "cadet-corps-api@dev"

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		lg.Base.Warn("Sentry не инициализирован", zap.Error(err))
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// База и миграции
	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Base.Fatal("Ошибка подключения к БД", zap.Error(err))
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database); err != nil {
		lg.Base.Fatal("Миграция не удалась", zap.Error(err))
	}
	if err := db.SeedAdmin(ctx, database); err != nil {
		lg.Base.Fatal("Ошибка создания админа", zap.Error(err))
	}
	if err := db.SeedAutoAchievements(ctx, database); err != nil {
		lg.Base.Fatal("Ошибка наполнения автозначков", zap.Error(err))
	}
	if err := db.SeedDemoCadets(ctx, database); err != nil {
		lg.Base.Fatal("Ошибка наполнения тестовых кадетов", zap.Error(err))
	}

	// Сервисы
	authSvc := auth.NewService(database, lg.Named("auth"), []byte(cfg.JWTSecret), cfg.TokenTTL)
	taskSvc := tasks.NewService(database, lg.Named("tasks"))
	center := notify.NewCenter(notify.DefaultTTL)
	defer center.Shutdown()

	var store *storage.Client
	if cfg.StorageEnabled() {
		store, err = storage.New(ctx, cfg)
		if err != nil {
			lg.Base.Fatal("Ошибка инициализации хранилища", zap.Error(err))
		}
	} else {
		lg.Base.Info("S3 не настроен, загрузка файлов отключена")
		observability.CaptureMsg("файловое хранилище отключено: S3 не настроен")
	}

	// Служебный листенер и фоновые задачи
	app.StartHTTP(ctx, cfg.MetricsAddr, database)

	runner := jobs.New(ctx)
	jobsLog := lg.Named("jobs")
	runner.Every(10*time.Minute, "auto_achievements", func(c context.Context) error {
		return jobs.GrantAutoAchievements(c, database, jobsLog)
	})

	// API
	server := httpapi.NewServer(database, lg.Named("httpapi"), cfg, authSvc, taskSvc, center, store)
	fiberApp := server.App()

	go func() {
		lg.Base.Info("API запущен", zap.String("addr", cfg.HTTPAddr))
		if err := fiberApp.Listen(cfg.HTTPAddr); err != nil {
			lg.Base.Error("Ошибка HTTP-сервера", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Base.Info("Останавливаемся...")
	if err := fiberApp.ShutdownWithTimeout(5 * time.Second); err != nil {
		lg.Base.Warn("Некорректное завершение HTTP-сервера", zap.Error(err))
	}
}
