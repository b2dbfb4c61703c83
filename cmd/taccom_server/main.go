package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/brm5/taccom/internal/callbacks"
	"github.com/brm5/taccom/internal/config"
	"github.com/brm5/taccom/internal/database"
	"github.com/brm5/taccom/internal/model"
	"github.com/brm5/taccom/internal/repository"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

type App struct {
	logger *slog.Logger
	config *config.AppConfig

	dbm   *database.DatabaseManager
	users repository.UserRepository

	changeCb *callbacks.Feed[*model.MissionDTO]
	deleteCb *callbacks.Feed[string]

	uid string

	ctx context.Context
}

func NewApp(cfg *config.AppConfig) *App {
	return &App{
		logger:   slog.Default(),
		config:   cfg,
		users:    repository.NewFileUserRepo(cfg.UsersFile()),
		changeCb: callbacks.New[*model.MissionDTO](),
		deleteCb: callbacks.New[string](),
		uid:      uuid.NewString(),
	}
}

func (app *App) Run() {
	db, err := database.GetDatabase(app.config.DB(), app.config.Debug())
	if err != nil {
		app.logger.Error("database error", slog.Any("error", err))
		os.Exit(1)
	}

	app.dbm = database.New(db)

	if err := app.dbm.Migrate(); err != nil {
		app.logger.Error("migrate error", slog.Any("error", err))
		os.Exit(1)
	}

	if app.users != nil {
		_ = app.users.Start()
	}

	var cancel context.CancelFunc
	app.ctx, cancel = context.WithCancel(context.Background())

	go func() {
		api := NewPublicAPI(app, app.config.ApiAddr())

		if err := api.Listen(); err != nil {
			app.logger.Error("api listen error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	go func() {
		admin := NewAdminAPI(app, app.config.AdminAddr())

		if err := admin.Listen(); err != nil {
			app.logger.Error("admin api listen error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	app.logger.Info("server started")
	<-c

	app.logger.Info("exiting")
	cancel()

	if app.users != nil {
		app.users.Stop()
	}
}

func getVersion() string {
	return fmt.Sprintf("%s:%s", gitBranch, gitRevision)
}

func main() {
	conf := flag.String("config", "taccom.yml", "config file")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.NewAppConfig()
	cfg.Load(*conf)
	cfg.BindEnv("TACCOM")

	if *debug {
		cfg.Set("debug", true)
	}

	var h slog.Handler
	if cfg.Debug() {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	slog.SetDefault(slog.New(h))

	slog.Info("version " + getVersion())

	NewApp(cfg).Run()
}
