package main

import (
	"embed"
	"net/http"
	"runtime/pprof"
	"sort"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brm5/taccom/internal/model"
	"github.com/brm5/taccom/internal/wshandler"
	"github.com/brm5/taccom/pkg/log"
)

//go:embed templates
var templates embed.FS

// AdminAPI is the ops surface: dashboard, full mission and operator
// listings, a live change feed and runtime introspection. It binds to a
// local address and carries no auth of its own.
type AdminAPI struct {
	f    *fiber.App
	addr string
}

func NewAdminAPI(app *App, addr string) *AdminAPI {
	api := &AdminAPI{addr: addr}

	engine := html.NewFileSystem(http.FS(templates), ".html")

	engine.Delims("[[", "]]")

	api.f = fiber.New(fiber.Config{EnablePrintRoutes: false, DisableStartupMessage: true, Views: engine})

	api.f.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "admin_api", DoMetrics: true}))

	api.f.Get("/", getIndexHandler(app))
	api.f.Get("/user", getUsersHandler(app))
	api.f.Get("/mission", getAllMissionsHandler(app))

	api.f.Get("/ws", getWsHandler(app))

	api.f.Get("/stack", getStackHandler())
	api.f.Get("/metrics", getMetricsHandler())

	return api
}

func (api *AdminAPI) Address() string {
	return api.addr
}

func (api *AdminAPI) Listen() error {
	return api.f.Listen(api.addr)
}

func getIndexHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		data := fiber.Map{
			"version": getVersion(),
			"uid":     app.uid,
		}

		return ctx.Render("templates/index", data)
	}
}

func getUsersHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		users := make([]*model.UserDTO, 0)

		app.users.ForEach(func(u *model.User) bool {
			users = append(users, u.DTO())

			return true
		})

		sort.Slice(users, func(i, j int) bool {
			return users[i].Login < users[j].Login
		})

		return ctx.JSON(users)
	}
}

func getAllMissionsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		data := app.dbm.MissionQuery().Get()

		result := make([]*model.MissionDTO, len(data))
		for i, m := range data {
			result[i] = model.ToMissionDTO(m)
		}

		return ctx.JSON(result)
	}
}

func getWsHandler(app *App) fiber.Handler {
	return websocket.New(func(ws *websocket.Conn) {
		name := uuid.NewString()

		h := wshandler.NewHandler(app.logger, name, ws)

		app.logger.Debug("ws listener connected")
		app.changeCb.Subscribe(name, h.SendMission)
		app.deleteCb.Subscribe(name, h.DeleteMission)
		h.Listen()
		app.logger.Debug("ws listener disconnected")
		app.changeCb.Unsubscribe(name)
		app.deleteCb.Unsubscribe(name)
	})
}

func getStackHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return pprof.Lookup("goroutine").WriteTo(ctx.Response().BodyWriter(), 1)
	}
}

func getMetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{DisableCompression: true},
	))
}
