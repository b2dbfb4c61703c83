package main

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/brm5/taccom/internal/authz"
	"github.com/brm5/taccom/internal/model"
	"github.com/brm5/taccom/pkg/log"
)

// PublicAPI is the operator-facing surface: registration, login and the
// mission lifecycle. All mission routes require basic auth against the
// users file.
type PublicAPI struct {
	f    *fiber.App
	addr string
}

func NewPublicAPI(app *App, addr string) *PublicAPI {
	api := &PublicAPI{addr: addr}

	api.f = fiber.New(fiber.Config{EnablePrintRoutes: false, DisableStartupMessage: true})

	api.f.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "api", UserGetter: Username, DoMetrics: true, LogErrorsOnly: true}))

	api.f.Post("/auth/register", getRegisterHandler(app))

	api.f.Use(getUserAuth(app.users))

	api.f.Post("/auth/login", getLoginHandler(app))

	api.f.Get("/missions", getMissionsHandler(app))
	api.f.Post("/missions", addMissionHandler(app))
	api.f.Delete("/missions/:uid", deleteMissionHandler(app))

	return api
}

func (api *PublicAPI) Address() string {
	return api.addr
}

func (api *PublicAPI) Listen() error {
	return api.f.Listen(api.addr)
}

type RegisterRequest struct {
	Username string        `json:"username"`
	Password string        `json:"password"`
	Name     string        `json:"name"`
	Platoon  model.Platoon `json:"platoon"`
}

func getRegisterHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(RegisterRequest)

		if err := json.Unmarshal(ctx.Body(), req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
		}

		if req.Username == "" || req.Password == "" || req.Name == "" || req.Platoon == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
		}

		if !req.Platoon.Line() {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid platoon"})
		}

		user, err := app.users.Register(req.Username, req.Password, req.Name, req.Platoon)

		if err != nil {
			if errors.Is(err, model.ErrConflict) {
				return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": model.ErrConflict.Error()})
			}

			if errors.Is(err, model.ErrValidation) {
				return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
			}

			app.logger.Error("register error", slog.Any("error", err))

			return ctx.SendStatus(fiber.StatusInternalServerError)
		}

		return ctx.JSON(user.DTO())
	}
}

func getLoginHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := app.users.Get(Username(ctx))

		if user == nil {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		return ctx.JSON(user.DTO())
	}
}

func getMissionsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := app.users.Get(Username(ctx))

		if user == nil {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		data := app.dbm.MissionQuery().Get()

		result := make([]*model.MissionDTO, len(data))
		for i, m := range data {
			result[i] = model.ToMissionDTO(m)
		}

		return ctx.JSON(authz.VisibleMissions(user.GetPlatoon(), result))
	}
}

func addMissionHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := app.users.Get(Username(ctx))

		if user == nil {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		d := new(model.MissionDTO)

		if err := json.Unmarshal(ctx.Body(), d); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
		}

		if d.UID == "" || d.Title == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
		}

		old := app.dbm.MissionQuery().UID(d.UID).One()

		var prevAssigned model.Platoon

		if old != nil {
			if !authz.CanManage(user.DTO(), model.ToMissionDTO(old)) {
				return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not authorized"})
			}

			prevAssigned = old.AssignedTo
		}

		if err := authz.ValidateSubmission(user.GetPlatoon(), d, prevAssigned); err != nil {
			status := fiber.StatusBadRequest

			if errors.Is(err, model.ErrNotAuthorized) {
				status = fiber.StatusForbidden
			}

			return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
		}

		m := d.ToMission()

		if old == nil {
			// creator data always comes from the authenticated user
			m.CreatorUID = user.GetUID()
			m.CreatorPlatoon = user.GetPlatoon()
		}

		saved, err := app.dbm.SaveMission(m)
		if err != nil {
			app.logger.Error("mission save error", slog.Any("error", err))

			return ctx.SendStatus(fiber.StatusInternalServerError)
		}

		res := model.ToMissionDTO(saved)
		app.changeCb.Publish(res)

		return ctx.JSON(res)
	}
}

func deleteMissionHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := app.users.Get(Username(ctx))

		if user == nil {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		uid := ctx.Params("uid")

		if old := app.dbm.MissionQuery().UID(uid).One(); old != nil {
			if !authz.CanManage(user.DTO(), model.ToMissionDTO(old)) {
				return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not authorized"})
			}
		}

		// delete is idempotent, an unknown uid is still a success
		if err := app.dbm.DeleteMission(uid); err != nil {
			app.logger.Error("mission delete error", slog.Any("error", err))

			return ctx.SendStatus(fiber.StatusInternalServerError)
		}

		app.deleteCb.Publish(uid)

		return ctx.JSON(fiber.Map{"success": true})
	}
}
