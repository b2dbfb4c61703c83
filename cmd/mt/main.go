package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/jroimartin/gocui"
	"github.com/spf13/viper"

	"github.com/brm5/taccom/internal/model"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

// viewState is the screen the client is on. Transitions: login to list
// on auth success, list to creator on new/edit, creator back to list on
// save or cancel.
type viewState int

const (
	stateLogin viewState = iota
	stateList
	stateCreator
)

type App struct {
	g      *gocui.Gui
	logger *slog.Logger

	remoteAPI *RemoteAPI

	state viewState
	user  *model.UserDTO

	missions []*model.MissionDTO
	mx       sync.RWMutex

	login    *loginForm
	creator  *creatorForm
	message  string
	deleting string

	cancel context.CancelFunc
}

func NewApp(host string) *App {
	return &App{
		logger:    slog.Default(),
		remoteAPI: NewRemoteAPI(host),
		state:     stateLogin,
		login:     newLoginForm(),
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, app.cancel = context.WithCancel(ctx)

	var err error

	app.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		panic(err)
	}

	defer app.g.Close()

	app.g.Cursor = true
	app.g.SetManagerFunc(app.layout)

	if err := app.setBindings(); err != nil {
		panic(err)
	}

	if err := app.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		app.logger.Error(err.Error())
	}
}

func (app *App) stop(_ *gocui.Gui, _ *gocui.View) error {
	if app.cancel != nil {
		app.cancel()
	}

	return gocui.ErrQuit
}

// reload fetches the mission list from the server. Every mutation is
// followed by a full reload instead of patching local state.
func (app *App) reload(ctx context.Context) error {
	missions, err := app.remoteAPI.GetMissions(ctx)
	if err != nil {
		return err
	}

	app.mx.Lock()
	app.missions = missions
	app.mx.Unlock()

	return nil
}

func (app *App) visibleMissions() []*model.MissionDTO {
	app.mx.RLock()
	defer app.mx.RUnlock()

	res := make([]*model.MissionDTO, len(app.missions))
	copy(res, app.missions)

	return res
}

func (app *App) missionAt(idx int) *model.MissionDTO {
	missions := app.visibleMissions()

	if idx < 0 || idx >= len(missions) {
		return nil
	}

	return missions[idx]
}

func getVersion() string {
	return fmt.Sprintf("%s:%s", gitBranch, gitRevision)
}

func main() {
	conf := flag.String("config", "mt.yml", "name of config file")
	debug := flag.Bool("debug", false, "debug")
	flag.Parse()

	viper.SetConfigFile(*conf)

	viper.SetDefault("server_address", "localhost:8080")

	_ = viper.ReadInConfig()

	var w io.Writer = io.Discard

	if *debug {
		f, err := os.OpenFile("mt.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			defer f.Close()

			w = f
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))

	app := NewApp(viper.GetString("server_address"))
	app.Run(context.Background())
}
