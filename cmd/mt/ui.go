package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jroimartin/gocui"

	"github.com/brm5/taccom/internal/authz"
	"github.com/brm5/taccom/internal/model"
)

const (
	missionsView = "missions"
	missionView  = "mission"
	statusView   = "status"
	bannerView   = "banner"
	msgView      = "msg"
	confirmView  = "confirm"
)

type field struct {
	name    string
	label   string
	value   string
	secret  bool
	options []authz.Option
	optIdx  int
}

func (f *field) view() string {
	return "f_" + f.name
}

func (f *field) display() string {
	if len(f.options) > 0 {
		return f.options[f.optIdx].Label
	}

	if f.secret {
		return strings.Repeat("*", len(f.value))
	}

	return f.value
}

func (f *field) selected() string {
	if len(f.options) > 0 {
		return f.options[f.optIdx].Value
	}

	return f.value
}

func (f *field) cycle(d int) {
	if len(f.options) == 0 {
		return
	}

	for i := 0; i < len(f.options); i++ {
		f.optIdx = (f.optIdx + d + len(f.options)) % len(f.options)

		if !f.options[f.optIdx].Disabled {
			return
		}
	}
}

type loginForm struct {
	registering bool
	fields      []*field
	idx         int
}

func newLoginForm() *loginForm {
	return &loginForm{
		fields: []*field{
			{name: "username", label: "OPERATOR ID"},
			{name: "password", label: "ACCESS CODE", secret: true},
		},
	}
}

func (lf *loginForm) toggleRegister() {
	lf.registering = !lf.registering
	lf.idx = 0

	if lf.registering {
		lf.fields = append(lf.fields,
			&field{name: "name", label: "FULL NAME"},
			&field{name: "platoon", label: "PLATOON", options: authz.RegistrationPlatoons()},
		)
	} else {
		lf.fields = lf.fields[:2]
	}
}

type creatorForm struct {
	uid          string
	prevAssigned model.Platoon
	editing      bool
	fields       []*field
	idx          int
}

func newCreatorForm(user *model.UserDTO, m *model.MissionDTO) *creatorForm {
	cf := &creatorForm{uid: uuid.NewString()}

	scenario := &field{name: "scenario", label: "SCENARIO TYPE", options: authz.ScenarioOptions}
	assigned := &field{name: "assigned", label: "ASSIGNED PLATOON"}
	title := &field{name: "title", label: "MISSION TITLE"}
	objective := &field{name: "objective", label: "PRIMARY OBJECTIVE"}
	description := &field{name: "description", label: "BRIEFING / DESCRIPTION"}
	assets := &field{name: "assets", label: "REQUIRED ASSETS (CSV)"}

	if m != nil {
		cf.uid = m.UID
		cf.prevAssigned = m.AssignedTo
		cf.editing = true

		title.value = m.Title
		objective.value = m.Objective
		description.value = m.Description
		assets.value = m.Assets

		for i, o := range scenario.options {
			if o.Value == string(m.Scenario) {
				scenario.optIdx = i
			}
		}
	}

	assigned.options = authz.AssignmentOptions(user.Platoon, cf.prevAssigned)

	target := string(user.Platoon)
	if m != nil {
		target = string(m.AssignedTo)
	}

	for i, o := range assigned.options {
		if o.Value == target && !o.Disabled {
			assigned.optIdx = i
		}
	}

	cf.fields = []*field{title, scenario, assigned, objective, description, assets}

	return cf
}

func (cf *creatorForm) mission() *model.MissionDTO {
	m := &model.MissionDTO{UID: cf.uid}

	for _, f := range cf.fields {
		switch f.name {
		case "title":
			m.Title = f.value
		case "scenario":
			m.Scenario = model.ScenarioType(f.selected())
		case "assigned":
			m.AssignedTo = model.Platoon(f.selected())
		case "objective":
			m.Objective = f.value
		case "description":
			m.Description = f.value
		case "assets":
			m.Assets = f.value
		}
	}

	return m
}

type binding struct {
	view string
	key  any
	mod  gocui.Modifier
	f    func(_ *gocui.Gui, _ *gocui.View) error
}

func (app *App) setBindings() error {
	bindings := []binding{
		{"", gocui.KeyCtrlC, gocui.ModNone, app.stop},
		{"", gocui.KeyTab, gocui.ModNone, app.nextField},
		{"", gocui.KeyEnter, gocui.ModNone, app.onEnter},
		{"", gocui.KeyEsc, gocui.ModNone, app.onEsc},
		{"", gocui.KeyCtrlR, gocui.ModNone, app.onToggleRegister},
		{"", gocui.KeyCtrlS, gocui.ModNone, app.onSave},
		{"", gocui.KeyArrowLeft, gocui.ModNone, app.cycleField(-1)},
		{"", gocui.KeyArrowRight, gocui.ModNone, app.cycleField(1)},
		{missionsView, gocui.KeyArrowUp, gocui.ModNone, app.cursorUp},
		{missionsView, gocui.KeyArrowDown, gocui.ModNone, app.cursorDown},
		{missionsView, 'n', gocui.ModNone, app.onNewMission},
		{missionsView, 'e', gocui.ModNone, app.onEditMission},
		{missionsView, 'd', gocui.ModNone, app.onDeleteMission},
		{missionsView, 'r', gocui.ModNone, app.onReload},
		{confirmView, 'y', gocui.ModNone, app.onConfirmDelete},
		{confirmView, 'n', gocui.ModNone, app.onCancelDelete},
	}

	for _, b := range bindings {
		if err := app.g.SetKeybinding(b.view, b.key, b.mod, b.f); err != nil {
			return err
		}
	}

	return nil
}

func (app *App) layout(g *gocui.Gui) error {
	switch app.state {
	case stateLogin:
		return app.layoutLogin(g)
	case stateList:
		return app.layoutList(g)
	case stateCreator:
		return app.layoutCreator(g)
	}

	return nil
}

func (app *App) clearViews(g *gocui.Gui, keep map[string]bool) {
	for _, v := range g.Views() {
		if !keep[v.Name()] {
			_ = g.DeleteView(v.Name())
		}
	}
}

func (app *App) layoutForm(g *gocui.Gui, fields []*field, idx int, x0, y0, w int) error {
	for i, f := range fields {
		y := y0 + i*3

		v, err := g.SetView(f.view(), x0, y, x0+w, y+2)
		if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}

		v.Title = f.label
		v.Editable = len(f.options) == 0
		v.Editor = app.fieldEditor(f)

		v.Clear()
		fmt.Fprint(v, f.display())

		if i == idx {
			if _, err := g.SetCurrentView(f.view()); err != nil {
				return err
			}

			_ = v.SetCursor(len(f.display()), 0)
		}
	}

	return nil
}

func (app *App) layoutLogin(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	keep := map[string]bool{bannerView: true, msgView: true}
	for _, f := range app.login.fields {
		keep[f.view()] = true
	}

	app.clearViews(g, keep)

	w := 40
	x0 := (maxX - w) / 2
	y0 := maxY/2 - 3*len(app.login.fields)

	if v, err := g.SetView(bannerView, x0, y0-3, x0+w, y0-1); err == nil || errors.Is(err, gocui.ErrUnknownView) {
		v.Frame = false
		v.Clear()

		if app.login.registering {
			fmt.Fprint(v, "TACCOM // NEW OPERATOR (^R: login)")
		} else {
			fmt.Fprint(v, "TACCOM // SIGN IN (^R: register)")
		}
	}

	if err := app.layoutForm(g, app.login.fields, app.login.idx, x0, y0, w); err != nil {
		return err
	}

	yMsg := y0 + 3*len(app.login.fields)

	if v, err := g.SetView(msgView, x0, yMsg, x0+w, yMsg+2); err == nil || errors.Is(err, gocui.ErrUnknownView) {
		v.Frame = false
		v.Clear()
		fmt.Fprint(v, app.message)
	}

	return nil
}

func (app *App) layoutList(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	keep := map[string]bool{missionsView: true, missionView: true, statusView: true}
	if app.deleting != "" {
		keep[confirmView] = true
	}

	app.clearViews(g, keep)

	if v, err := g.SetView(missionsView, 0, 0, maxX/2-1, maxY-4); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}

		v.Frame = true
		v.Highlight = true
		v.Title = "Missions"
		v.SelBgColor = gocui.ColorWhite
		v.SelFgColor = gocui.ColorBlack
	}

	if v, err := g.SetView(missionView, maxX/2, 0, maxX-1, maxY-4); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}

		v.Frame = true
		v.Title = "Mission details"
	}

	if v, err := g.SetView(statusView, 0, maxY-3, maxX-1, maxY-1); err == nil || errors.Is(err, gocui.ErrUnknownView) {
		v.Frame = false
		v.Clear()
		fmt.Fprintf(v, "%s [%s] | n:new e:edit d:delete r:reload ^C:quit\n%s",
			app.user.Login, app.user.Platoon, app.message)
	}

	if app.deleting != "" {
		w := 40
		x0 := (maxX - w) / 2
		y0 := maxY / 2

		if v, err := g.SetView(confirmView, x0, y0-1, x0+w, y0+1); err == nil || errors.Is(err, gocui.ErrUnknownView) {
			v.Frame = true
			v.Title = "Confirm"
			v.Clear()
			fmt.Fprintf(v, "delete mission? (y/n)")
		}

		if _, err := g.SetCurrentView(confirmView); err != nil {
			return err
		}

		return nil
	}

	if _, err := g.SetCurrentView(missionsView); err != nil {
		return err
	}

	app.drawMissions(g)

	return nil
}

func (app *App) layoutCreator(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	keep := map[string]bool{bannerView: true, msgView: true}
	for _, f := range app.creator.fields {
		keep[f.view()] = true
	}

	app.clearViews(g, keep)

	w := maxX - 20
	if w > 80 {
		w = 80
	}

	x0 := (maxX - w) / 2
	y0 := 2

	if v, err := g.SetView(bannerView, x0, y0-2, x0+w, y0); err == nil || errors.Is(err, gocui.ErrUnknownView) {
		v.Frame = false
		v.Clear()

		if app.creator.editing {
			fmt.Fprint(v, "MISSION: EDIT PARAMETERS (^S: save, Esc: cancel)")
		} else {
			fmt.Fprint(v, "MISSION: NEW OPERATION (^S: save, Esc: cancel)")
		}
	}

	if err := app.layoutForm(g, app.creator.fields, app.creator.idx, x0, y0, w); err != nil {
		return err
	}

	yMsg := y0 + 3*len(app.creator.fields)
	if yMsg > maxY-3 {
		yMsg = maxY - 3
	}

	if v, err := g.SetView(msgView, x0, yMsg, x0+w, yMsg+2); err == nil || errors.Is(err, gocui.ErrUnknownView) {
		v.Frame = false
		v.Clear()
		fmt.Fprint(v, app.message)
	}

	return nil
}

func (app *App) fieldEditor(f *field) gocui.Editor {
	return gocui.EditorFunc(func(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
		switch {
		case ch != 0 && mod == gocui.ModNone:
			f.value += string(ch)
		case key == gocui.KeySpace:
			f.value += " "
		case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
			f.value = trimLastRune(f.value)
		default:
			return
		}

		v.Clear()
		fmt.Fprint(v, f.display())
		_ = v.SetCursor(len(f.display()), 0)
	})
}

func (app *App) currentForm() ([]*field, *int) {
	switch app.state {
	case stateLogin:
		return app.login.fields, &app.login.idx
	case stateCreator:
		return app.creator.fields, &app.creator.idx
	}

	return nil, nil
}

func (app *App) nextField(_ *gocui.Gui, _ *gocui.View) error {
	fields, idx := app.currentForm()

	if fields == nil {
		return nil
	}

	*idx = (*idx + 1) % len(fields)

	return nil
}

func (app *App) cycleField(d int) func(_ *gocui.Gui, _ *gocui.View) error {
	return func(_ *gocui.Gui, _ *gocui.View) error {
		fields, idx := app.currentForm()

		if fields == nil {
			return nil
		}

		fields[*idx].cycle(d)

		return nil
	}
}

func (app *App) onEnter(g *gocui.Gui, v *gocui.View) error {
	switch app.state {
	case stateLogin:
		return app.submitLogin()
	case stateCreator:
		// enter moves on, save is explicit
		return app.nextField(g, v)
	case stateList:
		return app.onEditMission(g, v)
	}

	return nil
}

func (app *App) onEsc(_ *gocui.Gui, _ *gocui.View) error {
	if app.state == stateCreator {
		app.creator = nil
		app.message = ""
		app.state = stateList
	}

	return nil
}

func (app *App) onToggleRegister(_ *gocui.Gui, _ *gocui.View) error {
	if app.state != stateLogin {
		return nil
	}

	app.login.toggleRegister()
	app.message = ""

	return nil
}

func (app *App) formValue(fields []*field, name string) string {
	for _, f := range fields {
		if f.name == name {
			return f.selected()
		}
	}

	return ""
}

func (app *App) submitLogin() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	lf := app.login

	username := app.formValue(lf.fields, "username")
	password := app.formValue(lf.fields, "password")

	var (
		user *model.UserDTO
		err  error
	)

	if lf.registering {
		name := app.formValue(lf.fields, "name")

		if username == "" || password == "" || name == "" {
			app.message = "All fields are required for registration."

			return nil
		}

		platoon := model.Platoon(app.formValue(lf.fields, "platoon"))
		user, err = app.remoteAPI.Register(ctx, username, password, name, platoon)
	} else {
		user, err = app.remoteAPI.Login(ctx, username, password)
	}

	if err != nil {
		app.message = errorMessage(err)

		return nil
	}

	app.user = user
	app.message = ""

	if err := app.reload(ctx); err != nil {
		app.message = errorMessage(err)

		return nil
	}

	app.state = stateList

	return nil
}

func (app *App) onNewMission(_ *gocui.Gui, _ *gocui.View) error {
	app.creator = newCreatorForm(app.user, nil)
	app.message = ""
	app.state = stateCreator

	return nil
}

func (app *App) selectedMission() *model.MissionDTO {
	v, err := app.g.View(missionsView)
	if err != nil {
		return nil
	}

	_, y := v.Cursor()

	return app.missionAt(y)
}

func (app *App) onEditMission(_ *gocui.Gui, _ *gocui.View) error {
	m := app.selectedMission()

	if m == nil {
		return nil
	}

	if !authz.CanManage(app.user, m) {
		app.message = "ERROR: NOT AUTHORIZED TO EDIT THIS MISSION."

		return nil
	}

	app.creator = newCreatorForm(app.user, m)
	app.message = ""
	app.state = stateCreator

	return nil
}

func (app *App) onDeleteMission(_ *gocui.Gui, _ *gocui.View) error {
	m := app.selectedMission()

	if m == nil {
		return nil
	}

	if !authz.CanManage(app.user, m) {
		app.message = "ERROR: NOT AUTHORIZED TO DELETE THIS MISSION."

		return nil
	}

	app.deleting = m.UID

	return nil
}

func (app *App) onConfirmDelete(_ *gocui.Gui, _ *gocui.View) error {
	uid := app.deleting
	app.deleting = ""

	if uid == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := app.remoteAPI.DeleteMission(ctx, uid); err != nil {
		app.message = errorMessage(err)

		return nil
	}

	if err := app.reload(ctx); err != nil {
		app.message = errorMessage(err)
	}

	return nil
}

func (app *App) onCancelDelete(_ *gocui.Gui, _ *gocui.View) error {
	app.deleting = ""

	return nil
}

func (app *App) onReload(_ *gocui.Gui, _ *gocui.View) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := app.reload(ctx); err != nil {
		app.message = errorMessage(err)
	} else {
		app.message = ""
	}

	return nil
}

func (app *App) onSave(_ *gocui.Gui, _ *gocui.View) error {
	if app.state != stateCreator {
		return nil
	}

	m := app.creator.mission()

	if err := authz.ValidateSubmission(app.user.Platoon, m, app.creator.prevAssigned); err != nil {
		app.message = strings.TrimPrefix(err.Error(), model.ErrValidation.Error()+": ")
		app.message = strings.TrimPrefix(app.message, model.ErrNotAuthorized.Error()+": ")

		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err := app.remoteAPI.SaveMission(ctx, m); err != nil {
		app.message = errorMessage(err)

		return nil
	}

	if err := app.reload(ctx); err != nil {
		app.message = errorMessage(err)

		return nil
	}

	app.creator = nil
	app.message = ""
	app.state = stateList

	return nil
}

func (app *App) cursorUp(_ *gocui.Gui, v *gocui.View) error {
	v.MoveCursor(0, -1, false)
	app.drawMission(v)

	return nil
}

func (app *App) cursorDown(_ *gocui.Gui, v *gocui.View) error {
	_, y := v.Cursor()

	if y+1 < len(app.visibleMissions()) {
		v.MoveCursor(0, 1, false)
	}

	app.drawMission(v)

	return nil
}

func (app *App) drawMissions(g *gocui.Gui) {
	if v, err := g.View(missionsView); err == nil {
		v.Clear()

		for _, m := range app.visibleMissions() {
			fmt.Fprintln(v, missionRow(app.user, m))
		}

		app.drawMission(v)
	}
}

func (app *App) drawMission(list *gocui.View) {
	v, err := app.g.View(missionView)
	if err != nil {
		return
	}

	v.Clear()

	_, y := list.Cursor()
	m := app.missionAt(y)

	if m == nil {
		fmt.Fprint(v, "no mission")

		return
	}

	fmt.Fprintf(v, "Title: %s\n", m.Title)
	fmt.Fprintf(v, "Scenario: %s\n", m.Scenario)
	fmt.Fprintf(v, "Assigned: %s\n", m.AssignedTo)
	fmt.Fprintf(v, "Objective: %s\n", m.Objective)

	if m.Description != "" {
		fmt.Fprintf(v, "\n%s\n", m.Description)
	}

	if m.Assets != "" {
		fmt.Fprintf(v, "\nAssets: %s\n", m.Assets)
	}

	fmt.Fprintf(v, "\nCreated: %s by %s [%s]\n", ft(m.CreatedAt), m.CreatorUID, m.CreatorPlatoon)
	fmt.Fprintf(v, "Updated: %s\n", ft(m.UpdatedAt))

	if m.CreatorPlatoon.Lieutenant() {
		fmt.Fprint(v, "\n[COMMAND]")
	}

	fmt.Fprintf(v, "\n%s", accessTag(app.user, m))
}

// missionRow is one line of the mission list. Lieutenant-created missions
// carry a COMMAND marker, missions the operator cannot change a RO one.
func missionRow(user *model.UserDTO, m *model.MissionDTO) string {
	tag := ""

	switch {
	case m.CreatorPlatoon.Lieutenant():
		tag = "COMMAND"
	case !authz.CanManage(user, m):
		tag = "RO"
	}

	return fmt.Sprintf("%-10s %-8s %-7s %s", m.Scenario, m.AssignedTo, tag, m.Title)
}

func accessTag(user *model.UserDTO, m *model.MissionDTO) string {
	if authz.CanManage(user, m) {
		return "[manageable]"
	}

	return "[read-only]"
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}

	_, size := utf8.DecodeLastRuneInString(s)

	return s[:len(s)-size]
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrCredentials):
		return "ERROR: " + model.ErrCredentials.Error()
	case errors.Is(err, model.ErrConflict):
		return "ERROR: " + model.ErrConflict.Error()
	case errors.Is(err, model.ErrNotAuthorized):
		return "ERROR: not authorized"
	case errors.Is(err, model.ErrValidation):
		return "ERROR: missing required fields"
	default:
		return "ERROR: " + model.ErrTransport.Error()
	}
}

func ft(millis int64) string {
	if millis == 0 {
		return ""
	}

	return time.UnixMilli(millis).Format("02-01-2006 15:04")
}
