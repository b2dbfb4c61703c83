package wshandler

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/brm5/taccom/internal/model"
)

// WebMessage is a change-feed event pushed to admin dashboard clients:
// a saved mission or a deleted mission uid.
type WebMessage struct {
	Typ     string            `json:"type"`
	Mission *model.MissionDTO `json:"mission,omitempty"`
	UID     string            `json:"uid,omitempty"`
}

type JSONWsHandler struct {
	log  *slog.Logger
	name string
	ws   *websocket.Conn
	ch   chan *WebMessage

	mx     sync.Mutex
	closed bool
}

func NewHandler(log *slog.Logger, name string, ws *websocket.Conn) *JSONWsHandler {
	return &JSONWsHandler{
		log:  log.With("client", name),
		name: name,
		ws:   ws,
		ch:   make(chan *WebMessage, 10),
	}
}

func (w *JSONWsHandler) IsActive() bool {
	if w == nil {
		return false
	}

	w.mx.Lock()
	defer w.mx.Unlock()

	return !w.closed
}

// stop closes the channel under the same lock that guards sends, so a
// broadcast racing a disconnect can never hit a closed channel.
func (w *JSONWsHandler) stop() {
	w.mx.Lock()
	defer w.mx.Unlock()

	if w.closed {
		return
	}

	w.closed = true
	close(w.ch)

	if w.ws != nil {
		w.ws.Close()
	}
}

func (w *JSONWsHandler) send(msg *WebMessage) bool {
	if w == nil {
		return false
	}

	w.mx.Lock()
	defer w.mx.Unlock()

	if w.closed {
		return false
	}

	select {
	case w.ch <- msg:
	default:
	}

	return true
}

func (w *JSONWsHandler) writer() {
	for item := range w.ch {
		if item == nil {
			continue
		}

		_ = w.ws.WriteJSON(item)
	}
}

func (w *JSONWsHandler) reader() {
	defer w.stop()

	for {
		_, _, err := w.ws.ReadMessage()

		if err != nil {
			w.log.Error("error on read", slog.Any("error", err))

			return
		}
	}
}

func (w *JSONWsHandler) SendMission(m *model.MissionDTO) bool {
	return w.send(&WebMessage{Typ: "mission", Mission: m})
}

func (w *JSONWsHandler) DeleteMission(uid string) bool {
	return w.send(&WebMessage{Typ: "delete", UID: uid})
}

func (w *JSONWsHandler) closehandler(code int, text string) error {
	w.log.Info(fmt.Sprintf("closed with code %d, msg %s", code, text))
	w.stop()

	return nil
}

func (w *JSONWsHandler) Listen() {
	w.log.Debug("ws start")
	w.ws.SetCloseHandler(w.closehandler)

	go w.writer()
	w.reader()
	w.log.Debug("ws stop")
}
