package server

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/pprof"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/internal/network"
	"github.com/wjkennedy/jira-quake3/pkg/api"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

// frameTimeout - сколько ждать кадр от цикла симуляции
const frameTimeout = 2 * time.Second

// schemaReflector описывает типы так, как они уходят в JSON, а не как хранятся в Go
var schemaReflector = &jsonschema.Reflector{Mapper: wireSchema}

var (
	entityIDType   = reflect.TypeOf(domain.EntityID(0))
	enemyStateType = reflect.TypeOf(domain.EnemyState(0))
)

// wireSchema - схемы для типов со своим MarshalJSON/MarshalText
func wireSchema(t reflect.Type) *jsonschema.Schema {
	switch t {
	case entityIDType:
		return &jsonschema.Schema{
			Type:        "string",
			Pattern:     "^[0-9]+$",
			Description: "packed entity id as a decimal string",
		}
	case enemyStateType:
		return &jsonschema.Schema{
			Type: "string",
			Enum: []any{domain.EnemyIdle.String(), domain.EnemyAlert.String()},
		}
	}
	return nil
}

// ServerSchema - JSON Schema сообщений сервера
func ServerSchema() *jsonschema.Schema {
	return schemaReflector.Reflect(&api.ServerMessage{})
}

// DebugHandler предоставляет доступ к состоянию симуляции только для чтения
type DebugHandler struct {
	Game Game
	Hub  *network.Broadcaster
}

func NewDebugHandler(g Game, hub *network.Broadcaster) *DebugHandler {
	return &DebugHandler{Game: g, Hub: hub}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/state", h.handleState)
	mux.HandleFunc("/debug/schema", h.handleSchema)
	mux.HandleFunc("/debug/hub", h.handleHub)
	mux.HandleFunc("/debug/frame", h.handleFrame)

	// Профилирование
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

// /debug/state - последний опубликованный снимок
func (h *DebugHandler) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Game.Latest())
}

// /debug/schema - JSON Schema сообщений сервера (снимок внутри)
func (h *DebugHandler) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, ServerSchema())
}

// /debug/frame - текущий кадр в PNG (HUD-текст в буфере не растеризуется)
func (h *DebugHandler) handleFrame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), frameTimeout)
	defer cancel()

	img, err := h.Game.Frame(ctx)
	if err != nil {
		http.Error(w, "frame unavailable: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		logger.Log.WithField("component", "debug").WithError(err).Debug("png encode failed")
	}
}

// /debug/hub - подписчики и потерянные кадры
func (h *DebugHandler) handleHub(w http.ResponseWriter, r *http.Request) {
	type HubView struct {
		Subscribers int    `json:"subscribers"`
		Dropped     uint64 `json:"dropped"`
		Tick        uint64 `json:"tick"`
	}
	writeJSON(w, HubView{
		Subscribers: h.Hub.SubscriberCount(),
		Dropped:     h.Hub.Dropped(),
		Tick:        h.Game.Latest().Tick,
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
