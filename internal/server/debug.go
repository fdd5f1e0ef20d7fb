package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Frostlock/Warrens-II/internal/engine"
	"github.com/Frostlock/Warrens-II/pkg/api"
	"github.com/Frostlock/Warrens-II/pkg/logger"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка.
// Всё читается из DebugInfo, которую публикует горутина симуляции.
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/state", h.handleState)
	mux.HandleFunc("/debug/map", h.handleMap)
	mux.HandleFunc("/debug/queue", h.handleTurnQueue)
	mux.HandleFunc("/debug/command", h.handleCommand)
}

// /debug/state - сводка: уровень, ход, число акторов
func (h *DebugHandler) handleState(w http.ResponseWriter, r *http.Request) {
	info := h.Service.Debug()
	info.Map = ""
	writeJSON(w, info)
}

// /debug/map - ASCII карта текущего уровня
func (h *DebugHandler) handleMap(w http.ResponseWriter, r *http.Request) {
	info := h.Service.Debug()
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, info.Level+"\n"+info.Map); err != nil {
		logger.Log.WithError(err).Debug("debug map write failed")
	}
}

// /debug/queue - расписание уровней (только в режиме realtime)
func (h *DebugHandler) handleTurnQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Debug().Schedule)
}

// POST /debug/command - поставить команду игрока в очередь
func (h *DebugHandler) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var cmd api.ClientCommand
	if err := json.NewDecoder(io.LimitReader(r.Body, maxMessageSize)).Decode(&cmd); err != nil {
		http.Error(w, "invalid command: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !h.Service.Submit(cmd) {
		http.Error(w, "command queue full", http.StatusTooManyRequests)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустая очередь), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Debug("json write failed")
	}
}
