package chat

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/ollama-chat/backend/internal/middleware"
	"github.com/zhouzirui/ollama-chat/backend/internal/model/chat"
	chatService "github.com/zhouzirui/ollama-chat/backend/internal/service/chat"
	"github.com/zhouzirui/ollama-chat/backend/pkg/utils"
)

// Handler exposes the chat actions as a JSON API.
type Handler struct {
	dispatcher     *chatService.Dispatcher
	maxUploadBytes int64
}

// New creates the JSON chat handler.
func New(dispatcher *chatService.Dispatcher, maxUploadBytes int64) *Handler {
	return &Handler{
		dispatcher:     dispatcher,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes mounts the chat routes on r. r must sit behind
// middleware.Workspace.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions", h.handleListSessions)
	r.Post("/sessions", h.handleCreateSession)
	r.Put("/sessions/active", h.handleSelectSession)
	r.Get("/sessions/{label}/turns", h.handleGetTurns)
	r.Post("/messages", h.handleSubmitText)
	r.Post("/files", h.handleSubmitFile)
}

type sessionList struct {
	Sessions []chat.Session `json:"sessions"`
	Active   string         `json:"active,omitempty"`
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	store := middleware.StoreFrom(r.Context())
	active, _ := store.Active(r.Context())

	utils.RespondJSON(w, http.StatusOK, sessionList{
		Sessions: store.ListSessions(r.Context()),
		Active:   active,
	})
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, http.StatusCreated, chatService.NewSession{})
}

func (h *Handler) handleSelectSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Label string `json:"label"`
	}

	if err := utils.DecodeJSON(r.Body, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.dispatch(w, r, http.StatusOK, chatService.SelectSession{Label: payload.Label})
}

func (h *Handler) handleGetTurns(w http.ResponseWriter, r *http.Request) {
	store := middleware.StoreFrom(r.Context())
	label := chi.URLParam(r, "label")

	turns, err := store.GetTurns(r.Context(), label)
	if err != nil {
		respondDispatchError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, turns)
}

func (h *Handler) handleSubmitText(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}

	if err := utils.DecodeJSON(r.Body, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.dispatch(w, r, http.StatusOK, chatService.SubmitText{Text: payload.Text})
}

func (h *Handler) handleSubmitFile(w http.ResponseWriter, r *http.Request) {
	upload, err := utils.ReadUpload(w, r, "file", h.maxUploadBytes)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if upload == nil {
		utils.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}

	h.dispatch(w, r, http.StatusOK, chatService.SubmitFile{Name: upload.Name, Content: upload.Content})
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, status int, cmd chatService.Command) {
	store := middleware.StoreFrom(r.Context())

	result, err := h.dispatcher.Dispatch(r.Context(), store, cmd)
	if err != nil {
		respondDispatchError(w, err)
		return
	}

	utils.RespondJSON(w, status, result)
}

// respondDispatchError maps service errors onto HTTP statuses.
func respondDispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatService.ErrInvalidSession):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, chatService.ErrNoActiveSession):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, chatService.ErrEmptyInput),
		errors.Is(err, chatService.ErrUnsupportedFile),
		errors.Is(err, chatService.ErrInvalidEncoding):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[chat] inference failed: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "inference backend unavailable")
	}
}
