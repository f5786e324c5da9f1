package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/ollama-chat/backend/internal/config"
	"github.com/zhouzirui/ollama-chat/backend/internal/handler/chat"
	"github.com/zhouzirui/ollama-chat/backend/internal/handler/page"
	middlewarePkg "github.com/zhouzirui/ollama-chat/backend/internal/middleware"
	chatService "github.com/zhouzirui/ollama-chat/backend/internal/service/chat"
	"github.com/zhouzirui/ollama-chat/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(cfg *config.Config, workspaces *chatService.Workspaces, dispatcher *chatService.Dispatcher, model string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	chatHandler := chat.New(dispatcher, cfg.Chat.MaxUploadBytes)
	pageHandler := page.New(dispatcher, model, cfg.Chat.MaxUploadBytes)

	r.Group(func(ui chi.Router) {
		ui.Use(middlewarePkg.Workspace(workspaces, cfg.Chat.SecureCookie))
		pageHandler.RegisterRoutes(ui)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middlewarePkg.CORS(cfg.Server.AllowedOrigins))
		api.Use(middlewarePkg.Workspace(workspaces, cfg.Chat.SecureCookie))
		chatHandler.RegisterRoutes(api)
	})

	return r
}
