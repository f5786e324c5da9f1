package page

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/ollama-chat/backend/internal/middleware"
	"github.com/zhouzirui/ollama-chat/backend/internal/model/chat"
	chatService "github.com/zhouzirui/ollama-chat/backend/internal/service/chat"
	"github.com/zhouzirui/ollama-chat/backend/pkg/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/chat.html"))

// notices are the only texts the page shows for failures, keyed by the
// code carried in the redirect.
var notices = map[string]string{
	"session":  "That chat does not exist.",
	"inactive": "Start a new chat first.",
	"empty":    "Type a message or attach a file.",
	"filetype": "Only .csv and .log files can be uploaded.",
	"encoding": "The file is not valid UTF-8 text.",
	"upload":   "The upload could not be read.",
	"backend":  "The model did not answer. Try again.",
}

// Handler renders the chat page and applies the actions posted from it.
type Handler struct {
	dispatcher     *chatService.Dispatcher
	model          string
	maxUploadBytes int64
}

// New creates the page handler. model is shown in the page header.
func New(dispatcher *chatService.Dispatcher, model string, maxUploadBytes int64) *Handler {
	return &Handler{
		dispatcher:     dispatcher,
		model:          model,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes mounts the page and its form targets.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Post("/chat/new", h.handleNew)
	r.Post("/chat/select", h.handleSelect)
	r.Post("/chat/send", h.handleSend)
}

type viewData struct {
	Model      string
	Sessions   []chat.Session
	Active     string
	Turns      []chat.Turn
	Notice     string
	Extensions string
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := middleware.StoreFrom(ctx)

	data := viewData{
		Model:      h.model,
		Sessions:   store.ListSessions(ctx),
		Notice:     notices[r.URL.Query().Get("error")],
		Extensions: acceptList(),
	}

	if active, ok := store.Active(ctx); ok {
		turns, err := store.GetTurns(ctx, active)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "failed to load chat")
			return
		}
		data.Active = active
		data.Turns = turns
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("[page] render failed: %v", err)
	}
}

func (h *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, chatService.NewSession{})
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, chatService.SelectSession{Label: r.PostFormValue("label")})
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	upload, err := utils.ReadUpload(w, r, "file", h.maxUploadBytes)
	if err != nil {
		log.Printf("[page] %v", err)
		redirect(w, r, "upload")
		return
	}

	var file *chatService.SubmitFile
	if upload != nil {
		file = &chatService.SubmitFile{Name: upload.Name, Content: upload.Content}
	}

	h.apply(w, r, chatService.Submission(r.FormValue("message"), file))
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request, cmd chatService.Command) {
	store := middleware.StoreFrom(r.Context())

	if _, err := h.dispatcher.Dispatch(r.Context(), store, cmd); err != nil {
		code := noticeCode(err)
		log.Printf("[page] %T failed (%s): %v", cmd, code, err)
		redirect(w, r, code)
		return
	}

	redirect(w, r, "")
}

func redirect(w http.ResponseWriter, r *http.Request, code string) {
	target := "/"
	if code != "" {
		target += "?" + url.Values{"error": {code}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func noticeCode(err error) string {
	switch {
	case errors.Is(err, chatService.ErrInvalidSession):
		return "session"
	case errors.Is(err, chatService.ErrNoActiveSession):
		return "inactive"
	case errors.Is(err, chatService.ErrEmptyInput):
		return "empty"
	case errors.Is(err, chatService.ErrUnsupportedFile):
		return "filetype"
	case errors.Is(err, chatService.ErrInvalidEncoding):
		return "encoding"
	default:
		return "backend"
	}
}

func acceptList() string {
	exts := make([]string, len(chatService.AllowedExtensions))
	for i, ext := range chatService.AllowedExtensions {
		exts[i] = "." + ext
	}
	return strings.Join(exts, ",")
}
