package middleware

import (
	"context"
	"net/http"

	chatService "github.com/zhouzirui/ollama-chat/backend/internal/service/chat"
)

// WorkspaceCookie names the cookie that ties a browser to its chats.
const WorkspaceCookie = "chat_workspace"

type storeKey struct{}

// Workspace resolves the caller's chat store from its cookie, issuing a new
// cookie when the browser is unknown.
func Workspace(workspaces *chatService.Workspaces, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var current string
			if cookie, err := r.Cookie(WorkspaceCookie); err == nil {
				current = cookie.Value
			}

			id, store := workspaces.Resolve(current)
			if id != current {
				http.SetCookie(w, &http.Cookie{
					Name:     WorkspaceCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithStore(r.Context(), store)))
		})
	}
}

// WithStore attaches a store to ctx.
func WithStore(ctx context.Context, store *chatService.Store) context.Context {
	return context.WithValue(ctx, storeKey{}, store)
}

// StoreFrom returns the store attached by Workspace, or nil.
func StoreFrom(ctx context.Context) *chatService.Store {
	store, _ := ctx.Value(storeKey{}).(*chatService.Store)
	return store
}
