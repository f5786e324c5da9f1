package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatService "github.com/zhouzirui/ollama-chat/backend/internal/service/chat"
)

func TestWorkspaceIssuesCookieAndReusesStore(t *testing.T) {
	workspaces := chatService.NewWorkspaces()

	var seen []*chatService.Store
	handler := Workspace(workspaces, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, StoreFrom(r.Context()))
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := first.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, WorkspaceCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)

	assert.Empty(t, second.Result().Cookies(), "known workspace must not be reissued")
	require.Len(t, seen, 2)
	require.NotNil(t, seen[0])
	assert.Same(t, seen[0], seen[1])
}

func TestWorkspaceUnknownCookieGetsFreshStore(t *testing.T) {
	workspaces := chatService.NewWorkspaces()
	handler := Workspace(workspaces, true)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: WorkspaceCookie, Value: "stale"})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	cookies := resp.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "stale", cookies[0].Value)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, 1, workspaces.Len())
}

func TestStoreFromEmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, StoreFrom(req.Context()))
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS([]string{"http://app.test"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, "http://app.test", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEqual(t, http.StatusTeapot, resp.Code)
}
