package httptransport_test

import (
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-server/internal/apps"
	httptransport "session-server/internal/transport/http"
	"session-server/pkg/testutil"
)

func newAppsRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	handler := httptransport.NewAppsHandler(apps.NewService(apps.NewMemoryStore(), logger), logger)
	r := chi.NewRouter()
	handler.Register(r)
	return r
}

func TestAppsCreateAndList(t *testing.T) {
	router := newAppsRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/apps", map[string]string{
		"name": "dashboard", "path": "/dashboard",
	}))
	require.Equal(t, http.StatusCreated, rr.Code)

	created := testutil.UnmarshalResponse[apps.App](t, rr)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "dashboard", created.Name)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/apps"))
	require.Equal(t, http.StatusOK, rr.Code)
	list := testutil.UnmarshalResponse[[]apps.App](t, rr)
	assert.Len(t, *list, 1)
}

func TestAppsCreateValidation(t *testing.T) {
	router := newAppsRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/apps", map[string]string{
		"name": "dashboard",
	}))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "App name and path are required", testutil.UnmarshalResponse[errorBody](t, rr).Message)
}

func TestAppsCreateDuplicate(t *testing.T) {
	router := newAppsRouter(t)
	body := map[string]string{"name": "dashboard", "path": "/dashboard"}

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/apps", body))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/apps", body))
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "App with this name already exists", testutil.UnmarshalResponse[errorBody](t, rr).Message)
}

func TestAppsDelete(t *testing.T) {
	router := newAppsRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/apps", map[string]string{
		"name": "dashboard", "path": "/dashboard",
	}))
	require.Equal(t, http.StatusCreated, rr.Code)
	created := testutil.UnmarshalResponse[apps.App](t, rr)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, fmt.Sprintf("/apps/%d", created.ID)))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "App deleted successfully", (*testutil.UnmarshalResponse[map[string]string](t, rr))["message"])
}

func TestAppsDeleteUnknown(t *testing.T) {
	router := newAppsRouter(t)

	for _, path := range []string{"/apps/99", "/apps/not-a-number"} {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, path))
		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "App not found", testutil.UnmarshalResponse[errorBody](t, rr).Message)
	}
}
