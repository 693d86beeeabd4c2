package orbitsdk

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return newClientFor(t, srv.URL+"/api")
}

func newClientFor(t *testing.T, baseURL string) (*Client, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	c, err := New(&Config{
		BaseURL:  baseURL,
		LogLevel: slog.LevelDebug,
		Logger:   slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	require.NoError(t, err)

	return c, &logs
}

// unreachableURL returns the address of a server that has already shut down
func unreachableURL(t *testing.T) string {
	t.Helper()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/api"
	srv.Close()
	return url
}

func TestClient_ListOrgs(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/orgs", r.URL.Path)
		assert.Empty(t, r.Header.Get(HeaderActiveGroup))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orgs":[]}`))
	})

	status, body := c.ListOrgs(t.Context())
	assert.Equal(t, http.StatusOK, status)

	m, ok := body.(map[string]any)
	require.True(t, ok, "body should be a json object, got %T", body)
	assert.Len(t, m, 1)
	orgs, ok := m["orgs"].([]any)
	require.True(t, ok)
	assert.Empty(t, orgs)
}

func TestClient_GetLogo(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/logo", r.URL.Path)
		_, _ = w.Write([]byte(`{"logo":"data:image/png;base64,AAAA"}`))
	})

	status, body := c.GetLogo(t.Context())
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"logo": "data:image/png;base64,AAAA"}, body)
	assert.True(t, c.IsRunning(t.Context()))
}

func TestClient_ListGroupChildren(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/groups/g-1/children", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"g-2"}]`))
	})

	status, body := c.ListGroupChildren(t.Context(), "g-1")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{map[string]any{"id": "g-2"}}, body)
}

func TestClient_ListMounts_SendsActiveGroup(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/mounts", r.URL.Path)
		assert.Equal(t, "g-1", r.Header.Get(HeaderActiveGroup))
		_, _ = w.Write([]byte(`{"mounts":["m-1"]}`))
	})

	status, body := c.ListMounts(t.Context(), "g-1")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"mounts": []any{"m-1"}}, body)
}

func TestClient_ListMountFiles(t *testing.T) {
	t.Run("without path", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/mounts/m-1/files", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)
			assert.Equal(t, "g-1", r.Header.Get(HeaderActiveGroup))
			_, _ = w.Write([]byte(`[]`))
		})

		status, body := c.ListMountFiles(t.Context(), "g-1", "m-1", "")
		assert.Equal(t, http.StatusOK, status)
		assert.IsType(t, []any{}, body)
		assert.Empty(t, body)
	})

	t.Run("with escaped path", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/mounts/m-1/files", r.URL.Path)
			assert.Equal(t, "shots/010 & 020", r.URL.Query().Get("path"))
			_, _ = w.Write([]byte(`["a.exr"]`))
		})

		status, body := c.ListMountFiles(t.Context(), "g-1", "m-1", "shots/010 & 020")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, []any{"a.exr"}, body)
	})
}

func TestClient_RequestSync(t *testing.T) {
	var received map[string]any
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/mounts/m-1/sync", r.URL.Path)
		assert.Equal(t, "g-1", r.Header.Get(HeaderActiveGroup))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(data, &received))

		// a body the client must not try to decode
		_, _ = w.Write([]byte(`accepted, not json`))
	})

	p := NewSyncPayload(SyncUp, SyncTarget{Path: "/mnt/x"}, NewSyncSource("/a/b.txt", "t1"))
	status, err := c.RequestSync(t.Context(), "g-1", "m-1", p)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	assert.Equal(t, "up", received["direction"])
	assert.Equal(t, map[string]any{"path": "/mnt/x"}, received["target"])
	require.Len(t, received["sources"], 1)

	assert.Contains(t, logs.String(), "accepted, not json")
	assert.NotContains(t, logs.String(), "invalid json response")
}

func TestClient_RequestSync_PassesThroughStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"duplicate transaction"}`))
	})

	status, err := c.RequestSync(t.Context(), "g-1", "m-1",
		NewSyncPayload(SyncDown, SyncTarget{Path: "/local"}, NewSyncSource("/a", "t1")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, status)
}

func TestClient_RequestSync_SerializationFailsBeforeSend(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	src := NewSyncSource("/a", "t1")
	src.Metadata["callback"] = func() {}

	status, err := c.RequestSync(t.Context(), "g-1", "m-1", NewSyncPayload(SyncUp, SyncTarget{Path: "/x"}, src))
	assert.ErrorIs(t, err, ErrSerialization)
	assert.Zero(t, status)
	assert.Zero(t, calls.Load())

	looped := NewSyncSource("/b", "t2")
	looped.Metadata["self"] = looped.Metadata
	status, err = c.RequestSync(t.Context(), "g-1", "m-1", NewSyncPayload(SyncUp, SyncTarget{Path: "/x"}, looped))
	assert.ErrorIs(t, err, ErrSerialization)
	assert.Zero(t, status)
	assert.Zero(t, calls.Load())

	_, err = c.RequestSync(t.Context(), "g-1", "m-1", nil)
	assert.ErrorIs(t, err, ErrNilPayload)
	assert.ErrorIs(t, err, ErrSerialization)
	assert.Zero(t, calls.Load())
}

func TestClient_GetSyncStatus(t *testing.T) {
	t.Run("all transactions", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/mounts/m-1/sync", r.URL.Path)
			assert.Equal(t, "g-1", r.Header.Get(HeaderActiveGroup))
			_, _ = w.Write([]byte(`{"t1":"complete"}`))
		})

		status, body := c.GetSyncStatus(t.Context(), "g-1", "m-1", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{"t1": "complete"}, body)
	})

	t.Run("single transaction", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/mounts/m-1/sync/t1", r.URL.Path)
			_, _ = w.Write([]byte(`{"status":"in_progress"}`))
		})

		status, body := c.GetSyncStatus(t.Context(), "g-1", "m-1", "t1")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{"status": "in_progress"}, body)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/mounts/m-1/sync/t404", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		})

		status, body := c.GetSyncStatus(t.Context(), "g-1", "m-1", "t404")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Nil(t, body)
	})
}

func TestClient_NonSuccessHasNilBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	status, body := c.ListOrgs(t.Context())
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Nil(t, body)

	// 201 is not 200, so the body is not decoded either
	c, _ = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	status, body = c.ListMounts(t.Context(), "g-1")
	assert.Equal(t, http.StatusCreated, status)
	assert.Nil(t, body)
}

func TestClient_InvalidJSONBody(t *testing.T) {
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	status, body := c.ListOrgs(t.Context())
	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, body)
	assert.Contains(t, logs.String(), "invalid json response")
}

func TestClient_ServiceUnreachable(t *testing.T) {
	c, logs := newClientFor(t, unreachableURL(t))
	ctx := t.Context()

	results := map[string]func() (int, any){
		"GetLogo":           func() (int, any) { return c.GetLogo(ctx) },
		"ListOrgs":          func() (int, any) { return c.ListOrgs(ctx) },
		"ListGroupChildren": func() (int, any) { return c.ListGroupChildren(ctx, "g") },
		"ListMounts":        func() (int, any) { return c.ListMounts(ctx, "g") },
		"ListMountFiles":    func() (int, any) { return c.ListMountFiles(ctx, "g", "m", "p") },
		"GetSyncStatus":     func() (int, any) { return c.GetSyncStatus(ctx, "g", "m", "t") },
	}

	for name, call := range results {
		status, body := call()
		assert.Equal(t, StatusServiceUnavailable, status, name)
		assert.Nil(t, body, name)
	}

	status, err := c.RequestSync(ctx, "g", "m",
		NewSyncPayload(SyncUp, SyncTarget{Path: "/x"}, NewSyncSource("/a", "t1")))
	assert.NoError(t, err)
	assert.Equal(t, StatusServiceUnavailable, status)

	assert.False(t, c.IsRunning(ctx))
	assert.Contains(t, logs.String(), "service unreachable")
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestClient_LogLevelGatesOwnRecords(t *testing.T) {
	var logs bytes.Buffer
	c, err := New(&Config{
		BaseURL:  unreachableURL(t),
		LogLevel: slog.LevelError,
		Logger:   slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	require.NoError(t, err)

	status, _ := c.ListOrgs(t.Context())
	assert.Equal(t, StatusServiceUnavailable, status)
	assert.NotContains(t, logs.String(), "service unreachable")
}

func TestClient_UserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "orbit-test/1.0", r.Header.Get(HeaderUserAgent))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(&Config{BaseURL: srv.URL + "/api/", UserAgent: "orbit-test/1.0"})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/api", c.BaseURL())

	status, _ := c.ListOrgs(t.Context())
	assert.Equal(t, http.StatusOK, status)
}
