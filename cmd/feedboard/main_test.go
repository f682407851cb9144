package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedboard/pkg/config"
	"github.com/umputun/feedboard/pkg/repository"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func freePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())
	return port
}

func TestRun_ServerStartStop(t *testing.T) {
	llmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		content := `{"sentiment":"negative","sentiment_score":0.8,"urgency":"high","themes":["Performance"],"summary":"Dashboard is slow."}`
		resp := map[string]interface{}{
			"id": "chatcmpl-1", "object": "chat.completion", "model": "gpt-4o-mini",
			"choices": []map[string]interface{}{{"index": 0, "finish_reason": "stop",
				"message": map[string]string{"role": "assistant", "content": content}}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer llmSrv.Close()

	dbPath := filepath.Join(t.TempDir(), "feedboard.db")
	t.Setenv("FEEDBOARD_TEST_DB", dbPath)
	t.Setenv("FEEDBOARD_TEST_LLM", llmSrv.URL)

	port := freePort(t)
	opts := Opts{Config: "testdata/config.yml", Listen: fmt.Sprintf("127.0.0.1:%d", port)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- run(ctx, opts) }()

	url := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 5*time.Second, 50*time.Millisecond)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar, Timeout: 5 * time.Second}

	resp, err := client.Post(url+"/api/login", "application/json", strings.NewReader(`{"username":"admin","password":"test-password"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Post(url+"/api/feedback", "application/json", strings.NewReader(`{"source":"email","content":"Dashboard takes 30 seconds to load"}`))
	require.NoError(t, err)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Eventually(t, func() bool {
		resp, err := client.Get(url + "/api/feedback/" + created.ID)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var item struct {
			Urgency     string     `json:"urgency"`
			ProcessedAt *time.Time `json:"processed_at"`
		}
		return json.NewDecoder(resp.Body).Decode(&item) == nil && item.ProcessedAt != nil && item.Urgency == "high"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server shutdown timeout")
	}

	// analysis and the operator session are persisted
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: dbPath})
	require.NoError(t, err)
	defer repos.Close()
	item, err := repos.Feedback.GetFeedback(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dashboard is slow.", item.Summary)
	var sessions int
	require.NoError(t, repos.DB.Get(&sessions, "SELECT COUNT(*) FROM sessions"))
	assert.Equal(t, 1, sessions)
}

func TestMakeCompleter(t *testing.T) {
	c, err := makeCompleter(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI, Model: "m"})
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = makeCompleter(context.Background(), config.LLMConfig{Provider: config.ProviderGemini, Model: "m"})
	require.Error(t, err, "gemini needs an api key")
}

func TestMakeSessionStore(t *testing.T) {
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	mem := makeSessionStore(config.AuthConfig{SessionStore: config.SessionStoreMemory, SessionTTL: time.Hour}, repos)
	assert.Equal(t, "*auth.MemoryStore", fmt.Sprintf("%T", mem))

	db := makeSessionStore(config.AuthConfig{SessionStore: config.SessionStoreDB, SessionTTL: time.Hour}, repos)
	assert.Equal(t, "*auth.DBStore", fmt.Sprintf("%T", db))
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		setupLog(true, false)
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		setupLog(false, false)
	})

	t.Run("with secrets", func(t *testing.T) {
		setupLog(true, false, "secret1", "", "secret2")
	})

	t.Run("no color mode", func(t *testing.T) {
		setupLog(false, true)
	})
}
