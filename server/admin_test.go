package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"snakearena/game"
)

func TestMain(m *testing.M) {
	if err := InitRoomManager(ManagerConfig{Rules: game.DefaultRules()}); err != nil {
		panic(err)
	}
	code := m.Run()
	GetRoomManager().StopAll()
	os.Exit(code)
}

func getConfig(t *testing.T, room string) adminConfig {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin/config?room="+room, nil)
	rec := httptest.NewRecorder()
	HandleAdminConfig(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	var cfg adminConfig
	if err := json.NewDecoder(rec.Body).Decode(&cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return cfg
}

func postConfig(room, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/config?room="+room, strings.NewReader(body))
	rec := httptest.NewRecorder()
	HandleAdminConfig(rec, req)
	return rec
}

func TestAdminConfigGet(t *testing.T) {
	cfg := getConfig(t, "admin-get")
	if *cfg.GridSize != 20 || *cfg.InitialSpeedMs != 200 || *cfg.BonusIntervalMs != 30000 {
		t.Fatalf("unexpected defaults: grid=%d speed=%d bonus=%d", *cfg.GridSize, *cfg.InitialSpeedMs, *cfg.BonusIntervalMs)
	}
	if *cfg.MaxInputsPerTick != defaultMaxInputsPerTick {
		t.Fatalf("maxInputsPerTick = %d", *cfg.MaxInputsPerTick)
	}
}

func TestAdminConfigPost(t *testing.T) {
	rec := postConfig("admin-post", `{"gridSize":25,"maxInputsPerTick":4,"minSpeedMs":40}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST status = %d: %s", rec.Code, rec.Body.String())
	}
	cfg := getConfig(t, "admin-post")
	if *cfg.GridSize != 25 || *cfg.MaxInputsPerTick != 4 || *cfg.MinSpeedMs != 40 {
		t.Fatalf("config not updated: %+v", cfg)
	}
	// untouched fields keep their values
	if *cfg.InitialSpeedMs != 200 {
		t.Fatalf("initialSpeedMs = %d", *cfg.InitialSpeedMs)
	}
}

func TestAdminConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"gridSize":`},
		{"unknown field", `{"step":2}`},
		{"invalid rules", `{"gridSize":3}`},
		{"invalid budget", `{"maxInputsPerTick":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := postConfig("admin-reject", tt.body); rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
	if cfg := getConfig(t, "admin-reject"); *cfg.GridSize != 20 {
		t.Fatalf("grid changed to %d", *cfg.GridSize)
	}
}

func TestAdminConfigMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/admin/config", nil)
	rec := httptest.NewRecorder()
	HandleAdminConfig(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleMetrics(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics?room=metrics-room", nil)
	rec := httptest.NewRecorder()
	HandleMetrics(rec, req)

	var body struct {
		Room    string         `json:"room"`
		Phase   string         `json:"phase"`
		Players []PlayerState  `json:"players"`
		Metrics map[string]any `json:"metrics"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Room != "metrics-room" || body.Phase != string(game.PhaseReady) {
		t.Fatalf("room=%q phase=%q", body.Room, body.Phase)
	}
	if _, ok := body.Metrics["tick_count"]; !ok {
		t.Fatalf("metrics missing tick_count: %v", body.Metrics)
	}
}

func TestHandleScores(t *testing.T) {
	h := HandleScores(func() (map[string]int, error) {
		return map[string]int{"room-1": 42}, nil
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/scores", nil))
	var got map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got["room-1"] != 42 {
		t.Fatalf("scores = %v", got)
	}

	failing := HandleScores(func() (map[string]int, error) { return nil, errors.New("disk gone") })
	rec = httptest.NewRecorder()
	failing(rec, httptest.NewRequest(http.MethodGet, "/scores", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
