package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// adminConfig is the wire form of a room config. Durations are in
// milliseconds; every field is optional on POST.
type adminConfig struct {
	MaxInputsPerTick *int `json:"maxInputsPerTick,omitempty"`

	GridSize          *int     `json:"gridSize,omitempty"`
	InitialSpeedMs    *int     `json:"initialSpeedMs,omitempty"`
	SpeedStepMs       *int     `json:"speedStepMs,omitempty"`
	MinSpeedMs        *int     `json:"minSpeedMs,omitempty"`
	LevelScore        *int     `json:"levelScore,omitempty"`
	MaxLevel          *int     `json:"maxLevel,omitempty"`
	BonusIntervalMs   *int     `json:"bonusIntervalMs,omitempty"`
	BonusDurationMs   *int     `json:"bonusDurationMs,omitempty"`
	BonusFoodCount    *int     `json:"bonusFoodCount,omitempty"`
	BonusMultiplier   *int     `json:"bonusMultiplier,omitempty"`
	MaxFood           *int     `json:"maxFood,omitempty"`
	MaxObstacles      *int     `json:"maxObstacles,omitempty"`
	PlacementAttempts *int     `json:"placementAttempts,omitempty"`
	MinReachable      *float64 `json:"minReachable,omitempty"`
}

func ms(d time.Duration) *int {
	v := int(d / time.Millisecond)
	return &v
}

func intp(v int) *int { return &v }

func toAdminConfig(c RoomConfig) adminConfig {
	r := c.Rules
	reach := r.MinReachable
	return adminConfig{
		MaxInputsPerTick:  intp(c.MaxInputsPerTick),
		GridSize:          intp(r.GridSize),
		InitialSpeedMs:    ms(r.InitialSpeed),
		SpeedStepMs:       ms(r.SpeedStep),
		MinSpeedMs:        ms(r.MinSpeed),
		LevelScore:        intp(r.LevelScore),
		MaxLevel:          intp(r.MaxLevel),
		BonusIntervalMs:   ms(r.BonusInterval),
		BonusDurationMs:   ms(r.BonusDuration),
		BonusFoodCount:    intp(r.BonusFoodCount),
		BonusMultiplier:   intp(r.BonusMultiplier),
		MaxFood:           intp(r.MaxFood),
		MaxObstacles:      intp(r.MaxObstacles),
		PlacementAttempts: intp(r.PlacementAttempts),
		MinReachable:      &reach,
	}
}

// apply copies the set fields of body into c
func (body adminConfig) apply(c *RoomConfig) {
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setMs := func(dst *time.Duration, v *int) {
		if v != nil {
			*dst = time.Duration(*v) * time.Millisecond
		}
	}
	r := &c.Rules
	setInt(&c.MaxInputsPerTick, body.MaxInputsPerTick)
	setInt(&r.GridSize, body.GridSize)
	setMs(&r.InitialSpeed, body.InitialSpeedMs)
	setMs(&r.SpeedStep, body.SpeedStepMs)
	setMs(&r.MinSpeed, body.MinSpeedMs)
	setInt(&r.LevelScore, body.LevelScore)
	setInt(&r.MaxLevel, body.MaxLevel)
	setMs(&r.BonusInterval, body.BonusIntervalMs)
	setMs(&r.BonusDuration, body.BonusDurationMs)
	setInt(&r.BonusFoodCount, body.BonusFoodCount)
	setInt(&r.BonusMultiplier, body.BonusMultiplier)
	setInt(&r.MaxFood, body.MaxFood)
	setInt(&r.MaxObstacles, body.MaxObstacles)
	setInt(&r.PlacementAttempts, body.PlacementAttempts)
	if body.MinReachable != nil {
		r.MinReachable = *body.MinReachable
	}
}

func roomFor(w http.ResponseWriter, r *http.Request) (*Room, bool) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = DefaultRoom
	}
	room, err := GetRoomManager().GetOrCreateRoom(roomID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return room, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// HandleAdminConfig reads or updates a room config.
// GET /admin/config?room=room-1 returns the current config.
// POST /admin/config?room=room-1 updates the fields present in the JSON body;
// rule changes take effect when the next game starts.
func HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	room, ok := roomFor(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, toAdminConfig(room.Config()))
	case http.MethodPost:
		var body adminConfig
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := room.UpdateConfig(body.apply); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cfg := room.Config()
		Log.Infof("config updated: room=%s maxInputsPerTick=%d grid=%d speed=%s",
			room.ID, cfg.MaxInputsPerTick, cfg.Rules.GridSize, cfg.Rules.InitialSpeed)
		writeJSON(w, map[string]any{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMetrics reports the counters of a room.
// GET /metrics?room=room-1
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	room, ok := roomFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{
		"room":    room.ID,
		"tick":    room.Tick(),
		"phase":   room.Phase(),
		"players": room.Roster(),
		"metrics": room.Metrics().Snapshot(),
	})
}

// HandleScores lists the best score of every slot in the store.
// GET /scores
func HandleScores(scores func() (map[string]int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		all, err := scores()
		if err != nil {
			Log.Warnf("list scores: %v", err)
			http.Error(w, "scores unavailable", http.StatusInternalServerError)
			return
		}
		writeJSON(w, all)
	}
}
