package server

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"snakearena/game"
)

// RoomConfig is the hot-reloadable part of a room
type RoomConfig struct {
	MaxInputsPerTick int
	Rules            game.Rules // staged into the session, applied on restart
}

// Room hosts one authoritative game session. All session and player
// mutation happens on the tick goroutine; other goroutines talk to it
// through channels.
type Room struct {
	ID string

	Players map[PlayerID]*Player
	session *game.Session
	log     *zap.SugaredLogger

	inputChan chan Input
	joinChan  chan *Player
	leaveChan chan leaveRequest
	roster    atomic.Value // []PlayerState, refreshed every tick

	cfgMu      sync.RWMutex
	cfg        RoomConfig
	rulesDirty bool

	tickInterval time.Duration
	tickSeq      atomic.Int64
	metrics      *RoomMetrics
	phase        atomic.Value // game.Phase, for readers off the tick goroutine

	tickerStarted bool
	stop          chan struct{}
	done          chan struct{}
}

// NewRoom creates a room and its session in the Ready phase
func NewRoom(id string, mc ManagerConfig) (*Room, error) {
	logger := mc.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("room", id))

	opts := []game.Option{game.WithLogger(logger)}
	if mc.Scores != nil {
		opts = append(opts, game.WithHighScoreStore(mc.Scores(id)))
	}
	sess, err := game.NewSession(mc.Rules, opts...)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", id, err)
	}

	tps := mc.TicksPerSecond
	if tps <= 0 {
		tps = TicksPerSecond
	}
	maxInputs := mc.MaxInputsPerTick
	if maxInputs <= 0 {
		maxInputs = defaultMaxInputsPerTick
	}

	r := &Room{
		ID:           id,
		Players:      make(map[PlayerID]*Player),
		session:      sess,
		log:          logger.Sugar(),
		inputChan:    make(chan Input, 256), // buffered so network reads never stall the tick
		joinChan:     make(chan *Player, 64),
		leaveChan:    make(chan leaveRequest, 64),
		cfg:          RoomConfig{MaxInputsPerTick: maxInputs, Rules: mc.Rules},
		tickInterval: time.Second / time.Duration(tps),
		metrics:      &RoomMetrics{},
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	r.phase.Store(sess.Phase())
	r.roster.Store([]PlayerState{})
	return r, nil
}

// RequestJoin queues a player to join on the next tick
func (r *Room) RequestJoin(id PlayerID, conn *ClientConn) {
	select {
	case r.joinChan <- &Player{ID: id, Conn: conn}:
	case <-r.stop:
		if conn != nil {
			conn.Close()
		}
	}
}

type leaveRequest struct {
	id   PlayerID
	conn *ClientConn
}

// RequestLeave queues a player removal for the tick goroutine. conn guards
// against a stale connection removing a player who has since reconnected;
// nil removes whatever connection the player has.
func (r *Room) RequestLeave(pid PlayerID, conn *ClientConn) {
	select {
	case r.leaveChan <- leaveRequest{id: pid, conn: conn}:
	case <-r.stop:
	}
}

// OnInput records an intent without touching the session. When the
// channel is full the input is dropped so the tick stays on time.
func (r *Room) OnInput(in Input) {
	select {
	case r.inputChan <- in:
	default:
		r.metrics.IncChanFullDiscarded()
	}
}

func (r *Room) joinPlayer(p *Player) {
	if old, ok := r.Players[p.ID]; ok && old.Conn != nil && old.Conn != p.Conn {
		old.Conn.Close()
	}
	r.Players[p.ID] = p
	r.log.Infow("player joined", "player", p.ID, "players", len(r.Players))
}

func (r *Room) leavePlayer(id PlayerID, conn *ClientConn) {
	if p, ok := r.Players[id]; ok {
		if conn != nil && p.Conn != conn {
			return
		}
		if p.Conn != nil {
			p.Conn.Close()
		}
		delete(r.Players, id)
		r.log.Infow("player left", "player", id, "players", len(r.Players))
	}
}

// BeginTick resets per-tick counters and picks up config changes
func (r *Room) BeginTick() {
	for _, p := range r.Players {
		p.inputsThisTick = 0
	}
	r.cfgMu.Lock()
	dirty, rules := r.rulesDirty, r.cfg.Rules
	r.rulesDirty = false
	r.cfgMu.Unlock()
	if dirty {
		if err := r.session.SetRules(rules); err != nil {
			r.log.Warnw("staging rules failed", "error", err)
		}
	}
}

// ProcessInputs drains what was queued since the last tick: joins first so
// a new player's first input is not lost, leaves last so a player's final
// inputs still count.
func (r *Room) ProcessInputs() {
	for drained := false; !drained; {
		select {
		case p := <-r.joinChan:
			r.joinPlayer(p)
		default:
			drained = true
		}
	}

	maxInputs := r.MaxInputsPerTick()
	for drained := false; !drained; {
		select {
		case in := <-r.inputChan:
			r.applyInput(in, maxInputs)
		default:
			drained = true
		}
	}

	for drained := false; !drained; {
		select {
		case req := <-r.leaveChan:
			r.leavePlayer(req.id, req.conn)
		default:
			drained = true
		}
	}
	r.refreshRoster()
}

func (r *Room) applyInput(in Input, maxInputs int) {
	p, ok := r.Players[in.PlayerID]
	if !ok {
		return
	}
	if in.Seq != 0 && in.Seq <= p.lastSeq {
		r.metrics.IncOldSeqIgnored()
		return
	}
	if p.inputsThisTick >= maxInputs {
		r.metrics.IncRateLimited()
		return
	}
	p.inputsThisTick++
	if in.Seq != 0 {
		p.lastSeq = in.Seq
	}
	if r.session.Apply(in.Command) {
		r.metrics.IncAccepted()
	} else {
		r.metrics.IncRefused()
	}
}

func (r *Room) refreshRoster() {
	roster := make([]PlayerState, 0, len(r.Players))
	for _, p := range r.Players {
		ps := PlayerState{ID: string(p.ID), LastSeq: p.lastSeq}
		if p.Conn != nil {
			ps.Codec = p.Conn.codec.Name()
		}
		roster = append(roster, ps)
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })
	r.roster.Store(roster)
}

// Roster lists the players as of the last tick
func (r *Room) Roster() []PlayerState {
	roster, _ := r.roster.Load().([]PlayerState)
	return roster
}

// UpdateWorld advances the session to now and records what happened
func (r *Room) UpdateWorld(now time.Time) {
	r.session.Update(now)
	r.metrics.ObserveEvents(r.session.Events())
	r.phase.Store(r.session.Phase())
}

// Broadcast sends the current snapshot to every player, encoding once per
// codec in use.
func (r *Room) Broadcast() {
	if len(r.Players) == 0 {
		return
	}
	msg := StateMessage{Type: "state", Room: r.ID, Tick: r.tickSeq.Load(), State: r.session.Snapshot()}
	encoded := make(map[string][]byte, 2)
	for _, p := range r.Players {
		if p.Conn == nil {
			continue
		}
		name := p.Conn.codec.Name()
		b, ok := encoded[name]
		if !ok {
			var err error
			b, err = p.Conn.codec.Marshal(msg)
			if err != nil {
				r.log.Errorw("encode snapshot", "codec", name, "error", err)
				continue
			}
			encoded[name] = b
		}
		p.Conn.Enqueue(b)
	}
}

// Config returns a copy of the current room config
func (r *Room) Config() RoomConfig {
	r.cfgMu.RLock()
	defer r.cfgMu.RUnlock()
	return r.cfg
}

// MaxInputsPerTick is the per-player input budget for one tick
func (r *Room) MaxInputsPerTick() int {
	r.cfgMu.RLock()
	defer r.cfgMu.RUnlock()
	return r.cfg.MaxInputsPerTick
}

// UpdateConfig applies fn to a copy of the config. New rules are validated
// here and handed to the session on the next tick.
func (r *Room) UpdateConfig(fn func(*RoomConfig)) error {
	r.cfgMu.Lock()
	defer r.cfgMu.Unlock()
	next := r.cfg
	fn(&next)
	if next.MaxInputsPerTick < 1 {
		return fmt.Errorf("maxInputsPerTick must be at least 1, got %d", next.MaxInputsPerTick)
	}
	if err := next.Rules.Validate(); err != nil {
		return err
	}
	if next.Rules != r.cfg.Rules {
		r.rulesDirty = true
	}
	r.cfg = next
	return nil
}

// Phase is the session phase as of the last tick
func (r *Room) Phase() game.Phase {
	p, _ := r.phase.Load().(game.Phase)
	return p
}

// Tick is the number of ticks run
func (r *Room) Tick() int64 { return r.tickSeq.Load() }

// Metrics exposes the room counters
func (r *Room) Metrics() *RoomMetrics { return r.metrics }
