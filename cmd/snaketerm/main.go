// snaketerm plays snakearena in a terminal, either against an in-process
// session or as a client of a running server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"snakearena/game"
	"snakearena/server"
	"snakearena/store"
	"snakearena/term"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

type options struct {
	connect string
	room    string
	player  string
	codec   string
	dbPath  string
	logPath string
	seed    uint64
	mute    bool
	debug   bool
}

func main() {
	var o options
	flag.StringVar(&o.connect, "connect", "", "server address (host:port); empty plays locally")
	flag.StringVar(&o.room, "room", server.DefaultRoom, "room to join when connected")
	flag.StringVar(&o.player, "player", "", "player name when connected (default: $USER)")
	flag.StringVar(&o.codec, "codec", "msgpack", "wire codec when connected: json or msgpack")
	flag.StringVar(&o.dbPath, "db", "data/scores.db", "sqlite high-score database for local play; empty keeps scores in memory")
	flag.StringVar(&o.logPath, "log", "snaketerm.log", "log file path")
	flag.Uint64Var(&o.seed, "seed", 0, "random seed for local play (0 picks one)")
	flag.BoolVar(&o.mute, "mute", false, "disable sound")
	flag.BoolVar(&o.debug, "debug", false, "log at debug level")
	flag.Parse()

	level := zapcore.InfoLevel
	if o.debug {
		level = zapcore.DebugLevel
	}
	// the screen belongs to tcell, so logs go to a file
	logger := server.NewFileLogger(o.logPath, level)
	defer logger.Sync()

	if err := run(o, logger); err != nil {
		logger.Error("snaketerm", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(o options, logger *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	sound := &term.Sound{}
	if !o.mute {
		if sound, err = term.NewSound(); err != nil {
			logger.Warn("audio unavailable", zap.Error(err))
		}
	}
	defer sound.Close()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	c := client{
		screen:   screen,
		renderer: term.NewRenderer(screen),
		sound:    sound,
		events:   events,
		log:      logger,
	}
	if o.connect != "" {
		return c.runRemote(o)
	}
	return c.runLocal(o)
}

type client struct {
	screen   tcell.Screen
	renderer *term.Renderer
	sound    *term.Sound
	events   <-chan tcell.Event
	log      *zap.Logger
}

func (c *client) runLocal(o options) error {
	var scores game.HighScoreStore = &store.Memory{}
	if o.dbPath != "" {
		db, err := store.Open(o.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		scores = db.Slot("local")
	}

	opts := []game.Option{
		game.WithLogger(c.log),
		game.WithHighScoreStore(scores),
	}
	if o.seed != 0 {
		opts = append(opts, game.WithSeed(o.seed))
	}
	sess, err := game.NewSession(game.DefaultRules(), opts...)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case ev := <-c.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				in, action := term.KeyInput(ev, sess.Phase())
				switch action {
				case term.ActionQuit:
					return nil
				case term.ActionInput:
					sess.Apply(in)
				}
			case *tcell.EventResize:
				c.screen.Sync()
			}
		case now := <-ticker.C:
			sess.Update(now)
			c.sound.Play(sess.Events())
			c.renderer.Render(sess.Snapshot())
		}
	}
}

func (c *client) runRemote(o options) error {
	player := o.player
	if player == "" {
		player = os.Getenv("USER")
	}
	if player == "" {
		player = "guest"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	remote, err := term.DialRemote(ctx, o.connect, o.room, player, o.codec, c.log)
	cancel()
	if err != nil {
		return err
	}
	defer remote.Close()
	c.log.Info("connected", zap.String("addr", o.connect), zap.String("room", o.room), zap.String("player", player))

	phase := game.PhaseReady
	for {
		select {
		case ev := <-c.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				in, action := term.KeyInput(ev, phase)
				switch action {
				case term.ActionQuit:
					return nil
				case term.ActionInput:
					if err := remote.Send(in); err != nil {
						return fmt.Errorf("send input: %w", err)
					}
				}
			case *tcell.EventResize:
				c.screen.Sync()
			}
		case snap, ok := <-remote.States():
			if !ok {
				return fmt.Errorf("server closed the connection")
			}
			phase = snap.Phase
			c.sound.Play(snap.Events)
			c.renderer.Render(snap)
		}
	}
}
