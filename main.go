package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snakearena/game"
	"snakearena/server"
	"snakearena/store"
)

// snakearena server: HTTP + WebSocket rooms, each hosting one shared snake game
func main() {
	var (
		addr    string
		logPath string
		dbPath  string
		webDir  string
		tps     int
		debug   bool
	)
	flag.StringVar(&addr, "addr", ":8080", "server listen address, e.g. :8080")
	flag.StringVar(&logPath, "log", "app.log", "log file path")
	flag.StringVar(&dbPath, "db", "data/scores.db", "sqlite high-score database; empty keeps scores in memory")
	flag.StringVar(&webDir, "web", "web", "static files directory")
	flag.IntVar(&tps, "tps", server.TicksPerSecond, "room ticks per second")
	flag.BoolVar(&debug, "debug", false, "log at debug level")
	flag.Parse()

	logger := server.InitLogger(logPath, debug)
	defer server.SyncLogger()

	var (
		scores     func(room string) game.HighScoreStore
		listScores func() (map[string]int, error)
	)
	if dbPath == "" {
		mem := store.NewMemorySlots()
		scores = func(room string) game.HighScoreStore { return mem.Slot(room) }
		listScores = mem.Slots
	} else {
		db, err := store.Open(dbPath)
		if err != nil {
			server.Log.Fatalf("open score store: %v", err)
		}
		defer db.Close()
		scores = func(room string) game.HighScoreStore { return db.Slot(room) }
		listScores = db.Slots
	}

	err := server.InitRoomManager(server.ManagerConfig{
		Rules:          game.DefaultRules(),
		TicksPerSecond: tps,
		Logger:         logger,
		Scores:         scores,
	})
	if err != nil {
		server.Log.Fatalf("init rooms: %v", err)
	}
	rm := server.GetRoomManager()
	// default room up front so the first client does not pay for setup
	if _, err := rm.GetOrCreateRoom(server.DefaultRoom); err != nil {
		server.Log.Fatalf("create default room: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.HandleWS)
	mux.Handle("/", http.FileServer(http.Dir(webDir)))
	mux.HandleFunc("/admin/config", server.HandleAdminConfig)
	mux.HandleFunc("/metrics", server.HandleMetrics)
	mux.HandleFunc("/scores", server.HandleScores(listScores))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		server.Log.Infof("snakearena listening on %s; open http://localhost%v/", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		server.Log.Warnf("http shutdown: %v", err)
	}
	rm.StopAll()
}
