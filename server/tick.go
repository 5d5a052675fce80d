package server

import "time"

const (
	// TicksPerSecond is the default world update rate
	TicksPerSecond = 60

	defaultMaxInputsPerTick = 2
)

// step runs one tick: inputs, world update, broadcast
func (r *Room) step(now time.Time) {
	start := time.Now()
	r.tickSeq.Add(1)
	r.BeginTick()
	r.ProcessInputs()
	r.UpdateWorld(now)
	r.Broadcast()
	r.metrics.AddTick(time.Since(start).Nanoseconds())
}

// StartTicker starts the single-threaded tick loop of the room
func (r *Room) StartTicker() {
	if r.tickerStarted {
		return
	}
	r.tickerStarted = true
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				r.step(now)
			case <-r.stop:
				for _, p := range r.Players {
					if p.Conn != nil {
						p.Conn.Close()
					}
				}
				return
			}
		}
	}()
}

// Stop ends the tick loop and closes every connection
func (r *Room) Stop() {
	if !r.tickerStarted {
		return
	}
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
	<-r.done
}
