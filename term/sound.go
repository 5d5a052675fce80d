package term

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"snakearena/game"
)

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq     float64
	duration time.Duration
}

// eventTones are the cues played per game event; missing kinds are silent
var eventTones = map[game.EventKind][]tone{
	game.EventFoodEaten:    {{880, 50 * time.Millisecond}},
	game.EventFoodExpired:  {{220, 60 * time.Millisecond}},
	game.EventBonusStarted: {{660, 80 * time.Millisecond}, {990, 120 * time.Millisecond}},
	game.EventLevelUp:      {{523, 70 * time.Millisecond}, {784, 90 * time.Millisecond}},
	game.EventGameOver:     {{330, 150 * time.Millisecond}, {165, 300 * time.Millisecond}},
	game.EventWon:          {{523, 100 * time.Millisecond}, {659, 100 * time.Millisecond}, {1047, 250 * time.Millisecond}},
}

// Sound plays short sine cues for game events. A Sound whose speaker
// failed to initialize stays silent.
type Sound struct {
	mu      sync.Mutex
	enabled bool
}

// NewSound initializes the speaker. The returned Sound is usable even
// when err is non-nil; the game runs without audio.
func NewSound() (*Sound, error) {
	s := &Sound{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return s, err
	}
	s.enabled = true
	return s, nil
}

// Play queues the cue of every event that has one
func (s *Sound) Play(events []game.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}
	for _, e := range events {
		if st := cue(eventTones[e.Kind]); st != nil {
			speaker.Play(st)
		}
	}
}

// Close releases the audio device
func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		speaker.Close()
		s.enabled = false
	}
}

// cue chains tones into one streamer, nil when there is nothing to play
func cue(tones []tone) beep.Streamer {
	var parts []beep.Streamer
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			continue
		}
		parts = append(parts, beep.Take(sampleRate.N(t.duration), sine))
	}
	if len(parts) == 0 {
		return nil
	}
	return beep.Seq(parts...)
}
