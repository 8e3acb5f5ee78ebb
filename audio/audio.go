// Package audio plays short synthesized feedback cues over beep. Audio is
// strictly decorative: initialization failure degrades to silence instead
// of failing the game.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/event"
)

const sampleRate = beep.SampleRate(48000)

// Service owns the speaker and turns cue events into tones
type Service struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool

	subs []*event.Subscription
	log  *zap.Logger
}

// NewService creates an uninitialized audio service
func NewService(log *zap.Logger) *Service {
	return &Service{mixer: &beep.Mixer{}, log: log}
}

// Start opens the speaker and subscribes to game events. A backend
// failure leaves the service silent and returns nil.
func (s *Service) Start(bus *event.Bus) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		s.mu.Unlock()
		s.log.Warn("audio backend unavailable, running silent", zap.Error(err))
		return nil
	}
	speaker.Play(s.mixer)
	s.initialized = true
	s.mu.Unlock()

	s.subs = append(s.subs,
		bus.Subscribe(event.TopicCue, func(payload any) {
			if cue, ok := payload.(event.Cue); ok {
				s.Play(cue)
			}
		}),
		bus.Subscribe(event.TopicInteraction, func(any) {
			s.Play(event.CueInteract)
		}),
		bus.Subscribe(event.TopicChangeState, func(any) {
			s.Play(event.CuePortal)
		}),
	)
	return nil
}

// Play queues the named cue. Unknown cues and a silent service are no-ops.
func (s *Service) Play(cue event.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	var streamer beep.Streamer
	switch cue {
	case event.CuePlace:
		streamer = tone(880, 60*time.Millisecond)
	case event.CueReject:
		streamer = tone(120, 150*time.Millisecond)
	case event.CueInteract:
		streamer = chirp(440, 880, 120*time.Millisecond)
	case event.CuePortal:
		streamer = chirp(220, 1100, 350*time.Millisecond)
	case event.CueSave:
		streamer = beep.Seq(tone(660, 70*time.Millisecond), tone(990, 90*time.Millisecond))
	default:
		return
	}
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Stop silences and detaches the service. Idempotent.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// tone is a fixed-frequency sine burst with a short fade-out
func tone(freq float64, d time.Duration) beep.Streamer {
	return chirp(freq, freq, d)
}

// chirp sweeps a sine from f0 to f1 over d, enveloped to avoid clicks
type sweep struct {
	f0, f1   float64
	phase    float64
	position int
	total    int
}

func chirp(f0, f1 float64, d time.Duration) beep.Streamer {
	return &sweep{f0: f0, f1: f1, total: sampleRate.N(d)}
}

func (c *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if c.position >= c.total {
			return i, false
		}
		t := float64(c.position) / float64(c.total)
		freq := c.f0 + (c.f1-c.f0)*t

		val := math.Sin(2 * math.Pi * c.phase)
		// Linear attack over the first 5%, release over the last 25%
		switch {
		case t < 0.05:
			val *= t / 0.05
		case t > 0.75:
			val *= (1 - t) / 0.25
		}
		val *= 0.4

		samples[i][0] = val
		samples[i][1] = val

		c.phase += freq / float64(sampleRate)
		c.phase -= math.Floor(c.phase)
		c.position++
	}
	return len(samples), true
}

func (c *sweep) Err() error { return nil }
