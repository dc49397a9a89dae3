package audio

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes cues into the system speaker.
// All methods are safe on a nil *Player and do nothing.
type Player struct {
	mixer  *beep.Mixer
	volume float64
	log    *log.Logger
}

// NewPlayer opens the speaker and starts an empty mixer on it.
func NewPlayer(volume float64, logger *log.Logger) (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}

	p := &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		log:    logger,
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Play queues cue on top of whatever is already sounding.
func (p *Player) Play(c Cue) {
	if p == nil {
		return
	}
	s := Streamer(c, sampleRate, p.volume)
	if s == nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()

	if p.log != nil {
		p.log.Debug("cue", "cue", c)
	}
}

// Close silences the speaker.
func (p *Player) Close() {
	if p == nil {
		return
	}
	speaker.Clear()
}
