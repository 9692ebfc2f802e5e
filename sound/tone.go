// Package sound plays the CHIP-8 buzzer through the system speaker.
package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	DefaultFreq     = 440
	DefaultDuration = 100 * time.Millisecond
)

// Tone is a fixed beep played on the speaker.
type Tone struct {
	Freq     float64
	Duration time.Duration
}

// Open initializes the speaker and returns a Tone with the default
// frequency and duration. Close must be called to release the speaker.
func Open() (*Tone, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("sound: initializing speaker: %w", err)
	}
	return &Tone{Freq: DefaultFreq, Duration: DefaultDuration}, nil
}

// Play starts the tone and returns without waiting for it to finish.
func (t *Tone) Play() error {
	s, err := t.streamer()
	if err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

func (t *Tone) streamer() (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, t.Freq)
	if err != nil {
		return nil, fmt.Errorf("sound: %w", err)
	}
	return beep.Take(sampleRate.N(t.Duration), sine), nil
}

func (t *Tone) Close() {
	speaker.Close()
}
