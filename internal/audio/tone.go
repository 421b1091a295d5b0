// Package audio plays the single tone of the machine while its sound timer runs.
package audio

import (
	"encoding/binary"
	"sync/atomic"
)

const (
	// SampleRate is the output sample rate in Hz.
	SampleRate = 44100
	// Frequency is the frequency of the square wave in Hz.
	Frequency = 440

	bytesPerSample = 2 // mono signed 16 bit little endian
	amplitude      = 0x1800
)

// Tone is a mono square wave generator. Read returns silence while the tone
// is switched off, so that the output stream never runs dry.
type Tone struct {
	on     atomic.Bool
	period int // samples per full wave
	phase  int
}

// NewTone returns a new switched off tone generator.
func NewTone(sampleRate, frequency int) *Tone {
	return &Tone{
		period: max(2, sampleRate/frequency),
	}
}

// Play switches the tone on.
func (t *Tone) Play() {
	t.on.Store(true)
}

// Pause switches the tone off.
func (t *Tone) Pause() {
	t.on.Store(false)
}

// Playing returns whether the tone is switched on.
func (t *Tone) Playing() bool {
	return t.on.Load()
}

// Read fills p with signed 16 bit little endian samples.
func (t *Tone) Read(p []byte) (int, error) {
	samples := len(p) / bytesPerSample
	on := t.on.Load()

	for i := range samples {
		var value int16
		if on {
			value = amplitude
			if t.phase >= t.period/2 {
				value = -amplitude
			}
			t.phase = (t.phase + 1) % t.period
		}
		binary.LittleEndian.PutUint16(p[i*bytesPerSample:], uint16(value))
	}

	return samples * bytesPerSample, nil
}
