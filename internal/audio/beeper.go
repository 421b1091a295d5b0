package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// bufferSize keeps the latency of switching the tone below a frame.
const bufferSize = 10 * time.Millisecond

// Beeper outputs a tone through the audio device of the host.
type Beeper struct {
	*Tone

	ctx    *oto.Context
	player *oto.Player
	mutex  sync.Mutex
}

// NewBeeper opens the audio device and starts a player that streams the
// tone. The tone starts switched off.
func NewBeeper() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   bufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	b := &Beeper{
		Tone: NewTone(SampleRate, Frequency),
		ctx:  ctx,
	}
	b.player = ctx.NewPlayer(b.Tone)
	b.player.Play()
	return b, nil
}

// Close stops the audio output.
func (b *Beeper) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
