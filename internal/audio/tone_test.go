package audio

import (
	"encoding/binary"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestToneSilentWhenPaused(t *testing.T) {
	tone := NewTone(8, 2)
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

	n, err := tone.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{0, 0, 0, 0, 0xFF}, buf)
	assert.False(t, tone.Playing())
}

func TestToneSquareWave(t *testing.T) {
	tone := NewTone(8, 2)
	tone.Play()
	assert.True(t, tone.Playing())

	buf := make([]byte, 8*bytesPerSample)
	n, err := tone.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, len(buf), n)

	var samples []int16
	for i := 0; i < len(buf); i += bytesPerSample {
		samples = append(samples, int16(binary.LittleEndian.Uint16(buf[i:])))
	}
	high, low := int16(amplitude), int16(-amplitude)
	assert.Equal(t, []int16{high, high, low, low, high, high, low, low}, samples)

	tone.Pause()
	_, err = tone.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, make([]byte, len(buf)), buf)
}
