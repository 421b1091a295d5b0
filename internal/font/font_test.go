package font

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		one  []byte
	}{
		{"chip48", CHIP48, []byte{0x20, 0x60, 0x20, 0x20, 0x70}},
		{"cosmac vip", COSMACVIP, []byte{0x60, 0x20, 0x20, 0x20, 0x70}},
		{"dream 6800", DREAM6800, []byte{0x40, 0x40, 0x40, 0x40, 0x40}},
		{"eti 660", ETI660, []byte{0x20, 0x20, 0x20, 0x20, 0x20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Get(tt.id)
			assert.NoError(t, err)
			assert.Equal(t, tt.id, set.ID)
			assert.Len(t, set.Data, 16*GlyphSize)
			assert.Equal(t, tt.one, set.Data[GlyphSize:2*GlyphSize])
		})
	}
}

func TestGetInvalid(t *testing.T) {
	_, err := Get(count)
	assert.True(t, errors.Is(err, ErrUnknownFont))

	_, err = Get(-1)
	assert.True(t, errors.Is(err, ErrUnknownFont))
}

func TestGetReturnsCopy(t *testing.T) {
	set, err := Get(CHIP48)
	assert.NoError(t, err)
	set.Data[0] = 0x00

	set, err = Get(CHIP48)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xF0), set.Data[0])
}

func TestByName(t *testing.T) {
	id, err := ByName("COSMACVIP")
	assert.NoError(t, err)
	assert.Equal(t, COSMACVIP, id)

	id, err = ByName(" eti660 ")
	assert.NoError(t, err)
	assert.Equal(t, ETI660, id)

	_, err = ByName("superchip")
	assert.True(t, errors.Is(err, ErrUnknownFont))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"chip48", "cosmacvip", "dream6800", "eti660"}, Names())
	assert.Equal(t, "dream6800", DREAM6800.String())
	assert.Equal(t, "font(9)", ID(9).String())
}
