package vm

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is a monochrome pixel grid stored row by row.
// Only the engine mutates it, by clearing it or drawing sprites.
type Display struct {
	pixels [DisplayWidth * DisplayHeight]bool
}

// Width returns the number of pixel columns.
func (d *Display) Width() int { return DisplayWidth }

// Height returns the number of pixel rows.
func (d *Display) Height() int { return DisplayHeight }

// Pixel returns whether the pixel at x, y is lit. Coordinates outside of the
// grid are reported as unlit.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= DisplayWidth || y >= DisplayHeight {
		return false
	}
	return d.pixels[y*DisplayWidth+x]
}

// Pixels returns a copy of the grid, row by row.
func (d *Display) Pixels() []bool {
	buf := make([]bool, len(d.pixels))
	copy(buf, d.pixels[:])
	return buf
}

// clear turns all pixels off.
func (d *Display) clear() {
	d.pixels = [DisplayWidth * DisplayHeight]bool{}
}

// drawSprite XORs the sprite rows onto the grid and returns whether a lit
// pixel was turned off. The origin wraps around the grid, the sprite itself
// is clipped at the right and bottom edges.
func (d *Display) drawSprite(x, y uint8, sprite []byte) bool {
	originX := int(x) % DisplayWidth
	originY := int(y) % DisplayHeight

	collision := false
	for j, row := range sprite {
		py := originY + j
		if py >= DisplayHeight {
			break
		}
		for i := range 8 {
			px := originX + i
			if px >= DisplayWidth {
				break
			}
			if row&(0x80>>i) == 0 {
				continue
			}
			pixel := &d.pixels[py*DisplayWidth+px]
			if *pixel {
				collision = true
			}
			*pixel = !*pixel
		}
	}
	return collision
}
