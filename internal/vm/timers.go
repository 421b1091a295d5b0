package vm

// TimerFrequency is the rate in Hz at which hosts conventionally tick the timers.
const TimerFrequency = 60

// Timers holds the delay and sound countdown counters.
type Timers struct {
	delay uint8
	sound uint8
}

// Tick decrements every counter that is not zero yet.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

func (t *Timers) Delay() uint8 { return t.delay }

func (t *Timers) Sound() uint8 { return t.sound }

func (t *Timers) SetDelay(value uint8) { t.delay = value }

func (t *Timers) SetSound(value uint8) { t.sound = value }

// Reset sets both counters to zero.
func (t *Timers) Reset() {
	t.delay = 0
	t.sound = 0
}
