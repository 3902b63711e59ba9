package apu

// LengthCounter is the length unit shared by all four channels. Unlike the
// NES's length table, channel length here is always a plain linear counter:
// channels 1/2/4 reload from 64, channel 3 reloads from 256; callers pass
// the channel's max length in via Max.
type LengthCounter struct {
	Max     uint16
	Enabled bool
	counter uint16
}

// Load sets the counter from a written length-data field: for ch1/2/4 this
// is 6 bits (64 - n), for ch3 it's 8 bits (256 - n).
func (lc *LengthCounter) Load(n uint16) {
	lc.counter = lc.Max - n
}

// TriggerReload reloads the counter from Max if it's currently zero, as
// happens on every channel trigger regardless of the length_enabled bit.
func (lc *LengthCounter) TriggerReload() {
	if lc.counter == 0 {
		lc.counter = lc.Max
	}
}

// Tick runs one 256Hz length step; returns true the instant the channel
// should be disabled (counter was already running and just hit zero).
func (lc *LengthCounter) Tick() (expired bool) {
	if !lc.Enabled || lc.counter == 0 {
		return false
	}
	lc.counter--
	return lc.counter == 0
}

func (lc *LengthCounter) Counter() uint16 { return lc.counter }
