package hw

// tacPrescalers maps TAC bits 0-1 to the number of CPU cycles per TIMA tick.
var tacPrescalers = [4]int{1024, 16, 64, 256}

// Timer models DIV (free-running 8-bit counter, 256-cycle prescaler) and
// TIMA (variable-prescaler counter selected by TAC, reloaded from TMA and
// raising the Timer interrupt on overflow).
type Timer struct {
	divCounter int // cycles accumulated toward the next DIV increment
	div        uint8

	timaCounter int // cycles accumulated toward the next TIMA increment
	tima        uint8
	tma         uint8
	tac         uint8
}

func (t *Timer) ReadDIV(val uint8, peek bool) uint8 { return t.div }

// WriteDIV resets both the counter and its prescaler, per spec.
func (t *Timer) WriteDIV(old, val uint8) {
	t.div = 0
	t.divCounter = 0
}

func (t *Timer) ReadTIMA(val uint8, peek bool) uint8 { return t.tima }
func (t *Timer) WriteTIMA(old, val uint8)             { t.tima = val }
func (t *Timer) ReadTMA(val uint8, peek bool) uint8   { return t.tma }
func (t *Timer) WriteTMA(old, val uint8)              { t.tma = val }
func (t *Timer) ReadTAC(val uint8, peek bool) uint8   { return t.tac }
func (t *Timer) WriteTAC(old, val uint8)              { t.tac = val }

func (t *Timer) enabled() bool    { return t.tac&0x04 != 0 }
func (t *Timer) prescaler() int   { return tacPrescalers[t.tac&0x03] }

// Tick advances the timer by cycles CPU cycles, returning true exactly on
// the step where TIMA wraps from 0xFF to 0x00. Tick reloads TIMA from TMA
// itself; the caller raises the Timer interrupt.
func (t *Timer) Tick(cycles int) (overflowed bool) {
	t.divCounter += cycles
	for t.divCounter >= 256 {
		t.divCounter -= 256
		t.div++
	}

	if !t.enabled() {
		return false
	}

	period := t.prescaler()
	t.timaCounter += cycles
	for t.timaCounter >= period {
		t.timaCounter -= period
		t.tima++
		if t.tima == 0 {
			t.tima = t.tma
			overflowed = true
		}
	}
	return overflowed
}
