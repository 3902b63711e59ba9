package apu

// volumeShift maps the 2-bit NR32 volume code to a right-shift applied to
// each 4-bit wave sample (mute, full, half, quarter).
var volumeShift = [4]int{4, 0, 1, 2} // shift=4 acts as mute (result forced to 0 below)

// WaveChannel implements channel 3: a user-supplied 32-sample 4-bit
// waveform played back through a frequency divider.
type WaveChannel struct {
	Enabled    bool
	DACEnabled bool

	Frequency uint16
	freqTimer int

	Volume uint8 // 0..3 code, as written to NR32 bits 5-6
	Wave   [16]uint8

	samplePos uint8

	Length LengthCounter
}

func NewWaveChannel() *WaveChannel {
	w := &WaveChannel{}
	w.Length.Max = 256
	return w
}

func (w *WaveChannel) period() int {
	return (2048 - int(w.Frequency)) * 2
}

func (w *WaveChannel) TickTimer(cycles int) {
	if !w.Enabled {
		return
	}
	w.freqTimer -= cycles
	for w.freqTimer <= 0 {
		w.freqTimer += w.period()
		w.samplePos = (w.samplePos + 1) % 32
	}
}

func (w *WaveChannel) Trigger() {
	w.Enabled = w.DACEnabled
	w.Length.TriggerReload()
	w.freqTimer = w.period()
	w.samplePos = 0
}

func (w *WaveChannel) Sample() float64 {
	if !w.Enabled || !w.DACEnabled {
		return 0
	}
	byteVal := w.Wave[w.samplePos/2]
	var nibble uint8
	if w.samplePos%2 == 0 {
		nibble = byteVal >> 4
	} else {
		nibble = byteVal & 0x0F
	}
	if w.Volume == 0 {
		return 0
	}
	shifted := nibble >> volumeShift[w.Volume]
	return (float64(shifted) - 7.5) / 7.5 * 0.5
}

func (w *WaveChannel) TickLength() {
	if w.Length.Tick() {
		w.Enabled = false
	}
}
