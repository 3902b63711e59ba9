package apu

// dutyTable holds the canonical 8-step waveform for each of the four duty
// cycle settings: 12.5%, 25%, 50%, 75% high respectively.
var dutyTable = [4]uint8{
	0b00000001,
	0b10000001,
	0b10000111,
	0b01111110,
}

// SquareChannel implements channels 1 and 2. Channel 1 additionally drives
// the embedded Sweep unit; channel 2 simply never ticks it.
type SquareChannel struct {
	Enabled bool

	Duty    uint8 // 0..3
	dutyPos uint8

	Frequency uint16 // 11-bit
	freqTimer int

	Envelope Envelope
	Length   LengthCounter
	Sweep    Sweep

	HasSweep bool
}

func NewSquareChannel(hasSweep bool) *SquareChannel {
	sq := &SquareChannel{HasSweep: hasSweep}
	sq.Length.Max = 64
	return sq
}

func (sq *SquareChannel) period() int {
	return (2048 - int(sq.Frequency)) * 4
}

// TickTimer advances the channel's frequency divider by cycles CPU cycles.
func (sq *SquareChannel) TickTimer(cycles int) {
	if !sq.Enabled {
		return
	}
	sq.freqTimer -= cycles
	for sq.freqTimer <= 0 {
		sq.freqTimer += sq.period()
		sq.dutyPos = (sq.dutyPos + 1) % 8
	}
}

// Trigger implements the NRx4-bit7 trigger event.
func (sq *SquareChannel) Trigger() {
	sq.Enabled = sq.Envelope.DACEnabled()
	sq.Length.TriggerReload()
	sq.freqTimer = sq.period()
	sq.Envelope.Trigger()
	if sq.HasSweep {
		sq.Sweep.Trigger(sq.Frequency)
	}
}

// Sample returns the instantaneous output in [-1, 1].
func (sq *SquareChannel) Sample() float64 {
	if !sq.Enabled {
		return 0
	}
	bit := (dutyTable[sq.Duty] >> (7 - sq.dutyPos)) & 1
	vol := float64(sq.Envelope.Volume) / 15
	if bit != 0 {
		return vol
	}
	return -vol
}

func (sq *SquareChannel) TickLength() {
	if sq.Length.Tick() {
		sq.Enabled = false
	}
}

func (sq *SquareChannel) TickSweep() {
	if !sq.HasSweep {
		return
	}
	sq.Sweep.Tick(
		func() { sq.Enabled = false },
		func(f uint16) { sq.Frequency = f },
	)
}

func (sq *SquareChannel) TickEnvelope() {
	sq.Envelope.Tick()
}
