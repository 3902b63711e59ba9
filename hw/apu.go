package hw

import (
	"gbcore/audio"
	"gbcore/hw/apu"
	"gbcore/hw/hwio"
)

const (
	sampleRate = 48000
	cpuClock   = 4194304
)

// APU implements the four-channel audio unit: it owns the NR10-NR52
// register file, drives the three nested clocks (channel timers, the
// 512Hz frame sequencer, and the 48kHz sample accumulator), and publishes
// mixed stereo frames into a lock-free ring the host audio thread drains.
type APU struct {
	Bus *Bus

	NR10 hwio.Reg8 `hwio:"offset=0xFF10,wcb"`
	NR11 hwio.Reg8 `hwio:"offset=0xFF11,wcb"`
	NR12 hwio.Reg8 `hwio:"offset=0xFF12,wcb"`
	NR13 hwio.Reg8 `hwio:"offset=0xFF13,wcb"`
	NR14 hwio.Reg8 `hwio:"offset=0xFF14,wcb"`

	NR21 hwio.Reg8 `hwio:"offset=0xFF16,wcb"`
	NR22 hwio.Reg8 `hwio:"offset=0xFF17,wcb"`
	NR23 hwio.Reg8 `hwio:"offset=0xFF18,wcb"`
	NR24 hwio.Reg8 `hwio:"offset=0xFF19,wcb"`

	NR30 hwio.Reg8 `hwio:"offset=0xFF1A,wcb"`
	NR31 hwio.Reg8 `hwio:"offset=0xFF1B,wcb"`
	NR32 hwio.Reg8 `hwio:"offset=0xFF1C,wcb"`
	NR33 hwio.Reg8 `hwio:"offset=0xFF1D,wcb"`
	NR34 hwio.Reg8 `hwio:"offset=0xFF1E,wcb"`
	Wave hwio.Device `hwio:"offset=0xFF30,size=0x10"`

	NR41 hwio.Reg8 `hwio:"offset=0xFF20,wcb"`
	NR42 hwio.Reg8 `hwio:"offset=0xFF21,wcb"`
	NR43 hwio.Reg8 `hwio:"offset=0xFF22,wcb"`
	NR44 hwio.Reg8 `hwio:"offset=0xFF23,wcb"`

	NR50 hwio.Reg8 `hwio:"offset=0xFF24"`
	NR51 hwio.Reg8 `hwio:"offset=0xFF25"`
	NR52 hwio.Reg8 `hwio:"offset=0xFF26,rcb,wcb"`

	ch1 *apu.SquareChannel
	ch2 *apu.SquareChannel
	ch3 *apu.WaveChannel
	ch4 *apu.NoiseChannel

	seq apu.FrameSequencer

	sampleAccum int
	enabled     bool

	Output *audio.Ring
}

// NewAPU returns an APU with its channels constructed and register
// defaults set per the documented post-boot IO state.
func NewAPU() *APU {
	a := &APU{
		ch1:    apu.NewSquareChannel(true),
		ch2:    apu.NewSquareChannel(false),
		ch3:    apu.NewWaveChannel(),
		ch4:    apu.NewNoiseChannel(),
		Output: audio.NewRing(2048),
	}
	a.NR10.Value = 0x80
	a.NR11.Value = 0xBF
	a.NR12.Value = 0xF3
	a.NR14.Value = 0xBF
	a.NR50.Value = 0x77
	a.NR51.Value = 0xF3
	a.NR52.Value = 0xF1
	a.enabled = true
	return a
}

// ReadWave/WriteWave proxy 0xFF30-0xFF3F directly onto channel 3's own
// waveform array, so playback and CPU access share the same storage.
func (a *APU) ReadWave(addr uint16, peek bool) uint8 {
	return a.ch3.Wave[addr&0x0F]
}

func (a *APU) WriteWave(addr uint16, val uint8) {
	a.ch3.Wave[addr&0x0F] = val
}

func (a *APU) ReadNR52(val uint8, peek bool) uint8 {
	v := uint8(0x70)
	if a.enabled {
		v |= 0x80
	}
	if a.ch1.Enabled {
		v |= 0x01
	}
	if a.ch2.Enabled {
		v |= 0x02
	}
	if a.ch3.Enabled {
		v |= 0x04
	}
	if a.ch4.Enabled {
		v |= 0x08
	}
	return v
}

// WriteNR52 toggles the master enable. Clearing it disables all channels
// immediately but leaves wave RAM and register contents untouched.
func (a *APU) WriteNR52(old, val uint8) {
	a.enabled = val&0x80 != 0
	a.NR52.Value = val & 0x80
	if !a.enabled {
		a.ch1.Enabled = false
		a.ch2.Enabled = false
		a.ch3.Enabled = false
		a.ch4.Enabled = false
	}
}

func (a *APU) WriteNR10(old, val uint8) {
	a.NR10.Value = val
	a.ch1.Sweep.Period = (val >> 4) & 0x07
	a.ch1.Sweep.Negate = val&0x08 != 0
	a.ch1.Sweep.Shift = val & 0x07
}

func (a *APU) WriteNR11(old, val uint8) {
	a.NR11.Value = val
	a.ch1.Duty = (val >> 6) & 0x03
	a.ch1.Length.Load(uint16(val & 0x3F))
}

func (a *APU) WriteNR12(old, val uint8) {
	a.NR12.Value = val
	a.ch1.Envelope.Load(val)
	if !a.ch1.Envelope.DACEnabled() {
		a.ch1.Enabled = false
	}
}

func (a *APU) WriteNR13(old, val uint8) {
	a.NR13.Value = val
	a.ch1.Frequency = a.ch1.Frequency&0x700 | uint16(val)
}

func (a *APU) WriteNR14(old, val uint8) {
	a.NR14.Value = val
	a.ch1.Frequency = a.ch1.Frequency&0xFF | uint16(val&0x07)<<8
	a.ch1.Length.Enabled = val&0x40 != 0
	if val&0x80 != 0 {
		a.ch1.Trigger()
	}
}

func (a *APU) WriteNR21(old, val uint8) {
	a.NR21.Value = val
	a.ch2.Duty = (val >> 6) & 0x03
	a.ch2.Length.Load(uint16(val & 0x3F))
}

func (a *APU) WriteNR22(old, val uint8) {
	a.NR22.Value = val
	a.ch2.Envelope.Load(val)
	if !a.ch2.Envelope.DACEnabled() {
		a.ch2.Enabled = false
	}
}

func (a *APU) WriteNR23(old, val uint8) {
	a.NR23.Value = val
	a.ch2.Frequency = a.ch2.Frequency&0x700 | uint16(val)
}

func (a *APU) WriteNR24(old, val uint8) {
	a.NR24.Value = val
	a.ch2.Frequency = a.ch2.Frequency&0xFF | uint16(val&0x07)<<8
	a.ch2.Length.Enabled = val&0x40 != 0
	if val&0x80 != 0 {
		a.ch2.Trigger()
	}
}

func (a *APU) WriteNR30(old, val uint8) {
	a.NR30.Value = val
	a.ch3.DACEnabled = val&0x80 != 0
	if !a.ch3.DACEnabled {
		a.ch3.Enabled = false
	}
}

func (a *APU) WriteNR31(old, val uint8) {
	a.NR31.Value = val
	a.ch3.Length.Load(uint16(val))
}

func (a *APU) WriteNR32(old, val uint8) {
	a.NR32.Value = val
	a.ch3.Volume = (val >> 5) & 0x03
}

func (a *APU) WriteNR33(old, val uint8) {
	a.NR33.Value = val
	a.ch3.Frequency = a.ch3.Frequency&0x700 | uint16(val)
}

func (a *APU) WriteNR34(old, val uint8) {
	a.NR34.Value = val
	a.ch3.Frequency = a.ch3.Frequency&0xFF | uint16(val&0x07)<<8
	a.ch3.Length.Enabled = val&0x40 != 0
	if val&0x80 != 0 {
		a.ch3.Trigger()
	}
}

func (a *APU) WriteNR41(old, val uint8) {
	a.NR41.Value = val
	a.ch4.Length.Load(uint16(val & 0x3F))
}

func (a *APU) WriteNR42(old, val uint8) {
	a.NR42.Value = val
	a.ch4.Envelope.Load(val)
	if !a.ch4.Envelope.DACEnabled() {
		a.ch4.Enabled = false
	}
}

func (a *APU) WriteNR43(old, val uint8) {
	a.NR43.Value = val
	a.ch4.ShiftClk = val >> 4
	a.ch4.WidthMode = val&0x08 != 0
	a.ch4.Divisor = val & 0x07
}

func (a *APU) WriteNR44(old, val uint8) {
	a.NR44.Value = val
	a.ch4.Length.Enabled = val&0x40 != 0
	if val&0x80 != 0 {
		a.ch4.Trigger()
	}
}

// Step advances every channel's frequency divider by cycles CPU cycles,
// runs the frame sequencer, and accumulates toward the next emitted
// stereo sample.
func (a *APU) Step(cycles int) {
	if !a.enabled {
		return
	}

	a.ch1.TickTimer(cycles)
	a.ch2.TickTimer(cycles)
	a.ch3.TickTimer(cycles)
	a.ch4.TickTimer(cycles)

	a.seq.Advance(cycles, a.tickLength, a.tickSweep, a.tickEnvelope)

	a.sampleAccum += sampleRate * cycles
	for a.sampleAccum >= cpuClock {
		a.sampleAccum -= cpuClock
		a.emitSample()
	}
}

func (a *APU) tickLength() {
	a.ch1.TickLength()
	a.ch2.TickLength()
	a.ch3.TickLength()
	a.ch4.TickLength()
}

func (a *APU) tickSweep() {
	a.ch1.TickSweep()
}

func (a *APU) tickEnvelope() {
	a.ch1.TickEnvelope()
	a.ch2.TickEnvelope()
	a.ch4.TickEnvelope()
}

func (a *APU) emitSample() {
	s1 := a.ch1.Sample()
	s2 := a.ch2.Sample()
	s3 := a.ch3.Sample()
	s4 := a.ch4.Sample()

	var left, right float64
	pan := a.NR51.Value
	if pan&0x10 != 0 {
		left += s1
	}
	if pan&0x20 != 0 {
		left += s2
	}
	if pan&0x40 != 0 {
		left += s3
	}
	if pan&0x80 != 0 {
		left += s4
	}
	if pan&0x01 != 0 {
		right += s1
	}
	if pan&0x02 != 0 {
		right += s2
	}
	if pan&0x04 != 0 {
		right += s3
	}
	if pan&0x08 != 0 {
		right += s4
	}

	leftVol := float64((a.NR50.Value>>4)&0x07+1) / 8
	rightVol := float64(a.NR50.Value&0x07+1) / 8

	left = clamp(left*leftVol*0.25, -1, 1)
	right = clamp(right*rightVol*0.25, -1, 1)

	if a.Output != nil {
		a.Output.Push(audio.Frame{L: float32(left), R: float32(right)})
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
