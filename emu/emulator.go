package emu

import (
	"gbcore/audio"
	"gbcore/cart"
	"gbcore/emu/log"
	"gbcore/hw"
)

// cyclesPerFrame is the fixed per-frame cycle budget: 70224 CPU cycles,
// i.e. 154 scanlines x 456 cycles, at 4.194304MHz -> 59.7275Hz.
const cyclesPerFrame = 70224

// Emulator is the cycle-budgeted coordinator: it owns the Bus, CPU, PPU
// and APU, and advances all four in lockstep, one CPU instruction (or
// interrupt dispatch) at a time, until the frame's cycle budget is used up.
type Emulator struct {
	Bus *hw.Bus
	CPU *hw.CPU
	PPU *hw.PPU
	APU *hw.APU
}

// New constructs an emulator with a cartridge already attached and every
// component in its documented post-boot state.
func New(c *cart.Cart) *Emulator {
	bus := hw.NewBus()
	bus.Attach(c)

	ppu := hw.NewPPU()
	apu := hw.NewAPU()
	bus.InitBus(ppu, apu)

	cpu := hw.NewCPU()
	cpu.Bus = bus.Table

	return &Emulator{Bus: bus, CPU: cpu, PPU: ppu, APU: apu}
}

// RunFrame advances every component until at least one frame's worth of
// cycles (70,224) has elapsed, returning true if a new framebuffer became
// ready during this call. The last instruction may run past the budget;
// that overrun is not carried into the next call.
func (e *Emulator) RunFrame() bool {
	frameReady := false
	budget := cyclesPerFrame

	for budget > 0 {
		n := e.CPU.Step()
		e.PPU.Step(n)
		e.APU.Step(n)
		e.Bus.TickTimer(n)
		e.Bus.TickDMA(n)

		if e.PPU.FrameReady {
			e.PPU.FrameReady = false
			frameReady = true
		}

		budget -= n
	}

	return frameReady
}

// SetInput loads the joypad latch for the upcoming frame; buttons/dpad
// are two active-low nibbles per the external input interface.
func (e *Emulator) SetInput(buttons, dpad uint8) {
	e.Bus.SetInputState(buttons, dpad)
}

// Framebuffer returns the last-rendered 160x144 ARGB8888 frame.
func (e *Emulator) Framebuffer() []uint32 {
	return e.PPU.Framebuffer[:]
}

// AudioOutput returns the ring the host audio callback should drain.
func (e *Emulator) AudioOutput() *audio.Ring {
	return e.APU.Output
}

// Reset restores the CPU registers to their documented post-boot state,
// keeping the same cartridge attached. PPU, APU, bus memory, timer and
// DMA state are not reset.
func (e *Emulator) Reset() {
	log.ModEmu.InfoZ("resetting emulator").End()
	e.CPU.Reset()
}
