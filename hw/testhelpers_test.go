package hw

import (
	"bytes"
	"testing"

	"gbcore/cart"
)

// newTestCart returns a minimal 2-bank, no-MBC cartridge suitable for
// exercising the bus/CPU/PPU/APU without a real ROM dump.
func newTestCart(t *testing.T) *cart.Cart {
	t.Helper()
	buf := make([]byte, 2*16*1024)
	buf[0x147] = 0x00 // MBCNone
	buf[0x149] = 0x00 // no RAM
	c := new(cart.Cart)
	if _, err := c.ReadFrom(bytes.NewReader(buf)); err != nil {
		t.Fatalf("building test cart: %v", err)
	}
	return c
}

// newTestBus returns a fully wired Bus with no PPU/APU attached, for tests
// that only care about RAM/timer/DMA/interrupt plumbing.
func newTestBus(t *testing.T) *Bus {
	t.Helper()
	b := NewBus()
	b.Attach(newTestCart(t))
	b.InitBus(nil, nil)
	return b
}

// newTestCPU returns a CPU wired to a fresh bus (with PPU/APU attached so
// register reads/writes elsewhere on the map behave normally), with ROM
// bank 0 writable directly through the Table for program injection.
func newTestCPU(t *testing.T) (*CPU, *Bus) {
	t.Helper()
	b := NewBus()
	b.Attach(newTestCart(t))
	ppu := NewPPU()
	apu := NewAPU()
	b.InitBus(ppu, apu)

	cpu := NewCPU()
	cpu.Bus = b.Table
	return cpu, b
}

// loadProgram writes bytes directly into the cartridge ROM image backing
// bank 0, starting at addr, bypassing the MBC's write-is-bank-select
// semantics (MBC0 ROM is fixed and read-only on the bus, so tests poke the
// backing array instead).
func loadProgram(b *Bus, addr uint16, program []byte) {
	copy(b.cart.ROM[addr:], program)
}
