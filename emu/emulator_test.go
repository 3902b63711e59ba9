package emu

import (
	"bytes"
	"testing"

	"gbcore/cart"
	"gbcore/hw"
)

func newTestCart(t *testing.T) *cart.Cart {
	t.Helper()
	buf := make([]byte, 2*16*1024)
	buf[0x147] = 0x00
	buf[0x149] = 0x00
	c := new(cart.Cart)
	if _, err := c.ReadFrom(bytes.NewReader(buf)); err != nil {
		t.Fatalf("building test cart: %v", err)
	}
	return c
}

func TestNewEmulatorPostBootState(t *testing.T) {
	e := New(newTestCart(t))
	if e.CPU.PC != 0x0100 {
		t.Errorf("PC = 0x%04X, want 0x0100", e.CPU.PC)
	}
	if e.CPU.SP != 0xFFFE {
		t.Errorf("SP = 0x%04X, want 0xFFFE", e.CPU.SP)
	}
}

func TestRunFrameConsumesExactlyOneFrameBudget(t *testing.T) {
	e := New(newTestCart(t))
	// A fresh cart's ROM is all zero -> every fetched opcode is NOP (4
	// cycles), so RunFrame should land on a VBlank-triggered frame.
	ready := e.RunFrame()
	if !ready {
		t.Error("RunFrame() should report a ready frame after one pass over all 154 scanlines")
	}
}

func TestRunFrameProducesAudioSamples(t *testing.T) {
	e := New(newTestCart(t))
	e.RunFrame()
	if e.AudioOutput().Len() == 0 {
		t.Error("a frame's worth of APU ticks should have emitted at least one audio sample")
	}
}

func TestSetInputRaisesJoypadInterruptOnKeyDown(t *testing.T) {
	e := New(newTestCart(t))
	e.SetInput(0x0F, 0x0F) // nothing pressed
	e.SetInput(0x0E, 0x0F) // A pressed
	if e.Bus.IF.Value&(1<<hw.IntJoypad) == 0 {
		t.Error("a newly pressed button should raise IF.Joypad")
	}
}

func TestResetRestoresPostBootRegisters(t *testing.T) {
	e := New(newTestCart(t))
	e.CPU.PC = 0xBEEF
	e.CPU.A = 0x42
	e.Reset()
	if e.CPU.PC != 0x0100 {
		t.Errorf("PC after Reset = 0x%04X, want 0x0100", e.CPU.PC)
	}
}

func TestFramebufferHasScreenDimensions(t *testing.T) {
	e := New(newTestCart(t))
	if got := len(e.Framebuffer()); got != 160*144 {
		t.Errorf("len(Framebuffer()) = %d, want %d", got, 160*144)
	}
}
