// Package debug implements the --dump-state introspection support: a
// JSON snapshot of CPU registers, PPU/APU register pages, and bus IO
// state, written with go-faster/jx's low-allocation encoder rather than
// encoding/json, matching the rest of the core's preference for
// purpose-built serialization over reflection.
package debug

import (
	"gbcore/emu"

	"github.com/go-faster/jx"
)

// DumpState renders a snapshot of e's visible register state as JSON.
// Every IO register is read through Bus.Table.Peek8 (a side-effect-free
// read) rather than by reaching into component internals, so the dump
// sees exactly what a CPU instruction would see.
func DumpState(e *emu.Emulator) []byte {
	enc := jx.Encoder{}
	enc.Obj(func(enc *jx.Encoder) {
		enc.Field("cpu", func(enc *jx.Encoder) { enc.Obj(func(enc *jx.Encoder) { dumpCPU(enc, e) }) })
		enc.Field("ppu", func(enc *jx.Encoder) { dumpIORange(enc, e, 0xFF40, 0xFF4B) })
		enc.Field("apu", func(enc *jx.Encoder) { dumpIORange(enc, e, 0xFF10, 0xFF26) })
		enc.Field("interrupts", func(enc *jx.Encoder) { enc.Obj(func(enc *jx.Encoder) { dumpInterrupts(enc, e) }) })
	})
	return enc.Bytes()
}

func dumpCPU(enc *jx.Encoder, e *emu.Emulator) {
	c := e.CPU
	enc.Field("af", func(enc *jx.Encoder) { enc.UInt16(uint16(c.A)<<8 | uint16(c.F)) })
	enc.Field("bc", func(enc *jx.Encoder) { enc.UInt16(uint16(c.B)<<8 | uint16(c.C)) })
	enc.Field("de", func(enc *jx.Encoder) { enc.UInt16(uint16(c.D)<<8 | uint16(c.E)) })
	enc.Field("hl", func(enc *jx.Encoder) { enc.UInt16(uint16(c.H)<<8 | uint16(c.L)) })
	enc.Field("sp", func(enc *jx.Encoder) { enc.UInt16(c.SP) })
	enc.Field("pc", func(enc *jx.Encoder) { enc.UInt16(c.PC) })
	enc.Field("ime", func(enc *jx.Encoder) { enc.Bool(c.IME) })
	enc.Field("halted", func(enc *jx.Encoder) { enc.Bool(c.Halted) })
}

func dumpIORange(enc *jx.Encoder, e *emu.Emulator, lo, hi uint16) {
	enc.ArrStart()
	for addr := lo; addr <= hi; addr++ {
		enc.UInt8(e.Bus.Peek8(addr))
	}
	enc.ArrEnd()
}

func dumpInterrupts(enc *jx.Encoder, e *emu.Emulator) {
	enc.Field("if", func(enc *jx.Encoder) { enc.UInt8(e.Bus.Peek8(0xFF0F)) })
	enc.Field("ie", func(enc *jx.Encoder) { enc.UInt8(e.Bus.Peek8(0xFFFF)) })
}
