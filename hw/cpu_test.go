package hw

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// regSnapshot captures the CPU's externally visible register file, for
// diffing whole-state expectations in one assertion instead of a field at
// a time.
type regSnapshot struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
}

func snapshot(c *CPU) regSnapshot {
	return regSnapshot{c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP, c.PC}
}

func TestNewCPUPostBootState(t *testing.T) {
	c := NewCPU()
	if got := c.af(); got != 0x01B0 {
		t.Errorf("AF = 0x%04X, want 0x01B0", got)
	}
	if got := c.bc(); got != 0x0013 {
		t.Errorf("BC = 0x%04X, want 0x0013", got)
	}
	if got := c.de(); got != 0x00D8 {
		t.Errorf("DE = 0x%04X, want 0x00D8", got)
	}
	if got := c.hl(); got != 0x014D {
		t.Errorf("HL = 0x%04X, want 0x014D", got)
	}
	if c.SP != 0xFFFE {
		t.Errorf("SP = 0x%04X, want 0xFFFE", c.SP)
	}
	if c.PC != 0x0100 {
		t.Errorf("PC = 0x%04X, want 0x0100", c.PC)
	}
	if c.IME {
		t.Error("IME should start false")
	}
}

func TestStepNOP(t *testing.T) {
	cpu, bus := newTestCPU(t)
	loadProgram(bus, 0x0100, []byte{0x00})
	cycles := cpu.Step()
	if cycles != 4 {
		t.Errorf("NOP cycles = %d, want 4", cycles)
	}
	if cpu.PC != 0x0101 {
		t.Errorf("PC = 0x%04X, want 0x0101", cpu.PC)
	}
}

func TestStepLDRR(t *testing.T) {
	cpu, bus := newTestCPU(t)
	loadProgram(bus, 0x0100, []byte{0x78}) // LD A,B
	cpu.B = 0x42
	cpu.A = 0x00
	cycles := cpu.Step()
	if cycles != 4 {
		t.Errorf("LD A,B cycles = %d, want 4", cycles)
	}
	if cpu.A != 0x42 {
		t.Errorf("A = 0x%02X, want 0x42", cpu.A)
	}
}

func TestStepLDRR_HLIndirectCosts8(t *testing.T) {
	cpu, bus := newTestCPU(t)
	loadProgram(bus, 0x0100, []byte{0x46}) // LD B,(HL)
	cpu.setHL(0xC000)
	bus.Write8(0xC000, 0x99)
	cycles := cpu.Step()
	if cycles != 8 {
		t.Errorf("LD B,(HL) cycles = %d, want 8", cycles)
	}
	if cpu.B != 0x99 {
		t.Errorf("B = 0x%02X, want 0x99", cpu.B)
	}
}

func TestStepINCDECRegister(t *testing.T) {
	cpu, bus := newTestCPU(t)
	loadProgram(bus, 0x0100, []byte{0x04, 0x05}) // INC B; DEC B
	cpu.B = 0x0F

	cpu.Step()
	if cpu.B != 0x10 {
		t.Errorf("B after INC = 0x%02X, want 0x10", cpu.B)
	}
	if !cpu.flag(FlagH) {
		t.Error("INC B from 0x0F should set half-carry")
	}

	cpu.Step()
	if cpu.B != 0x0F {
		t.Errorf("B after DEC = 0x%02X, want 0x0F", cpu.B)
	}
}

func TestStepJumpAndCall(t *testing.T) {
	cpu, bus := newTestCPU(t)
	loadProgram(bus, 0x0100, []byte{0xC3, 0x00, 0x02}) // JP 0x0200
	cycles := cpu.Step()
	if cycles != 16 {
		t.Errorf("JP cycles = %d, want 16", cycles)
	}
	if cpu.PC != 0x0200 {
		t.Errorf("PC = 0x%04X, want 0x0200", cpu.PC)
	}

	loadProgram(bus, 0x0200, []byte{0xCD, 0x00, 0x03}) // CALL 0x0300
	cycles = cpu.Step()
	if cycles != 24 {
		t.Errorf("CALL cycles = %d, want 24", cycles)
	}
	if cpu.PC != 0x0300 {
		t.Errorf("PC after CALL = 0x%04X, want 0x0300", cpu.PC)
	}
	if cpu.SP != 0xFFFC {
		t.Errorf("SP after CALL = 0x%04X, want 0xFFFC", cpu.SP)
	}
	if got := bus.Read16(cpu.SP); got != 0x0203 {
		t.Errorf("return address on stack = 0x%04X, want 0x0203", got)
	}
}

func TestDAAAfterBCDAddition(t *testing.T) {
	cpu, bus := newTestCPU(t)
	// ADD A,B then DAA: 0x09 + 0x09 = 0x12 raw, DAA should correct to 0x18.
	loadProgram(bus, 0x0100, []byte{0x80, 0x27}) // ADD A,B; DAA
	cpu.A = 0x09
	cpu.B = 0x09
	cpu.Step() // ADD
	if cpu.A != 0x12 {
		t.Fatalf("A after ADD = 0x%02X, want 0x12", cpu.A)
	}
	cpu.Step() // DAA
	if cpu.A != 0x18 {
		t.Errorf("A after DAA = 0x%02X, want 0x18", cpu.A)
	}
}

func TestStepUndefinedOpcodeIsNop4(t *testing.T) {
	cpu, bus := newTestCPU(t)
	loadProgram(bus, 0x0100, []byte{0xD3})
	cycles := cpu.Step()
	if cycles != 4 {
		t.Errorf("undefined opcode cycles = %d, want 4", cycles)
	}
	if cpu.PC != 0x0101 {
		t.Errorf("PC = 0x%04X, want 0x0101", cpu.PC)
	}
}

func TestStepDispatchesPendingInterrupt(t *testing.T) {
	cpu, bus := newTestCPU(t)
	loadProgram(bus, 0x0100, []byte{0x00}) // never executed; IME gates first

	cpu.IME = true
	bus.IE.Value = 1 << IntVBlank
	bus.IF.Value = 1 << IntVBlank

	cycles := cpu.Step()
	if cycles != 20 {
		t.Errorf("interrupt dispatch cycles = %d, want 20", cycles)
	}
	if cpu.PC != 0x0040 {
		t.Errorf("PC after dispatch = 0x%04X, want 0x0040 (VBlank vector)", cpu.PC)
	}
	if cpu.IME {
		t.Error("IME should be cleared on dispatch")
	}
	if bus.IF.Value&(1<<IntVBlank) != 0 {
		t.Error("IF.VBlank should be cleared on dispatch")
	}
	if got := bus.Read16(cpu.SP); got != 0x0100 {
		t.Errorf("pushed return PC = 0x%04X, want 0x0100", got)
	}
}

func TestStepHaltWakesOnPendingInterruptEvenWithIMEFalse(t *testing.T) {
	cpu, bus := newTestCPU(t)
	cpu.Halted = true
	cpu.IME = false
	bus.IE.Value = 1 << IntTimer
	bus.IF.Value = 1 << IntTimer

	cpu.Step()
	if cpu.Halted {
		t.Error("CPU should wake from HALT when an enabled interrupt is pending, even with IME=false")
	}
}

func TestEIThenStepLatchesIMEBeforeDispatch(t *testing.T) {
	cpu, bus := newTestCPU(t)
	loadProgram(bus, 0x0100, []byte{0xFB}) // EI
	bus.IE.Value = 1 << IntSerial
	bus.IF.Value = 1 << IntSerial

	cpu.Step() // EI: sets IMEPending
	if cpu.IME {
		t.Fatal("IME should not be set immediately by EI")
	}

	// Per the documented deviation, IMEPending resolves to IME at the very
	// start of the next Step, before that step's own interrupt check.
	cpu.Step()
	if cpu.PC != 0x0058 {
		t.Errorf("PC = 0x%04X, want 0x0058 (Serial vector) after EI's pending IME unlocks dispatch", cpu.PC)
	}
}

func TestRegisterFileAfterPushPopRoundTrips(t *testing.T) {
	cpu, bus := newTestCPU(t)
	loadProgram(bus, 0x0100, []byte{0xC5, 0xF1}) // PUSH BC; POP AF
	cpu.setBC(0x1234)
	before := snapshot(cpu)

	cpu.Step() // PUSH BC
	cpu.Step() // POP AF

	want := before
	want.A, want.F = 0x12, 0x30 // AF low nibble always masked to zero
	want.PC = before.PC + 2
	want.SP = before.SP

	if diff := cmp.Diff(want, snapshot(cpu)); diff != "" {
		t.Errorf("register file mismatch after PUSH BC/POP AF (-want +got):\n%s", diff)
	}
}
