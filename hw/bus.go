package hw

import (
	"gbcore/cart"
	"gbcore/emu/log"
	"gbcore/hw/hwio"
)

// Interrupt bit positions within IF/IE.
const (
	IntVBlank = 0
	IntSTAT   = 1
	IntTimer  = 2
	IntSerial = 3
	IntJoypad = 4
)

// Bus is the 64KiB address space demultiplexer: it owns every RAM array,
// the cartridge's bank controller, the timer, OAM DMA, and the joypad
// latch, and dispatches CPU/PPU/APU-facing accesses through a shared
// hwio.Table. The CPU talks only to this Table; the PPU reads the VRAM/OAM
// arrays and raises interrupts through RaiseIF. None of them reference
// each other.
type Bus struct {
	Table *hwio.Table

	cart *cart.Cart
	mbc  *MBC

	VRAM hwio.Mem `hwio:"offset=0x8000,size=0x2000"`
	WRAM hwio.Mem `hwio:"offset=0xC000,size=0x2000"`
	OAM  hwio.Mem `hwio:"offset=0xFE00,size=0xA0"`
	IO   hwio.Mem `hwio:"offset=0xFF00,size=0x80"`
	HRAM hwio.Mem `hwio:"offset=0xFF80,size=0x7F"`

	IF hwio.Reg8 `hwio:"offset=0xFF0F"`
	IE hwio.Reg8 `hwio:"offset=0xFFFF"`

	JOYP hwio.Reg8 `hwio:"offset=0xFF00,rcb,wcb"`

	DIV  hwio.Reg8 `hwio:"offset=0xFF04,rcb,wcb"`
	TIMA hwio.Reg8 `hwio:"offset=0xFF05,rcb,wcb"`
	TMA  hwio.Reg8 `hwio:"offset=0xFF06,rcb,wcb"`
	TAC  hwio.Reg8 `hwio:"offset=0xFF07,rcb,wcb"`

	DMA hwio.Reg8 `hwio:"offset=0xFF46,wcb"`

	Timer Timer
	dma   dmaState
	Joy   Joypad

	joypSelect uint8
}

// NewBus constructs a bus with no cartridge attached; Attach must be called
// before use.
func NewBus() *Bus {
	b := &Bus{
		Table: hwio.NewTable(),
		Joy:   NewJoypad(),
	}
	b.IF.Value = 0xE1 // post-boot IF
	return b
}

// Attach wires a loaded cartridge's MBC into the ROM/RAM windows.
func (b *Bus) Attach(c *cart.Cart) {
	b.cart = c
	b.mbc = NewMBC(c)
}

// InitBus maps every bus-resident register/region, plus the ROM/RAM
// banking windows, PPU registers, and APU registers onto the shared table.
// ppu and apu are wired in after the bulk IO region so their specific
// register offsets take priority over the generic fallback.
func (b *Bus) InitBus(ppu *PPU, apu *APU) {
	hwio.MustInitRegs(b, b.Table)

	romDev := &hwio.Device{ReadCb: b.mbc.ReadROM, WriteCb: b.mbc.WriteROM}
	b.Table.MapDevice(0x0000, romDev, 0x8000)

	ramDev := &hwio.Device{ReadCb: b.mbc.ReadRAM, WriteCb: b.mbc.WriteRAM}
	b.Table.MapDevice(0xA000, ramDev, 0x2000)

	// Echo of WRAM, 0xE000-0xFDFF.
	b.Table.MapBank(0xE000, b.WRAM.BankIO8(), 0x1E00)

	if ppu != nil {
		ppu.Bus = b
		hwio.MustInitRegs(ppu, b.Table)
	}
	if apu != nil {
		apu.Bus = b
		hwio.MustInitRegs(apu, b.Table)
	}
}

func (b *Bus) Read8(addr uint16) uint8  { return b.Table.Read8(addr) }
func (b *Bus) Peek8(addr uint16) uint8  { return b.Table.Peek8(addr) }
func (b *Bus) Write8(addr uint16, v uint8) { b.Table.Write8(addr, v) }

func (b *Bus) Read16(addr uint16) uint16 { return b.Table.Read16(addr) }

// RaiseIF sets an interrupt flag bit, the single narrow entry point PPU
// and APU use to signal the CPU.
func (b *Bus) RaiseIF(bit uint) {
	b.IF.Value |= 1 << bit
}

func (b *Bus) pendingInterrupts() uint8 {
	return b.IF.Value & b.IE.Value & 0x1F
}

// SetInputState loads the joypad latch for the upcoming frame and raises
// IF.Joypad on any new key-down, per spec.
func (b *Bus) SetInputState(buttons, dpad uint8) {
	if b.Joy.SetState(buttons, dpad) {
		b.RaiseIF(IntJoypad)
	}
}

func (b *Bus) ReadJOYP(val uint8, peek bool) uint8 {
	return b.Joy.readComposite(b.joypSelect)
}

func (b *Bus) WriteJOYP(old, val uint8) {
	b.joypSelect = val & 0x30
}

func (b *Bus) ReadDIV(val uint8, peek bool) uint8  { return b.Timer.ReadDIV(val, peek) }
func (b *Bus) WriteDIV(old, val uint8)             { b.Timer.WriteDIV(old, val) }
func (b *Bus) ReadTIMA(val uint8, peek bool) uint8 { return b.Timer.ReadTIMA(val, peek) }
func (b *Bus) WriteTIMA(old, val uint8)            { b.Timer.WriteTIMA(old, val) }
func (b *Bus) ReadTMA(val uint8, peek bool) uint8  { return b.Timer.ReadTMA(val, peek) }
func (b *Bus) WriteTMA(old, val uint8)             { b.Timer.WriteTMA(old, val) }
func (b *Bus) ReadTAC(val uint8, peek bool) uint8  { return b.Timer.ReadTAC(val, peek) }
func (b *Bus) WriteTAC(old, val uint8)             { b.Timer.WriteTAC(old, val) }

// WriteDMA triggers an OAM DMA transfer from (val<<8).
func (b *Bus) WriteDMA(old, val uint8) {
	b.dma.start(val)
}

// TickTimer advances DIV/TIMA by cycles CPU cycles, raising IF.Timer on
// TIMA overflow.
func (b *Bus) TickTimer(cycles int) {
	if b.Timer.Tick(cycles) {
		b.RaiseIF(IntTimer)
	}
}

// TickDMA advances any in-flight OAM DMA transfer.
func (b *Bus) TickDMA(cycles int) {
	b.dma.Tick(cycles,
		func(addr uint16) uint8 { return b.Table.Read8(addr) },
		func(i int, val uint8) { b.OAM.Data[i] = val },
	)
}

func (b *Bus) logUnmapped(addr uint16) {
	log.ModBus.DebugZ("unmapped bus access").Hex16("addr", addr).End()
}
