package hw

import (
	"gbcore/cart"
)

// MBC wraps a cartridge's bank controller state and exposes it to the bus
// as two hwio.Device windows: the ROM area (0x0000-0x7FFF, where writes
// reconfigure banking instead of storing data) and the external RAM area
// (0xA000-0xBFFF, gated by ramEnabled).
type MBC struct {
	cart *cart.Cart
	kind cart.MBC

	romBank uint16 // 1-based effective bank for 0x4000-0x7FFF
	ramBank uint8
	ramEnabled bool

	// MBC5 latches its 9-bit ROM bank across two writes.
	romBankLow  uint8
	romBankHigh uint8
}

func NewMBC(c *cart.Cart) *MBC {
	return &MBC{
		cart:    c,
		kind:    c.MBCType,
		romBank: 1,
	}
}

const romBankSize = 16 * 1024
const ramBankSize = 8 * 1024

func (m *MBC) romBank0() []byte {
	return m.bankSlice(0)
}

func (m *MBC) romBankN() []byte {
	return m.bankSlice(int(m.romBank))
}

func (m *MBC) bankSlice(bank int) []byte {
	total := m.cart.ROMBanks()
	if total == 0 {
		return nil
	}
	if bank >= total {
		return nil
	}
	start := bank * romBankSize
	end := start + romBankSize
	if end > len(m.cart.ROM) {
		return nil
	}
	return m.cart.ROM[start:end]
}

// ReadROM implements the ROM-area device: 0x0000-0x3FFF is always bank 0,
// 0x4000-0x7FFF is the currently selected switchable bank.
func (m *MBC) ReadROM(addr uint16, peek bool) uint8 {
	var bank []byte
	var off uint16
	if addr < 0x4000 {
		bank = m.romBank0()
		off = addr
	} else {
		bank = m.romBankN()
		off = addr - 0x4000
	}
	if bank == nil || int(off) >= len(bank) {
		return 0xFF
	}
	return bank[off]
}

// WriteROM dispatches to the per-MBC-kind bank-control write handler; this
// is the only way the ROM window is "written" since the bytes themselves
// are immutable.
func (m *MBC) WriteROM(addr uint16, val uint8) {
	switch m.kind {
	case cart.MBC1:
		m.writeMBC1(addr, val)
	case cart.MBC3:
		m.writeMBC3(addr, val)
	case cart.MBC5:
		m.writeMBC5(addr, val)
	default:
		// MBCNone: no bank control, writes are no-ops.
	}
}

func (m *MBC) writeMBC1(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = val&0x0F == 0x0A
	case addr < 0x4000:
		bank := val & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.romBank = uint16(bank)
	case addr < 0x6000:
		m.ramBank = val & 0x03
	}
}

func (m *MBC) writeMBC3(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = val&0x0F == 0x0A
	case addr < 0x4000:
		bank := val & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = uint16(bank)
	case addr < 0x6000:
		// Only plain RAM-bank values latch. Values 0x08-0x0C (RTC
		// register select) are ignored: no RTC registers are modeled, and
		// the previously selected RAM bank stays mapped.
		if val <= 0x03 {
			m.ramBank = val
		}
	}
}

func (m *MBC) writeMBC5(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = val&0x0F == 0x0A
	case addr < 0x3000:
		m.romBankLow = val
		m.romBank = uint16(m.romBankHigh)<<8 | uint16(m.romBankLow)
	case addr < 0x4000:
		m.romBankHigh = val & 0x01
		m.romBank = uint16(m.romBankHigh)<<8 | uint16(m.romBankLow)
	case addr < 0x6000:
		m.ramBank = val & 0x0F
	}
}

// ReadRAM/WriteRAM implement the external-RAM device at 0xA000-0xBFFF.
func (m *MBC) ReadRAM(addr uint16, peek bool) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	off := int(m.ramBank)*ramBankSize + int(addr-0xA000)
	if off >= len(m.cart.RAM) {
		return 0xFF
	}
	return m.cart.RAM[off]
}

func (m *MBC) WriteRAM(addr uint16, val uint8) {
	if !m.ramEnabled {
		return
	}
	off := int(m.ramBank)*ramBankSize + int(addr-0xA000)
	if off >= len(m.cart.RAM) {
		return
	}
	m.cart.RAM[off] = val
}
