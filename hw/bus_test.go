package hw

import "testing"

func TestWRAMEchoRegion(t *testing.T) {
	b := newTestBus(t)
	b.Write8(0xC010, 0x77)
	if got := b.Read8(0xE010); got != 0x77 {
		t.Errorf("echo read at 0xE010 = 0x%02X, want 0x77 (mirrors WRAM)", got)
	}
	b.Write8(0xE020, 0x55)
	if got := b.Read8(0xC020); got != 0x55 {
		t.Errorf("WRAM read at 0xC020 = 0x%02X, want 0x55 (written through echo)", got)
	}
}

func TestHRAMAccess(t *testing.T) {
	b := newTestBus(t)
	b.Write8(0xFF80, 0x12)
	b.Write8(0xFFFE, 0x34)
	if got := b.Read8(0xFF80); got != 0x12 {
		t.Errorf("HRAM[0] = 0x%02X, want 0x12", got)
	}
	if got := b.Read8(0xFFFE); got != 0x34 {
		t.Errorf("HRAM[last] = 0x%02X, want 0x34", got)
	}
}

func TestUnmappedAddressReadsBackFF(t *testing.T) {
	b := NewBus() // no cart, no InitBus
	if got := b.Table.Read8(0x1234); got != 0xFF {
		t.Errorf("unmapped read = 0x%02X, want 0xFF", got)
	}
}

func TestRaiseIFSetsBit(t *testing.T) {
	b := newTestBus(t)
	b.RaiseIF(IntTimer)
	if b.IF.Value&(1<<IntTimer) == 0 {
		t.Error("RaiseIF(IntTimer) did not set the Timer bit in IF")
	}
}

func TestJoypadLatchRaisesInterruptOnKeyDown(t *testing.T) {
	b := newTestBus(t)
	b.SetInputState(0x0F, 0x0F) // nothing pressed: no-op
	if b.IF.Value&(1<<IntJoypad) != 0 {
		t.Fatal("no key pressed yet; IF.Joypad should not be set")
	}
	b.SetInputState(0x0E, 0x0F) // A pressed (bit 0 now low)
	if b.IF.Value&(1<<IntJoypad) == 0 {
		t.Error("a newly pressed button should raise IF.Joypad")
	}
}

func TestReadJOYPComposesSelectedNibble(t *testing.T) {
	b := newTestBus(t)
	b.SetInputState(0x0E, 0x0F)  // A pressed
	b.Write8(0xFF00, 0x10)       // select buttons (bit 5 low)
	got := b.Read8(0xFF00)
	if got&0x01 != 0 {
		t.Errorf("JOYP bit 0 (A) should read low when A is pressed and buttons selected, got 0x%02X", got)
	}
}
