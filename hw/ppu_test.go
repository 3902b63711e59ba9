package hw

import "testing"

func newTestPPU(t *testing.T) *PPU {
	t.Helper()
	b := NewBus()
	b.Attach(newTestCart(t))
	ppu := NewPPU()
	b.InitBus(ppu, nil)
	return ppu
}

func TestPPUPostBootDefaults(t *testing.T) {
	p := NewPPU()
	if p.LCDC.Value != 0x91 {
		t.Errorf("LCDC = 0x%02X, want 0x91", p.LCDC.Value)
	}
	if p.mode != ModeOAMSearch {
		t.Errorf("mode = %d, want ModeOAMSearch", p.mode)
	}
}

func TestPPUModeSequenceWithinOneLine(t *testing.T) {
	p := newTestPPU(t)

	if p.mode != ModeOAMSearch {
		t.Fatalf("mode = %d, want ModeOAMSearch at start", p.mode)
	}
	p.Step(cyclesOAMSearch)
	if p.mode != ModeTransfer {
		t.Fatalf("mode = %d, want ModeTransfer after OAM search window", p.mode)
	}
	p.Step(cyclesTransfer)
	if p.mode != ModeHBlank {
		t.Fatalf("mode = %d, want ModeHBlank after transfer window", p.mode)
	}
	p.Step(cyclesHBlank)
	if p.LY.Value != 1 {
		t.Fatalf("LY = %d, want 1 after a full scanline", p.LY.Value)
	}
	if p.mode != ModeOAMSearch {
		t.Fatalf("mode = %d, want ModeOAMSearch at start of next line", p.mode)
	}
}

func TestPPUEntersVBlankAtLine144AndRaisesIF(t *testing.T) {
	p := newTestPPU(t)
	for line := 0; line < screenHeight; line++ {
		p.Step(cyclesPerLine)
	}
	if p.mode != ModeVBlank {
		t.Fatalf("mode = %d, want ModeVBlank at LY=144", p.mode)
	}
	if !p.FrameReady {
		t.Error("FrameReady should be set on entering VBlank")
	}
	if p.Bus.IF.Value&(1<<IntVBlank) == 0 {
		t.Error("entering VBlank should raise IF.VBlank")
	}
}

func TestPPUWrapsAfter154Lines(t *testing.T) {
	p := newTestPPU(t)
	for line := 0; line < totalLines; line++ {
		p.Step(cyclesPerLine)
	}
	if p.LY.Value != 0 {
		t.Errorf("LY = %d, want 0 after wrapping past line 153", p.LY.Value)
	}
	if p.mode != ModeOAMSearch {
		t.Errorf("mode = %d, want ModeOAMSearch after wrap", p.mode)
	}
}

func TestPPULCDCDisableForcesLineZeroAndHalts(t *testing.T) {
	p := newTestPPU(t)
	p.Step(cyclesPerLine * 3)
	p.WriteLCDC(p.LCDC.Value, 0x00) // disable LCD
	if p.LY.Value != 0 {
		t.Errorf("LY = %d, want 0 after LCD disable", p.LY.Value)
	}
	if p.mode != ModeHBlank {
		t.Errorf("mode = %d, want ModeHBlank after LCD disable", p.mode)
	}
	p.Step(1000) // disabled PPU must not advance
	if p.LY.Value != 0 {
		t.Errorf("LY advanced to %d while LCD disabled, want 0", p.LY.Value)
	}
}

func TestPPUSTATReportsLiveModeAndAlwaysSetsBit7(t *testing.T) {
	p := newTestPPU(t)
	got := p.ReadSTAT(0, false)
	if got&0x80 == 0 {
		t.Error("STAT bit 7 should always read 1")
	}
	if got&0x03 != uint8(ModeOAMSearch) {
		t.Errorf("STAT mode bits = %d, want %d", got&0x03, ModeOAMSearch)
	}
}

func TestPPULYCMatchSetsStatBitAndRaisesSTATInterrupt(t *testing.T) {
	p := newTestPPU(t)
	p.LYC.Value = 1
	p.WriteSTAT(p.STAT.Value, 0x40) // enable LYC=LY interrupt source

	p.Step(cyclesPerLine) // advance to LY=1
	if p.LY.Value != 1 {
		t.Fatalf("LY = %d, want 1", p.LY.Value)
	}
	if p.ReadSTAT(0, false)&0x04 == 0 {
		t.Error("STAT bit 2 (LYC=LY) should be set once LY reaches LYC")
	}
	if p.Bus.IF.Value&(1<<IntSTAT) == 0 {
		t.Error("LYC=LY match with the interrupt source enabled should raise IF.STAT")
	}
}

func TestPPUWriteSTATOnlyAffectsInterruptEnableBits(t *testing.T) {
	p := newTestPPU(t)
	p.WriteSTAT(0x00, 0xFF)
	got := p.STAT.Value
	if got&0x07 != 0 {
		t.Errorf("STAT low bits should be hardware-derived, not writable, got 0x%02X", got)
	}
	if got&0x78 != 0x78 {
		t.Errorf("STAT bits 3-6 should be writable, got 0x%02X", got)
	}
}

