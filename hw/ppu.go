package hw

import (
	"gbcore/hw/hwio"
)

// PPU modes, mirrored into STAT bits 1:0.
const (
	ModeHBlank   = 0
	ModeVBlank   = 1
	ModeOAMSearch = 2
	ModeTransfer  = 3
)

const (
	screenWidth  = 160
	screenHeight = 144

	cyclesOAMSearch = 80
	cyclesTransfer  = 172
	cyclesHBlank    = 204
	cyclesPerLine   = 456
	totalLines      = 154
)

// palette is the fixed 4-shade ARGB8888 ramp color IDs 0-3 translate to.
var palette = [4]uint32{0xFFFFFFFF, 0xFFAAAAAA, 0xFF555555, 0xFF000000}

// PPU implements the scanline-based pixel unit: an LCDC/STAT-driven
// mode/scanline state machine that rasterizes background, window, and
// sprites into a 160x144 framebuffer. It never reaches back into Bus or
// CPU beyond RaiseIF and direct reads of the Bus-owned VRAM/OAM arrays.
type PPU struct {
	Bus *Bus

	LCDC hwio.Reg8 `hwio:"offset=0xFF40,wcb"`
	STAT hwio.Reg8 `hwio:"offset=0xFF41,rcb,wcb"`
	SCY  hwio.Reg8 `hwio:"offset=0xFF42"`
	SCX  hwio.Reg8 `hwio:"offset=0xFF43"`
	LY   hwio.Reg8 `hwio:"offset=0xFF44,readonly"`
	LYC  hwio.Reg8 `hwio:"offset=0xFF45"`
	WY   hwio.Reg8 `hwio:"offset=0xFF4A"`
	WX   hwio.Reg8 `hwio:"offset=0xFF4B"`
	BGP  hwio.Reg8 `hwio:"offset=0xFF47"`
	OBP0 hwio.Reg8 `hwio:"offset=0xFF48"`
	OBP1 hwio.Reg8 `hwio:"offset=0xFF49"`

	mode           int
	scanlineCycles int
	windowLine     int

	bgPriority [screenWidth]uint8

	Framebuffer [screenHeight * screenWidth]uint32
	FrameReady  bool

	statLine bool // previous combined STAT-interrupt-source level, for edge detection
}

// NewPPU returns a PPU with the documented post-boot register defaults.
func NewPPU() *PPU {
	p := &PPU{}
	p.LCDC.Value = 0x91
	p.BGP.Value = 0xFC
	p.OBP0.Value = 0xFF
	p.OBP1.Value = 0xFF
	p.STAT.Value = 0x80
	p.mode = ModeOAMSearch
	return p
}

// WriteLCDC handles the disable side effect: turning the LCD off forces
// LY and mode back to 0 immediately and halts cycle progression.
func (p *PPU) WriteLCDC(old, val uint8) {
	p.LCDC.Value = val
	if val&0x80 == 0 {
		p.LY.Value = 0
		p.mode = ModeHBlank
		p.scanlineCycles = 0
	}
}

// ReadSTAT always reports bit 7 set and the live mode in bits 1:0.
func (p *PPU) ReadSTAT(val uint8, peek bool) uint8 {
	return 0x80 | p.STAT.Value&0x7C | uint8(p.mode)&0x03
}

// WriteSTAT only the interrupt-enable bits 3-6 are writable; bits 0-2 stay
// hardware-derived.
func (p *PPU) WriteSTAT(old, val uint8) {
	p.STAT.Value = old&0x07 | val&0x78
}

func (p *PPU) enabled() bool { return p.LCDC.Value&0x80 != 0 }

// Step advances the scanline state machine by cycles CPU cycles,
// rasterizing completed scanlines and raising IF.VBlank / IF.STAT as their
// conditions transition to asserted.
func (p *PPU) Step(cycles int) {
	if !p.enabled() {
		return
	}

	remaining := cycles
	for remaining > 0 {
		step := remaining
		budget := p.cyclesUntilNextBoundary()
		if step > budget {
			step = budget
		}
		p.scanlineCycles += step
		remaining -= step

		if p.scanlineCycles >= p.boundaryForMode() {
			p.advanceMode()
		}
	}
	p.updateStatLine()
}

func (p *PPU) cyclesUntilNextBoundary() int {
	b := p.boundaryForMode() - p.scanlineCycles
	if b <= 0 {
		return 1
	}
	return b
}

func (p *PPU) boundaryForMode() int {
	switch p.mode {
	case ModeOAMSearch:
		return cyclesOAMSearch
	case ModeTransfer:
		return cyclesOAMSearch + cyclesTransfer
	case ModeHBlank:
		return cyclesPerLine
	default: // ModeVBlank
		return cyclesPerLine
	}
}

func (p *PPU) advanceMode() {
	switch p.mode {
	case ModeOAMSearch:
		p.mode = ModeTransfer
	case ModeTransfer:
		p.renderScanline(p.LY.Value)
		p.mode = ModeHBlank
	case ModeHBlank:
		p.endLine()
	case ModeVBlank:
		p.endLine()
	}
	p.updateStatLine()
}

func (p *PPU) endLine() {
	p.scanlineCycles = 0
	p.LY.Value++

	if p.LY.Value == screenHeight {
		p.mode = ModeVBlank
		p.FrameReady = true
		p.windowLine = 0
		if p.Bus != nil {
			p.Bus.RaiseIF(IntVBlank)
		}
		return
	}

	if p.LY.Value >= totalLines {
		p.LY.Value = 0
		p.mode = ModeOAMSearch
		return
	}

	if p.mode == ModeVBlank {
		return
	}
	p.mode = ModeOAMSearch
}

// updateStatLine recomputes the combined STAT interrupt-source level and
// raises IF.STAT exactly on a 0->1 transition.
func (p *PPU) updateStatLine() {
	line := p.STAT.Value&0x20 != 0 && p.mode == ModeOAMSearch
	line = line || p.STAT.Value&0x10 != 0 && p.mode == ModeVBlank
	line = line || p.STAT.Value&0x08 != 0 && p.mode == ModeHBlank

	lycMatch := p.LY.Value == p.LYC.Value
	if lycMatch {
		p.STAT.Value |= 0x04
	} else {
		p.STAT.Value &^= 0x04
	}
	line = line || p.STAT.Value&0x40 != 0 && lycMatch

	if line && !p.statLine && p.Bus != nil {
		p.Bus.RaiseIF(IntSTAT)
	}
	p.statLine = line
}

func (p *PPU) vram(addr uint16) uint8 {
	return p.Bus.VRAM.Data[addr&0x1FFF]
}

func (p *PPU) oam(i int) uint8 {
	return p.Bus.OAM.Data[i&0xFF]
}

// renderScanline rasterizes background, window, and sprites for line ly
// into the framebuffer, following the fixed draw order background ->
// window -> sprites so sprite priority rules see the final bg color ids.
func (p *PPU) renderScanline(ly uint8) {
	if int(ly) >= screenHeight {
		return
	}
	row := int(ly) * screenWidth

	for x := range p.bgPriority {
		p.bgPriority[x] = 0
	}

	if p.LCDC.Value&0x01 != 0 {
		p.renderBackground(ly, row)
	} else {
		for x := 0; x < screenWidth; x++ {
			p.Framebuffer[row+x] = palette[p.translate(p.BGP.Value, 0)]
		}
	}

	if p.LCDC.Value&0x20 != 0 && p.LCDC.Value&0x01 != 0 {
		p.renderWindow(ly, row)
	}

	if p.LCDC.Value&0x02 != 0 {
		p.renderSprites(ly, row)
	}
}

func (p *PPU) translate(paletteReg uint8, colorID uint8) uint8 {
	return (paletteReg >> (colorID * 2)) & 0x03
}

func (p *PPU) renderBackground(ly uint8, row int) {
	tileMapBase := uint16(0x1800)
	if p.LCDC.Value&0x08 != 0 {
		tileMapBase = 0x1C00
	}
	signedIndex := p.LCDC.Value&0x10 == 0
	tileDataBase := uint16(0x0000)
	if signedIndex {
		tileDataBase = 0x1000
	}

	y := (uint16(ly) + uint16(p.SCY.Value)) % 256
	tileRow := (y / 8) * 32

	for x := 0; x < screenWidth; x++ {
		xPos := (uint16(x) + uint16(p.SCX.Value)) % 256
		tileCol := xPos / 8
		tileIndex := p.vram(tileMapBase + tileRow + tileCol)

		var tileAddr uint16
		if signedIndex {
			tileAddr = tileDataBase + uint16(int16(int8(tileIndex))*16)
		} else {
			tileAddr = tileDataBase + uint16(tileIndex)*16
		}
		tileAddr += (y % 8) * 2

		lo := p.vram(tileAddr)
		hi := p.vram(tileAddr + 1)
		bit := 7 - uint8(xPos%8)
		colorID := (hi>>bit)&1<<1 | (lo>>bit)&1

		p.bgPriority[x] = colorID
		p.Framebuffer[row+x] = palette[p.translate(p.BGP.Value, colorID)]
	}
}

func (p *PPU) renderWindow(ly uint8, row int) {
	wy := p.WY.Value
	wx := p.WX.Value
	if ly < wy || wx > 166 {
		return
	}

	tileMapBase := uint16(0x1800)
	if p.LCDC.Value&0x40 != 0 {
		tileMapBase = 0x1C00
	}
	signedIndex := p.LCDC.Value&0x10 == 0
	tileDataBase := uint16(0x0000)
	if signedIndex {
		tileDataBase = 0x1000
	}

	visible := false
	startX := int(wx) - 7

	tileRow := (uint16(p.windowLine) / 8) * 32

	for x := startX; x < screenWidth; x++ {
		if x < 0 {
			continue
		}
		visible = true
		wxPos := uint16(x - startX)
		tileCol := wxPos / 8
		tileIndex := p.vram(tileMapBase + tileRow + tileCol)

		var tileAddr uint16
		if signedIndex {
			tileAddr = tileDataBase + uint16(int16(int8(tileIndex))*16)
		} else {
			tileAddr = tileDataBase + uint16(tileIndex)*16
		}
		tileAddr += (uint16(p.windowLine) % 8) * 2

		lo := p.vram(tileAddr)
		hi := p.vram(tileAddr + 1)
		bit := 7 - uint8(wxPos%8)
		colorID := (hi>>bit)&1<<1 | (lo>>bit)&1

		p.bgPriority[x] = colorID
		p.Framebuffer[row+x] = palette[p.translate(p.BGP.Value, colorID)]
	}

	if visible {
		p.windowLine++
	}
}

type spriteEntry struct {
	y, x, tile, flags uint8
	oamIndex          int
}

func (p *PPU) renderSprites(ly uint8, row int) {
	height := 8
	if p.LCDC.Value&0x04 != 0 {
		height = 16
	}

	var visible []spriteEntry
	for i := 0; i < 40 && len(visible) < 10; i++ {
		base := i * 4
		y := p.oam(base)
		screenY := int(y) - 16
		if int(ly) < screenY || int(ly) >= screenY+height {
			continue
		}
		visible = append(visible, spriteEntry{
			y:        y,
			x:        p.oam(base + 1),
			tile:     p.oam(base + 2),
			flags:    p.oam(base + 3),
			oamIndex: i,
		})
	}

	for _, s := range visible {
		screenY := int(s.y) - 16
		screenX := int(s.x) - 8

		tile := s.tile
		if height == 16 {
			tile &^= 0x01
		}

		line := int(ly) - screenY
		yFlip := s.flags&0x40 != 0
		if yFlip {
			line = height - 1 - line
		}

		tileAddr := uint16(tile)*16 + uint16(line)*2
		lo := p.vram(tileAddr)
		hi := p.vram(tileAddr + 1)

		xFlip := s.flags&0x20 != 0
		bgPriority := s.flags&0x80 != 0
		obp := p.OBP0.Value
		if s.flags&0x10 != 0 {
			obp = p.OBP1.Value
		}

		for px := 0; px < 8; px++ {
			x := screenX + px
			if x < 0 || x >= screenWidth {
				continue
			}
			bit := uint8(px)
			if !xFlip {
				bit = 7 - bit
			}
			colorID := (hi>>bit)&1<<1 | (lo>>bit)&1
			if colorID == 0 {
				continue
			}
			if bgPriority && p.bgPriority[x] != 0 {
				continue
			}
			p.Framebuffer[row+x] = palette[p.translate(obp, colorID)]
		}
	}
}
