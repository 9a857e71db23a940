package nes

import (
	"image"
	"image/color"
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	paletteSize byte = 0x40

	// PPU addresses
	patternTblAddr    uint16 = 0x0000
	patternTblAddrEnd uint16 = 0x1FFF
	patternTblSize    uint16 = 0x1000 // Single pattern table - size in bytes

	nameTblAddr    uint16 = 0x2000
	nameTblAddrEnd uint16 = 0x3EFF
	nameTblSize    uint16 = 0x0400
	attrTblOffset  uint16 = 0x03C0

	paletteAddr    uint16 = 0x3F00
	paletteAddrEnd uint16 = 0x3FFF

	ppuAddrMask uint16 = 0x3FFF

	// Timing
	ppuDots        = 341 // PPU clock cycles per scanline
	ppuScanlines   = 262 // Scanlines per frame, including the pre-render line
	screenW        = 256
	screenH        = 240
	vblankScanline = 241
	lastScanline   = 260 // The pre-render line is numbered -1
)

// References:
// http://wiki.nesdev.com/w/index.php/PPU_registers
// https://www.youtube.com/watch?v=xdzOvpYPmGE (javidx9)
type Ppu struct {
	Cart *Cartridge

	nameTable    [4][nameTblSize]byte // 2KB on the board, 4 tables for four-screen carts
	paletteTable [32]byte
	oam          objectAttributeMemory

	// Registers
	ctrl       PpuReg
	mask       PpuReg
	status     PpuReg
	oamAddr    byte
	vramAddr   PpuLoopyReg // v: current VRAM address
	tramAddr   PpuLoopyReg // t: temporary VRAM address, top left onscreen tile
	fineX      byte
	addrLatch  bool // w: first or second write to PPUSCROLL/PPUADDR
	dataBuffer byte // PPUDATA reads are delayed by one

	// Intertal PPU variables
	scanline      int  // Scanline count in the current frame
	cycle         int  // Cycle count in the current scanline
	FrameComplete bool // Whether or not the current frame is finished rendering
	nmi           bool // Raised on vblank when enabled in PPUCTRL, cleared by the bus

	scroll PpuLoopyReg // t sampled at the start of the frame

	frame       FrameSink
	paletteRGBA [paletteSize]color.RGBA
}

func NewPpu() *Ppu {
	return &Ppu{
		oam:         newOAM(oamSprites),
		frame:       NullFrame{},
		paletteRGBA: ntscPalette,
	}
}

func (p *Ppu) ConnectCartridge(c *Cartridge) {
	p.Cart = c
}

// ConnectFrameSink sets where rendered pixels go. nil discards them.
func (p *Ppu) ConnectFrameSink(f FrameSink) {
	if f == nil {
		f = NullFrame{}
	}
	p.frame = f
}

func (p *Ppu) Reset() {
	p.nameTable = [4][nameTblSize]byte{}
	p.paletteTable = [32]byte{}
	p.oam.clear()

	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.vramAddr = 0
	p.tramAddr = 0
	p.fineX = 0
	p.addrLatch = false
	p.dataBuffer = 0

	p.scanline = 0
	p.cycle = 0
	p.FrameComplete = false
	p.nmi = false
}

// Scanline and Cycle report the current beam position.
func (p *Ppu) Scanline() int { return p.scanline }
func (p *Ppu) Cycle() int    { return p.cycle }

// PPU clock cycle.
// 1 frame = 262 scanlines (-1 to 260)
// 1 scanline = 341 PPU clock cycles
func (p *Ppu) Clock() {
	if p.scanline == 0 && p.cycle == 0 {
		p.scroll = p.tramAddr
		p.frame.OpenFrame()
	}

	// Pre-render line: leave vblank.
	if p.scanline == -1 && p.cycle == 1 {
		p.status.clearFlag(statusVBlank)
		p.status.clearFlag(statusSprite0Hit)
		p.status.clearFlag(statusSpriteOverflow)
	}

	if p.scanline == vblankScanline && p.cycle == 1 {
		p.status.setFlag(statusVBlank)
		if p.ctrl.getFlag(ctrlNmi) == 1 {
			p.nmi = true
		}
	}

	if p.scanline >= 0 && p.scanline < screenH && p.cycle >= 1 && p.cycle <= screenW {
		x, y := p.cycle-1, p.scanline
		c := p.backgroundPixel(x, y)
		p.frame.SetPixel(x, y, c.R, c.G, c.B)
	}

	p.cycle++
	if p.cycle >= ppuDots {
		p.cycle = 0
		p.scanline++

		if p.scanline == screenH {
			p.frame.CloseFrame()
		}

		if p.scanline > lastScanline {
			p.scanline = -1
			p.FrameComplete = true
		}
	}
}

// Colour of the background at screen position x, y. Scrolling is applied
// once per frame from the PPUSCROLL/PPUCTRL state at frame start.
func (p *Ppu) backgroundPixel(x, y int) color.RGBA {
	if p.mask.getFlag(maskBgShow) == 0 || (x < 8 && p.mask.getFlag(maskBgLeft) == 0) {
		return p.getColorFromPalette(0, 0)
	}

	nt := int(p.scroll.getNametable())
	wx := x + int(p.scroll.getCoarseX())*8 + int(p.fineX) + (nt&1)*screenW
	wy := y + int(p.scroll.getCoarseY())*8 + int(p.scroll.getFineY()) + (nt>>1)*screenH

	table := uint16((wx/screenW)&1 | ((wy/screenH)&1)<<1)
	tx, ty := uint16((wx%screenW)/8), uint16((wy%screenH)/8)
	base := nameTblAddr + table*nameTblSize

	tile := p.ppuRead(base + ty*32 + tx)
	attr := p.ppuRead(base + attrTblOffset + (ty/4)*8 + tx/4)

	// Each attribute byte covers 4x4 tiles, 2 bits per 2x2 quadrant.
	shift := ((ty & 2) << 1) | (tx & 2)
	palette := (attr >> shift) & 0x03

	patternBase := uint16(p.ctrl.getFlag(ctrlBgPatternTbl)) * patternTblSize
	row := uint16(wy % 8)
	lo := p.ppuRead(patternBase + uint16(tile)*16 + row)
	hi := p.ppuRead(patternBase + uint16(tile)*16 + row + 8)

	bit := uint(7 - wx%8)
	pixel := (lo>>bit)&0x01 | ((hi>>bit)&0x01)<<1

	return p.getColorFromPalette(palette, pixel)
}

// Communicate with main (CPU) bus - used for PPU register access.
// Side effects of reading PPUSTATUS and PPUDATA are skipped when readOnly.
func (p *Ppu) CpuRead(addr uint16, data *byte, readOnly bool) bool {
	switch addr & ppuRegMirror {
	case regCtrl:
		if readOnly {
			*data = byte(p.ctrl)
		}
	case regMask:
		if readOnly {
			*data = byte(p.mask)
		}
	case regStatus:
		// Unused low bits return stale bus data.
		*data = byte(p.status)&0xE0 | p.dataBuffer&0x1F
		if !readOnly {
			p.status.clearFlag(statusVBlank)
			p.addrLatch = false
		}
	case regOamAddr:
	case regOamData:
		*data = p.oam.read(p.oamAddr)
	case regScroll:
	case regAddr:
	case regData:
		addr := p.vramAddr.value()
		if readOnly {
			*data = p.dataBuffer
			if addr >= paletteAddr {
				*data = p.ppuRead(addr)
			}
			break
		}

		*data = p.dataBuffer
		p.dataBuffer = p.ppuRead(addr)

		// Palette reads are not delayed.
		if addr >= paletteAddr {
			*data = p.dataBuffer
		}
		p.incrementVramAddr()
	}

	return true
}

func (p *Ppu) CpuWrite(addr uint16, data byte) bool {
	switch addr & ppuRegMirror {
	case regCtrl:
		p.ctrl = PpuReg(data)
		p.tramAddr.setNametable(data & 0x03)
	case regMask:
		p.mask = PpuReg(data)
	case regStatus:
		// Read only.
	case regOamAddr:
		p.oamAddr = data
	case regOamData:
		p.writeOamData(data)
	case regScroll:
		if !p.addrLatch {
			p.fineX = data & 0x07
			p.tramAddr.setCoarseX(data >> 3)
		} else {
			p.tramAddr.setFineY(data & 0x07)
			p.tramAddr.setCoarseY(data >> 3)
		}
		p.addrLatch = !p.addrLatch
	case regAddr:
		if !p.addrLatch {
			p.tramAddr = PpuLoopyReg(uint16(data&0x3F)<<8 | p.tramAddr.value()&0x00FF)
		} else {
			p.tramAddr = PpuLoopyReg(p.tramAddr.value()&0xFF00 | uint16(data))
			p.vramAddr = p.tramAddr
		}
		p.addrLatch = !p.addrLatch
	case regData:
		p.ppuWrite(p.vramAddr.value(), data)
		p.incrementVramAddr()
	}

	return true
}

// OAMDATA writes, also used by OAM DMA.
func (p *Ppu) writeOamData(data byte) {
	p.oam.write(p.oamAddr, data)
	p.oamAddr++
}

// PPUDATA access moves across (1) or down (32) a nametable.
func (p *Ppu) incrementVramAddr() {
	if p.ctrl.getFlag(ctrlVramInc) == 1 {
		p.vramAddr += 32
	} else {
		p.vramAddr++
	}
	p.vramAddr &= loopyMask
}

// Communicate with PPU bus.
func (p *Ppu) ppuRead(addr uint16) byte {
	addr &= ppuAddrMask // Max addressable range.

	var data byte

	if addr >= patternTblAddr && addr <= patternTblAddrEnd {
		if p.Cart != nil {
			p.Cart.PpuRead(addr, &data)
		}
	} else if addr >= nameTblAddr && addr <= nameTblAddrEnd {
		table, offset := p.nameTableIndex(addr)
		data = p.nameTable[table][offset]
	} else if addr >= paletteAddr && addr <= paletteAddrEnd {
		data = p.paletteTable[paletteIndex(addr)]
	}

	return data
}

func (p *Ppu) ppuWrite(addr uint16, data byte) {
	addr &= ppuAddrMask // Max addressable range.

	if addr >= patternTblAddr && addr <= patternTblAddrEnd {
		if p.Cart != nil {
			p.Cart.PpuWrite(addr, data)
		}
	} else if addr >= nameTblAddr && addr <= nameTblAddrEnd {
		table, offset := p.nameTableIndex(addr)
		p.nameTable[table][offset] = data
	} else if addr >= paletteAddr && addr <= paletteAddrEnd {
		p.paletteTable[paletteIndex(addr)] = data
	}
}

// Nametable addresses 0x2000-0x3EFF fold onto 4 logical tables, which the
// cartridge's mirroring maps onto the physical ones.
func (p *Ppu) nameTableIndex(addr uint16) (int, uint16) {
	addr &= 0x0FFF
	table := int(addr / nameTblSize)

	mirror := MirrorHorizontal
	if p.Cart != nil {
		mirror = p.Cart.Mirror()
	}

	switch mirror {
	case MirrorVertical:
		table &= 1
	case MirrorHorizontal:
		table >>= 1
	}

	return table, addr & (nameTblSize - 1)
}

// Backdrop entries of the sprite palettes mirror the background ones.
func paletteIndex(addr uint16) uint16 {
	addr &= 0x1F
	if addr&0x13 == 0x10 {
		addr &^= 0x10
	}
	return addr
}

func (p *Ppu) getColorFromPalette(palette, pixel byte) color.RGBA {
	addr := paletteAddr + uint16(palette)<<2 + uint16(pixel)
	if pixel == 0 {
		addr = paletteAddr
	}
	idx := p.ppuRead(addr)
	if p.mask.getFlag(maskGreyscale) == 1 {
		idx &= 0x30
	}
	return p.paletteRGBA[idx&(paletteSize-1)]
}

// LoadPalette replaces the built-in palette with a .pal file of 64 RGB
// triplets.
func (p *Ppu) LoadPalette(filepath string) error {
	f, err := os.Open(filepath)
	if err != nil {
		return errors.Wrap(err, "opening palette")
	}
	defer f.Close()

	data := make([]byte, int(paletteSize)*3)
	if _, err := io.ReadFull(f, data); err != nil {
		return errors.Wrapf(err, "reading palette %s", filepath)
	}

	for i := 0; i < len(data); i += 3 {
		p.paletteRGBA[i/3] = color.RGBA{data[i], data[i+1], data[i+2], 255}
	}

	return nil
}

// Convenience functions for development.

// Pattern tables are 16x16 grids of tiles or sprites. Each tile is 8x8 pixels
// and 16 bytes of memory.
func (p *Ppu) GetPatternTable(i int, palette byte) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, 128, 128))

	for tileY := 0; tileY < 16; tileY++ {
		for tileX := 0; tileX < 16; tileX++ {
			// Tile
			memOffset := uint16(tileY*(16*16) + tileX*16)

			for row := 0; row < 8; row++ {
				// 2 bytes represent an 8 pixel row.
				tileLo := p.ppuRead(patternTblSize*uint16(i) + memOffset + uint16(row))
				tileHi := p.ppuRead(patternTblSize*uint16(i) + memOffset + uint16(row) + 8)

				for col := 0; col < 8; col++ {
					// Calculate each pixel's value (0-3). The LSB represents
					// the last pixel in the row of 8.
					pixel := (tileLo & 0x01) + ((tileHi & 0x01) << 1)
					tileLo >>= 1
					tileHi >>= 1

					// Pixel position
					x := tileX*8 + (7 - col) // Invert x-axis
					y := tileY*8 + row

					rgba.Set(x, y, p.getColorFromPalette(palette, pixel))
				}
			}
		}
	}

	return rgba
}

// Sprite returns a description of OAM entry i.
func (p *Ppu) Sprite(i int) string {
	return p.oam[i%oamSprites].String()
}

// 2C02 NTSC palette.
var ntscPalette = [paletteSize]color.RGBA{
	{84, 84, 84, 255}, {0, 30, 116, 255}, {8, 16, 144, 255}, {48, 0, 136, 255},
	{68, 0, 100, 255}, {92, 0, 48, 255}, {84, 4, 0, 255}, {60, 24, 0, 255},
	{32, 42, 0, 255}, {8, 58, 0, 255}, {0, 64, 0, 255}, {0, 60, 0, 255},
	{0, 50, 60, 255}, {0, 0, 0, 255}, {0, 0, 0, 255}, {0, 0, 0, 255},

	{152, 150, 152, 255}, {8, 76, 196, 255}, {48, 50, 236, 255}, {92, 30, 228, 255},
	{136, 20, 176, 255}, {160, 20, 100, 255}, {152, 34, 32, 255}, {120, 60, 0, 255},
	{84, 90, 0, 255}, {40, 114, 0, 255}, {8, 124, 0, 255}, {0, 118, 40, 255},
	{0, 102, 120, 255}, {0, 0, 0, 255}, {0, 0, 0, 255}, {0, 0, 0, 255},

	{236, 238, 236, 255}, {76, 154, 236, 255}, {120, 124, 236, 255}, {176, 98, 236, 255},
	{228, 84, 236, 255}, {236, 88, 180, 255}, {236, 106, 100, 255}, {212, 136, 32, 255},
	{160, 170, 0, 255}, {116, 196, 0, 255}, {76, 208, 32, 255}, {56, 204, 108, 255},
	{56, 180, 204, 255}, {60, 60, 60, 255}, {0, 0, 0, 255}, {0, 0, 0, 255},

	{236, 238, 236, 255}, {168, 204, 236, 255}, {188, 188, 236, 255}, {212, 178, 236, 255},
	{236, 174, 236, 255}, {236, 174, 212, 255}, {236, 180, 176, 255}, {228, 196, 144, 255},
	{204, 210, 120, 255}, {180, 222, 120, 255}, {168, 226, 144, 255}, {152, 226, 180, 255},
	{160, 214, 228, 255}, {160, 162, 160, 255}, {0, 0, 0, 255}, {0, 0, 0, 255},
}
