package nes

// PPU Registers
type PpuReg byte
type PpuRegFlag byte

// CPU-visible register numbers, mirrored every 8 bytes from 0x2000.
const (
	regCtrl    uint16 = 0x0000
	regMask    uint16 = 0x0001
	regStatus  uint16 = 0x0002
	regOamAddr uint16 = 0x0003
	regOamData uint16 = 0x0004
	regScroll  uint16 = 0x0005
	regAddr    uint16 = 0x0006
	regData    uint16 = 0x0007

	ppuRegMirror uint16 = 0x0007
)

// PPUCTRL flags - $2000
const (
	ctrlNameTblLo PpuRegFlag = 1 << iota
	ctrlNameTblHi
	ctrlVramInc
	ctrlSpritePatternTbl
	ctrlBgPatternTbl
	ctrlSpriteSize
	ctrlExtMode
	ctrlNmi
)

// PPUMASK flags - $2001
const (
	maskGreyscale PpuRegFlag = 1 << iota
	maskBgLeft
	maskSpriteLeft
	maskBgShow
	maskSpriteShow
	maskEmphasizeRed
	maskEmphasizeGreen
	maskEmphasizeBlue
)

// PPUSTATUS flags - $2002
const (
	statusSpriteOverflow PpuRegFlag = 1 << (iota + 5)
	statusSprite0Hit
	statusVBlank
)

func (r *PpuReg) setFlag(flag PpuRegFlag) {
	*r |= PpuReg(flag)
}

func (r *PpuReg) clearFlag(flag PpuRegFlag) {
	*r &^= PpuReg(flag)
}

func (r PpuReg) getFlag(flag PpuRegFlag) byte {
	if (r & PpuReg(flag)) == 0 {
		return 0
	}
	return 1
}
