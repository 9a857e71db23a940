package nes

// Loopy registers are 15 bit internal PPU registers used for implementing
// scrolling.
// Loopy register layout:
//   yyy NN YYYYY XXXXX
//
//   yyy   - fine Y scroll
//   NN    - nametable select
//   YYYYY - coarse Y scroll
//   XXXXX - coarse X scroll
//
// Reference: https://wiki.nesdev.com/w/index.php/PPU_scrolling
type PpuLoopyReg uint16

const (
	loopyCoarseX   PpuLoopyReg = 0b11111
	loopyCoarseY   PpuLoopyReg = 0b11111 << 5
	loopyNametable PpuLoopyReg = 0b11 << 10
	loopyFineY     PpuLoopyReg = 0b111 << 12
	loopyMask      PpuLoopyReg = 0x7FFF
)

// Returns the value of the loopy register as a unsigned 16-bit integer.
func (r PpuLoopyReg) value() uint16 {
	return uint16(r & loopyMask)
}

func (r *PpuLoopyReg) set(field PpuLoopyReg, shift uint, val byte) {
	*r = (*r &^ field) | ((PpuLoopyReg(val) << shift) & field)
}

// Sets coarse X (bits 0-4) from the low 5 bits of val.
func (r *PpuLoopyReg) setCoarseX(val byte) { r.set(loopyCoarseX, 0, val) }

// Sets coarse Y (bits 5-9) from the low 5 bits of val.
func (r *PpuLoopyReg) setCoarseY(val byte) { r.set(loopyCoarseY, 5, val) }

// Sets nametable (bits 10-11) from the low 2 bits of val.
func (r *PpuLoopyReg) setNametable(val byte) { r.set(loopyNametable, 10, val) }

// Sets fine Y (bits 12-14) from the low 3 bits of val.
func (r *PpuLoopyReg) setFineY(val byte) { r.set(loopyFineY, 12, val) }

func (r PpuLoopyReg) getCoarseX() byte   { return byte(r & loopyCoarseX) }
func (r PpuLoopyReg) getCoarseY() byte   { return byte((r & loopyCoarseY) >> 5) }
func (r PpuLoopyReg) getNametable() byte { return byte((r & loopyNametable) >> 10) }
func (r PpuLoopyReg) getFineY() byte     { return byte((r & loopyFineY) >> 12) }
