package nes

// Mapper000 is NROM. No bank switching.
type Mapper000 struct {
	PrgBanks byte
	ChrBanks byte
}

func NewMapper000(prgRomChunks, chrRomChunks byte) *Mapper000 {
	return &Mapper000{
		PrgBanks: prgRomChunks,
		ChrBanks: chrRomChunks,
	}
}

// Address Mapping
//
// if 16KB ROM size (NROM-128):
// 	 0x8000-0xBFFF -> 0x0000-0x3FFF
//   0xC000-0xFFFF -> 0x0000-0x3FFF (mirror)
//
// if 32KB ROM size (NROM-256):
//   0x8000-0xFFFF -> 0x0000-0x7FFF
//
// PPU:
//   0x0000-0x1FFF -> 0x0000-0x1FFF, writable only when CHR is RAM

func (m *Mapper000) cpuMapRead(addr uint16, mapped *uint32) bool {
	if addr >= prgWindowMin && addr <= prgWindowMax {
		if m.PrgBanks > 1 {
			*mapped = uint32(addr & 0x7FFF) // 32KB ROM
		} else {
			*mapped = uint32(addr & 0x3FFF) // 16KB ROM, need to mirror
		}
		return true
	}

	return false
}

func (m *Mapper000) cpuMapWrite(addr uint16, mapped *uint32, data byte) bool {
	return m.cpuMapRead(addr, mapped)
}

func (m *Mapper000) ppuMapRead(addr uint16, mapped *uint32) bool {
	if addr >= chrWindowMin && addr <= chrWindowMax {
		*mapped = uint32(addr)
		return true
	}

	return false
}

func (m *Mapper000) ppuMapWrite(addr uint16, mapped *uint32) bool {
	// CHR RAM
	if m.ChrBanks == 0 {
		return m.ppuMapRead(addr, mapped)
	}

	return false
}

func (m *Mapper000) reset() {}
