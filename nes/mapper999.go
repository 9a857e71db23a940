package nes

import (
	"io"
	"log"
	"os"
)

// Mapper999 is a development mapper for running hand assembled programs that
// were not loaded from a ROM file.
//
//   CPU: 0x8000-0xFFFF -> 0x0000-0x7FFF (read and write)
//        writes to 0xFF01 print the byte as a character to Out
//   PPU: 0x0000-0x1FFF -> 0x0000-0x1FFF (read only)
//
// The port is best effort: the first failed write is logged and kept in
// WriteErr, later failures are dropped silently.
type Mapper999 struct {
	Out      io.Writer
	WriteErr error
}

// Address of the character output port.
const debugCharPort uint16 = 0xFF01

// NewMapper999 returns a debug mapper printing to out, or to stdout when out
// is nil.
func NewMapper999(out io.Writer) *Mapper999 {
	if out == nil {
		out = os.Stdout
	}
	return &Mapper999{Out: out}
}

func (m *Mapper999) cpuMapRead(addr uint16, mapped *uint32) bool {
	if addr >= prgWindowMin && addr <= prgWindowMax {
		*mapped = uint32(addr & 0x7FFF)
		return true
	}

	return false
}

func (m *Mapper999) cpuMapWrite(addr uint16, mapped *uint32, data byte) bool {
	if addr == debugCharPort {
		if _, err := m.Out.Write([]byte{data}); err != nil && m.WriteErr == nil {
			m.WriteErr = err
			log.Printf("debug mapper: character port write failed: %v", err)
		}
		*mapped = MappedInternally
		return true
	}

	return m.cpuMapRead(addr, mapped)
}

func (m *Mapper999) ppuMapRead(addr uint16, mapped *uint32) bool {
	if addr >= chrWindowMin && addr <= chrWindowMax {
		*mapped = uint32(addr)
		return true
	}

	return false
}

func (m *Mapper999) ppuMapWrite(addr uint16, mapped *uint32) bool { return false }

func (m *Mapper999) reset() {}
