package nes

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// iNES file layout.
// Reference: https://wiki.nesdev.com/w/index.php/INES
const (
	headerSize  = 16
	trainerSize = 512
	prgBankSize = 16 * 1024
	chrBankSize = 8 * 1024
)

var inesMagic = [4]byte{0x4E, 0x45, 0x53, 0x1A} // "NES" followed by MS-DOS EOF

// Header is the 16 byte iNES header.
type Header struct {
	Magic       [4]byte
	PrgBanks    byte // 16KB units
	ChrBanks    byte // 8KB units, 0 means the board uses CHR RAM
	Flags6      byte
	Flags7      byte
	PrgRamBanks byte
	Flags9      byte
	Flags10     byte
	Unused      [5]byte
}

// Flags 6
const (
	flag6Vertical   byte = 1 << 0
	flag6Battery    byte = 1 << 1
	flag6Trainer    byte = 1 << 2
	flag6FourScreen byte = 1 << 3
)

// Flags 7: bits 2-3 equal to 2 identify NES 2.0.
const (
	flag7FormatMask byte = 0x0C
	flag7Nes2       byte = 0x08
)

// Mirror is the nametable arrangement wired on the cartridge.
type Mirror byte

const (
	MirrorHorizontal Mirror = iota
	MirrorVertical
	MirrorFourScreen
)

func (m Mirror) String() string {
	switch m {
	case MirrorVertical:
		return "vertical"
	case MirrorFourScreen:
		return "four-screen"
	}
	return "horizontal"
}

// readHeader reads and validates an iNES 1 header.
func readHeader(r io.Reader) (Header, error) {
	var h Header

	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return h, errors.Wrapf(ErrTruncatedRom, "reading header: %v", err)
	}
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &h); err != nil {
		return h, errors.Wrap(err, "decoding header")
	}

	if h.Magic != inesMagic {
		return h, errors.Wrapf(ErrBadMagic, "got % X, want % X", h.Magic, inesMagic)
	}
	if h.IsNes2() {
		return h, errors.Wrap(ErrUnsupportedFormat, "NES 2.0 header")
	}

	return h, nil
}

func (h Header) IsNes2() bool {
	return h.Flags7&flag7FormatMask == flag7Nes2
}

// MapperID joins the low nibble from flags 6 with the high nibble from
// flags 7.
func (h Header) MapperID() uint16 {
	return uint16(h.Flags7&0xF0) | uint16(h.Flags6>>4)
}

func (h Header) HasTrainer() bool { return h.Flags6&flag6Trainer != 0 }
func (h Header) HasBattery() bool { return h.Flags6&flag6Battery != 0 }

func (h Header) Mirror() Mirror {
	switch {
	case h.Flags6&flag6FourScreen != 0:
		return MirrorFourScreen
	case h.Flags6&flag6Vertical != 0:
		return MirrorVertical
	}
	return MirrorHorizontal
}
