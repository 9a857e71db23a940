package nes

import "github.com/pkg/errors"

// Mapper functions return whether or not the given address was mapped. When
// it was, mapped holds the offset into PRG or CHR storage. An unmapped
// address is not an error: the caller defers to the next handler.
//
// A mapper that handles an access on its own (no storage involved) reports
// the address as mapped with the offset MappedInternally.
type Mapper interface {
	cpuMapRead(addr uint16, mapped *uint32) bool
	cpuMapWrite(addr uint16, mapped *uint32, data byte) bool
	ppuMapRead(addr uint16, mapped *uint32) bool
	ppuMapWrite(addr uint16, mapped *uint32) bool
	reset()
}

const MappedInternally uint32 = 0xFFFFFFFF

// Debug mapper ID. Not a real iNES mapper number; the iNES mapper field only
// holds 8 bits so it can never be selected from a ROM file.
const debugMapperID uint16 = 999

const (
	prgWindowMin uint16 = 0x8000
	prgWindowMax uint16 = 0xFFFF
	chrWindowMin uint16 = 0x0000
	chrWindowMax uint16 = 0x1FFF
)

// newMapper selects a mapper implementation by ID.
func newMapper(id uint16, prgBanks, chrBanks byte) (Mapper, error) {
	switch id {
	case 0:
		return NewMapper000(prgBanks, chrBanks), nil
	case debugMapperID:
		return NewMapper999(nil), nil
	}

	return nil, errors.Wrapf(ErrUnsupportedMapper, "mapper %d", id)
}
