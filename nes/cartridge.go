package nes

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Cartridge owns the PRG and CHR memory of a game and the mapper that
// translates CPU and PPU bus addresses into that memory.
type Cartridge struct {
	Path   string
	Header Header

	prgMem   []byte
	chrMem   []byte
	prgBanks byte
	chrBanks byte

	mapperID uint16
	mapper   Mapper
	mirror   Mirror
}

// NewCartridge loads an iNES file from disk.
func NewCartridge(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening cartridge")
	}
	defer f.Close()

	cart, err := ReadCartridge(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	cart.Path = path

	return cart, nil
}

// ReadCartridge parses an iNES image.
func ReadCartridge(r io.Reader) (*Cartridge, error) {
	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	// Trainer data is not used, skip past it.
	if header.HasTrainer() {
		if _, err := io.CopyN(io.Discard, r, trainerSize); err != nil {
			return nil, errors.Wrapf(ErrTruncatedRom, "skipping trainer: %v", err)
		}
	}

	if header.PrgBanks == 0 {
		return nil, errors.Wrap(ErrUnsupportedFormat, "no PRG banks")
	}

	cart := &Cartridge{
		Header:   header,
		prgBanks: header.PrgBanks,
		chrBanks: header.ChrBanks,
		mapperID: header.MapperID(),
		mirror:   header.Mirror(),
	}

	cart.prgMem = make([]byte, int(cart.prgBanks)*prgBankSize)
	if _, err := io.ReadFull(r, cart.prgMem); err != nil {
		return nil, errors.Wrapf(ErrTruncatedRom, "reading %d PRG banks: %v", cart.prgBanks, err)
	}

	if cart.chrBanks == 0 {
		// Board uses CHR RAM.
		cart.chrMem = make([]byte, chrBankSize)
	} else {
		cart.chrMem = make([]byte, int(cart.chrBanks)*chrBankSize)
		if _, err := io.ReadFull(r, cart.chrMem); err != nil {
			return nil, errors.Wrapf(ErrTruncatedRom, "reading %d CHR banks: %v", cart.chrBanks, err)
		}
	}

	cart.mapper, err = newMapper(cart.mapperID, cart.prgBanks, cart.chrBanks)
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// NewCartridgeFromBytes builds a cartridge around a raw program, using the
// debug mapper. The program is the PRG image starting at 0x8000 and the
// reset vector is patched to start. Character output goes to stdout.
func NewCartridgeFromBytes(program []byte, start uint16) (*Cartridge, error) {
	return NewDebugCartridge(program, start, nil)
}

// NewDebugCartridge is NewCartridgeFromBytes with the debug character port
// writing to out.
func NewDebugCartridge(program []byte, start uint16, out io.Writer) (*Cartridge, error) {
	// The debug mapper always exposes a full 32KB window.
	const windowSize = 2 * prgBankSize
	vectorOffset := int(resetVectAddr & 0x7FFF)

	if len(program) > windowSize {
		return nil, errors.Wrapf(ErrProgramTooLarge, "%d bytes", len(program))
	}

	cart := &Cartridge{
		Path:     "<memory>",
		prgBanks: windowSize / prgBankSize,
		chrBanks: 1,
		mapperID: debugMapperID,
		mapper:   NewMapper999(out),
		mirror:   MirrorHorizontal,
		prgMem:   make([]byte, windowSize),
		chrMem:   make([]byte, chrBankSize),
	}
	cart.Header.Magic = inesMagic
	cart.Header.PrgBanks = cart.prgBanks
	cart.Header.ChrBanks = cart.chrBanks

	// A full image may carry its own NMI and IRQ vectors; only the reset
	// vector is overwritten.
	copy(cart.prgMem, program)

	cart.prgMem[vectorOffset] = byte(start)
	cart.prgMem[vectorOffset+1] = byte(start >> 8)

	return cart, nil
}

func (c *Cartridge) MapperID() uint16 { return c.mapperID }
func (c *Cartridge) Mirror() Mirror   { return c.mirror }
func (c *Cartridge) PrgBanks() byte   { return c.prgBanks }
func (c *Cartridge) ChrBanks() byte   { return c.chrBanks }

// Reset the mapper. Cartridge memory is left as is.
func (c *Cartridge) Reset() {
	c.mapper.reset()
}

func (c *Cartridge) Clock() {}

// Communicate with main (CPU) bus.
func (c *Cartridge) CpuRead(addr uint16, data *byte, readOnly bool) bool {
	var mapped uint32
	if !c.mapper.cpuMapRead(addr, &mapped) {
		return false
	}
	if mapped == MappedInternally {
		return true
	}

	c.checkBounds("cpu read", addr, mapped, c.prgMem, "PRG")
	*data = c.prgMem[mapped]

	return true
}

func (c *Cartridge) CpuWrite(addr uint16, data byte) bool {
	var mapped uint32
	if !c.mapper.cpuMapWrite(addr, &mapped, data) {
		return false
	}
	if mapped == MappedInternally {
		return true
	}

	c.checkBounds("cpu write", addr, mapped, c.prgMem, "PRG")
	c.prgMem[mapped] = data

	return true
}

// Communicate with PPU bus.
func (c *Cartridge) PpuRead(addr uint16, data *byte) bool {
	var mapped uint32
	if !c.mapper.ppuMapRead(addr, &mapped) {
		return false
	}
	if mapped == MappedInternally {
		return true
	}

	c.checkBounds("ppu read", addr, mapped, c.chrMem, "CHR")
	*data = c.chrMem[mapped]

	return true
}

func (c *Cartridge) PpuWrite(addr uint16, data byte) bool {
	var mapped uint32
	if !c.mapper.ppuMapWrite(addr, &mapped) {
		return false
	}
	if mapped == MappedInternally {
		return true
	}

	c.checkBounds("ppu write", addr, mapped, c.chrMem, "CHR")
	c.chrMem[mapped] = data

	return true
}

func (c *Cartridge) checkBounds(op string, addr uint16, mapped uint32, mem []byte, name string) {
	if mapped >= uint32(len(mem)) {
		consistencyPanic("cartridge", op, addr,
			"mapper %d produced offset %#x beyond %s size %#x", c.mapperID, mapped, name, len(mem))
	}
}

func (c *Cartridge) String() string {
	format := "iNES"
	if c.mapperID == debugMapperID {
		format = "synthetic"
	}
	return fmt.Sprintf("NES Cartridge: %s (%s)\n  Mapper %d, PRG %d x 16KB, CHR %d x 8KB, %s mirroring",
		c.Path, format, c.mapperID, c.prgBanks, c.chrBanks, c.mirror)
}
