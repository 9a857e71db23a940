package nes

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

// buildRom assembles an iNES image. Each PRG bank is filled with its bank
// number plus one and CHR with 0xC0 plus its bank number.
func buildRom(prgBanks, chrBanks, flags6, flags7 byte) []byte {
	var buf bytes.Buffer

	buf.Write(inesMagic[:])
	buf.Write([]byte{prgBanks, chrBanks, flags6, flags7})
	buf.Write(make([]byte, 8))

	if flags6&flag6Trainer != 0 {
		buf.Write(bytes.Repeat([]byte{0xEE}, trainerSize))
	}
	for i := byte(0); i < prgBanks; i++ {
		buf.Write(bytes.Repeat([]byte{i + 1}, prgBankSize))
	}
	for i := byte(0); i < chrBanks; i++ {
		buf.Write(bytes.Repeat([]byte{0xC0 + i}, chrBankSize))
	}

	return buf.Bytes()
}

func writeRom(t *testing.T, rom []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.nes")
	if err := os.WriteFile(path, rom, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewCartridgeNrom128(t *testing.T) {
	path := writeRom(t, buildRom(1, 0, 0, 0))

	cart, err := NewCartridge(path)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	if cart.Path != path {
		t.Errorf("path: got %q, want %q", cart.Path, path)
	}

	var lo, hi byte
	cart.CpuRead(0x8123, &lo, false)
	cart.CpuRead(0xC123, &hi, false)
	if lo != 1 || hi != 1 {
		t.Errorf("PRG mirror: got $%02X and $%02X, want $01 and $01", lo, hi)
	}

	// CHR RAM
	if !cart.PpuWrite(0x0100, 0x5A) {
		t.Fatalf("CHR RAM write not claimed")
	}
	var data byte
	cart.PpuRead(0x0100, &data)
	if data != 0x5A {
		t.Errorf("CHR RAM: got $%02X, want $5A", data)
	}
}

func TestNewCartridgeNrom256(t *testing.T) {
	cart, err := ReadCartridge(bytes.NewReader(buildRom(2, 1, 0, 0)))
	if err != nil {
		t.Fatalf("ReadCartridge: %v", err)
	}

	var lo, hi byte
	cart.CpuRead(0x8000, &lo, false)
	cart.CpuRead(0xC000, &hi, false)
	if lo != 1 || hi != 2 {
		t.Errorf("PRG banks: got $%02X and $%02X, want $01 and $02", lo, hi)
	}

	// CHR ROM
	if cart.PpuWrite(0x0100, 0x5A) {
		t.Errorf("CHR ROM write claimed")
	}
	var data byte
	cart.PpuRead(0x0100, &data)
	if data != 0xC0 {
		t.Errorf("CHR ROM: got $%02X, want $C0", data)
	}

	if !strings.Contains(cart.String(), "Mapper 0") {
		t.Errorf("String() = %q, want mapper number", cart.String())
	}
}

func TestReadCartridgeErrors(t *testing.T) {
	badMagic := buildRom(1, 1, 0, 0)
	badMagic[3] = 0x00

	tests := []struct {
		name string
		rom  []byte
		want error
	}{
		{"bad magic", badMagic, ErrBadMagic},
		{"NES 2.0", buildRom(1, 1, 0, flag7Nes2), ErrUnsupportedFormat},
		{"no PRG", buildRom(0, 1, 0, 0), ErrUnsupportedFormat},
		{"mapper 1", buildRom(1, 1, 0x10, 0), ErrUnsupportedMapper},
		{"short header", inesMagic[:], ErrTruncatedRom},
		{"short PRG", buildRom(2, 1, 0, 0)[:headerSize+prgBankSize], ErrTruncatedRom},
		{"short CHR", buildRom(1, 1, 0, 0)[:headerSize+prgBankSize+100], ErrTruncatedRom},
		{"short trainer", buildRom(1, 1, flag6Trainer, 0)[:headerSize+10], ErrTruncatedRom},
	}

	for _, tt := range tests {
		_, err := ReadCartridge(bytes.NewReader(tt.rom))
		if errors.Cause(err) != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestNewCartridgeMissingFile(t *testing.T) {
	_, err := NewCartridge(filepath.Join(t.TempDir(), "missing.nes"))
	if err == nil {
		t.Fatal("got nil error for missing file")
	}
	if !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("got %v, want not exist", err)
	}
}

func TestReadCartridgeTrainer(t *testing.T) {
	cart, err := ReadCartridge(bytes.NewReader(buildRom(1, 1, flag6Trainer|flag6Vertical, 0)))
	if err != nil {
		t.Fatalf("ReadCartridge: %v", err)
	}

	var data byte
	cart.CpuRead(0x8000, &data, false)
	if data != 1 {
		t.Errorf("PRG after trainer: got $%02X, want $01", data)
	}
	if cart.Mirror() != MirrorVertical {
		t.Errorf("mirror: got %v, want vertical", cart.Mirror())
	}
}

func TestHeader(t *testing.T) {
	tests := []struct {
		flags6, flags7 byte
		mapper         uint16
		mirror         Mirror
		trainer        bool
		battery        bool
	}{
		{0x00, 0x00, 0x00, MirrorHorizontal, false, false},
		{0x01, 0x00, 0x00, MirrorVertical, false, false},
		{0x10, 0x40, 0x41, MirrorHorizontal, false, false},
		{0x0E, 0x00, 0x00, MirrorFourScreen, true, true},
		{0xF0, 0xF0, 0xFF, MirrorHorizontal, false, false},
	}

	for _, tt := range tests {
		h := Header{Magic: inesMagic, Flags6: tt.flags6, Flags7: tt.flags7}

		if got := h.MapperID(); got != tt.mapper {
			t.Errorf("flags %02X/%02X mapper: got %d, want %d", tt.flags6, tt.flags7, got, tt.mapper)
		}
		if got := h.Mirror(); got != tt.mirror {
			t.Errorf("flags %02X mirror: got %v, want %v", tt.flags6, got, tt.mirror)
		}
		if got := h.HasTrainer(); got != tt.trainer {
			t.Errorf("flags %02X trainer: got %v, want %v", tt.flags6, got, tt.trainer)
		}
		if got := h.HasBattery(); got != tt.battery {
			t.Errorf("flags %02X battery: got %v, want %v", tt.flags6, got, tt.battery)
		}
	}
}

func TestNewCartridgeFromBytesSize(t *testing.T) {
	_, err := NewCartridgeFromBytes(make([]byte, 0x8001), 0x8000)
	if errors.Cause(err) != ErrProgramTooLarge {
		t.Errorf("0x8001 bytes: got %v, want %v", err, ErrProgramTooLarge)
	}

	// A full image keeps its own NMI and IRQ vectors, the reset vector is
	// replaced by the start address.
	program := make([]byte, 0x8000)
	program[0x7FFA], program[0x7FFB] = 0x00, 0x90 // NMI
	program[0x7FFC], program[0x7FFD] = 0x34, 0x12 // reset
	program[0x7FFE], program[0x7FFF] = 0x00, 0xA0 // IRQ

	bus := newTestBus(t, program, 0x8000)

	tests := []struct {
		addr uint16
		want byte
	}{
		{nmiVectAddr, 0x00},
		{nmiVectAddr + 1, 0x90},
		{resetVectAddr, 0x00},
		{resetVectAddr + 1, 0x80},
		{irqVectAddr, 0x00},
		{irqVectAddr + 1, 0xA0},
	}
	for _, tt := range tests {
		var data byte
		bus.CpuRead(tt.addr, &data, false)
		if data != tt.want {
			t.Errorf("$%04X: got $%02X, want $%02X", tt.addr, data, tt.want)
		}
	}
	if bus.Cpu.Pc != 0x8000 {
		t.Errorf("PC after reset: got $%04X, want $8000", bus.Cpu.Pc)
	}
}

func TestCartridgeBadMapperOffset(t *testing.T) {
	// Mapper configured for 32KB of PRG, storage holds 16KB.
	cart := &Cartridge{
		mapper: NewMapper000(2, 1),
		prgMem: make([]byte, prgBankSize),
		chrMem: make([]byte, chrBankSize),
	}

	defer func() {
		cerr, ok := recover().(*ConsistencyError)
		if !ok {
			t.Fatalf("want *ConsistencyError panic")
		}
		if cerr.Component != "cartridge" || cerr.Addr != 0xC000 {
			t.Errorf("got %v, want cartridge at $C000", cerr)
		}
	}()

	var data byte
	cart.CpuRead(0xC000, &data, false)
}
