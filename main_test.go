package main

import (
	"testing"

	"github.com/n-ulricksen/nescore/nes"
)

func TestDisassemblyWindow(t *testing.T) {
	tests := []struct {
		pc, start, end uint16
	}{
		{0x8000, 0x8000, 0x8020},
		{0xFFDF, 0xFFDF, 0xFFFF},
		{0xFFE0, 0xFFE0, 0xFFFF},
		{0xFFF0, 0xFFF0, 0xFFFF},
	}

	for _, tt := range tests {
		start, end := disassemblyWindow(tt.pc)
		if start != tt.start || end != tt.end {
			t.Errorf("pc $%04X: got $%04X-$%04X, want $%04X-$%04X", tt.pc, start, end, tt.start, tt.end)
		}
	}
}

func TestDisassemblyWindowNearTop(t *testing.T) {
	program := make([]byte, 0x8000)
	for i := 0x7FF0; i < 0x7FFA; i++ {
		program[i] = 0xEA // NOP
	}
	cart, err := nes.NewCartridgeFromBytes(program, 0xFFF0)
	if err != nil {
		t.Fatal(err)
	}
	bus := nes.NewBus()
	bus.LoadCart(cart)

	start, end := disassemblyWindow(bus.Cpu.Pc)
	if got := bus.Cpu.Disassemble(start, end); len(got) == 0 {
		t.Errorf("no instructions listed from $%04X", bus.Cpu.Pc)
	}
}

func TestParseProgram(t *testing.T) {
	got, err := parseProgram("A2 0A\n8E 00 00")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xA2, 0x0A, 0x8E, 0x00, 0x00}
	if string(got) != string(want) {
		t.Errorf("got % X, want % X", got, want)
	}

	if _, err := parseProgram("A2 0"); err == nil {
		t.Errorf("odd digit count: got nil error")
	}
}
