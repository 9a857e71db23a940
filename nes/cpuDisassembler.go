package nes

import (
	"bytes"
	"fmt"
)

// Read without side effects. Disassembly must never disturb device state.
func (cpu *Cpu6502) peek(addr uint16) byte {
	var data byte
	cpu.bus.CpuRead(addr, &data, true)
	return data
}

// Disassemble the loaded 6502 program into human-readable CPU instructions
// mapped to their respective memory address.
//
// Much help from https://github.com/OneLoneCoder/olcNES
func (cpu *Cpu6502) Disassemble(startAddr, endAddr uint16) map[uint16]string {
	// Current CPU instruction, disassembled
	var lineDiss bytes.Buffer
	var value, lo, hi byte

	// this needs to be bigger than uint16, to determine when larger than endAddr
	var addr uint32 = uint32(startAddr)

	disassembly := make(map[uint16]string)

	for addr <= uint32(endAddr) {
		// Instruction memory address
		lineAddr := uint16(addr)
		fmt.Fprintf(&lineDiss, "$%04X: ", lineAddr)

		// Readable instruction name
		opcode := cpu.peek(uint16(addr))
		addr++
		inst := instLookup[opcode]
		fmt.Fprintf(&lineDiss, "%s ", inst.Name)

		switch inst.AddrMode {
		case IMP:
			lineDiss.WriteString("{IMP}")
		case IMM:
			value = cpu.peek(uint16(addr))
			addr++
			fmt.Fprintf(&lineDiss, "#$%02X {IMM}", value)
		case REL:
			value = cpu.peek(uint16(addr))
			addr++
			target := uint16(addr) + uint16(int8(value))
			fmt.Fprintf(&lineDiss, "$%02X [$%04X] {REL}", value, target)
		case ZP0:
			lo = cpu.peek(uint16(addr))
			addr++
			fmt.Fprintf(&lineDiss, "$%02X {ZP0}", lo)
		case ZPX:
			lo = cpu.peek(uint16(addr))
			addr++
			fmt.Fprintf(&lineDiss, "$%02X, X {ZPX}", lo)
		case ZPY:
			lo = cpu.peek(uint16(addr))
			addr++
			fmt.Fprintf(&lineDiss, "$%02X, Y {ZPY}", lo)
		case IZX:
			lo = cpu.peek(uint16(addr))
			addr++
			fmt.Fprintf(&lineDiss, "($%02X, X) {IZX}", lo)
		case IZY:
			lo = cpu.peek(uint16(addr))
			addr++
			fmt.Fprintf(&lineDiss, "($%02X), Y {IZY}", lo)
		default:
			// Two byte operands.
			lo = cpu.peek(uint16(addr))
			addr++
			hi = cpu.peek(uint16(addr))
			addr++
			operand := uint16(hi)<<8 | uint16(lo)

			switch inst.AddrMode {
			case ABS:
				fmt.Fprintf(&lineDiss, "$%04X {ABS}", operand)
			case ABX:
				fmt.Fprintf(&lineDiss, "$%04X, X {ABX}", operand)
			case ABY:
				fmt.Fprintf(&lineDiss, "$%04X, Y {ABY}", operand)
			case IND:
				fmt.Fprintf(&lineDiss, "($%04X) {IND}", operand)
			}
		}

		// Add to map
		disassembly[lineAddr] = lineDiss.String()
		lineDiss.Reset()
	}

	return disassembly
}
