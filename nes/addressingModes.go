package nes

type AddressingMode int

const (
	IMP AddressingMode = iota
	IMM
	REL
	ZP0
	ZPX
	ZPY
	ABS
	ABX
	ABY
	IND
	IZX
	IZY
)

var addrModeNames = [...]string{"IMP", "IMM", "REL", "ZP0", "ZPX", "ZPY", "ABS", "ABX", "ABY", "IND", "IZX", "IZY"}

func (m AddressingMode) String() string {
	if int(m) < len(addrModeNames) {
		return addrModeNames[m]
	}
	return "???"
}

// evalAddrMode resolves the operand address for the current instruction.
// Returns true if an index crossed a page boundary.
func (cpu *Cpu6502) evalAddrMode(mode AddressingMode) bool {
	switch mode {
	case IMP:
		return cpu.amIMP()
	case IMM:
		return cpu.amIMM()
	case REL:
		return cpu.amREL()
	case ZP0:
		return cpu.amZP0()
	case ZPX:
		return cpu.amZPX()
	case ZPY:
		return cpu.amZPY()
	case ABS:
		return cpu.amABS()
	case ABX:
		return cpu.amABX()
	case ABY:
		return cpu.amABY()
	case IND:
		return cpu.amIND()
	case IZX:
		return cpu.amIZX()
	case IZY:
		return cpu.amIZY()
	}
	return false
}

// Implied: the operand, if any, is the accumulator.
func (cpu *Cpu6502) amIMP() bool {
	cpu.fetched = cpu.A
	return false
}

// Immediate: the operand is the byte following the opcode.
func (cpu *Cpu6502) amIMM() bool {
	cpu.addrAbs = cpu.Pc
	cpu.Pc++

	return false
}

// Relative: signed 8 bit displacement used by branches.
func (cpu *Cpu6502) amREL() bool {
	cpu.addrRel = uint16(cpu.read(cpu.Pc))
	cpu.Pc++

	// Sign extend.
	if cpu.addrRel&0x80 != 0 {
		cpu.addrRel |= 0xFF00
	}

	return false
}

// Zero Page
func (cpu *Cpu6502) amZP0() bool {
	cpu.addrAbs = uint16(cpu.read(cpu.Pc))
	cpu.Pc++

	return false
}

// Zero Page, X. The sum wraps within page zero.
func (cpu *Cpu6502) amZPX() bool {
	cpu.addrAbs = uint16(cpu.read(cpu.Pc) + cpu.X)
	cpu.Pc++

	return false
}

// Zero Page, Y. The sum wraps within page zero.
func (cpu *Cpu6502) amZPY() bool {
	cpu.addrAbs = uint16(cpu.read(cpu.Pc) + cpu.Y)
	cpu.Pc++

	return false
}

// Absolute
func (cpu *Cpu6502) amABS() bool {
	cpu.addrAbs = cpu.readWord(cpu.Pc)
	cpu.Pc += 2

	return false
}

// Absolute, X
func (cpu *Cpu6502) amABX() bool {
	addr := cpu.readWord(cpu.Pc)
	cpu.Pc += 2

	cpu.addrAbs = addr + uint16(cpu.X)

	return pageCrossed(addr, cpu.addrAbs)
}

// Absolute, Y
func (cpu *Cpu6502) amABY() bool {
	addr := cpu.readWord(cpu.Pc)
	cpu.Pc += 2

	cpu.addrAbs = addr + uint16(cpu.Y)

	return pageCrossed(addr, cpu.addrAbs)
}

// Indirect: only used by JMP.
//
// The 6502 does not carry into the high byte of the pointer, so a pointer
// of $xxFF fetches its high byte from $xx00 rather than the next page.
func (cpu *Cpu6502) amIND() bool {
	ptr := cpu.readWord(cpu.Pc)
	cpu.Pc += 2

	lo := cpu.read(ptr)
	hi := cpu.read((ptr & 0xFF00) | uint16(byte(ptr)+1))

	cpu.addrAbs = uint16(hi)<<8 | uint16(lo)

	return false
}

// Indexed Indirect: (zp, X). Both pointer bytes come from page zero.
func (cpu *Cpu6502) amIZX() bool {
	ptr := cpu.read(cpu.Pc) + cpu.X
	cpu.Pc++

	lo := cpu.read(uint16(ptr))
	hi := cpu.read(uint16(ptr + 1))

	cpu.addrAbs = uint16(hi)<<8 | uint16(lo)

	return false
}

// Indirect Indexed: (zp), Y. The pointer is read from page zero, then Y is
// added to the full 16 bit address.
func (cpu *Cpu6502) amIZY() bool {
	ptr := cpu.read(cpu.Pc)
	cpu.Pc++

	lo := cpu.read(uint16(ptr))
	hi := cpu.read(uint16(ptr + 1))

	base := uint16(hi)<<8 | uint16(lo)
	cpu.addrAbs = base + uint16(cpu.Y)

	return pageCrossed(base, cpu.addrAbs)
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}
