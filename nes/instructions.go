package nes

// Operation identifies the semantics of an instruction.
type Operation int

const (
	XXX Operation = iota // illegal/unimplemented opcode
	ADC
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

type Instruction struct {
	Name     string
	Op       Operation
	AddrMode AddressingMode
	Cycles   byte
}

// Lookup table containing all the CPU instructions, indexed by opcode.
// Unofficial opcodes all decode to XXX with their documented base cycles.
// Reference: http://archive.6502.org/datasheets/rockwell_r650x_r651x.pdf
var instLookup = [16 * 16]Instruction{
	{"BRK", BRK, IMM, 7}, {"ORA", ORA, IZX, 6}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 8}, {"XXX", XXX, IMP, 3}, {"ORA", ORA, ZP0, 3}, {"ASL", ASL, ZP0, 5}, {"XXX", XXX, IMP, 5}, {"PHP", PHP, IMP, 3}, {"ORA", ORA, IMM, 2}, {"ASL", ASL, IMP, 2}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 4}, {"ORA", ORA, ABS, 4}, {"ASL", ASL, ABS, 6}, {"XXX", XXX, IMP, 6},

	{"BPL", BPL, REL, 2}, {"ORA", ORA, IZY, 5}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 8}, {"XXX", XXX, IMP, 4}, {"ORA", ORA, ZPX, 4}, {"ASL", ASL, ZPX, 6}, {"XXX", XXX, IMP, 6}, {"CLC", CLC, IMP, 2}, {"ORA", ORA, ABY, 4}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 7}, {"XXX", XXX, IMP, 4}, {"ORA", ORA, ABX, 4}, {"ASL", ASL, ABX, 7}, {"XXX", XXX, IMP, 7},

	{"JSR", JSR, ABS, 6}, {"AND", AND, IZX, 6}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 8}, {"BIT", BIT, ZP0, 3}, {"AND", AND, ZP0, 3}, {"ROL", ROL, ZP0, 5}, {"XXX", XXX, IMP, 5}, {"PLP", PLP, IMP, 4}, {"AND", AND, IMM, 2}, {"ROL", ROL, IMP, 2}, {"XXX", XXX, IMP, 2}, {"BIT", BIT, ABS, 4}, {"AND", AND, ABS, 4}, {"ROL", ROL, ABS, 6}, {"XXX", XXX, IMP, 6},

	{"BMI", BMI, REL, 2}, {"AND", AND, IZY, 5}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 8}, {"XXX", XXX, IMP, 4}, {"AND", AND, ZPX, 4}, {"ROL", ROL, ZPX, 6}, {"XXX", XXX, IMP, 6}, {"SEC", SEC, IMP, 2}, {"AND", AND, ABY, 4}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 7}, {"XXX", XXX, IMP, 4}, {"AND", AND, ABX, 4}, {"ROL", ROL, ABX, 7}, {"XXX", XXX, IMP, 7},

	{"RTI", RTI, IMP, 6}, {"EOR", EOR, IZX, 6}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 8}, {"XXX", XXX, IMP, 3}, {"EOR", EOR, ZP0, 3}, {"LSR", LSR, ZP0, 5}, {"XXX", XXX, IMP, 5}, {"PHA", PHA, IMP, 3}, {"EOR", EOR, IMM, 2}, {"LSR", LSR, IMP, 2}, {"XXX", XXX, IMP, 2}, {"JMP", JMP, ABS, 3}, {"EOR", EOR, ABS, 4}, {"LSR", LSR, ABS, 6}, {"XXX", XXX, IMP, 6},

	{"BVC", BVC, REL, 2}, {"EOR", EOR, IZY, 5}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 8}, {"XXX", XXX, IMP, 4}, {"EOR", EOR, ZPX, 4}, {"LSR", LSR, ZPX, 6}, {"XXX", XXX, IMP, 6}, {"CLI", CLI, IMP, 2}, {"EOR", EOR, ABY, 4}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 7}, {"XXX", XXX, IMP, 4}, {"EOR", EOR, ABX, 4}, {"LSR", LSR, ABX, 7}, {"XXX", XXX, IMP, 7},

	{"RTS", RTS, IMP, 6}, {"ADC", ADC, IZX, 6}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 8}, {"XXX", XXX, IMP, 3}, {"ADC", ADC, ZP0, 3}, {"ROR", ROR, ZP0, 5}, {"XXX", XXX, IMP, 5}, {"PLA", PLA, IMP, 4}, {"ADC", ADC, IMM, 2}, {"ROR", ROR, IMP, 2}, {"XXX", XXX, IMP, 2}, {"JMP", JMP, IND, 5}, {"ADC", ADC, ABS, 4}, {"ROR", ROR, ABS, 6}, {"XXX", XXX, IMP, 6},

	{"BVS", BVS, REL, 2}, {"ADC", ADC, IZY, 5}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 8}, {"XXX", XXX, IMP, 4}, {"ADC", ADC, ZPX, 4}, {"ROR", ROR, ZPX, 6}, {"XXX", XXX, IMP, 6}, {"SEI", SEI, IMP, 2}, {"ADC", ADC, ABY, 4}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 7}, {"XXX", XXX, IMP, 4}, {"ADC", ADC, ABX, 4}, {"ROR", ROR, ABX, 7}, {"XXX", XXX, IMP, 7},

	{"XXX", XXX, IMP, 2}, {"STA", STA, IZX, 6}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 6}, {"STY", STY, ZP0, 3}, {"STA", STA, ZP0, 3}, {"STX", STX, ZP0, 3}, {"XXX", XXX, IMP, 3}, {"DEY", DEY, IMP, 2}, {"XXX", XXX, IMP, 2}, {"TXA", TXA, IMP, 2}, {"XXX", XXX, IMP, 2}, {"STY", STY, ABS, 4}, {"STA", STA, ABS, 4}, {"STX", STX, ABS, 4}, {"XXX", XXX, IMP, 4},

	{"BCC", BCC, REL, 2}, {"STA", STA, IZY, 6}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 6}, {"STY", STY, ZPX, 4}, {"STA", STA, ZPX, 4}, {"STX", STX, ZPY, 4}, {"XXX", XXX, IMP, 4}, {"TYA", TYA, IMP, 2}, {"STA", STA, ABY, 5}, {"TXS", TXS, IMP, 2}, {"XXX", XXX, IMP, 5}, {"XXX", XXX, IMP, 5}, {"STA", STA, ABX, 5}, {"XXX", XXX, IMP, 5}, {"XXX", XXX, IMP, 5},

	{"LDY", LDY, IMM, 2}, {"LDA", LDA, IZX, 6}, {"LDX", LDX, IMM, 2}, {"XXX", XXX, IMP, 6}, {"LDY", LDY, ZP0, 3}, {"LDA", LDA, ZP0, 3}, {"LDX", LDX, ZP0, 3}, {"XXX", XXX, IMP, 3}, {"TAY", TAY, IMP, 2}, {"LDA", LDA, IMM, 2}, {"TAX", TAX, IMP, 2}, {"XXX", XXX, IMP, 2}, {"LDY", LDY, ABS, 4}, {"LDA", LDA, ABS, 4}, {"LDX", LDX, ABS, 4}, {"XXX", XXX, IMP, 4},

	{"BCS", BCS, REL, 2}, {"LDA", LDA, IZY, 5}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 5}, {"LDY", LDY, ZPX, 4}, {"LDA", LDA, ZPX, 4}, {"LDX", LDX, ZPY, 4}, {"XXX", XXX, IMP, 4}, {"CLV", CLV, IMP, 2}, {"LDA", LDA, ABY, 4}, {"TSX", TSX, IMP, 2}, {"XXX", XXX, IMP, 4}, {"LDY", LDY, ABX, 4}, {"LDA", LDA, ABX, 4}, {"LDX", LDX, ABY, 4}, {"XXX", XXX, IMP, 4},

	{"CPY", CPY, IMM, 2}, {"CMP", CMP, IZX, 6}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 8}, {"CPY", CPY, ZP0, 3}, {"CMP", CMP, ZP0, 3}, {"DEC", DEC, ZP0, 5}, {"XXX", XXX, IMP, 5}, {"INY", INY, IMP, 2}, {"CMP", CMP, IMM, 2}, {"DEX", DEX, IMP, 2}, {"XXX", XXX, IMP, 2}, {"CPY", CPY, ABS, 4}, {"CMP", CMP, ABS, 4}, {"DEC", DEC, ABS, 6}, {"XXX", XXX, IMP, 6},

	{"BNE", BNE, REL, 2}, {"CMP", CMP, IZY, 5}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 8}, {"XXX", XXX, IMP, 4}, {"CMP", CMP, ZPX, 4}, {"DEC", DEC, ZPX, 6}, {"XXX", XXX, IMP, 6}, {"CLD", CLD, IMP, 2}, {"CMP", CMP, ABY, 4}, {"NOP", NOP, IMP, 2}, {"XXX", XXX, IMP, 7}, {"XXX", XXX, IMP, 4}, {"CMP", CMP, ABX, 4}, {"DEC", DEC, ABX, 7}, {"XXX", XXX, IMP, 7},

	{"CPX", CPX, IMM, 2}, {"SBC", SBC, IZX, 6}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 8}, {"CPX", CPX, ZP0, 3}, {"SBC", SBC, ZP0, 3}, {"INC", INC, ZP0, 5}, {"XXX", XXX, IMP, 5}, {"INX", INX, IMP, 2}, {"SBC", SBC, IMM, 2}, {"NOP", NOP, IMP, 2}, {"XXX", XXX, IMP, 2}, {"CPX", CPX, ABS, 4}, {"SBC", SBC, ABS, 4}, {"INC", INC, ABS, 6}, {"XXX", XXX, IMP, 6},

	{"BEQ", BEQ, REL, 2}, {"SBC", SBC, IZY, 5}, {"XXX", XXX, IMP, 2}, {"XXX", XXX, IMP, 8}, {"XXX", XXX, IMP, 4}, {"SBC", SBC, ZPX, 4}, {"INC", INC, ZPX, 6}, {"XXX", XXX, IMP, 6}, {"SED", SED, IMP, 2}, {"SBC", SBC, ABY, 4}, {"NOP", NOP, IMP, 2}, {"XXX", XXX, IMP, 7}, {"XXX", XXX, IMP, 4}, {"SBC", SBC, ABX, 4}, {"INC", INC, ABX, 7}, {"XXX", XXX, IMP, 7},
}

// Instructions returns a copy of the opcode table.
func Instructions() [256]Instruction { return instLookup }

// exec runs the semantics of op. Returns true if the instruction takes an
// extra cycle when its addressing mode crosses a page.
func (cpu *Cpu6502) exec(op Operation) bool {
	switch op {
	case ADC:
		return cpu.opADC()
	case AND:
		return cpu.opAND()
	case ASL:
		return cpu.opASL()
	case BCC:
		return cpu.opBCC()
	case BCS:
		return cpu.opBCS()
	case BEQ:
		return cpu.opBEQ()
	case BIT:
		return cpu.opBIT()
	case BMI:
		return cpu.opBMI()
	case BNE:
		return cpu.opBNE()
	case BPL:
		return cpu.opBPL()
	case BRK:
		return cpu.opBRK()
	case BVC:
		return cpu.opBVC()
	case BVS:
		return cpu.opBVS()
	case CLC:
		return cpu.opCLC()
	case CLD:
		return cpu.opCLD()
	case CLI:
		return cpu.opCLI()
	case CLV:
		return cpu.opCLV()
	case CMP:
		return cpu.opCMP()
	case CPX:
		return cpu.opCPX()
	case CPY:
		return cpu.opCPY()
	case DEC:
		return cpu.opDEC()
	case DEX:
		return cpu.opDEX()
	case DEY:
		return cpu.opDEY()
	case EOR:
		return cpu.opEOR()
	case INC:
		return cpu.opINC()
	case INX:
		return cpu.opINX()
	case INY:
		return cpu.opINY()
	case JMP:
		return cpu.opJMP()
	case JSR:
		return cpu.opJSR()
	case LDA:
		return cpu.opLDA()
	case LDX:
		return cpu.opLDX()
	case LDY:
		return cpu.opLDY()
	case LSR:
		return cpu.opLSR()
	case NOP:
		return cpu.opNOP()
	case ORA:
		return cpu.opORA()
	case PHA:
		return cpu.opPHA()
	case PHP:
		return cpu.opPHP()
	case PLA:
		return cpu.opPLA()
	case PLP:
		return cpu.opPLP()
	case ROL:
		return cpu.opROL()
	case ROR:
		return cpu.opROR()
	case RTI:
		return cpu.opRTI()
	case RTS:
		return cpu.opRTS()
	case SBC:
		return cpu.opSBC()
	case SEC:
		return cpu.opSEC()
	case SED:
		return cpu.opSED()
	case SEI:
		return cpu.opSEI()
	case STA:
		return cpu.opSTA()
	case STX:
		return cpu.opSTX()
	case STY:
		return cpu.opSTY()
	case TAX:
		return cpu.opTAX()
	case TAY:
		return cpu.opTAY()
	case TSX:
		return cpu.opTSX()
	case TXA:
		return cpu.opTXA()
	case TXS:
		return cpu.opTXS()
	case TYA:
		return cpu.opTYA()
	}
	return cpu.opXXX()
}

////////////////////////////////////////////////////////////////
// Instructions

// ADC - Add with Carry
func (cpu *Cpu6502) opADC() bool {
	cpu.addWithCarry(cpu.fetch())
	return true
}

// Shared by ADC and SBC. The NES 2A03 has no decimal mode.
func (cpu *Cpu6502) addWithCarry(value byte) {
	// 16-bit to keep any carry.
	result := uint16(cpu.A) + uint16(value) + uint16(cpu.getFlag(StatusFlagC))

	cpu.setFlag(StatusFlagC, result > 0xFF)

	// Overflow when both operands have the same sign and the result's sign
	// differs from them.
	r := byte(result)
	cpu.setFlag(StatusFlagV, (^(cpu.A^value))&(cpu.A^r)&0x80 != 0)

	cpu.A = r
	cpu.setZN(cpu.A)
}

// AND - Logical AND
func (cpu *Cpu6502) opAND() bool {
	cpu.A &= cpu.fetch()
	cpu.setZN(cpu.A)

	return true
}

// Store the result of a read-modify-write instruction to the accumulator
// in implied mode, else to memory.
func (cpu *Cpu6502) writeBack(v byte) {
	if cpu.isImpliedAddr {
		cpu.A = v
	} else {
		cpu.write(cpu.addrAbs, v)
	}
}

// ASL - Arithmetic Shift Left
func (cpu *Cpu6502) opASL() bool {
	value := cpu.fetch()

	// Set carry flag to old bit 7.
	cpu.setFlag(StatusFlagC, value&0x80 != 0)

	result := value << 1
	cpu.setZN(result)
	cpu.writeBack(result)

	return false
}

// Take a branch if cond holds. A taken branch costs one cycle, and one more
// if the target is on another page.
func (cpu *Cpu6502) branch(cond bool) bool {
	if cond {
		cpu.cycles++

		cpu.addrAbs = cpu.Pc + cpu.addrRel

		if pageCrossed(cpu.addrAbs, cpu.Pc) {
			cpu.cycles++
		}

		cpu.Pc = cpu.addrAbs
	}

	return false
}

// BCC - Branch if Carry Clear
func (cpu *Cpu6502) opBCC() bool { return cpu.branch(cpu.getFlag(StatusFlagC) == 0) }

// BCS - Branch if Carry Set
func (cpu *Cpu6502) opBCS() bool { return cpu.branch(cpu.getFlag(StatusFlagC) == 1) }

// BEQ - Branch if Equal
func (cpu *Cpu6502) opBEQ() bool { return cpu.branch(cpu.getFlag(StatusFlagZ) == 1) }

// BIT - Bit Test
func (cpu *Cpu6502) opBIT() bool {
	value := cpu.fetch()

	cpu.setFlag(StatusFlagZ, value&cpu.A == 0)
	cpu.setFlag(StatusFlagV, value&(1<<6) != 0)
	cpu.setFlag(StatusFlagN, value&(1<<7) != 0)

	return false
}

// BMI - Branch if Minus
func (cpu *Cpu6502) opBMI() bool { return cpu.branch(cpu.getFlag(StatusFlagN) == 1) }

// BNE - Branch if Not Equal
func (cpu *Cpu6502) opBNE() bool { return cpu.branch(cpu.getFlag(StatusFlagZ) == 0) }

// BPL - Branch if Positive
func (cpu *Cpu6502) opBPL() bool { return cpu.branch(cpu.getFlag(StatusFlagN) == 0) }

// BRK - Force Interrupt
//
// Decoded with immediate addressing so the padding byte after the opcode is
// skipped; the return address is the opcode address + 2.
func (cpu *Cpu6502) opBRK() bool {
	cpu.stackPushWord(cpu.Pc)

	// The pushed copy of the status has B set.
	// http://visual6502.org/wiki/index.php?title=6502_BRK_and_B_bit
	cpu.stackPush(cpu.Status | byte(StatusFlagB) | byte(StatusFlagU))
	cpu.setFlag(StatusFlagI, true)

	cpu.Pc = cpu.readWord(irqVectAddr)

	return false
}

// BVC - Branch if Overflow Clear
func (cpu *Cpu6502) opBVC() bool { return cpu.branch(cpu.getFlag(StatusFlagV) == 0) }

// BVS - Branch if Overflow Set
func (cpu *Cpu6502) opBVS() bool { return cpu.branch(cpu.getFlag(StatusFlagV) == 1) }

// CLC - Clear Carry Flag
func (cpu *Cpu6502) opCLC() bool {
	cpu.setFlag(StatusFlagC, false)
	return false
}

// CLD - Clear Decimal Mode
func (cpu *Cpu6502) opCLD() bool {
	cpu.setFlag(StatusFlagD, false)
	return false
}

// CLI - Clear Interrupt Disable
func (cpu *Cpu6502) opCLI() bool {
	cpu.setFlag(StatusFlagI, false)
	return false
}

// CLV - Clear Overflow Flag
func (cpu *Cpu6502) opCLV() bool {
	cpu.setFlag(StatusFlagV, false)
	return false
}

// Flags are set as for reg - value, the result is discarded.
func (cpu *Cpu6502) compare(reg byte) {
	value := cpu.fetch()

	cpu.setFlag(StatusFlagC, reg >= value)
	cpu.setZN(reg - value)
}

// CMP - Compare (Accumulator)
func (cpu *Cpu6502) opCMP() bool {
	cpu.compare(cpu.A)
	return true
}

// CPX - Compare X Register
func (cpu *Cpu6502) opCPX() bool {
	cpu.compare(cpu.X)
	return false
}

// CPY - Compare Y Register
func (cpu *Cpu6502) opCPY() bool {
	cpu.compare(cpu.Y)
	return false
}

// DEC - Decrement Memory
func (cpu *Cpu6502) opDEC() bool {
	value := cpu.fetch() - 1
	cpu.write(cpu.addrAbs, value)
	cpu.setZN(value)

	return false
}

// DEX - Decrement X Register
func (cpu *Cpu6502) opDEX() bool {
	cpu.X--
	cpu.setZN(cpu.X)

	return false
}

// DEY - Decrement Y Register
func (cpu *Cpu6502) opDEY() bool {
	cpu.Y--
	cpu.setZN(cpu.Y)

	return false
}

// EOR - Exclusive OR
func (cpu *Cpu6502) opEOR() bool {
	cpu.A ^= cpu.fetch()
	cpu.setZN(cpu.A)

	return true
}

// INC - Increment Memory
func (cpu *Cpu6502) opINC() bool {
	value := cpu.fetch() + 1
	cpu.write(cpu.addrAbs, value)
	cpu.setZN(value)

	return false
}

// INX - Increment X Register
func (cpu *Cpu6502) opINX() bool {
	cpu.X++
	cpu.setZN(cpu.X)

	return false
}

// INY - Increment Y Register
func (cpu *Cpu6502) opINY() bool {
	cpu.Y++
	cpu.setZN(cpu.Y)

	return false
}

// JMP - Jump
func (cpu *Cpu6502) opJMP() bool {
	cpu.Pc = cpu.addrAbs
	return false
}

// JSR - Jump to Subroutine
//
// The address pushed is that of the last byte of the JSR instruction. RTS
// adds one when pulling it back.
func (cpu *Cpu6502) opJSR() bool {
	cpu.stackPushWord(cpu.Pc - 1)
	cpu.Pc = cpu.addrAbs

	return false
}

// LDA - Load Accumulator
func (cpu *Cpu6502) opLDA() bool {
	cpu.A = cpu.fetch()
	cpu.setZN(cpu.A)

	return true
}

// LDX - Load X Register
func (cpu *Cpu6502) opLDX() bool {
	cpu.X = cpu.fetch()
	cpu.setZN(cpu.X)

	return true
}

// LDY - Load Y Register
func (cpu *Cpu6502) opLDY() bool {
	cpu.Y = cpu.fetch()
	cpu.setZN(cpu.Y)

	return true
}

// LSR - Logical Shift Right
func (cpu *Cpu6502) opLSR() bool {
	value := cpu.fetch()

	// Set carry flag to old bit 0.
	cpu.setFlag(StatusFlagC, value&0x01 != 0)

	result := value >> 1
	cpu.setZN(result)
	cpu.writeBack(result)

	return false
}

// NOP - No Operation
func (cpu *Cpu6502) opNOP() bool { return false }

// ORA - Logical Inclusive OR
func (cpu *Cpu6502) opORA() bool {
	cpu.A |= cpu.fetch()
	cpu.setZN(cpu.A)

	return true
}

// PHA - Push Accumulator
func (cpu *Cpu6502) opPHA() bool {
	cpu.stackPush(cpu.A)
	return false
}

// PHP - Push Processor Status
func (cpu *Cpu6502) opPHP() bool {
	// B and U are always set in the pushed copy.
	cpu.stackPush(cpu.Status | byte(StatusFlagB) | byte(StatusFlagU))
	return false
}

// PLA - Pull Accumulator
func (cpu *Cpu6502) opPLA() bool {
	cpu.A = cpu.stackPop()
	cpu.setZN(cpu.A)

	return false
}

// Load the status register from the stack. B only exists on the stack.
func (cpu *Cpu6502) pullStatus() {
	cpu.Status = cpu.stackPop()
	cpu.setFlag(StatusFlagB, false)
	cpu.setFlag(StatusFlagU, true)
}

// PLP - Pull Processor Status
func (cpu *Cpu6502) opPLP() bool {
	cpu.pullStatus()
	return false
}

// ROL - Rotate Left
func (cpu *Cpu6502) opROL() bool {
	value := cpu.fetch()
	carry := cpu.getFlag(StatusFlagC)

	// Set carry flag to bit 7 of old value.
	cpu.setFlag(StatusFlagC, value&0x80 != 0)

	result := value<<1 | carry
	cpu.setZN(result)
	cpu.writeBack(result)

	return false
}

// ROR - Rotate Right
func (cpu *Cpu6502) opROR() bool {
	value := cpu.fetch()
	carry := cpu.getFlag(StatusFlagC)

	// Set carry flag to bit 0 of old value.
	cpu.setFlag(StatusFlagC, value&0x01 != 0)

	result := value>>1 | carry<<7
	cpu.setZN(result)
	cpu.writeBack(result)

	return false
}

// RTI - Return from Interrupt
func (cpu *Cpu6502) opRTI() bool {
	cpu.pullStatus()
	cpu.Pc = cpu.stackPopWord()

	return false
}

// RTS - Return from Subroutine
func (cpu *Cpu6502) opRTS() bool {
	cpu.Pc = cpu.stackPopWord() + 1
	return false
}

// SBC - Subtract with Carry
//
// A - M - (1 - C) is the same as A + ^M + C.
func (cpu *Cpu6502) opSBC() bool {
	cpu.addWithCarry(^cpu.fetch())
	return true
}

// SEC - Set Carry Flag
func (cpu *Cpu6502) opSEC() bool {
	cpu.setFlag(StatusFlagC, true)
	return false
}

// SED - Set Decimal Flag
func (cpu *Cpu6502) opSED() bool {
	cpu.setFlag(StatusFlagD, true)
	return false
}

// SEI - Set Interrupt Disable
func (cpu *Cpu6502) opSEI() bool {
	cpu.setFlag(StatusFlagI, true)
	return false
}

// STA - Store Accumulator
func (cpu *Cpu6502) opSTA() bool {
	cpu.write(cpu.addrAbs, cpu.A)
	return false
}

// STX - Store X Register
func (cpu *Cpu6502) opSTX() bool {
	cpu.write(cpu.addrAbs, cpu.X)
	return false
}

// STY - Store Y Register
func (cpu *Cpu6502) opSTY() bool {
	cpu.write(cpu.addrAbs, cpu.Y)
	return false
}

// TAX - Transfer Accumulator to X
func (cpu *Cpu6502) opTAX() bool {
	cpu.X = cpu.A
	cpu.setZN(cpu.X)

	return false
}

// TAY - Transfer Accumulator to Y
func (cpu *Cpu6502) opTAY() bool {
	cpu.Y = cpu.A
	cpu.setZN(cpu.Y)

	return false
}

// TSX - Transfer Stack Pointer to X
func (cpu *Cpu6502) opTSX() bool {
	cpu.X = cpu.Sp
	cpu.setZN(cpu.X)

	return false
}

// TXA - Transfer X to Accumulator
func (cpu *Cpu6502) opTXA() bool {
	cpu.A = cpu.X
	cpu.setZN(cpu.A)

	return false
}

// TXS - Transfer X to Stack Pointer
func (cpu *Cpu6502) opTXS() bool {
	cpu.Sp = cpu.X
	return false
}

// TYA - Transfer Y to Accumulator
func (cpu *Cpu6502) opTYA() bool {
	cpu.A = cpu.Y
	cpu.setZN(cpu.A)

	return false
}

// Catch-all instruction for illegal opcodes. Costs its base cycles and
// does nothing else.
func (cpu *Cpu6502) opXXX() bool { return false }
