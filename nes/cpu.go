package nes

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

type Cpu6502 struct {
	Pc     uint16 // Program Counter
	Sp     byte   // Stack Pointer: low 8 bits of next free location on stack.
	A      byte   // Accumulator Register
	X      byte   // X Register
	Y      byte   // Y Register
	Status byte   // Processor Status Flags

	bus CpuBus // Communication Bus

	// Internal variables
	cycles        int    // Remaining cycles for current instruction
	opcode        byte   // Opcode representing next instruction to be executed
	addrAbs       uint16 // Set by addressing mode functions, used by instructions
	addrRel       uint16 // Relative displacement address used for branching
	fetched       byte   // Byte of memory used by CPU instructions
	isImpliedAddr bool   // Whether the current instruction's address mode is implied

	CycleCount uint64 // Total # of cycles executed by the CPU

	forceStart bool   // Use startAddr instead of the reset vector on next reset
	startAddr  uint16 // Start address forced by ForceStartAddress
	nmiPending bool
	irqPending bool

	Logger *log.Logger // Instruction trace, nil when disabled
}

const (
	stackBase     uint16 = 0x0100
	stackReset    byte   = 0xFD
	resetCycles          = 8
	nmiCycles            = 8
	irqCycles            = 7
	nmiVectAddr   uint16 = 0xFFFA
	resetVectAddr uint16 = 0xFFFC
	irqVectAddr   uint16 = 0xFFFE
)

func NewCpu6502() *Cpu6502 {
	return &Cpu6502{
		Sp:     stackReset,
		Status: byte(StatusFlagU),
	}
}

// EnableLogging traces every executed instruction to a new file
// cpu<timestamp>.log in dir. Close the returned file when done.
func (cpu *Cpu6502) EnableLogging(dir string) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0775); err != nil {
		return nil, errors.Wrap(err, "creating log directory")
	}

	now := time.Now()
	logFile := filepath.Join(dir, fmt.Sprintf("cpu%s.log", now.Format("20060102-150405")))
	f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0664)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create CPU log file")
	}

	cpu.Logger = log.New(f, "", 0)

	return f, nil
}

// Connect the CPU to a 16-bit address bus.
func (cpu *Cpu6502) ConnectBus(b CpuBus) { cpu.bus = b }

// ForceStartAddress makes the next Reset start execution at addr instead of
// the address held in the reset vector. It applies to one reset only.
func (cpu *Cpu6502) ForceStartAddress(addr uint16) {
	cpu.forceStart = true
	cpu.startAddr = addr
}

// Addresses that always have a device behind them. Anything between the
// APU/IO registers and the cartridge window is open bus.
func mustClaim(addr uint16) bool {
	return addr < 0x4000 || addr >= prgWindowMin
}

// Read from the attached bus.
func (cpu *Cpu6502) read(addr uint16) byte {
	var data byte
	if !cpu.bus.CpuRead(addr, &data, false) && mustClaim(addr) {
		consistencyPanic("cpu", "bus read", addr, "no device claimed the address")
	}
	return data
}

// Write to the attached bus.
func (cpu *Cpu6502) write(addr uint16, data byte) {
	if !cpu.bus.CpuWrite(addr, data) && mustClaim(addr) {
		consistencyPanic("cpu", "bus write", addr, "no device claimed the address (data $%02X)", data)
	}
}

// Read a word from memory (little endian order).
func (cpu *Cpu6502) readWord(addr uint16) uint16 {
	lo := cpu.read(addr)
	hi := cpu.read(addr + 1)

	return (uint16(hi) << 8) | uint16(lo)
}

// Read a byte from memory at the address previously set by the appropriate
// addressing mode function. Implied instructions operate on the accumulator,
// already stored in fetched.
func (cpu *Cpu6502) fetch() byte {
	if !cpu.isImpliedAddr {
		cpu.fetched = cpu.read(cpu.addrAbs)
	}
	return cpu.fetched
}

// Functions to push and pop from the stack.
func (cpu *Cpu6502) stackPush(data byte) {
	cpu.write(stackBase|uint16(cpu.Sp), data)
	cpu.Sp--
}

func (cpu *Cpu6502) stackPop() byte {
	cpu.Sp++
	return cpu.read(stackBase | uint16(cpu.Sp))
}

func (cpu *Cpu6502) stackPushWord(data uint16) {
	cpu.stackPush(byte(data >> 8))
	cpu.stackPush(byte(data))
}

func (cpu *Cpu6502) stackPopWord() uint16 {
	lo := cpu.stackPop()
	hi := cpu.stackPop()
	return uint16(hi)<<8 | uint16(lo)
}

////////////////////////////////////////////////////////////////
// Status Flags
type SF6502 byte // 6502 Status Flag

const (
	StatusFlagC SF6502 = 1 << iota // Carry
	StatusFlagZ                    // Zero
	StatusFlagI                    // Interrupt Disable
	StatusFlagD                    // Decimal Mode (not used on NES)
	StatusFlagB                    // Break Command
	StatusFlagU                    // Unused, always 1
	StatusFlagV                    // Overflow
	StatusFlagN                    // Negative
)

// Convenience functions used to get and set CPU status flags.
func (cpu *Cpu6502) getFlag(f SF6502) byte {
	if cpu.Status&byte(f) != 0 {
		return 1
	}
	return 0
}

func (cpu *Cpu6502) setFlag(f SF6502, b bool) {
	if b {
		cpu.Status |= byte(f)
	} else {
		cpu.Status &^= byte(f)
	}
}

// Set zero and negative flags from a result.
func (cpu *Cpu6502) setZN(v byte) {
	cpu.setFlag(StatusFlagZ, v == 0)
	cpu.setFlag(StatusFlagN, v&0x80 != 0)
}

////////////////////////////////////////////////////////////////
// Interrupts

// Reset puts the CPU in its power-up state and loads the program counter
// from the reset vector (or the forced start address).
func (cpu *Cpu6502) Reset() {
	if cpu.forceStart {
		cpu.Pc = cpu.startAddr
		cpu.forceStart = false
	} else {
		cpu.Pc = cpu.readWord(resetVectAddr)
	}

	// Clear registers, reset stack pointer
	cpu.A = 0x00
	cpu.X = 0x00
	cpu.Y = 0x00
	cpu.Sp = stackReset
	cpu.Status = byte(StatusFlagU)

	cpu.opcode = 0x00
	cpu.addrAbs = 0x0000
	cpu.addrRel = 0x0000
	cpu.fetched = 0x00
	cpu.isImpliedAddr = false
	cpu.nmiPending = false
	cpu.irqPending = false

	// Spend time on reset
	cpu.cycles = resetCycles
}

// IRQ requests a maskable interrupt, serviced once the current instruction
// completes. Ignored while interrupts are disabled.
func (cpu *Cpu6502) IRQ() {
	if cpu.getFlag(StatusFlagI) == 0 {
		cpu.irqPending = true
	}
}

// NMI requests a non-maskable interrupt, serviced once the current
// instruction completes.
func (cpu *Cpu6502) NMI() { cpu.nmiPending = true }

func (cpu *Cpu6502) interrupt(vector uint16, cycles int) {
	cpu.stackPushWord(cpu.Pc)

	cpu.setFlag(StatusFlagB, false)
	cpu.setFlag(StatusFlagU, true)
	cpu.stackPush(cpu.Status)
	cpu.setFlag(StatusFlagI, true)

	cpu.Pc = cpu.readWord(vector)
	cpu.cycles = cycles
}

// Stall keeps the CPU idle for n extra cycles, e.g. during OAM DMA.
func (cpu *Cpu6502) Stall(n int) { cpu.cycles += n }

// Complete reports whether the CPU is between instructions.
func (cpu *Cpu6502) Complete() bool { return cpu.cycles == 0 }

// Clock represents one CPU clock cycle. A new instruction is fetched,
// decoded and executed all at once when the previous one has used up its
// cycles; the remaining clocks only count down.
func (cpu *Cpu6502) Clock() {
	if cpu.cycles == 0 {
		switch {
		case cpu.nmiPending:
			cpu.nmiPending = false
			cpu.interrupt(nmiVectAddr, nmiCycles)
		case cpu.irqPending && cpu.getFlag(StatusFlagI) == 0:
			cpu.irqPending = false
			cpu.interrupt(irqVectAddr, irqCycles)
		default:
			cpu.execute()
		}
	}

	cpu.CycleCount++
	cpu.cycles--
}

func (cpu *Cpu6502) execute() {
	pc := cpu.Pc

	// Get the next opcode by reading from the bus at the location of the
	// current program counter.
	cpu.opcode = cpu.read(cpu.Pc)
	cpu.Pc++

	cpu.setFlag(StatusFlagU, true)

	inst := &instLookup[cpu.opcode]

	if cpu.Logger != nil {
		cpu.Logger.Printf("%04X\t%02X - %s \t\tA:%02X X:%02X Y:%02X P:%02X SP:%02X\tCYC:%d",
			pc, cpu.opcode, inst.Name, cpu.A, cpu.X, cpu.Y, cpu.Status, cpu.Sp, cpu.CycleCount)
	}

	cpu.cycles = int(inst.Cycles)
	cpu.isImpliedAddr = inst.AddrMode == IMP

	// An extra cycle is only charged when the addressing mode crossed a page
	// and the instruction is one that pays for it.
	extraCycle1 := cpu.evalAddrMode(inst.AddrMode)
	extraCycle2 := cpu.exec(inst.Op)
	if extraCycle1 && extraCycle2 {
		cpu.cycles++
	}

	cpu.setFlag(StatusFlagU, true)
}

// Step runs the CPU until exactly one instruction (or interrupt sequence)
// has completed. Pending cycles of the previous instruction are drained
// first.
func (cpu *Cpu6502) Step() {
	for cpu.cycles > 0 {
		cpu.Clock()
	}
	cpu.Clock()
	for cpu.cycles > 0 {
		cpu.Clock()
	}
}

func (cpu *Cpu6502) String() string {
	return fmt.Sprintf("CPU-6502: A=$%02X X=$%02X Y=$%02X SP=$%02X PC=$%04X P=$%02X [C=%d Z=%d I=%d D=%d B=%d V=%d N=%d] CYC:%d",
		cpu.A, cpu.X, cpu.Y, cpu.Sp, cpu.Pc, cpu.Status,
		cpu.getFlag(StatusFlagC), cpu.getFlag(StatusFlagZ), cpu.getFlag(StatusFlagI), cpu.getFlag(StatusFlagD),
		cpu.getFlag(StatusFlagB), cpu.getFlag(StatusFlagV), cpu.getFlag(StatusFlagN),
		cpu.CycleCount)
}
