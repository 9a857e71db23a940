package nes

// Apu is the register file of the audio unit. Writes are stored and the
// channel enable bits are reported back on a status read. No samples are
// generated.
// Reference: https://wiki.nesdev.com/w/index.php/APU_registers
type Apu struct {
	regs      [0x18]byte // 0x4000-0x4017, indexed by addr & 0x1F
	enabled   byte       // Channel enable bits written to 0x4015
	frameMode byte       // Last value written to 0x4017

	Ticks uint64
}

func NewApu() *Apu { return &Apu{} }

func (a *Apu) Reset() {
	*a = Apu{}
}

func (a *Apu) Clock() { a.Ticks++ }

// Only the status register is readable.
func (a *Apu) CpuRead(addr uint16, data *byte, readOnly bool) bool {
	if addr != apuStatusAddr {
		return false
	}
	*data = a.enabled & 0x1F
	return true
}

func (a *Apu) CpuWrite(addr uint16, data byte) bool {
	switch {
	case addr >= apuMinAddr && addr <= apuMaxAddr:
		a.regs[addr&0x1F] = data
	case addr == apuStatusAddr:
		a.enabled = data & 0x1F
		a.regs[addr&0x1F] = data
	case addr == apuFrameCtrAdr:
		a.frameMode = data
		a.regs[addr&0x1F] = data
	default:
		return false
	}
	return true
}

// Register returns the last value written to an APU register.
func (a *Apu) Register(addr uint16) byte {
	if addr < apuMinAddr || addr > apuFrameCtrAdr {
		return 0
	}
	return a.regs[addr&0x1F]
}
