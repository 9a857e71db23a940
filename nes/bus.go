package nes

// Main bus used by the CPU.
type Bus struct {
	Cpu  *Cpu6502    // NES CPU.
	Ram  *Ram        // 2KB work RAM.
	Ppu  *Ppu        // Picture processing unit.
	Apu  *Apu        // Audio processing unit registers.
	Ctrl *Controller // Both controller ports.
	Cart *Cartridge  // NES Cartridge, nil until one is loaded.

	ClockCount uint64

	readRanges  []busRange
	writeRanges []busRange
	throttle    *Throttle
}

// A device mapped into an inclusive range of CPU addresses.
type busRange struct {
	min, max uint16
	dev      Device
}

const (
	// PPU
	ppuMinAddr uint16 = 0x2000
	ppuMaxAddr uint16 = 0x3FFF

	// APU
	apuMinAddr     uint16 = 0x4000
	apuMaxAddr     uint16 = 0x4013
	apuStatusAddr  uint16 = 0x4015
	apuFrameCtrAdr uint16 = 0x4017

	// Controllers
	ctrlMinAddr uint16 = 0x4016
	ctrlMaxAddr uint16 = 0x4017

	// OAM DMA
	dmaAddr uint16 = 0x4014
)

func NewBus() *Bus {
	// Create a new CPU. Here we use a 6502.
	cpu := NewCpu6502()

	// Attach devices to the bus.
	bus := &Bus{
		Cpu:  cpu,
		Ram:  NewRam(),
		Ppu:  NewPpu(),
		Apu:  NewApu(),
		Ctrl: NewController(),
	}

	// Ranges are tried in order. 0x4017 is the APU frame counter on writes
	// and the second controller on reads.
	bus.readRanges = []busRange{
		{ramMinAddr, ramMaxAddr, bus.Ram},
		{ppuMinAddr, ppuMaxAddr, bus.Ppu},
		{apuStatusAddr, apuStatusAddr, bus.Apu},
		{ctrlMinAddr, ctrlMaxAddr, bus.Ctrl},
	}
	bus.writeRanges = []busRange{
		{ramMinAddr, ramMaxAddr, bus.Ram},
		{ppuMinAddr, ppuMaxAddr, bus.Ppu},
		{apuMinAddr, apuMaxAddr, bus.Apu},
		{apuStatusAddr, apuStatusAddr, bus.Apu},
		{apuFrameCtrAdr, apuFrameCtrAdr, bus.Apu},
		{ctrlMinAddr, ctrlMaxAddr, bus.Ctrl},
		{dmaAddr, dmaAddr, &oamDma{bus}},
	}

	// Connect this bus to the cpu.
	cpu.ConnectBus(bus)

	return bus
}

// Used by the CPU to read data from the main bus at a specified address.
// The cartridge gets the first chance to claim the access. data starts at
// 0x00, so unclaimed reads and write-only registers read as 0x00.
func (b *Bus) CpuRead(addr uint16, data *byte, readOnly bool) bool {
	*data = 0x00

	if b.Cart != nil && b.Cart.CpuRead(addr, data, readOnly) {
		return true
	}

	for _, r := range b.readRanges {
		if addr >= r.min && addr <= r.max && r.dev.CpuRead(addr, data, readOnly) {
			return true
		}
	}

	return false
}

// Used by the CPU to write data to the main bus at a specified address.
func (b *Bus) CpuWrite(addr uint16, data byte) bool {
	if b.Cart != nil && b.Cart.CpuWrite(addr, data) {
		return true
	}

	for _, r := range b.writeRanges {
		if addr >= r.min && addr <= r.max && r.dev.CpuWrite(addr, data) {
			return true
		}
	}

	return false
}

// Load a cartridge to the NES. The cartridge is connected to both the CPU
// and PPU, and the system is reset.
func (b *Bus) LoadCart(cart *Cartridge) {
	b.Cart = cart
	b.Ppu.ConnectCartridge(cart)

	b.Reset()
}

// Reset the NES. The cartridge goes first so the CPU sees the mapped reset
// vector.
func (b *Bus) Reset() {
	if b.Cart != nil {
		b.Cart.Reset()
	}
	b.Cpu.Reset()
	b.Ram.Reset()
	b.Ppu.Reset()
	b.Apu.Reset()
	b.Ctrl.Reset()

	b.ClockCount = 0
}

// SetThrottle paces Clock to a wall-clock frame rate. nil disables pacing.
func (b *Bus) SetThrottle(t *Throttle) { b.throttle = t }

// 1 NES clock cycle.
func (b *Bus) Clock() {
	b.Ppu.Clock()
	b.Apu.Clock()

	// CPU runs 3 times slower than PPU.
	if b.ClockCount%3 == 0 {
		b.Cpu.Clock()
	}

	if b.Ppu.nmi {
		b.Ppu.nmi = false
		b.Cpu.NMI()
	}

	b.ClockCount++

	if b.throttle != nil {
		b.throttle.Tick()
	}
}

// RunFrame clocks the system until the PPU completes a frame.
func (b *Bus) RunFrame() {
	for !b.Ppu.FrameComplete {
		b.Clock()
	}
	b.Ppu.FrameComplete = false
}

// oamDma copies a page of CPU memory into PPU OAM when 0x4014 is written.
// Reference: https://wiki.nesdev.com/w/index.php/PPU_registers#OAMDMA
type oamDma struct {
	bus *Bus
}

const dmaStallCycles = 513

func (d *oamDma) Reset() {}
func (d *oamDma) Clock() {}

// Write only.
func (d *oamDma) CpuRead(addr uint16, data *byte, readOnly bool) bool { return false }

func (d *oamDma) CpuWrite(addr uint16, data byte) bool {
	page := uint16(data) << 8

	for i := uint16(0); i < 256; i++ {
		var v byte
		d.bus.CpuRead(page|i, &v, true)
		d.bus.Ppu.writeOamData(v)
	}

	// One more cycle to align on an odd CPU cycle.
	stall := dmaStallCycles
	if d.bus.Cpu.CycleCount%2 == 1 {
		stall++
	}
	d.bus.Cpu.Stall(stall)

	return true
}
