package nes

// Device is implemented by every component attached to the main bus.
//
// CpuRead and CpuWrite return whether the device claimed the address. A
// device that does not claim an address must leave data untouched. When
// readOnly is set the device must not trigger any read side effects
// (latches, buffers, shift registers).
type Device interface {
	Reset()
	Clock()
	CpuRead(addr uint16, data *byte, readOnly bool) bool
	CpuWrite(addr uint16, data byte) bool
}

// CpuBus is the view of the main bus the CPU is connected to.
type CpuBus interface {
	CpuRead(addr uint16, data *byte, readOnly bool) bool
	CpuWrite(addr uint16, data byte) bool
}

// FrameSink receives the picture produced by the PPU. OpenFrame and
// CloseFrame bracket every frame; SetPixel is called once per visible dot.
type FrameSink interface {
	OpenFrame()
	SetPixel(x, y int, r, g, b byte)
	CloseFrame()
}

// NullFrame discards everything. Used when running headless.
type NullFrame struct{}

func (NullFrame) OpenFrame()                      {}
func (NullFrame) SetPixel(x, y int, r, g, b byte) {}
func (NullFrame) CloseFrame()                     {}
