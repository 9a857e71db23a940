package nes

const (
	ramMinAddr uint16 = 0x0000
	ramMaxAddr uint16 = 0x1FFF
	ramMirror  uint16 = 0x07FF // mirror every 2KB.
	ramSize           = 2 * 1024
)

// Ram is the 2KB of work RAM on the main board.
type Ram struct {
	Data [ramSize]byte
}

func NewRam() *Ram { return &Ram{} }

func (r *Ram) Reset() {
	r.Data = [ramSize]byte{}
}

func (r *Ram) Clock() {}

func (r *Ram) CpuRead(addr uint16, data *byte, readOnly bool) bool {
	*data = r.Data[addr&ramMirror]
	return true
}

func (r *Ram) CpuWrite(addr uint16, data byte) bool {
	r.Data[addr&ramMirror] = data
	return true
}
