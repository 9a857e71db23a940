package nes

// Button is one bit of a standard controller's state byte.
type Button byte

// Available NES controller buttons. Bit 7 is shifted out first.
const (
	ButtonRight Button = 1 << iota
	ButtonLeft
	ButtonDown
	ButtonUp
	ButtonStart
	ButtonSelect
	ButtonB
	ButtonA
)

// Controller holds both controller ports. Writing 1 then 0 to 0x4016 latches
// the button state, and each read of 0x4016/0x4017 shifts out one button in
// the order A, B, Select, Start, Up, Down, Left, Right.
// Reference: https://wiki.nesdev.com/w/index.php/Standard_controller
type Controller struct {
	buttonState [2]byte // Key press state: on/off
	shift       [2]byte
	strobe      bool
}

func NewController() *Controller {
	return &Controller{}
}

// SetButton updates the pressed state of a button on port 0 or 1.
func (c *Controller) SetButton(port int, b Button, pressed bool) {
	if pressed {
		c.buttonState[port&1] |= byte(b)
	} else {
		c.buttonState[port&1] &^= byte(b)
	}
}

// GetState returns a byte, with each bit representing the state of a button on
// the controller.
func (c *Controller) GetState(port int) byte {
	return c.buttonState[port&1]
}

// Pressed buttons are kept, only the shift registers are cleared.
func (c *Controller) Reset() {
	c.shift = [2]byte{}
	c.strobe = false
}

func (c *Controller) Clock() {}

func (c *Controller) CpuRead(addr uint16, data *byte, readOnly bool) bool {
	port := addr & 1

	if c.strobe {
		c.shift[port] = c.buttonState[port]
	}

	*data = (c.shift[port] & 0x80) >> 7

	if !readOnly {
		c.shift[port] <<= 1
	}

	return true
}

// Only 0x4016 is writable, 0x4017 belongs to the APU.
func (c *Controller) CpuWrite(addr uint16, data byte) bool {
	if addr != ctrlMinAddr {
		return false
	}

	c.strobe = data&1 != 0
	if c.strobe {
		c.shift = c.buttonState
	}

	return true
}
