package nes

import "testing"

func readButtons(c *Controller, addr uint16) []byte {
	bits := make([]byte, 8)
	for i := range bits {
		c.CpuRead(addr, &bits[i], false)
	}
	return bits
}

func TestControllerReadOrder(t *testing.T) {
	c := NewController()
	c.SetButton(0, ButtonA, true)
	c.SetButton(0, ButtonStart, true)
	c.SetButton(0, ButtonRight, true)

	c.CpuWrite(0x4016, 1)
	c.CpuWrite(0x4016, 0)

	// A, B, Select, Start, Up, Down, Left, Right
	want := []byte{1, 0, 0, 1, 0, 0, 0, 1}
	got := readButtons(c, 0x4016)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("read %d: got %d, want %d", i, got[i], want[i])
		}
	}

	// Exhausted shift register reads 0.
	var data byte
	c.CpuRead(0x4016, &data, false)
	if data != 0 {
		t.Errorf("read 9: got %d, want 0", data)
	}
}

func TestControllerPorts(t *testing.T) {
	c := NewController()
	c.SetButton(1, ButtonB, true)

	c.CpuWrite(0x4016, 1)
	c.CpuWrite(0x4016, 0)

	if got := readButtons(c, 0x4016); got[1] != 0 {
		t.Errorf("port 0 B: got %d, want 0", got[1])
	}
	if got := readButtons(c, 0x4017); got[1] != 1 {
		t.Errorf("port 1 B: got %d, want 1", got[1])
	}

	if c.CpuWrite(0x4017, 1) {
		t.Errorf("$4017 write claimed by controller")
	}
}

func TestControllerStrobeHigh(t *testing.T) {
	c := NewController()
	c.SetButton(0, ButtonA, true)
	c.CpuWrite(0x4016, 1)

	// While strobe is high every read returns A.
	for i := 0; i < 3; i++ {
		var data byte
		c.CpuRead(0x4016, &data, false)
		if data != 1 {
			t.Errorf("read %d: got %d, want 1", i, data)
		}
	}
}

func TestControllerPeek(t *testing.T) {
	c := NewController()
	c.SetButton(0, ButtonA, true)
	c.CpuWrite(0x4016, 1)
	c.CpuWrite(0x4016, 0)

	var data byte
	for i := 0; i < 3; i++ {
		c.CpuRead(0x4016, &data, true)
	}
	c.CpuRead(0x4016, &data, false)
	if data != 1 {
		t.Errorf("after peeks: got %d, want 1", data)
	}
}

func TestControllerSetButton(t *testing.T) {
	c := NewController()
	c.SetButton(0, ButtonUp, true)
	c.SetButton(0, ButtonDown, true)
	c.SetButton(0, ButtonUp, false)

	if got := c.GetState(0); got != byte(ButtonDown) {
		t.Errorf("state: got %08b, want %08b", got, byte(ButtonDown))
	}

	c.CpuWrite(0x4016, 1)
	c.Reset()
	if got := c.GetState(0); got != byte(ButtonDown) {
		t.Errorf("state after reset: got %08b, want %08b", got, byte(ButtonDown))
	}
	var data byte
	c.CpuRead(0x4016, &data, false)
	if data != 0 {
		t.Errorf("shift register after reset: got %d, want 0", data)
	}
}
