package ui

import (
	"github.com/faiface/pixel/pixelgl"
	"github.com/n-ulricksen/nescore/nes"
)

// NES controller buttons and their keyboard binds.
/*
	Right  ---> D
	Left   ---> A
	Down   ---> S
	Up     ---> W
	Start  ---> Enter
	Select ---> Right Shift
	B      ---> K
	A      ---> J
*/
var controllerKeys = map[nes.Button]pixelgl.Button{
	nes.ButtonRight:  pixelgl.KeyD,
	nes.ButtonLeft:   pixelgl.KeyA,
	nes.ButtonDown:   pixelgl.KeyS,
	nes.ButtonUp:     pixelgl.KeyW,
	nes.ButtonStart:  pixelgl.KeyEnter,
	nes.ButtonSelect: pixelgl.KeyRightShift,
	nes.ButtonB:      pixelgl.KeyK,
	nes.ButtonA:      pixelgl.KeyJ,
}

// Keys that control the emulator rather than the game.
const (
	KeyReset = pixelgl.KeyR
	KeyQuit  = pixelgl.KeyEscape
)

// UpdateControllerInput copies the keyboard state into controller port 0.
func UpdateControllerInput(win *pixelgl.Window, ctrl *nes.Controller) {
	for button, key := range controllerKeys {
		if win.JustPressed(key) {
			ctrl.SetButton(0, button, true)
		}
		if win.JustReleased(key) {
			ctrl.SetButton(0, button, false)
		}
	}
}
