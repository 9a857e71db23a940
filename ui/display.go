package ui

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"github.com/n-ulricksen/nescore/nes"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// Display is a pixelgl window the PPU renders into. With debug enabled a
// panel to the right of the game shows CPU state, disassembly around the
// program counter and the pattern tables.
type Display struct {
	rgba *image.RGBA // Rectangle of RGBA points, used to manipulate pixels on the screen.

	window     *pixelgl.Window
	gameMatrix pixel.Matrix // Scale and position to render the running NES game.

	debug      bool
	debugText  *text.Text
	disasm     map[uint16]string
	disasmKeys []uint16

	frames uint64
}

const (
	// Main NES display settings
	nesResW    float64 = 256
	nesResH    float64 = 240
	scale      float64 = 2 // Scale at which to render NES display.
	screenW    float64 = nesResW * scale
	screenH    float64 = nesResH * scale
	screenPosX float64 = 600 // Where to render the display on the user's monitor.
	screenPosY float64 = 400

	// Debug display settings
	debugResW    float64 = 300
	debugMargin  float64 = 8
	disasmLines          = 13
	patternScale float64 = 1
)

// NewDisplay opens the emulator window. Must be called from the function
// passed to pixelgl.Run.
func NewDisplay(debug bool) (*Display, error) {
	rect := image.Rect(0, 0, int(nesResW), int(nesResH))
	rgba := image.NewRGBA(rect)

	width := screenW
	if debug {
		width += debugResW
	}

	config := pixelgl.WindowConfig{
		Title:    "NES Emulator",
		Bounds:   pixel.R(0, 0, width, screenH),
		Position: pixel.V(screenPosX, screenPosY),
		VSync:    true,
	}
	window, err := pixelgl.NewWindow(config)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create pixelgl window")
	}

	// Calculate matrix required to render game to display based on the set scale.
	pic := pixel.PictureDataFromImage(rgba)

	matrix := pixel.IM.Moved(pic.Bounds().Center())
	matrix = matrix.Scaled(pixel.ZV, scale)

	d := &Display{
		rgba:       rgba,
		window:     window,
		gameMatrix: matrix,
		debug:      debug,
	}

	if debug {
		atlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
		d.debugText = text.New(pixel.V(screenW+debugMargin, screenH-2*debugMargin), atlas)
		d.debugText.Color = colornames.White
	}

	return d, nil
}

func (d *Display) Window() *pixelgl.Window { return d.window }

func (d *Display) Closed() bool { return d.window.Closed() }

// Frame count presented so far.
func (d *Display) Frames() uint64 { return d.frames }

// FrameSink implementation.

func (d *Display) OpenFrame() {}

func (d *Display) SetPixel(x, y int, r, g, b byte) {
	d.rgba.SetRGBA(x, y, color.RGBA{r, g, b, 255})
}

func (d *Display) CloseFrame() { d.frames++ }

// SetDisassembly gives the debug panel a program listing to show.
func (d *Display) SetDisassembly(disasm map[uint16]string) {
	d.disasm = disasm
	d.disasmKeys = d.disasmKeys[:0]
	for addr := range disasm {
		d.disasmKeys = append(d.disasmKeys, addr)
	}
	sort.Slice(d.disasmKeys, func(i, j int) bool { return d.disasmKeys[i] < d.disasmKeys[j] })
}

// UpdateScreen presents the last completed frame and polls window events.
func (d *Display) UpdateScreen(bus *nes.Bus) {
	d.window.Clear(colornames.Black)

	pic := pixel.PictureDataFromImage(d.rgba)

	sprite := pixel.NewSprite(pic, pic.Bounds())
	sprite.Draw(d.window, d.gameMatrix)

	if d.debug && bus != nil {
		d.drawDebug(bus)
	}

	d.window.Update()
}

func (d *Display) drawDebug(bus *nes.Bus) {
	t := d.debugText
	t.Clear()

	printDebugCpu(t, bus.Cpu)
	printDebugDisasm(t, bus.Cpu.Pc, d.disasm, d.disasmKeys)

	fmt.Fprintln(t, "\nOAM:")
	for i := 0; i < 4; i++ {
		fmt.Fprintf(t, "%02d %s\n", i, bus.Ppu.Sprite(i))
	}

	t.Draw(d.window, pixel.IM)

	// Both pattern tables along the bottom of the panel.
	for i := 0; i < 2; i++ {
		pic := pixel.PictureDataFromImage(bus.Ppu.GetPatternTable(i, 0))
		sprite := pixel.NewSprite(pic, pic.Bounds())

		w := pic.Bounds().W() * patternScale
		pos := pixel.V(screenW+debugMargin+float64(i)*(w+debugMargin)+w/2, debugMargin+w/2)
		sprite.Draw(d.window, pixel.IM.Scaled(pixel.ZV, patternScale).Moved(pos))
	}
}

func printDebugCpu(t *text.Text, cpu *nes.Cpu6502) {
	fmt.Fprintf(t, "Flags: %08b\n", cpu.Status)
	fmt.Fprintf(t, "       NV-BDIZC\n")
	fmt.Fprintf(t, "PC: $%04X  SP: $%02X\n", cpu.Pc, cpu.Sp)
	fmt.Fprintf(t, "A: $%02X  X: $%02X  Y: $%02X\n", cpu.A, cpu.X, cpu.Y)

	// Cycles
	fmt.Fprintf(t, "Cycle Count: %d\n\n", cpu.CycleCount)
}

// Print the instructions surrounding pc.
func printDebugDisasm(t *text.Text, pc uint16, disasm map[uint16]string, keys []uint16) {
	if len(keys) == 0 {
		return
	}

	idx := sort.Search(len(keys), func(i int) bool { return keys[i] >= pc })
	start := idx - disasmLines/2
	if start < 0 {
		start = 0
	}

	for i := start; i < start+disasmLines && i < len(keys); i++ {
		marker := "  "
		if keys[i] == pc {
			marker = "> "
		}
		fmt.Fprintf(t, "%s%s\n", marker, disasm[keys[i]])
	}
}
