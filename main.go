package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/faiface/pixel/pixelgl"
	"github.com/n-ulricksen/nescore/nes"
	"github.com/n-ulricksen/nescore/statsview"
	"github.com/n-ulricksen/nescore/ui"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Command line flags
var (
	flagRom       string
	flagProg      string
	flagStart     string
	flagPalette   string
	flagDebug     bool
	flagLogging   bool
	flagHeadless  bool
	flagStatsview string
	flagTicks     uint64
	flagFps       float64
)

func main() {
	parseFlags()

	if flagStatsview != "" {
		statsview.Launch(flagStatsview, os.Stdout)
	}

	cart, err := loadCartridge()
	if err != nil {
		log.Fatalf("Unable to load cartridge: %v", err)
	}
	fmt.Println(cart)

	fmt.Println("Starting NES...")
	nesEmulator := nes.NewBus()

	if flagPalette != "" {
		if err := nesEmulator.Ppu.LoadPalette(flagPalette); err != nil {
			log.Fatal(err)
		}
	}

	if flagLogging {
		logFile, err := nesEmulator.Cpu.EnableLogging("./logs")
		if err != nil {
			log.Fatal(err)
		}
		defer logFile.Close()
	}

	if flagFps > 0 {
		nesEmulator.SetThrottle(nes.NewThrottle(flagFps))
	}

	if flagHeadless {
		runHeadless(nesEmulator, cart)
		return
	}

	pixelgl.Run(runWindow(nesEmulator, cart))
}

func parseFlags() {
	flag.StringVar(&flagRom, "rom", "./roms/nestest.nes", "iNES file to load")
	flag.StringVar(&flagProg, "prog", "", "hex encoded program to run instead of a ROM file")
	flag.StringVar(&flagStart, "start", "0x8000", "start address of -prog")
	flag.StringVar(&flagPalette, "palette", "", ".pal file replacing the built-in NTSC palette")
	flag.BoolVar(&flagDebug, "d", false, "enable debug panel")
	flag.BoolVar(&flagLogging, "l", false, "enable logging")
	flag.BoolVar(&flagHeadless, "headless", false, "run without a window")
	flag.StringVar(&flagStatsview, "statsview", "", "serve runtime statistics on this address, e.g. "+statsview.DefaultAddress)
	flag.Uint64Var(&flagTicks, "ticks", 10*nes.FrameTicks, "bus ticks to run in headless mode")
	flag.Float64Var(&flagFps, "fps", 60, "target frame rate, 0 runs unthrottled")

	flag.Parse()
}

func loadCartridge() (*nes.Cartridge, error) {
	if flagProg == "" {
		return nes.NewCartridge(flagRom)
	}

	program, err := parseProgram(flagProg)
	if err != nil {
		return nil, err
	}

	start, err := strconv.ParseUint(flagStart, 0, 16)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing start address %q", flagStart)
	}

	return nes.NewCartridgeFromBytes(program, uint16(start))
}

// Hex bytes, optionally separated by whitespace: "A2 0A 8E 00 00".
func parseProgram(s string) ([]byte, error) {
	program, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return nil, errors.Wrap(err, "parsing program")
	}
	return program, nil
}

// Turn a consistency panic into a fatal diagnostic. Anything else is
// re-raised.
func recoverConsistency() {
	if r := recover(); r != nil {
		if cerr, ok := r.(*nes.ConsistencyError); ok {
			log.Fatalf("Emulation halted, %s failed: %v", cerr.Component, cerr)
		}
		panic(r)
	}
}

func runWindow(nesEmulator *nes.Bus, cart *nes.Cartridge) func() {
	return func() {
		defer recoverConsistency()

		display, err := ui.NewDisplay(flagDebug)
		if err != nil {
			log.Fatal(err)
		}
		nesEmulator.Ppu.ConnectFrameSink(display)

		fmt.Println("Resetting NES...")
		nesEmulator.LoadCart(cart)

		if flagDebug {
			display.SetDisassembly(nesEmulator.Cpu.Disassemble(0x8000, 0xFFFF))
		}

		win := display.Window()
		for !display.Closed() {
			if win.JustPressed(ui.KeyQuit) {
				return
			}
			if win.JustPressed(ui.KeyReset) {
				nesEmulator.Reset()
			}
			ui.UpdateControllerInput(win, nesEmulator.Ctrl)

			nesEmulator.RunFrame()
			display.UpdateScreen(nesEmulator)
		}
	}
}

func runHeadless(nesEmulator *nes.Bus, cart *nes.Cartridge) {
	defer recoverConsistency()
	defer nes.TimeTrack(time.Now())

	fmt.Println("Resetting NES...")
	nesEmulator.LoadCart(cart)

	// Live status line only when a person is watching.
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	for i := uint64(0); i < flagTicks; i++ {
		nesEmulator.Clock()

		if interactive && nesEmulator.ClockCount%nes.FrameTicks == 0 {
			fmt.Printf("\r%s", nesEmulator.Cpu)
		}
	}
	if interactive {
		fmt.Println()
	}

	fmt.Println(nesEmulator.Cpu)
	printDebugMem(os.Stdout, nesEmulator)

	if flagDebug {
		start, end := disassemblyWindow(nesEmulator.Cpu.Pc)
		printDisassembly(os.Stdout, nesEmulator.Cpu.Disassemble(start, end))
	}
}

// Dump page zero, 16 bytes per line.
func printDebugMem(w io.Writer, nesEmu *nes.Bus) {
	ramRowLimit := 0x0010

	for i := 0x0000; i < 0x0100; i += ramRowLimit {
		fmt.Fprintf(w, "$%04X: % x\n", i, nesEmu.Ram.Data[i:i+ramRowLimit])
	}
}

// Range listed after a headless run, clamped to the top of the address
// space.
func disassemblyWindow(pc uint16) (uint16, uint16) {
	end := pc + 0x20
	if end < pc {
		end = 0xFFFF
	}
	return pc, end
}

func printDisassembly(w io.Writer, disasm map[uint16]string) {
	addrs := make([]int, 0, len(disasm))
	for addr := range disasm {
		addrs = append(addrs, int(addr))
	}
	sort.Ints(addrs)

	for _, addr := range addrs {
		fmt.Fprintln(w, disasm[uint16(addr)])
	}
}
