package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/bobbbay/emu/cpu"
	"github.com/bobbbay/emu/emulator"
	"github.com/bobbbay/emu/gfx"
	"github.com/bobbbay/emu/io"
)

func main() {
	var compile string
	var headless bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.BoolVar(&headless, "headless", false, "Run without a window")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() > 1 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
	}

	var display *gfx.Display
	var adapter cpu.Adapter
	if headless {
		adapter = &io.Headless{}
	} else {
		display = &gfx.Display{}
		adapter = display
	}

	emu := emulator.NewEmulator(adapter)
	emu.Verbose = verbose

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		err = emu.Assemble(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		if err = emu.Reset(); err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case flag.NArg() == 1:
		image, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			log.Fatalf("%v: %v", flag.Arg(0), err)
		}
		if err = emu.Load(image); err != nil {
			log.Fatalf("%v: %v", flag.Arg(0), err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	if headless {
		report(emu.Run())
		return
	}

	result := make(chan error, 1)
	go func() {
		result <- emu.Run()
		display.Stop()
	}()

	if err := display.Run("emu"); err != nil {
		log.Fatalf("display: %v", err)
	}

	report(<-result)
}

// report prints the terminal outcome. Halt and cooperative
// cancellation are clean exits; everything else is a fault.
func report(err error) {
	switch {
	case err == nil:
		// Halted normally.
	case errors.Is(err, cpu.ErrCancelled):
		color.New(color.FgYellow).Fprintf(os.Stderr, "emu: %v\n", err)
	default:
		color.New(color.FgRed).Fprintf(os.Stderr, "emu: %v\n", err)
		os.Exit(1)
	}
}
