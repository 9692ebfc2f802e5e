// Command chip8term runs CHIP-8 ROMs in a terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"golang.org/x/term"

	"github.com/nf/chip8term/chip8"
	"github.com/nf/chip8term/pump"
	"github.com/nf/chip8term/snapshot"
	"github.com/nf/chip8term/sound"
	"github.com/nf/chip8term/termio"
)

func main() {
	log.SetPrefix("chip8term: ")
	log.SetFlags(0)

	var (
		watchFlag    = flag.Bool("watch", false, "reload the ROM whenever its file changes")
		toneFlag     = flag.Bool("tone", false, "play a tone on the speaker instead of ringing the terminal bell")
		traceFlag    = flag.Bool("trace", false, "log every instruction executed")
		logFlag      = flag.String("log", "", "write log output to `file`")
		shotFlag     = flag.String("screenshot", "", "on exit, write the screen to `file` in BMP format")
		scaleFlag    = flag.Int("scale", 10, "size in pixels of each screenshot pixel, at most 100")
		intervalFlag = flag.Duration("interval", pump.DefaultInterval, "pause before each instruction")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <program.ch8 | directory>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nkeypad:\t1 2 3 4\n\tq w e r\n\ta s d f\n\tz x c v\nEsc quits.\n\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}
	if n := *scaleFlag; n < 1 || n > snapshot.MaxScale {
		log.Fatalf("-scale must be between 1 and %d", snapshot.MaxScale)
	}

	var logOut io.WriteCloser
	if name := *logFlag; name != "" {
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("opening log file: %v", err)
		}
		log.SetOutput(f)
		log.SetFlags(log.Ltime | log.Lmicroseconds)
		logOut = f
	}

	stopProfile := func() {}
	if prof := *cpuProfileFlag; prof != "" {
		stop, err := startCPUProfile(prof)
		if err != nil {
			log.Fatal(err)
		}
		stopProfile = stop
	}

	err := run(flag.Arg(0), options{
		watch:      *watchFlag,
		tone:       *toneFlag,
		trace:      *traceFlag,
		holdLog:    logOut == nil,
		screenshot: *shotFlag,
		scale:      *scaleFlag,
		interval:   *intervalFlag,
	})

	stopProfile()
	if errors.Is(err, errNoROM) {
		err = nil
	}
	if err != nil {
		log.Print(err)
	}
	if logOut != nil {
		logOut.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

type options struct {
	watch, tone, trace bool

	// holdLog keeps log output in memory while the terminal is in use,
	// printing it to stderr afterwards.
	holdLog bool

	screenshot string
	scale      int
	interval   time.Duration
}

func run(romFile string, o options) error {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		if !term.IsTerminal(int(f.Fd())) {
			return fmt.Errorf("%s is not a terminal", f.Name())
		}
	}

	fi, err := os.Stat(romFile)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		if romFile, err = pickROM(romFile); err != nil {
			return err
		}
	}

	var trace func(uint16, chip8.Op)
	if o.trace {
		trace = func(pc uint16, op chip8.Op) {
			log.Printf("%.3x  %.4x  %v", pc, uint16(op), op)
		}
	}
	m, err := loadROM(romFile, trace)
	if err != nil {
		return err
	}

	if o.holdLog {
		b := new(backlog)
		log.SetOutput(b)
		defer func() {
			log.SetOutput(os.Stderr)
			b.Emit(os.Stderr)
		}()
	}

	d, err := termio.Open()
	if err != nil {
		return err
	}
	defer d.Close()

	var display pump.Display = d
	if o.tone {
		t, err := sound.Open()
		if err != nil {
			log.Printf("%v; using the terminal bell", err)
		} else {
			defer t.Close()
			display = toneDisplay{Driver: d, tone: t}
		}
	}

	p := pump.New(m, display)
	p.Interval = o.interval
	if o.watch {
		swap, w, err := watchROM(romFile, trace)
		if err != nil {
			return err
		}
		defer w.Close()
		p.Swap = swap
	}

	err = p.Run()
	if name := o.screenshot; name != "" {
		if serr := snapshot.SaveBMP(name, p.Interpreter().Framebuffer(), o.scale); err == nil {
			err = serr
		}
	}
	return err
}

// startCPUProfile writes a CPU profile to the named file until the returned
// function is called.
func startCPUProfile(name string) (stop func(), err error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("creating CPU profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

func loadROM(name string, trace func(uint16, chip8.Op)) (*chip8.Machine, error) {
	rom, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	m, err := chip8.New(rom)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	m.Trace = trace
	return m, nil
}

// toneDisplay sounds the buzzer on the speaker rather than the terminal.
type toneDisplay struct {
	*termio.Driver
	tone *sound.Tone
}

func (d toneDisplay) EmitSound() error { return d.tone.Play() }
