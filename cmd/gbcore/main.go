// Command gbcore runs the Game Boy emulation core headlessly: it loads a
// ROM, drives the frame harness for a fixed number of frames (or until
// interrupted), and optionally captures audio to a WAV file or dumps a
// JSON register snapshot. The host window/renderer and live audio device
// are out of scope here; this is the core's own driver for development
// and testing.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"gbcore/audio"
	"gbcore/cart"
	"gbcore/debug"
	"gbcore/emu"
	"gbcore/emu/log"
)

type CLI struct {
	Run     RunCmd     `cmd:"" help:"Run a ROM for a fixed number of frames."`
	RomInfo RomInfoCmd `cmd:"" help:"Show cartridge header info." name:"rom-info"`
	Version VersionCmd `cmd:"" help:"Show gbcore version."`

	Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
}

type RunCmd struct {
	RomPath string `arg:"" name:"rom" help:"Path to a Game Boy ROM image." required:"true" type:"existingfile"`

	Frames      int      `name:"frames" help:"Number of frames to run before exiting." default:"60"`
	CaptureWav  string   `name:"capture-wav" help:"Write emitted audio to this WAV file." placeholder:"FILE"`
	DumpState   *outfile `name:"dump-state" help:"Write a JSON register snapshot after running." placeholder:"FILE|stdout|stderr"`
}

type RomInfoCmd struct {
	RomPath string `arg:"" name:"rom" help:"Path to a Game Boy ROM image." required:"true" type:"existingfile"`
}

type VersionCmd struct{}

const version = "0.1.0"

var vars = kong.Vars{
	"log_help": "Enable logging for the given comma-separated modules.",
}

func main() {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("gbcore"),
		kong.Description("Game Boy emulation core."),
		kong.UsageOnError(),
		vars)
	checkf(err, "failed to build CLI parser")

	ctx, err := parser.Parse(os.Args[1:])
	checkf(err, "failed to parse command line")

	switch cmd := ctx.Selected(); {
	case cmd != nil && cmd.Name == "rom-info":
		runRomInfo(cli.RomInfo)
	case cmd != nil && cmd.Name == "version":
		fmt.Println("gbcore", version)
	default:
		runRun(cli.Run)
	}
}

func runRomInfo(cmd RomInfoCmd) {
	c, err := cart.Open(cmd.RomPath)
	checkf(err, "failed to load rom")

	fmt.Printf("title:    %s\n", c.Title)
	fmt.Printf("mbc:      %s\n", c.MBCType)
	fmt.Printf("rom size: %d KiB (%d banks)\n", len(c.ROM)/1024, c.ROMBanks())
	fmt.Printf("ram size: %d KiB\n", c.RAMSize/1024)
}

func runRun(cmd RunCmd) {
	c, err := cart.Open(cmd.RomPath)
	checkf(err, "failed to load rom")

	e := emu.New(c)

	var capture *audio.Capture
	if cmd.CaptureWav != "" {
		capture, err = audio.NewCapture(cmd.CaptureWav, 48000)
		checkf(err, "failed to open wav capture")
		defer capture.Close()
	}

	start := time.Now()
	for i := 0; i < cmd.Frames; i++ {
		e.RunFrame()
		if capture != nil {
			drainAudio(e, capture)
		}
	}
	log.ModEmu.InfoZ("run complete").Int("frames", cmd.Frames).Int("ms", int(time.Since(start).Milliseconds())).End()

	if cmd.DumpState != nil {
		defer cmd.DumpState.Close()
		cmd.DumpState.Write(debug.DumpState(e))
	}
}

func drainAudio(e *emu.Emulator, capture *audio.Capture) {
	ring := e.AudioOutput()
	for ring.Len() > 0 {
		capture.Write(ring.Pop())
	}
}

type logModMask log.Mask

// Decode implements kong.MapperValue, turning a comma-separated module
// list into a log.Mask and installing it as the active mask.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	mask, err := log.ParseMask(tok.Value.(string))
	if err != nil {
		return err
	}
	log.SetMask(mask)
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode implements kong.MapperValue, mapping FILE|stdout|stderr onto an
// io.WriteCloser.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "fatal error:\n\t%s: %s\n", fmt.Sprintf(format, args...), err)
	os.Exit(1)
}
