package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/backend/sdl2"
	"github.com/valerio/go-chip8/chip8/backend/terminal"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/events"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Description = "A CHIP-8 interpreter"
	app.Usage = "chip8 [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "backend",
			Value: "terminal",
			Usage: "Presentation backend: terminal, sdl2 or headless",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without any presentation (same as --backend headless)",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save PNG snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.BoolFlag{
			Name:  "echo",
			Usage: "Print changed frames to the terminal in headless mode",
		},
		cli.IntFlag{
			Name:  "ips",
			Value: events.DefaultInstructionsPerSecond,
			Usage: "Instructions executed per second",
		},
		cli.BoolFlag{
			Name:  "strict",
			Usage: "Report unknown instructions instead of silently skipping them",
		},
		cli.BoolFlag{
			Name:  "shift-vx",
			Usage: "8XY6/8XYE shift VX in place, ignoring VY",
		},
		cli.Uint64Flag{
			Name:  "seed",
			Usage: "Seed for the CXNN random generator (0 = random)",
		},
		cli.BoolFlag{
			Name:  "audio",
			Usage: "Play the buzzer on the default audio device",
		},
		cli.StringFlag{
			Name:  "limiter",
			Value: "adaptive",
			Usage: "Frame pacing for interactive backends: adaptive, ticker or none",
		},
		cli.IntFlag{
			Name:  "scale",
			Value: display.DefaultPixelScale,
			Usage: "Window pixels per display pixel (sdl2)",
		},
		cli.BoolFlag{
			Name:  "test-pattern",
			Usage: "Display a test pattern instead of emulation (for debugging display)",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
	app.Action = runEmulator
	return app
}

// frameLimited is implemented by emulators that pace their frames.
type frameLimited interface {
	SetFrameLimiter(limiter timing.Limiter)
}

// levelHandler is implemented by backends that own the log level.
type levelHandler interface {
	HandleAction(act action.Action)
}

func runEmulator(c *cli.Context) error {
	backendName := strings.ToLower(c.String("backend"))
	if c.Bool("headless") {
		backendName = "headless"
	}
	configureLogging(backendName, c.Bool("debug"))

	romPath := c.String("rom")
	if romPath == "" && c.NArg() > 0 {
		romPath = c.Args().Get(0)
	}

	testPattern := c.Bool("test-pattern")
	if romPath == "" && !testPattern {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided")
	}

	b, err := newBackend(c, backendName, romPath)
	if err != nil {
		return err
	}

	var (
		emu     chip8.Emulator
		machine *chip8.Machine
		pattern *chip8.TestPatternEmulator
	)
	if testPattern {
		slog.Info("Running in test pattern mode")
		pattern = chip8.NewTestPatternEmulator()
		emu = pattern
	} else {
		machine, err = chip8.NewWithFile(romPath, machineConfig(c))
		if err != nil {
			return err
		}
		emu = machine
	}

	limiter, err := newLimiter(c.String("limiter"), backendName == "headless")
	if err != nil {
		return err
	}
	if ticker, ok := limiter.(*timing.TickerLimiter); ok {
		defer ticker.Stop()
	}
	emu.(frameLimited).SetFrameLimiter(limiter)

	player := newPlayer(c.Bool("audio"))
	defer player.Close()

	running := true
	config := backend.BackendConfig{
		Title:       fmt.Sprintf("CHIP-8 - %s", romLabel(romPath)),
		Scale:       c.Int("scale"),
		TestPattern: testPattern,
		Callbacks: backend.BackendCallbacks{
			OnQuit: func() { running = false },
			GetStatus: func() backend.Status {
				status := backend.Status{
					ROMName: romLabel(romPath),
					State:   emu.Status(),
					Tone:    emu.ToneActive(),
				}
				if machine != nil {
					status.Paused = machine.Paused()
				}
				return status
			},
		},
	}
	if err := b.Init(config); err != nil {
		return fmt.Errorf("failed to initialize %s backend: %w", backendName, err)
	}
	defer b.Cleanup()

	var keypad input.Keypad
	if machine != nil {
		keypad = machine
	}
	manager := input.NewManager(keypad)
	manager.On(action.EmulatorQuit, event.Press, func() { running = false })
	for _, act := range []action.Action{action.EmulatorPauseToggle, action.EmulatorReset, action.EmulatorTestPatternCycle} {
		manager.On(act, event.Press, func() { emu.HandleAction(act, true) })
	}
	manager.On(action.EmulatorSnapshot, event.Press, func() {
		patternType := 0
		if pattern != nil {
			patternType = pattern.PatternType()
		}
		debug.TakeSnapshot(emu.GetCurrentFrame(), pattern != nil, patternType)
	})
	if lh, ok := b.(levelHandler); ok {
		for _, act := range []action.Action{action.DebugLogLevelIncrease, action.DebugLogLevelDecrease} {
			manager.On(act, event.Press, func() { lh.HandleAction(act) })
		}
	}

	return runLoop(emu, b, manager, player, &running, backendName == "headless")
}

// runLoop runs frames until the backend or the user asks to quit. Emulation
// errors are logged once and presentation continues, so a halted program can
// still be inspected or reset. In headless mode the last error is returned.
func runLoop(emu chip8.Emulator, b backend.Backend, manager *input.Manager, player audio.Player, running *bool, headlessMode bool) error {
	var lastErr error
	for *running {
		err := emu.RunUntilFrame()
		if err != nil && (lastErr == nil || err.Error() != lastErr.Error()) {
			slog.Warn("Emulation error", "error", err, "status", emu.Status())
		}
		lastErr = err

		player.SetActive(emu.ToneActive())

		evts, err := b.Update(emu.GetCurrentFrame())
		if err != nil {
			return fmt.Errorf("backend update failed: %w", err)
		}
		manager.Dispatch(evts)
	}

	if headlessMode {
		return lastErr
	}
	return nil
}

func configureLogging(backendName string, debugLevel bool) {
	switch {
	case backendName == "headless":
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		slog.SetDefault(slog.New(handler))
	case debugLevel:
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
}

func machineConfig(c *cli.Context) chip8.Config {
	return chip8.Config{
		InstructionsPerSecond: c.Int("ips"),
		CPU: cpu.Config{
			Quirks: cpu.Quirks{ShiftUsesVX: c.Bool("shift-vx")},
			Strict: c.Bool("strict"),
			Seed:   c.Uint64("seed"),
		},
	}
}

func newBackend(c *cli.Context, name, romPath string) (backend.Backend, error) {
	switch name {
	case "terminal":
		return terminal.New(), nil
	case "sdl2":
		return sdl2.New(), nil
	case "headless":
		snapshotConfig, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath)
		if err != nil {
			return nil, err
		}
		var opts []headless.Option
		if c.Bool("echo") {
			opts = append(opts, headless.WithEcho())
		}
		return headless.New(c.Int("frames"), snapshotConfig, opts...), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// newLimiter picks frame pacing. Headless runs are never paced.
func newLimiter(name string, headlessMode bool) (timing.Limiter, error) {
	if headlessMode {
		return timing.NewNoOpLimiter(), nil
	}
	switch name {
	case "adaptive":
		return timing.NewAdaptiveLimiter(), nil
	case "ticker":
		return timing.NewTickerLimiter(), nil
	case "none":
		return timing.NewNoOpLimiter(), nil
	default:
		return nil, fmt.Errorf("unknown limiter %q", name)
	}
}

// newPlayer opens the speaker when asked to. Without a device the buzzer
// state still flows through a silent tone.
func newPlayer(enabled bool) audio.Player {
	if enabled {
		s, err := audio.NewSpeaker()
		if err == nil {
			return s
		}
		slog.Warn("Audio disabled", "error", err)
	}
	return audio.NewTone(audio.SampleRate, audio.ToneFrequency)
}

func romLabel(romPath string) string {
	if romPath == "" {
		return "test pattern"
	}
	return strings.TrimSuffix(filepath.Base(romPath), filepath.Ext(romPath))
}
