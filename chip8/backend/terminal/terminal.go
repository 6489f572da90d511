package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/terminal/render"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	width  = video.FramebufferWidth
	height = video.FramebufferHeight

	// two pixel rows per text row
	gameAreaHeight = (height + 1) / 2
	statusHeight   = 6
	minTermWidth   = width + 2
	minTermHeight  = gameAreaHeight + 2

	logCapacity = 200
)

// Key expiry timeout - slightly longer than typical key repeat interval.
// Terminals report no key releases, a key is held while it keeps repeating.
const keyTimeout = 100 * time.Millisecond

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen     tcell.Screen
	running    bool
	logBuffer  *render.LogBuffer
	logLevel   *slog.LevelVar
	config     backend.BackendConfig
	eventQueue []backend.InputEvent // non keypad events collected since the last update
	signals    chan os.Signal

	keyStates  map[action.Action]time.Time // Last time each keypad key was seen
	activeKeys map[action.Action]bool      // Keys active in previous frame

	// fps measurement
	fps        float64
	fpsFrames  int
	fpsStarted time.Time

	now func() time.Time
}

// New creates a new terminal backend
func New() *Backend {
	return &Backend{
		now: time.Now,
	}
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	return t.initWithScreen(config, screen)
}

func (t *Backend) initWithScreen(config backend.BackendConfig, screen tcell.Screen) error {
	t.config = config
	t.eventQueue = nil
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)

	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}

	t.screen = screen
	t.running = true
	t.fpsStarted = t.now()

	// Capture logs in the side panel, the terminal is owned by tcell now
	t.logBuffer = render.NewLogBuffer(logCapacity)
	t.logLevel = new(slog.LevelVar)
	t.logLevel.Set(slog.LevelInfo)
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)))

	if config.TestPattern {
		slog.Info("Terminal backend initialized in test pattern mode")
	} else {
		slog.Info("Terminal backend initialized")
	}

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	// Set up signal handling for graceful shutdown
	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	return nil
}

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	now := t.now()

	select {
	case sig := <-t.signals:
		slog.Info("Received signal, quitting", "signal", sig)
		t.running = false
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
	default:
	}

	// Poll for input events synchronously
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	events := t.keypadEvents(now)
	events = append(events, t.eventQueue...)
	t.eventQueue = nil

	if !t.running {
		return events, nil
	}

	t.measureFPS(now)
	backend.Paint(frame, true)
	t.render(frame)
	t.screen.Show()

	return events, nil
}

// keypadEvents synthesizes press, hold and release events from key repeats.
func (t *Backend) keypadEvents(now time.Time) []backend.InputEvent {
	var events []backend.InputEvent
	currentlyActive := make(map[action.Action]bool)

	for act, lastSeen := range t.keyStates {
		if now.Sub(lastSeen) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}

		currentlyActive[act] = true
		if !t.activeKeys[act] {
			slog.Debug("Key press", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		} else {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		}
	}

	// Check for released keys (were active last frame but not this frame)
	for act := range t.activeKeys {
		if !currentlyActive[act] {
			slog.Debug("Key release", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	t.activeKeys = currentlyActive
	return events
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	if t.screen != nil {
		t.screen.Fini()
		t.screen = nil
	}
	return nil
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(1)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(-1)
	}
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEnter:  "Enter",
	tcell.KeyEscape: "Escape",
	tcell.KeyF5:     "F5",
	tcell.KeyF11:    "F11",
	tcell.KeyF12:    "F12",
}

// buildKeyMapping creates the key mapping from default mappings
func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)

	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}

	mapping[tcell.KeyCtrlC] = action.EmulatorQuit

	return mapping
}

// runeKeyName returns the default mapping name of a typed rune
func runeKeyName(r rune) string {
	if r == ' ' {
		return "Space"
	}
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return string(r)
}

// keyMapping maps tcell keys to actions
var keyMapping = buildKeyMapping()

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	act, ok := keyMapping[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		act, ok = input.GetDefaultMapping(runeKeyName(ev.Rune()))
	}
	if !ok {
		return
	}

	if act == action.EmulatorQuit {
		t.running = false
	}

	if _, isKeypad := action.KeypadLine(act); isKeypad {
		t.keyStates[act] = now
		return
	}
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel.Level()
	newLevel := oldLevel - slog.Level(direction*4)
	if newLevel < slog.LevelDebug || newLevel > slog.LevelError {
		return
	}
	t.logLevel.Set(newLevel)
	slog.Info("Log filter changed", "from", oldLevel, "to", newLevel)
}

func (t *Backend) measureFPS(now time.Time) {
	t.fpsFrames++
	if elapsed := now.Sub(t.fpsStarted); elapsed >= time.Second {
		t.fps = float64(t.fpsFrames) / elapsed.Seconds()
		t.fpsFrames = 0
		t.fpsStarted = now
	}
}

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, style)
		return
	}

	t.drawBorders(termWidth)
	if frame != nil {
		t.drawDisplay(frame)
	}

	panelY := gameAreaHeight + 2
	t.drawStatus(1, panelY, termWidth-2)
	t.drawLogs(1, panelY+statusHeight, termWidth-2, termHeight)
}

func (t *Backend) drawBorders(termWidth int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	bottom := gameAreaHeight + 1
	for x := 0; x < width+2 && x < termWidth; x++ {
		t.screen.SetContent(x, 0, '─', nil, borderStyle)
		t.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	for y := 1; y < bottom; y++ {
		t.screen.SetContent(0, y, '│', nil, borderStyle)
		t.screen.SetContent(width+1, y, '│', nil, borderStyle)
	}
	t.screen.SetContent(0, 0, '┌', nil, borderStyle)
	t.screen.SetContent(width+1, 0, '┐', nil, borderStyle)
	t.screen.SetContent(0, bottom, '└', nil, borderStyle)
	t.screen.SetContent(width+1, bottom, '┘', nil, borderStyle)

	title := " CHIP-8 "
	if t.config.Title != "" {
		title = fmt.Sprintf(" %s ", t.config.Title)
	}
	t.drawText(2, 0, width-2, title, titleStyle)
}

// drawDisplay packs two pixel rows into each text row using half blocks.
func (t *Backend) drawDisplay(frame *video.FrameBuffer) {
	on := tcell.ColorWhite
	off := tcell.ColorBlack

	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := frame.GetPixel(uint(x), uint(y))
			bottom := y+1 < height && frame.GetPixel(uint(x), uint(y+1))

			style := tcell.StyleDefault.
				Foreground(colorOf(top, on, off)).
				Background(colorOf(bottom, on, off))
			t.screen.SetContent(x+1, y/2+1, '▀', nil, style)
		}
	}
}

func colorOf(lit bool, on, off tcell.Color) tcell.Color {
	if lit {
		return on
	}
	return off
}

func (t *Backend) drawStatus(x, y, w int) {
	labelStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	valueStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	status := backend.Status{State: "running"}
	if t.config.Callbacks.GetStatus != nil {
		status = t.config.Callbacks.GetStatus()
	}

	state := status.State
	if status.Paused {
		state = "paused"
	}
	tone := "off"
	if status.Tone {
		tone = "on"
	}

	lines := [][2]string{
		{"ROM", status.ROMName},
		{"State", state},
		{"FPS", fmt.Sprintf("%.1f", t.fps)},
		{"Tone", tone},
		{"Keys", "1234/qwer/asdf/zxcv, space pause, F5 reset, F12 snapshot, esc quit"},
	}
	for i, line := range lines {
		label := fmt.Sprintf("%-6s", line[0])
		t.drawText(x, y+i, w, label, labelStyle)
		t.drawText(x+len(label)+1, y+i, w-len(label)-1, line[1], valueStyle)
	}
}

func (t *Backend) drawLogs(x, startY, w, termHeight int) {
	availableHeight := termHeight - startY
	if w <= 0 || availableHeight <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	logs := t.logBuffer.GetRecent(availableHeight, t.logLevel.Level())
	for i, entry := range logs {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}

		t.drawText(x, startY+i, w, render.FormatLogEntry(entry), style)
	}
}

// drawText writes text on one row, truncated with an ellipsis to fit w cells.
func (t *Backend) drawText(x, y, w int, text string, style tcell.Style) {
	if w <= 0 {
		return
	}

	runes := []rune(text)
	if len(runes) > w {
		if w > 3 {
			runes = append(runes[:w-3], '.', '.', '.')
		} else {
			runes = runes[:w]
		}
	}

	for i, r := range runes {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}
