package device

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

var spinnerFrames = []rune{'|', '/', '-', '\\'}

// TerminalDisplay draws the device screen into a box on a tcell screen.
type TerminalDisplay struct {
	mu      sync.Mutex
	screen  tcell.Screen
	style   tcell.Style
	text    string
	spinner bool
	frame   int
}

// NewTerminalDisplay creates a display on the user's terminal.
func NewTerminalDisplay() (*TerminalDisplay, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalDisplayOn(screen), nil
}

// NewTerminalDisplayOn creates a display on screen. Call Init before use.
func NewTerminalDisplayOn(screen tcell.Screen) *TerminalDisplay {
	return &TerminalDisplay{
		screen: screen,
		style:  tcell.StyleDefault,
	}
}

// Init initializes the screen.
func (t *TerminalDisplay) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.render()
	return nil
}

// Shutdown restores the terminal.
func (t *TerminalDisplay) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// SetDisplayText implements Display.
func (t *TerminalDisplay) SetDisplayText(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.text = text
	t.render()
}

// SetSpinnerVisible implements Display.
func (t *TerminalDisplay) SetSpinnerVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.spinner = visible
	t.frame = 0
	t.render()
}

// Tick advances the spinner animation by one frame.
func (t *TerminalDisplay) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.spinner {
		return
	}
	t.frame = (t.frame + 1) % len(spinnerFrames)
	t.render()
}

// render draws the box, the text on row 1 and the spinner on row 3.
// Caller holds t.mu.
func (t *TerminalDisplay) render() {
	t.screen.Clear()

	width, height := t.screen.Size()
	if width < 4 || height < 5 {
		t.screen.Show()
		return
	}

	boxWidth := width
	if n := len([]rune(t.text)) + 4; n < boxWidth {
		boxWidth = n
	}
	if boxWidth < 5 {
		boxWidth = 5
	}
	t.drawBox(boxWidth, 5)

	x := 2
	for _, r := range t.text {
		if x >= boxWidth-2 {
			break
		}
		t.screen.SetContent(x, 1, r, nil, t.style)
		x++
	}

	if t.spinner {
		t.screen.SetContent(2, 3, spinnerFrames[t.frame], nil, t.style)
	}

	t.screen.Show()
}

func (t *TerminalDisplay) drawBox(w, h int) {
	for x := 1; x < w-1; x++ {
		t.screen.SetContent(x, 0, tcell.RuneHLine, nil, t.style)
		t.screen.SetContent(x, h-1, tcell.RuneHLine, nil, t.style)
	}
	for y := 1; y < h-1; y++ {
		t.screen.SetContent(0, y, tcell.RuneVLine, nil, t.style)
		t.screen.SetContent(w-1, y, tcell.RuneVLine, nil, t.style)
	}
	t.screen.SetContent(0, 0, tcell.RuneULCorner, nil, t.style)
	t.screen.SetContent(w-1, 0, tcell.RuneURCorner, nil, t.style)
	t.screen.SetContent(0, h-1, tcell.RuneLLCorner, nil, t.style)
	t.screen.SetContent(w-1, h-1, tcell.RuneLRCorner, nil, t.style)
}
