//go:build linux

package button

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Monitor watches one active-low push button through the Linux GPIO character
// device and reports debounced edges. Wiring assumption: button between the
// pin and ground, internal pull-up enabled, so a falling edge is a press.
type Monitor struct {
	chip   *gpiocdev.Chip
	line   *gpiocdev.Line
	events chan Event
}

// New requests the line named "GPIO<pin>". On Pi kernels the header GPIOs are
// usually on gpiochip0, but variants differ, so every chip is tried.
func New(pin int, debounce time.Duration) (*Monitor, error) {
	if pin <= 0 {
		return nil, fmt.Errorf("button: invalid gpio pin %d", pin)
	}

	lineName := fmt.Sprintf("GPIO%d", pin)

	chipCandidates := []string{"/dev/gpiochip0", "/dev/gpiochip4"}
	entries, _ := os.ReadDir("/dev")
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "gpiochip") {
			chipCandidates = append(chipCandidates, filepath.Join("/dev", name))
		}
	}

	m := &Monitor{events: make(chan Event, 8)}

	for _, chipPath := range chipCandidates {
		chip, err := gpiocdev.NewChip(chipPath)
		if err != nil {
			continue
		}
		offset, err := chip.FindLine(lineName)
		if err != nil {
			_ = chip.Close()
			continue
		}
		line, err := chip.RequestLine(offset,
			gpiocdev.AsInput,
			gpiocdev.WithPullUp,
			gpiocdev.WithBothEdges,
			gpiocdev.WithDebounce(debounce),
			gpiocdev.WithConsumer("heading-display"),
			gpiocdev.WithEventHandler(func(ev gpiocdev.LineEvent) {
				m.push(Event{Pin: pin, Pressed: ev.Type == gpiocdev.LineEventFallingEdge})
			}),
		)
		if err != nil {
			_ = chip.Close()
			continue
		}
		m.chip = chip
		m.line = line
		return m, nil
	}

	return nil, fmt.Errorf("button: gpio line %q not found (or busy)", lineName)
}

// push never blocks the event handler; a full channel drops the edge, which
// for a human-pressed reset button is harmless.
func (m *Monitor) push(ev Event) {
	select {
	case m.events <- ev:
	default:
	}
}

func (m *Monitor) Events() <-chan Event {
	return m.events
}

func (m *Monitor) Close() error {
	if m == nil || m.line == nil {
		return nil
	}
	err := m.line.Close()
	m.line = nil
	if m.chip != nil {
		_ = m.chip.Close()
		m.chip = nil
	}
	return err
}
