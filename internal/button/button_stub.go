//go:build !linux

package button

import (
	"fmt"
	"time"
)

type Monitor struct{}

func New(pin int, debounce time.Duration) (*Monitor, error) {
	return nil, fmt.Errorf("button: gpio unsupported on this platform")
}

func (m *Monitor) Events() <-chan Event { return nil }

func (m *Monitor) Close() error { return nil }
