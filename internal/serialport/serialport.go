// Package serialport opens the NMEA instrument port.
package serialport

import (
	"fmt"
	"io"
	"os"

	"go.bug.st/serial"
)

// Open opens device at the given baud rate, 8N1. An empty device triggers
// auto-detection across the usual USB serial nodes.
func Open(device string, baud int) (io.ReadCloser, string, error) {
	if device == "" {
		device = autoDetectDevice()
		if device == "" {
			return nil, "", fmt.Errorf("serialport: auto-detect failed: no /dev/ttyACM* or /dev/ttyUSB* found")
		}
	}

	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, "", fmt.Errorf("serialport: open %s: %w", device, err)
	}
	return port, device, nil
}

func autoDetectDevice() string {
	// Keep it intentionally tiny and predictable.
	candidates := []string{}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyACM%d", i))
	}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyUSB%d", i))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
