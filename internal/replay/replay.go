// Package replay plays a recorded NMEA log back through the normal byte
// path, one line per interval. Useful on a bench with no instrument wired up.
package replay

import (
	"bufio"
	"io"
	"os"
	"time"
)

// Player is an io.ReadCloser over a sentence log. Each Read returns the next
// line (newline included) after pacing by the configured interval, so the
// consumer sees roughly the cadence of a live instrument.
type Player struct {
	f        *os.File
	scanner  *bufio.Scanner
	interval time.Duration
}

func Open(path string, interval time.Duration) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 256), 4096)
	return &Player{f: f, scanner: sc, interval: interval}, nil
}

func (p *Player) Read(dst []byte) (int, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	if p.interval > 0 {
		time.Sleep(p.interval)
	}
	line := append(p.scanner.Bytes(), '\n')
	n := copy(dst, line)
	return n, nil
}

func (p *Player) Close() error {
	return p.f.Close()
}
