// Package heading runs the repeater: it pulls raw bytes from the instrument
// source, feeds them through the sentence parser, and pushes completed
// payloads to the display sink.
//
// Byte arrivals and reset presses are independent producers; both funnel into
// one consumer goroutine which is the only writer of parser and sink state.
package heading

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"heading-display/internal/display"
	"heading-display/internal/nmea"
)

// OpenFunc opens the byte source and names it (device path, log file, ...).
// The service reopens through it with backoff whenever the stream drops.
type OpenFunc func() (io.ReadCloser, string, error)

type Config struct {
	Parser nmea.Config

	// Placeholder is shown at startup and on reset.
	Placeholder string
}

type Snapshot struct {
	Device   string `json:"device,omitempty"`
	LastText string `json:"last_text,omitempty"`

	Terminated uint64 `json:"terminated"`
	Overflowed uint64 `json:"overflowed"`
	Resets     uint64 `json:"resets"`

	LastError string `json:"last_error,omitempty"`
}

type Service struct {
	cfg    Config
	parser *nmea.Parser
	sink   display.Sink

	bytes  chan []byte
	resets chan struct{}

	last   atomic.Value // Snapshot
	snapMu sync.Mutex

	mu     sync.Mutex
	cancel context.CancelFunc
	closer io.Closer
	wg     sync.WaitGroup
}

func New(cfg Config, sink display.Sink) *Service {
	s := &Service{
		cfg:    cfg,
		parser: nmea.NewParser(cfg.Parser),
		sink:   sink,
		bytes:  make(chan []byte, 16),
		resets: make(chan struct{}, 1),
	}
	s.last.Store(Snapshot{})
	return s
}

func (s *Service) Start(ctx context.Context, open OpenFunc) error {
	if s == nil {
		return fmt.Errorf("heading service is nil")
	}
	if ctx == nil {
		return fmt.Errorf("ctx is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.sink.ShowPlaceholder(s.cfg.Placeholder)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.readLoop(childCtx, open)
	}()
	go func() {
		defer s.wg.Done()
		s.consumeLoop(childCtx)
	}()
	return nil
}

// Reset requests a display reset. Safe from any goroutine; coalesces when one
// is already pending.
func (s *Service) Reset() {
	select {
	case s.resets <- struct{}{}:
	default:
	}
}

func (s *Service) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	cancel := s.cancel
	closer := s.closer
	s.cancel = nil
	s.closer = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if closer != nil {
		_ = closer.Close()
	}
	s.wg.Wait()
}

func (s *Service) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	v := s.last.Load()
	if v == nil {
		return Snapshot{}
	}
	return v.(Snapshot)
}

// readLoop keeps the source open, shipping chunks to the consumer. A dropped
// or unopenable source is retried with exponential backoff; the display keeps
// showing whatever it last rendered.
func (s *Service) readLoop(ctx context.Context, open OpenFunc) {
	backoff := 250 * time.Millisecond
	maxBackoff := 10 * time.Second

	for {
		if ctx.Err() != nil {
			return
		}

		r, device, err := open()
		if err != nil {
			s.setError(fmt.Sprintf("source open failed: %v", err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < maxBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = 250 * time.Millisecond

		s.mu.Lock()
		// Swap the closer so Close() can interrupt a blocked read.
		s.closer = r
		s.mu.Unlock()

		s.update(func(sn *Snapshot) { sn.Device = device })
		log.Printf("heading source open device=%s", device)

		buf := make([]byte, 256)
		for {
			n, rerr := r.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case s.bytes <- chunk:
				case <-ctx.Done():
					_ = r.Close()
					return
				}
			}
			if rerr != nil {
				if rerr != io.EOF {
					s.setError(fmt.Sprintf("read stopped: %v", rerr))
				}
				_ = r.Close()
				break
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

// consumeLoop is the sole mutator of parser and sink state.
func (s *Service) consumeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.resets:
			s.handleReset()
		case chunk := <-s.bytes:
			s.handleBytes(chunk)
		}
	}
}

// handleReset clears the display back to the placeholder. The parser is
// deliberately left alone: an in-flight sentence still completes and renders.
func (s *Service) handleReset() {
	s.sink.ShowPlaceholder(s.cfg.Placeholder)
	s.update(func(sn *Snapshot) {
		sn.LastText = ""
		sn.Resets++
	})
	log.Printf("heading reset")
}

func (s *Service) handleBytes(chunk []byte) {
	for _, b := range chunk {
		c, ok := s.parser.Feed(b)
		if !ok {
			continue
		}
		s.sink.Render(c.Content)
		s.update(func(sn *Snapshot) {
			sn.LastText = c.Content
			switch c.Reason {
			case nmea.Overflow:
				sn.Overflowed++
			default:
				sn.Terminated++
			}
		})
	}
}

func (s *Service) setError(msg string) {
	s.update(func(sn *Snapshot) { sn.LastError = msg })
}

func (s *Service) update(fn func(*Snapshot)) {
	s.snapMu.Lock()
	defer s.snapMu.Unlock()
	cur := s.Snapshot()
	fn(&cur)
	s.last.Store(cur)
}
