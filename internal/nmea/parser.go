package nmea

import (
	"log"
	"strings"
)

// Parser state. A sentence lives through at most one prefix and one content
// phase; every anomaly folds back to awaitingStart within the same Feed call.
type state int

const (
	awaitingStart state = iota
	readingPrefix
	readingContent
)

// Reason says how a completion came about.
type Reason int

const (
	// Terminated means the sentence ended with its '*' terminator.
	Terminated Reason = iota
	// Overflow means the content hit the configured width before a
	// terminator arrived; the payload is truncated to that width.
	Overflow
)

func (r Reason) String() string {
	switch r {
	case Terminated:
		return "terminated"
	case Overflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// Completion carries one finished sentence payload to the display.
type Completion struct {
	Content string
	Reason  Reason
}

// Config controls the parser.
//
// Wanted is an ordered set of type suffixes; a sentence prefix (the token
// between '$' and the first comma) is accepted when it ends with any member.
// Suffix matching tolerates variable talker IDs: "GPHDT" and "HEHDT" both end
// in "HDT".
type Config struct {
	Wanted []string

	// PrefixMax bounds the talker+type token. A prefix that grows past it
	// without a comma abandons the sentence.
	PrefixMax int

	// ContentMax bounds the payload, normally the display width.
	ContentMax int

	// Trace logs every state decision. Diagnostic only; it never changes
	// what Feed returns.
	Trace bool
}

const (
	defaultPrefixMax  = 5
	defaultContentMax = 16
)

// Parser is the incremental sentence scanner. It owns its buffers and state
// exclusively; Feed must be called from a single goroutine.
type Parser struct {
	cfg     Config
	st      state
	prefix  []byte
	content []byte
}

func NewParser(cfg Config) *Parser {
	if cfg.PrefixMax <= 0 {
		cfg.PrefixMax = defaultPrefixMax
	}
	if cfg.ContentMax <= 0 {
		cfg.ContentMax = defaultContentMax
	}
	if len(cfg.Wanted) == 0 {
		cfg.Wanted = []string{"HDT", "HDM"}
	}
	return &Parser{
		cfg:     cfg,
		st:      awaitingStart,
		prefix:  make([]byte, 0, cfg.PrefixMax),
		content: make([]byte, 0, cfg.ContentMax),
	}
}

// Matches reports whether prefix ends with one of the wanted suffixes.
func Matches(prefix string, wanted []string) bool {
	for _, w := range wanted {
		if w != "" && strings.HasSuffix(prefix, w) {
			return true
		}
	}
	return false
}

// Feed consumes exactly one byte and reports a completion when that byte
// finished a wanted sentence. It never blocks and never fails; malformed
// input only resets internal state.
//
// '$' is special only while awaiting a start. Mid-sentence it is an ordinary
// prefix/content byte, matching the instrument firmware this replaces.
func (p *Parser) Feed(b byte) (Completion, bool) {
	switch p.st {
	case awaitingStart:
		if b == '$' {
			p.prefix = p.prefix[:0]
			p.content = p.content[:0]
			p.st = readingPrefix
			p.tracef("nmea: start detected")
		}
		return Completion{}, false

	case readingPrefix:
		if b == ',' {
			if Matches(string(p.prefix), p.cfg.Wanted) {
				p.st = readingContent
				p.tracef("nmea: prefix %q accepted", p.prefix)
			} else {
				p.st = awaitingStart
				p.tracef("nmea: prefix %q rejected", p.prefix)
			}
			return Completion{}, false
		}
		if len(p.prefix) >= p.cfg.PrefixMax {
			// Prefix ran long without a delimiter; not a sentence we
			// can name, so drop it without an event.
			p.st = awaitingStart
			p.tracef("nmea: prefix overflow, sentence abandoned")
			return Completion{}, false
		}
		p.prefix = append(p.prefix, b)
		return Completion{}, false

	case readingContent:
		if b == '*' {
			p.st = awaitingStart
			p.tracef("nmea: sentence terminated, %d bytes", len(p.content))
			return Completion{Content: string(p.content), Reason: Terminated}, true
		}
		if len(p.content) >= p.cfg.ContentMax {
			p.st = awaitingStart
			p.tracef("nmea: content overflow at %d bytes", len(p.content))
			return Completion{Content: string(p.content), Reason: Overflow}, true
		}
		p.content = append(p.content, b)
		return Completion{}, false
	}

	return Completion{}, false
}

func (p *Parser) tracef(format string, args ...any) {
	if p.cfg.Trace {
		log.Printf(format, args...)
	}
}
