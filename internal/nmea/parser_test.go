package nmea

import (
	"strings"
	"testing"
)

func feedAll(p *Parser, input string) []Completion {
	var out []Completion
	for i := 0; i < len(input); i++ {
		if c, ok := p.Feed(input[i]); ok {
			out = append(out, c)
		}
	}
	return out
}

func TestFeed_WantedSentence(t *testing.T) {
	p := NewParser(Config{Wanted: []string{"HDT"}})
	got := feedAll(p, "$GPHDT,123.4,T*1B")
	if len(got) != 1 {
		t.Fatalf("completions=%d want 1", len(got))
	}
	if got[0].Content != "123.4,T" {
		t.Fatalf("content=%q want %q", got[0].Content, "123.4,T")
	}
	if got[0].Reason != Terminated {
		t.Fatalf("reason=%s want terminated", got[0].Reason)
	}
}

func TestFeed_UnwantedSentenceDiscarded(t *testing.T) {
	p := NewParser(Config{Wanted: []string{"HDT", "HDM"}})
	got := feedAll(p, "$GPZZZ,999*1A")
	if len(got) != 0 {
		t.Fatalf("completions=%d want 0", len(got))
	}
}

func TestFeed_ContentOverflowTruncates(t *testing.T) {
	p := NewParser(Config{Wanted: []string{"HDT"}, ContentMax: 16})
	long := strings.Repeat("x", 20)
	got := feedAll(p, "$GPHDT,"+long)
	if len(got) != 1 {
		t.Fatalf("completions=%d want 1", len(got))
	}
	if got[0].Reason != Overflow {
		t.Fatalf("reason=%s want overflow", got[0].Reason)
	}
	if got[0].Content != strings.Repeat("x", 16) {
		t.Fatalf("content=%q want 16 x's", got[0].Content)
	}
}

func TestFeed_PrefixOverflowAbandons(t *testing.T) {
	p := NewParser(Config{Wanted: []string{"HDT"}, PrefixMax: 5})
	// Six prefix bytes without a comma: nothing should surface, even once
	// the comma and terminator finally arrive.
	got := feedAll(p, "$GPHDTX,1.0*2F")
	if len(got) != 0 {
		t.Fatalf("completions=%d want 0", len(got))
	}
}

func TestFeed_DollarMidSentenceIsOrdinary(t *testing.T) {
	// A stray '$' inside the prefix does not restart the sentence; the
	// prefix just grows until it overflows and the rest is discarded.
	p := NewParser(Config{Wanted: []string{"HDT"}, PrefixMax: 5})
	if got := feedAll(p, "$XX$HDT,ok*"); len(got) != 0 {
		t.Fatalf("completions=%d want 0", len(got))
	}

	// Inside content it is payload like any other byte.
	p = NewParser(Config{Wanted: []string{"HDT"}})
	got := feedAll(p, "$GPHDT,12$34*")
	if len(got) != 1 {
		t.Fatalf("completions=%d want 1", len(got))
	}
	if got[0].Content != "12$34" {
		t.Fatalf("content=%q want %q", got[0].Content, "12$34")
	}
}

func TestFeed_BackToBackSentencesKeepOrder(t *testing.T) {
	p := NewParser(Config{Wanted: []string{"HDT", "HDM"}})
	got := feedAll(p, "$GPHDT,111.1,T*1B$HEHDM,222.2,M*2C")
	if len(got) != 2 {
		t.Fatalf("completions=%d want 2", len(got))
	}
	if got[0].Content != "111.1,T" || got[1].Content != "222.2,M" {
		t.Fatalf("contents=%q,%q, cross-contaminated", got[0].Content, got[1].Content)
	}
}

func TestFeed_NoiseBeforeStartIgnored(t *testing.T) {
	p := NewParser(Config{Wanted: []string{"HDT"}})
	got := feedAll(p, "\r\nnoise!*,$GPHDT,42.0,T*00")
	if len(got) != 1 {
		t.Fatalf("completions=%d want 1", len(got))
	}
	if got[0].Content != "42.0,T" {
		t.Fatalf("content=%q want %q", got[0].Content, "42.0,T")
	}
}

func TestFeed_EmptyContent(t *testing.T) {
	p := NewParser(Config{Wanted: []string{"HDT"}})
	got := feedAll(p, "$GPHDT,*00")
	if len(got) != 1 {
		t.Fatalf("completions=%d want 1", len(got))
	}
	if got[0].Content != "" {
		t.Fatalf("content=%q want empty", got[0].Content)
	}
}

func TestFeed_RecoversAfterAnomalies(t *testing.T) {
	// Abandoned prefix, rejected sentence, then overflow: each must leave
	// the parser ready for the next clean sentence.
	p := NewParser(Config{Wanted: []string{"HDT"}, PrefixMax: 5, ContentMax: 8})
	input := "$TOOLONG,x*" + // prefix overflow, abandoned
		"$GPGGA,123*" + // rejected by filter
		"$GPHDT,aaaaaaaaaa" + // content overflow at 8
		"$GPHDT,90.0,T*1F" // clean
	got := feedAll(p, input)
	if len(got) != 2 {
		t.Fatalf("completions=%d want 2", len(got))
	}
	if got[0].Reason != Overflow || got[0].Content != "aaaaaaaa" {
		t.Fatalf("first=%+v want 8-byte overflow", got[0])
	}
	if got[1].Reason != Terminated || got[1].Content != "90.0,T" {
		t.Fatalf("second=%+v want clean 90.0,T", got[1])
	}
}

func TestFeed_ContentNeverExceedsMax(t *testing.T) {
	p := NewParser(Config{Wanted: []string{"HDT"}, ContentMax: 16})
	input := "$GPHDT," + strings.Repeat("z", 200) + "*$GPHDT,1*"
	for _, c := range feedAll(p, input) {
		if len(c.Content) > 16 {
			t.Fatalf("content length %d exceeds max 16", len(c.Content))
		}
	}
}

func TestMatches_SuffixPolicy(t *testing.T) {
	wanted := []string{"HDT", "HDM"}
	for prefix, want := range map[string]bool{
		"GPHDT": true,
		"HEHDT": true,
		"HDT":   true,
		"HCHDM": true,
		"GPGGA": false,
		"HDTX":  false,
		"":      false,
	} {
		if got := Matches(prefix, wanted); got != want {
			t.Fatalf("Matches(%q)=%v want %v", prefix, got, want)
		}
	}
}

func TestNewParser_Defaults(t *testing.T) {
	p := NewParser(Config{})
	got := feedAll(p, "$HEHDM,180.0,M*23")
	if len(got) != 1 {
		t.Fatalf("default wanted set should accept HDM, got %d completions", len(got))
	}
}
