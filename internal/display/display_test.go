package display

import "testing"

func TestPad_ShortTextPadded(t *testing.T) {
	got := pad("123.4,T", 16)
	if len(got) != 16 {
		t.Fatalf("len=%d want 16", len(got))
	}
	if got != "123.4,T         " {
		t.Fatalf("padded=%q", got)
	}
}

func TestPad_LongTextTruncated(t *testing.T) {
	got := pad("0123456789abcdefgh", 16)
	if got != "0123456789abcdef" {
		t.Fatalf("truncated=%q", got)
	}
}

func TestPad_ExactWidthUnchanged(t *testing.T) {
	in := "0123456789abcdef"
	if got := pad(in, 16); got != in {
		t.Fatalf("pad(%q)=%q", in, got)
	}
}

func TestPad_EmptyText(t *testing.T) {
	if got := pad("", 4); got != "    " {
		t.Fatalf("pad empty=%q", got)
	}
}
