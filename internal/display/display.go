// Package display renders the latest heading payload on a two-row character
// display. Only row 0 carries data; row 1 is cleared with the rest of the
// panel when a placeholder is shown.
package display

import "log"

// Sink is what the heading service writes to.
//
// Render shows one payload left-aligned on the primary row, space-padded to
// the sink's fixed width. ShowPlaceholder wipes the whole panel and writes a
// static message; used at startup and on reset.
type Sink interface {
	Render(text string)
	ShowPlaceholder(text string)
}

// pad left-aligns text into a fixed-width field, truncating or space-padding
// as needed. The result is always exactly width bytes.
func pad(text string, width int) string {
	if len(text) >= width {
		return text[:width]
	}
	b := make([]byte, width)
	copy(b, text)
	for i := len(text); i < width; i++ {
		b[i] = ' '
	}
	return string(b)
}

// Console is a stand-in sink for boxes without an LCD attached.
type Console struct {
	Width int
}

func (c *Console) Render(text string) {
	log.Printf("display: |%s|", pad(text, c.Width))
}

func (c *Console) ShowPlaceholder(text string) {
	log.Printf("display: %s", text)
}
