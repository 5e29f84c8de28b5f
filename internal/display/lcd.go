package display

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"
)

// LCD drives an HD44780 character display behind a PCF8574 I2C backpack
// (the common 16x2 modules at 0x27/0x3F).
type LCD struct {
	dev   hd44780i2c.Device
	width int
}

// NewLCD initializes the display over the given bus and leaves it blank.
func NewLCD(bus drivers.I2C, addr uint8, width, height int) *LCD {
	dev := hd44780i2c.New(bus, addr)
	dev.Configure(hd44780i2c.Config{
		Width:  uint8(width),
		Height: uint8(height),
	})
	dev.ClearDisplay()
	return &LCD{dev: dev, width: width}
}

// Render overwrites row 0 with the padded payload. Row 1 is left alone, so a
// full-width write is enough and the panel never flickers through a clear.
func (l *LCD) Render(text string) {
	l.dev.SetCursor(0, 0)
	l.dev.Print([]byte(pad(text, l.width)))
}

// ShowPlaceholder clears the panel and writes the message at the origin.
func (l *LCD) ShowPlaceholder(text string) {
	l.dev.ClearDisplay()
	l.dev.SetCursor(0, 0)
	if len(text) > l.width {
		text = text[:l.width]
	}
	l.dev.Print([]byte(text))
}
