package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"heading-display/internal/button"
	"heading-display/internal/config"
	"heading-display/internal/display"
	"heading-display/internal/heading"
	"heading-display/internal/i2c"
	"heading-display/internal/nmea"
	"heading-display/internal/replay"
	"heading-display/internal/serialport"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./dev.yaml", "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sink := buildSink(cfg.Display)

	svc := heading.New(heading.Config{
		Parser: nmea.Config{
			Wanted:     cfg.NMEA.Wanted,
			PrefixMax:  cfg.NMEA.PrefixMax,
			ContentMax: cfg.Display.Width,
			Trace:      cfg.NMEA.Trace,
		},
		Placeholder: cfg.Display.Placeholder,
	}, sink)

	log.Printf("heading-display starting source=%s wanted=%v", cfg.Source, cfg.NMEA.Wanted)

	if err := svc.Start(ctx, buildSource(cfg)); err != nil {
		log.Fatalf("heading service start failed: %v", err)
	}
	defer svc.Close()

	if cfg.Button.Enable {
		mon, err := button.New(cfg.Button.Pin, cfg.Button.Debounce)
		if err != nil {
			// The repeater is still useful without its reset button.
			log.Printf("button unavailable: %v", err)
		} else {
			defer mon.Close()
			go func() {
				for ev := range mon.Events() {
					if ev.Pressed {
						svc.Reset()
					}
				}
			}()
			log.Printf("reset button enabled pin=%d debounce=%s", cfg.Button.Pin, cfg.Button.Debounce)
		}
	}

	<-ctx.Done()
	log.Printf("heading-display stopping")
}

// buildSink prefers the LCD and falls back to the console so a dev box
// without hardware still runs.
func buildSink(cfg config.DisplayConfig) display.Sink {
	if cfg.I2CAddr == 0 {
		log.Printf("display: console sink (no i2c_addr configured)")
		return &display.Console{Width: cfg.Width}
	}
	bus, err := i2c.Open(cfg.I2CBus)
	if err != nil {
		log.Printf("display: i2c open failed, falling back to console: %v", err)
		return &display.Console{Width: cfg.Width}
	}
	log.Printf("display: lcd %dx%d bus=%s addr=0x%02X", cfg.Width, cfg.Height, cfg.I2CBus, cfg.I2CAddr)
	return display.NewLCD(bus, cfg.I2CAddr, cfg.Width, cfg.Height)
}

func buildSource(cfg config.Config) heading.OpenFunc {
	if cfg.Source == "replay" {
		return func() (io.ReadCloser, string, error) {
			p, err := replay.Open(cfg.Replay.Path, cfg.Replay.Interval)
			if err != nil {
				return nil, "", err
			}
			return p, cfg.Replay.Path, nil
		}
	}
	return func() (io.ReadCloser, string, error) {
		return serialport.Open(cfg.Serial.Device, cfg.Serial.Baud)
	}
}
