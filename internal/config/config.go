package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Source selects where sentence bytes come from: "serial" (default)
	// or "replay".
	Source string `yaml:"source"`

	Serial  SerialConfig  `yaml:"serial"`
	NMEA    NMEAConfig    `yaml:"nmea"`
	Display DisplayConfig `yaml:"display"`
	Button  ButtonConfig  `yaml:"button"`
	Replay  ReplayConfig  `yaml:"replay"`
}

type SerialConfig struct {
	// Device may be empty to auto-detect /dev/ttyACM* and /dev/ttyUSB*.
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

type NMEAConfig struct {
	// Wanted is the set of sentence-type suffixes to render.
	Wanted    []string `yaml:"wanted"`
	PrefixMax int      `yaml:"prefix_max"`
	// Trace enables per-byte parser decision logging.
	Trace bool `yaml:"trace"`
}

type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// I2CBus/I2CAddr locate the HD44780 backpack. Addr 0 selects the
	// console sink instead of a physical display.
	I2CBus  string `yaml:"i2c_bus"`
	I2CAddr uint8  `yaml:"i2c_addr"`

	Placeholder string `yaml:"placeholder"`
}

type ButtonConfig struct {
	Enable bool `yaml:"enable"`
	// Pin is BCM GPIO numbering; the chardev line name is "GPIO<pin>".
	Pin      int           `yaml:"pin"`
	Debounce time.Duration `yaml:"debounce"`
}

type ReplayConfig struct {
	Path     string        `yaml:"path"`
	Interval time.Duration `yaml:"interval"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Source == "" {
		cfg.Source = "serial"
	}
	if cfg.Source != "serial" && cfg.Source != "replay" {
		return Config{}, fmt.Errorf("source must be \"serial\" or \"replay\", got %q", cfg.Source)
	}
	if cfg.Source == "replay" && cfg.Replay.Path == "" {
		return Config{}, fmt.Errorf("replay.path is required when source is replay")
	}

	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = 4800
	}
	if cfg.Serial.Baud < 0 {
		return Config{}, fmt.Errorf("serial.baud must be > 0")
	}

	if len(cfg.NMEA.Wanted) == 0 {
		cfg.NMEA.Wanted = []string{"HDT", "HDM"}
	}
	if cfg.NMEA.PrefixMax < 0 {
		return Config{}, fmt.Errorf("nmea.prefix_max must be >= 1")
	}
	if cfg.NMEA.PrefixMax == 0 {
		cfg.NMEA.PrefixMax = 5
	}

	if cfg.Display.Width < 0 {
		return Config{}, fmt.Errorf("display.width must be >= 1")
	}
	if cfg.Display.Width == 0 {
		cfg.Display.Width = 16
	}
	if cfg.Display.Height == 0 {
		cfg.Display.Height = 2
	}
	if cfg.Display.I2CBus == "" {
		cfg.Display.I2CBus = "/dev/i2c-1"
	}
	if cfg.Display.Placeholder == "" {
		cfg.Display.Placeholder = "-- no data --"
	}

	if cfg.Button.Enable {
		if cfg.Button.Pin <= 0 {
			return Config{}, fmt.Errorf("button.pin is required when button.enable is true")
		}
		if cfg.Button.Debounce <= 0 {
			cfg.Button.Debounce = 20 * time.Millisecond
		}
	}

	if cfg.Replay.Interval <= 0 {
		cfg.Replay.Interval = 100 * time.Millisecond
	}

	return cfg, nil
}
