// cmd/keepoutd/profile.go
package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the daemon's machine profile: where the settings record lives
// and how the discrete inputs are wired.
type Profile struct {
	NVSPath string       `yaml:"nvs_path"`
	Axes    int          `yaml:"axes"`
	Modbus  ModbusConfig `yaml:"modbus"`
}

type ModbusConfig struct {
	// Endpoint empty means no I/O module: sensors read as not asserted.
	Endpoint  string       `yaml:"endpoint"`
	UnitID    uint8        `yaml:"unit_id"`
	TimeoutMs int          `yaml:"timeout_ms"`
	Inputs    InputAddrs   `yaml:"inputs"`
}

// InputAddrs maps the four discrete inputs to addresses on the I/O module.
type InputAddrs struct {
	Rack       uint16 `yaml:"rack"`
	Drawbar    uint16 `yaml:"drawbar"`
	ToolSensor uint16 `yaml:"tool_sensor"`
	Pressure   uint16 `yaml:"pressure"`
}

// LoadProfile reads and decodes a profile file.
func LoadProfile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &p, nil
}

// Validate checks profile correctness. Declarative only; it MUST NOT mutate.
func Validate(p *Profile) error {
	if p == nil {
		return errors.New("profile: nil")
	}
	if p.Axes < 0 || (p.Axes != 0 && p.Axes < 2) {
		return fmt.Errorf("profile: axes must be >= 2, got %d", p.Axes)
	}
	if p.Modbus.Endpoint != "" && p.Modbus.TimeoutMs < 0 {
		return errors.New("profile: modbus timeout_ms must be >= 0")
	}

	if p.Modbus.Endpoint != "" {
		// each sensor needs its own input address
		seen := map[uint16]string{}
		for _, b := range []struct {
			name string
			addr uint16
		}{
			{"rack", p.Modbus.Inputs.Rack},
			{"drawbar", p.Modbus.Inputs.Drawbar},
			{"tool_sensor", p.Modbus.Inputs.ToolSensor},
			{"pressure", p.Modbus.Inputs.Pressure},
		} {
			if prev, dup := seen[b.addr]; dup {
				return fmt.Errorf(
					"profile: input address collision: %s and %s both at %d",
					prev, b.name, b.addr,
				)
			}
			seen[b.addr] = b.name
		}
	}

	return nil
}

// Normalize applies post-validation defaults. It is allowed to mutate
// configuration and MUST be called only after Validate().
func Normalize(p *Profile) {
	if p == nil {
		return
	}
	if p.NVSPath == "" {
		p.NVSPath = "atci-settings.nvs"
	}
	if p.Axes == 0 {
		p.Axes = 3
	}
	if p.Modbus.TimeoutMs == 0 {
		p.Modbus.TimeoutMs = 500
	}
}
