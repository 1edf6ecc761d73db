// internal/hal/modbusio/modbusio.go
package modbusio

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"

	"github.com/cncplugins/atci-keepout/internal/hal"
)

// Bank exposes the discrete inputs of a Modbus TCP I/O module as
// hal.DigitalInput values. One TCP connection is shared by all inputs; the
// poller services them sequentially on a single thread, so no locking.
type Bank struct {
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Endpoint string
	UnitID   byte
	Timeout  time.Duration
}

// Dial connects to the I/O module. Fail fast at startup; transient read
// errors later degrade to not-asserted at the sensor layer.
func Dial(cfg Config) (*Bank, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbusio: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbusio: connect %s: %w", cfg.Endpoint, err)
	}

	return &Bank{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// Close closes the TCP connection.
func (b *Bank) Close() error {
	return b.handler.Close()
}

// Input binds one discrete input address (FC 2).
func (b *Bank) Input(addr uint16) hal.DigitalInput {
	return &input{bank: b, addr: addr}
}

type input struct {
	bank *Bank
	addr uint16
}

// Read returns the raw input level. Active-low inversion happens in the
// consumer, exactly as with directly wired pins.
func (in *input) Read() (bool, error) {
	res, err := in.bank.client.ReadDiscreteInputs(in.addr, 1)
	if err != nil {
		return false, fmt.Errorf("modbusio: read input %d: %w", in.addr, err)
	}
	if len(res) == 0 {
		return false, fmt.Errorf("modbusio: empty response for input %d", in.addr)
	}
	return res[0]&0x01 != 0, nil
}
