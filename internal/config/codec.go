// internal/config/codec.go
package config

import (
	"encoding/binary"
	"errors"
	"math"
)

// At-rest record layout. Protocol-locked for compatibility with deployed
// configurations: four IEEE-754 single-precision floats (little-endian)
// followed by one flags byte. Remaining flag bits are reserved and written
// as zero.

// RecordSize is the exact size of the stored record in bytes.
const RecordSize = 4*4 + 1

const (
	flagPluginEnabled       = 1 << 0
	flagMonitorRackPresence = 1 << 1
	flagMonitorTCMacro      = 1 << 2
)

var ErrRecordSize = errors.New("config: record size mismatch")

// Marshal packs the record. No IO. No side effects.
func Marshal(s Settings) []byte {
	buf := make([]byte, RecordSize)

	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(s.XMin))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(s.YMin))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(s.XMax))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(s.YMax))

	var flags byte
	if s.Flags.PluginEnabled {
		flags |= flagPluginEnabled
	}
	if s.Flags.MonitorRackPresence {
		flags |= flagMonitorRackPresence
	}
	if s.Flags.MonitorTCMacro {
		flags |= flagMonitorTCMacro
	}
	buf[16] = flags

	return buf
}

// Unmarshal unpacks a stored record. Bound values are taken verbatim; the
// settings layer bounds them on entry, not here. Reserved flag bits are
// ignored on read.
func Unmarshal(buf []byte) (Settings, error) {
	if len(buf) != RecordSize {
		return Settings{}, ErrRecordSize
	}

	var s Settings
	s.XMin = math.Float32frombits(binary.LittleEndian.Uint32(buf[0:]))
	s.YMin = math.Float32frombits(binary.LittleEndian.Uint32(buf[4:]))
	s.XMax = math.Float32frombits(binary.LittleEndian.Uint32(buf[8:]))
	s.YMax = math.Float32frombits(binary.LittleEndian.Uint32(buf[12:]))

	flags := buf[16]
	s.Flags.PluginEnabled = flags&flagPluginEnabled != 0
	s.Flags.MonitorRackPresence = flags&flagMonitorRackPresence != 0
	s.Flags.MonitorTCMacro = flags&flagMonitorTCMacro != 0

	return s, nil
}
