// internal/config/store.go
package config

import (
	"fmt"

	"github.com/cncplugins/atci-keepout/internal/hal"
)

// Read loads the record from non-volatile storage. A failed read or a bad
// record is not an error to the caller's caller: the plugin restores
// defaults. The error here only says WHY the stored record was unusable.
func Read(st hal.Store) (Settings, error) {
	buf := make([]byte, RecordSize)
	if err := st.Read(buf); err != nil {
		return Settings{}, fmt.Errorf("config: read: %w", err)
	}
	s, err := Unmarshal(buf)
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Write stores the record verbatim. Synchronous: the record is durable when
// this returns.
func Write(st hal.Store, s Settings) error {
	if err := st.Write(Marshal(s)); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}
