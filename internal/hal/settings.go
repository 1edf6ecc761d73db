// internal/hal/settings.go
package hal

// SettingKind selects the display/edit format of a settings entry.
type SettingKind int

const (
	SettingBitfield SettingKind = iota
	SettingDecimal
)

// SettingDescriptor is one entry exposed to the host's settings registry.
type SettingDescriptor struct {
	ID   int
	Name string
	Unit string
	Kind SettingKind

	// Bitfield only: comma-separated bit labels, LSB first.
	Bits string

	// Decimal only.
	Min      float64
	Max      float64
	Decimals int
}

// SettingHooks are the lifecycle callbacks the settings subsystem drives.
// Load runs at startup and after external record changes, Save after any
// entry is written, Restore on an explicit reset to defaults.
type SettingHooks struct {
	Load    func()
	Save    func()
	Restore func()
}

// SettingRegistry is the host's settings surface.
type SettingRegistry interface {
	Register(settings []SettingDescriptor, hooks SettingHooks)
}
