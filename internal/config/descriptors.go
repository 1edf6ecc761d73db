// internal/config/descriptors.go
package config

import "github.com/cncplugins/atci-keepout/internal/hal"

// Settings registry IDs. Chosen in a free range; keep clear of other plugins.
const (
	SettingPluginFlags = 683
	SettingXMin        = 684
	SettingYMin        = 685
	SettingXMax        = 686
	SettingYMax        = 687
)

// Bound entry range enforced by the settings layer, in mm.
const (
	BoundMin = -10000
	BoundMax = 10000
)

// Descriptors returns the five entries exposed to the host's settings
// registry: the flags bitfield and the four decimal bounds.
func Descriptors() []hal.SettingDescriptor {
	bound := func(id int, name string) hal.SettingDescriptor {
		return hal.SettingDescriptor{
			ID:       id,
			Name:     name,
			Unit:     "mm",
			Kind:     hal.SettingDecimal,
			Min:      BoundMin,
			Max:      BoundMax,
			Decimals: 2,
		}
	}

	return []hal.SettingDescriptor{
		{
			ID:   SettingPluginFlags,
			Name: "ATC keepout plugin",
			Kind: hal.SettingBitfield,
			Bits: "Enable,Monitor Rack Presence,Monitor TC Macro",
		},
		bound(SettingXMin, "ATC keepout X min"),
		bound(SettingYMin, "ATC keepout Y min"),
		bound(SettingXMax, "ATC keepout X max"),
		bound(SettingYMax, "ATC keepout Y max"),
	}
}
