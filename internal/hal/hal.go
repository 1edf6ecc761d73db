// internal/hal/hal.go
package hal

import "time"

// Axis indices inside a Position vector.
const (
	AxisX = 0
	AxisY = 1
)

// Position is an axis vector owned by the host's motion planner.
// Only X and Y are interpreted here; extra axes pass through untouched.
type Position []float64

// PositionSource exposes the planner's current position.
// The position may be unavailable (e.g. before homing): ok is false.
type PositionSource interface {
	Position() (pos Position, ok bool)
}

// DigitalInput is one discrete input at the hardware boundary.
// Read returns the raw electrical level; active-low inversion is the
// consumer's responsibility.
type DigitalInput interface {
	Read() (level bool, err error)
}

// MessageKind classifies operator messages.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageWarning
)

// Messenger delivers operator-facing messages over the host's status channel.
type Messenger interface {
	Message(kind MessageKind, text string)
}

// Scheduler arms a cooperative delayed task. Tasks run to completion on the
// host's single logical thread of control and MUST NOT block.
type Scheduler interface {
	Schedule(delay time.Duration, task func())
}

// Store is one fixed-size non-volatile record. Read fills exactly len(p)
// bytes or fails; a failed Read means the record is absent or corrupt.
// Write is synchronous: it completes before returning.
type Store interface {
	Read(p []byte) error
	Write(p []byte) error
}
