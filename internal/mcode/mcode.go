// internal/mcode/mcode.go
package mcode

import "github.com/cncplugins/atci-keepout/internal/hal"

// Code is the runtime keepout toggle command.
const Code = 960

const usageText = "Use M960 P1 to enable ATC keepout, M960 P0 to disable."

// Controller is what the handler drives on the enforcement core.
type Controller interface {
	// SetRuntimeEnabled applies an operator-commanded enablement change.
	SetRuntimeEnabled(on bool)
}

// Handler answers for M960 and delegates everything else down the chain.
type Handler struct {
	ctl  Controller
	msg  hal.Messenger
	next hal.MCodeHandler
}

func New(ctl Controller, msg hal.Messenger, next hal.MCodeHandler) *Handler {
	return &Handler{ctl: ctl, msg: msg, next: next}
}

func (h *Handler) Recognizes(code int) bool {
	if code == Code {
		return true
	}
	return h.next != nil && h.next.Recognizes(code)
}

// Validate accepts an optional P word that must be exactly 0 or 1. Blocks
// for this code are answered here and never delegated to later links.
func (h *Handler) Validate(b *hal.MCodeBlock) hal.MCodeStatus {
	if b.Code != Code {
		if h.next != nil {
			return h.next.Validate(b)
		}
		return hal.MCodeUnsupported
	}

	if b.HasP && b.P != 0 && b.P != 1 {
		return hal.MCodeValueOutOfRange
	}
	return hal.MCodeOK
}

// Execute applies the toggle. Check mode (dry run) has no effect; a missing
// P word only prints usage.
func (h *Handler) Execute(checkMode bool, b *hal.MCodeBlock) {
	if b.Code != Code {
		if h.next != nil {
			h.next.Execute(checkMode, b)
		}
		return
	}

	if checkMode {
		return
	}

	if b.HasP {
		h.ctl.SetRuntimeEnabled(b.P == 1)
	} else {
		h.msg.Message(hal.MessageInfo, usageText)
	}
}
