// internal/hal/dispatch.go
package hal

import "io"

// Handler signatures for the host's hook points.
//
// TravelCheckFunc validates a candidate jog target; false rejects the move.
// TravelApplyFunc may rewrite target in place before the planner queues it.
type (
	TravelCheckFunc func(target Position) bool
	TravelApplyFunc func(target, position Position)
	ReportFunc      func(w io.Writer)
	ToolHookFunc    func(tool int)
)

// MCodeStatus is the outcome of validating a user M-code block.
type MCodeStatus int

const (
	MCodeOK MCodeStatus = iota
	MCodeUnsupported
	MCodeValueOutOfRange
)

// MCodeBlock is one parsed user M-code command.
type MCodeBlock struct {
	Code int
	HasP bool
	P    float64
}

// MCodeHandler is one link in the user M-code chain. A handler answers only
// for codes it recognizes and delegates the rest to the next link.
type MCodeHandler interface {
	Recognizes(code int) bool
	Validate(b *MCodeBlock) MCodeStatus
	Execute(checkMode bool, b *MCodeBlock)
}

// Dispatch is the host's hook table. Instead of mutable global function
// pointers, each hook is an explicit chain: registering an interceptor wraps
// the current head, and the interceptor holds its next link in a closure.
// Registration order is therefore innermost-first.
type Dispatch struct {
	checkTravel   TravelCheckFunc
	applyTravel   TravelApplyFunc
	realtime      ReportFunc
	ngcParams     ReportFunc
	reportOptions ReportFunc
	toolSelected  ToolHookFunc
	toolChanged   ToolHookFunc
	mcode         MCodeHandler
}

// NewDispatch returns a dispatch table with permissive terminal handlers:
// all moves allowed, reports empty, no M-codes recognized.
func NewDispatch() *Dispatch {
	return &Dispatch{
		checkTravel:   func(Position) bool { return true },
		applyTravel:   func(_, _ Position) {},
		realtime:      func(io.Writer) {},
		ngcParams:     func(io.Writer) {},
		reportOptions: func(io.Writer) {},
		toolSelected:  func(int) {},
		toolChanged:   func(int) {},
		mcode:         unsupportedMCodes{},
	}
}

func (d *Dispatch) InterceptTravelCheck(ic func(next TravelCheckFunc) TravelCheckFunc) {
	d.checkTravel = ic(d.checkTravel)
}

func (d *Dispatch) InterceptTravelApply(ic func(next TravelApplyFunc) TravelApplyFunc) {
	d.applyTravel = ic(d.applyTravel)
}

func (d *Dispatch) InterceptRealtimeReport(ic func(next ReportFunc) ReportFunc) {
	d.realtime = ic(d.realtime)
}

func (d *Dispatch) InterceptNGCParamsReport(ic func(next ReportFunc) ReportFunc) {
	d.ngcParams = ic(d.ngcParams)
}

func (d *Dispatch) InterceptOptionsReport(ic func(next ReportFunc) ReportFunc) {
	d.reportOptions = ic(d.reportOptions)
}

func (d *Dispatch) InterceptToolSelected(ic func(next ToolHookFunc) ToolHookFunc) {
	d.toolSelected = ic(d.toolSelected)
}

func (d *Dispatch) InterceptToolChanged(ic func(next ToolHookFunc) ToolHookFunc) {
	d.toolChanged = ic(d.toolChanged)
}

func (d *Dispatch) InterceptMCode(ic func(next MCodeHandler) MCodeHandler) {
	d.mcode = ic(d.mcode)
}

// Host-side entry points.

func (d *Dispatch) CheckTravel(target Position) bool      { return d.checkTravel(target) }
func (d *Dispatch) ApplyTravel(target, position Position) { d.applyTravel(target, position) }
func (d *Dispatch) RealtimeReport(w io.Writer)            { d.realtime(w) }
func (d *Dispatch) NGCParamsReport(w io.Writer)           { d.ngcParams(w) }
func (d *Dispatch) OptionsReport(w io.Writer)             { d.reportOptions(w) }
func (d *Dispatch) ToolSelected(tool int)                 { d.toolSelected(tool) }
func (d *Dispatch) ToolChanged(tool int)                  { d.toolChanged(tool) }
func (d *Dispatch) MCode() MCodeHandler                   { return d.mcode }

// unsupportedMCodes is the terminal link of the M-code chain.
type unsupportedMCodes struct{}

func (unsupportedMCodes) Recognizes(int) bool              { return false }
func (unsupportedMCodes) Validate(*MCodeBlock) MCodeStatus { return MCodeUnsupported }
func (unsupportedMCodes) Execute(bool, *MCodeBlock)        {}
