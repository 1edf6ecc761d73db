// cmd/keepoutd/console.go
package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cncplugins/atci-keepout/internal/hal"
)

// console is the stdin stand-in for the firmware's command parser. Lines are
// read on their own goroutine but executed on the event loop, preserving the
// single-thread-of-control model.
type console struct {
	loop     *eventLoop
	dispatch *hal.Dispatch
	planner  *plannerStub
	registry *memRegistry
	out      io.Writer

	tool int
}

func (c *console) run(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		c.loop.Submit(func() { c.handle(line) })
	}
}

func (c *console) handle(line string) {
	fields := strings.Fields(line)
	cmd := strings.ToUpper(fields[0])

	switch {
	case cmd == "HOME":
		c.planner.home()
		fmt.Fprintln(c.out, "ok")

	case cmd == "JOG":
		c.jog(fields[1:])

	case cmd == "MOVE":
		c.move(fields[1:])

	case cmd == "?":
		c.status()

	case line == "$#":
		c.dispatch.NGCParamsReport(c.out)
		fmt.Fprintln(c.out, "ok")

	case line == "$I":
		c.dispatch.OptionsReport(c.out)
		fmt.Fprintln(c.out, "ok")

	case line == "$RST":
		if c.registry.hooks.Restore != nil {
			c.registry.hooks.Restore()
		}
		fmt.Fprintln(c.out, "ok")

	case cmd[0] == 'T' && len(cmd) > 1:
		c.toolSelect(cmd[1:])

	case cmd == "M6":
		c.dispatch.ToolChanged(c.tool)
		fmt.Fprintln(c.out, "ok")

	case cmd[0] == 'M' && len(cmd) > 1:
		c.mcode(cmd[1:], fields[1:])

	default:
		fmt.Fprintf(c.out, "error: unknown command %q\n", fields[0])
	}
}

func (c *console) jog(words []string) {
	target, err := c.target(words)
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}
	if !c.dispatch.CheckTravel(target) {
		fmt.Fprintln(c.out, "error: jog rejected")
		return
	}
	copy(c.planner.pos, target)
	fmt.Fprintln(c.out, "ok")
}

func (c *console) move(words []string) {
	target, err := c.target(words)
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}
	// Apply may rewrite target in place (clamp or block).
	c.dispatch.ApplyTravel(target, c.planner.pos)
	copy(c.planner.pos, target)
	fmt.Fprintln(c.out, "ok")
}

func (c *console) status() {
	if pos, ok := c.planner.Position(); ok && len(pos) > hal.AxisY {
		fmt.Fprintf(c.out, "<Idle|MPos:%.3f,%.3f", pos[hal.AxisX], pos[hal.AxisY])
	} else {
		fmt.Fprint(c.out, "<Alarm|MPos:?")
	}
	c.dispatch.RealtimeReport(c.out)
	fmt.Fprintln(c.out, ">")
}

func (c *console) toolSelect(num string) {
	n, err := strconv.Atoi(num)
	if err != nil {
		fmt.Fprintf(c.out, "error: bad tool number %q\n", num)
		return
	}
	c.tool = n
	c.dispatch.ToolSelected(n)
	fmt.Fprintln(c.out, "ok")
}

func (c *console) mcode(num string, words []string) {
	code, err := strconv.Atoi(num)
	if err != nil {
		fmt.Fprintf(c.out, "error: bad M-code %q\n", num)
		return
	}

	block := hal.MCodeBlock{Code: code}
	for _, w := range words {
		wu := strings.ToUpper(w)
		if len(wu) > 1 && wu[0] == 'P' {
			v, err := strconv.ParseFloat(wu[1:], 64)
			if err != nil {
				fmt.Fprintf(c.out, "error: bad P word %q\n", w)
				return
			}
			block.HasP = true
			block.P = v
		}
	}

	h := c.dispatch.MCode()
	if !h.Recognizes(code) {
		fmt.Fprintf(c.out, "error: unsupported M-code M%d\n", code)
		return
	}
	switch h.Validate(&block) {
	case hal.MCodeValueOutOfRange:
		fmt.Fprintln(c.out, "error: value out of range")
		return
	case hal.MCodeUnsupported:
		fmt.Fprintf(c.out, "error: unsupported M-code M%d\n", code)
		return
	}
	h.Execute(false, &block)
	fmt.Fprintln(c.out, "ok")
}

// target parses axis words (X.. Y.. Z..) into a candidate position vector.
func (c *console) target(words []string) (hal.Position, error) {
	if !c.planner.homed {
		return nil, fmt.Errorf("machine not homed")
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no axis words")
	}

	axes := map[int]float64{}
	for _, w := range words {
		wu := strings.ToUpper(w)
		if len(wu) < 2 {
			return nil, fmt.Errorf("bad axis word %q", w)
		}
		var axis int
		switch wu[0] {
		case 'X':
			axis = hal.AxisX
		case 'Y':
			axis = hal.AxisY
		case 'Z':
			axis = 2
		default:
			return nil, fmt.Errorf("bad axis word %q", w)
		}
		v, err := strconv.ParseFloat(wu[1:], 64)
		if err != nil {
			return nil, fmt.Errorf("bad axis word %q", w)
		}
		axes[axis] = v
	}

	return c.planner.target(axes), nil
}
