package lookup

import (
	"fmt"
	"io"

	"github.com/sells-group/wxwarn/pkg/nws"
)

const separator = "==============================="

// Presenter writes resolved alert blocks as plain text.
type Presenter struct {
	out   io.Writer
	times int
}

// NewPresenter returns a Presenter writing to out.
func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// Alert prints one resolved alert block.
func (p *Presenter) Alert(a *nws.Alert) {
	p.printSeparator()
	fmt.Fprintf(p.out, "%s\n\n", a.Properties.Headline)
	fmt.Fprintf(p.out, "%s\n\n", a.Properties.Description)
	fmt.Fprintf(p.out, "%s\n\n", a.Properties.Instruction)
	fmt.Fprintf(p.out, "%s\n\n", a.Properties.AreaDesc)
}

// Error prints the failure marker for one unresolvable match.
func (p *Presenter) Error() {
	p.printSeparator()
	fmt.Fprintln(p.out, "ERROR")
}

// printSeparator emits the block separator. The counter increments
// before the check, so a separator intentionally precedes every block
// including the first.
func (p *Presenter) printSeparator() {
	p.times++
	if p.times >= 1 {
		fmt.Fprintln(p.out, separator)
	}
}
