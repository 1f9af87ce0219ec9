package clipboard

import (
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Method reports which copy path ultimately handled the text.
type Method int

const (
	// MethodSystem means the OS clipboard accepted the write.
	MethodSystem Method = iota
	// MethodOSC52 means the text was sent to the terminal as an OSC 52
	// escape sequence (works over SSH where no display is reachable).
	MethodOSC52
	// MethodManual means both automated paths failed and the manual
	// fallback surface was shown instead.
	MethodManual
)

// Chain copies text through a fixed fallback sequence: OS clipboard first,
// then an OSC 52 escape written to term, then a manual-copy surface. Copy
// never fails outward; the worst case is the manual surface.
type Chain struct {
	term   io.Writer    // terminal for OSC 52, usually os.Stderr
	manual func(string) // presents text for manual copying
}

// NewChain builds a copy chain. manual must be non-nil; term may be nil to
// skip the OSC 52 path.
func NewChain(term io.Writer, manual func(string)) *Chain {
	return &Chain{term: term, manual: manual}
}

// Copy pushes text through the chain and reports which path succeeded.
func (c *Chain) Copy(text string) Method {
	// NUL bytes confuse both clipboard backends.
	safe := strings.ReplaceAll(text, "\x00", "")

	if err := clipboard.WriteAll(safe); err == nil {
		return MethodSystem
	}

	if c.term != nil {
		if _, err := osc52.New(safe).WriteTo(c.term); err == nil {
			return MethodOSC52
		}
	}

	c.manual(safe)
	return MethodManual
}
