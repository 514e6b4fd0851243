package view

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"jobboard/internal/board"
	"jobboard/internal/model"
)

// Navigator is the part of board.State the browser drives.
type Navigator interface {
	Board
	NextPage() bool
	PrevPage() bool
	SetPage(n int) error
	FilterJobs(c model.Criteria)
	Criteria() model.Criteria
}

var _ Navigator = (*board.State)(nil)

const browserHelp = "n: next page  p: previous page  <number>: go to page  /text: search  q: quit"

// Browser is an interactive pager over the filtered jobs. Each command is
// applied to the board and the current page is redrawn.
type Browser struct {
	nav      Navigator
	renderer *Renderer
	out      io.Writer
	in       io.Reader
}

func NewBrowser(nav Navigator, in io.Reader, out io.Writer) *Browser {
	return &Browser{
		nav:      nav,
		renderer: NewRenderer(out),
		out:      out,
		in:       in,
	}
}

// Run draws the current page and processes commands until q or end of input.
func (b *Browser) Run() error {
	b.draw()

	scanner := bufio.NewScanner(b.in)
	for {
		fmt.Fprint(b.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(b.out)
			return scanner.Err()
		}
		quit, redraw := b.handle(strings.TrimSpace(scanner.Text()))
		if quit {
			return nil
		}
		if redraw {
			b.draw()
		}
	}
}

// handle applies one command and reports whether to quit and whether the
// page needs redrawing.
func (b *Browser) handle(cmd string) (quit, redraw bool) {
	switch {
	case cmd == "":
		return false, true
	case cmd == "q" || cmd == "quit":
		return true, false
	case cmd == "n":
		if !b.nav.NextPage() {
			fmt.Fprintln(b.out, "Already on the last page.")
			return false, false
		}
		return false, true
	case cmd == "p":
		if !b.nav.PrevPage() {
			fmt.Fprintln(b.out, "Already on the first page.")
			return false, false
		}
		return false, true
	case strings.HasPrefix(cmd, "/"):
		criteria := b.nav.Criteria()
		criteria.Search = strings.TrimSpace(cmd[1:])
		b.nav.FilterJobs(criteria)
		return false, true
	case cmd == "?" || cmd == "h" || cmd == "help":
		fmt.Fprintln(b.out, browserHelp)
		return false, false
	}

	page, err := strconv.Atoi(cmd)
	if err != nil {
		fmt.Fprintf(b.out, "Unknown command %q. %s\n", cmd, browserHelp)
		return false, false
	}
	if err := b.nav.SetPage(page); err != nil {
		fmt.Fprintln(b.out, board.UserMessage(err))
		return false, false
	}
	return false, true
}

func (b *Browser) draw() {
	total := b.nav.TotalPages()
	if total > 0 {
		fmt.Fprintf(b.out, "Page %d of %d\n\n", b.nav.CurrentPage(), total)
	}
	b.renderer.JobPage(b.nav)
	fmt.Fprintln(b.out)
}
