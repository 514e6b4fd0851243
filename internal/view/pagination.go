package view

import "strconv"

// ButtonKind identifies a pagination control.
type ButtonKind int

const (
	ButtonPrev ButtonKind = iota
	ButtonPage
	ButtonNext
)

// Button is one pagination control.
type Button struct {
	Kind     ButtonKind
	Page     int // target page
	Active   bool
	Disabled bool
}

// String renders the button: « and » for prev/next, the page number
// otherwise. Disabled buttons are parenthesized and the active page starred.
func (b Button) String() string {
	var label string
	switch b.Kind {
	case ButtonPrev:
		label = "«"
	case ButtonNext:
		label = "»"
	default:
		label = strconv.Itoa(b.Page)
	}
	switch {
	case b.Disabled:
		return "(" + label + ")"
	case b.Active:
		return "[*" + label + "*]"
	default:
		return "[" + label + "]"
	}
}

// Controls returns the previous button, one button per page and the next
// button. Previous is disabled on page 1 and next on the last page. There is
// no windowing for large page counts.
func Controls(current, total int) []Button {
	buttons := make([]Button, 0, total+2)
	buttons = append(buttons, Button{Kind: ButtonPrev, Page: current - 1, Disabled: current <= 1})
	for i := 1; i <= total; i++ {
		buttons = append(buttons, Button{Kind: ButtonPage, Page: i, Active: i == current})
	}
	buttons = append(buttons, Button{Kind: ButtonNext, Page: current + 1, Disabled: current >= total})
	return buttons
}
