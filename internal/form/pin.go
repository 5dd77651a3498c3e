package form

import "strings"

const PINLength = 4

// PINInput models four single-digit cells with focus movement.
type PINInput struct {
	cells [PINLength]string
}

// Type stores the first digit of s in cell i, dropping anything else. When
// the cell ends up non-empty it returns the next cell to focus; ok is false
// after the last cell or when nothing was stored.
func (p *PINInput) Type(i int, s string) (next int, ok bool) {
	if i < 0 || i >= PINLength {
		return 0, false
	}
	p.cells[i] = firstDigit(s)
	if p.cells[i] != "" && i+1 < PINLength {
		return i + 1, true
	}
	return 0, false
}

// Backspace on a filled cell clears it and keeps focus. On an empty cell it
// returns the previous cell to focus; ok is false for the first cell.
func (p *PINInput) Backspace(i int) (prev int, ok bool) {
	if i < 0 || i >= PINLength {
		return 0, false
	}
	if p.cells[i] != "" {
		p.cells[i] = ""
		return 0, false
	}
	if i == 0 {
		return 0, false
	}
	return i - 1, true
}

// Enter types s one character per cell from the first cell, the way a user
// filling the widget left to right would.
func (p *PINInput) Enter(s string) {
	p.Clear()
	i := 0
	for _, r := range s {
		if i >= PINLength {
			break
		}
		if next, ok := p.Type(i, string(r)); ok {
			i = next
		} else if p.cells[i] != "" {
			i++
		}
	}
}

// Cell returns the digit in cell i, or "" when it is empty.
func (p *PINInput) Cell(i int) string {
	if i < 0 || i >= PINLength {
		return ""
	}
	return p.cells[i]
}

// Value concatenates the cells in order.
func (p *PINInput) Value() string {
	return strings.Join(p.cells[:], "")
}

// Valid reports whether all four cells hold a digit.
func (p *PINInput) Valid() bool {
	return ValidPIN(p.Value())
}

func (p *PINInput) Clear() {
	p.cells = [PINLength]string{}
}

// ValidPIN reports whether pin is exactly four ASCII digits.
func ValidPIN(pin string) bool {
	if len(pin) != PINLength {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

func firstDigit(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return s[i : i+1]
		}
	}
	return ""
}
