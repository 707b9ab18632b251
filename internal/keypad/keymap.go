package keypad

import "unicode/utf8"

// FromKey translates a key name, as reported by a keyboard, into an event.
// Digits, the four operator keys, Enter/=, the decimal point, Backspace and
// Escape are recognised; every other key is ignored.
func FromKey(key string) (Event, bool) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return Event{Kind: KindDigit, Digit: key}, true
	}

	switch key {
	case "Enter", "=":
		return Equals(), true
	case ".":
		return Decimal(), true
	case "Backspace", "Delete":
		return Backspace(), true
	case "Escape", "c", "C":
		return Clear(), true
	}

	if utf8.RuneCountInString(key) == 1 {
		if op, err := ParseOperator(key); err == nil {
			return Press(op), true
		}
	}
	return Event{}, false
}

// FromByte maps a single byte read from a raw-mode terminal.
func FromByte(b byte) (Event, bool) {
	switch b {
	case '\r', '\n':
		return FromKey("Enter")
	case 0x7f, 0x08:
		return FromKey("Backspace")
	case 0x1b:
		return FromKey("Escape")
	}
	return FromKey(string(rune(b)))
}
