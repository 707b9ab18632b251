// Package repl drives the calculator from a terminal: every key read from
// the input is applied as it arrives and the display line is repainted.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"calcpad/internal/display"
	"calcpad/internal/keypad"
)

const (
	ctrlC = 0x03
	ctrlD = 0x04
	esc   = 0x1b
)

// ErrUnknownKey is returned by Feed for keys with no keypad meaning.
var ErrUnknownKey = errors.New("unknown key")

type Options struct {
	Logger *zap.Logger

	// Profile overrides colour detection on the output.
	Profile *termenv.Profile
}

// Run reads keys from in until EOF, q, Ctrl-C or Ctrl-D, or until ctx is
// done, repainting the display on out after every key. It returns the final
// calculator state.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) (keypad.State, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var outOpts []termenv.OutputOption
	if opts.Profile != nil {
		outOpts = append(outOpts, termenv.WithProfile(*opts.Profile))
	}
	term := termenv.NewOutput(out, outOpts...)

	state := keypad.NewState()
	paint(term, state)

	r := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		ch, size, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return state, fmt.Errorf("read key: %w", err)
		}

		if ch == 'q' || ch == ctrlC || ch == ctrlD {
			break
		}

		if ch == esc {
			if seq, ok := readEscapeSequence(r); ok {
				logger.Debug("ignored escape sequence", zap.String("sequence", seq))
				continue
			}
		}

		ev, ok := eventForRune(ch, size)
		if !ok {
			logger.Debug("ignored key", zap.String("key", string(ch)))
			continue
		}

		next, err := keypad.Apply(state, ev)
		if err != nil {
			return state, err
		}
		state = next

		logger.Debug("key applied",
			zap.String("event", ev.String()),
			zap.String("display", state.DisplayText),
			zap.String("phase", string(state.Phase())),
		)
		paint(term, state)
	}

	fmt.Fprint(term, "\r\n")
	return state, nil
}

// readEscapeSequence consumes the rest of a CSI (ESC [) or SS3 (ESC O)
// sequence, as sent by arrow, Home and function keys, when it is already
// buffered after an ESC. It never blocks: a lone ESC reports false and is
// handled as the clear key.
func readEscapeSequence(r *bufio.Reader) (string, bool) {
	if r.Buffered() == 0 {
		return "", false
	}
	next, err := r.Peek(1)
	if err != nil || (next[0] != '[' && next[0] != 'O') {
		return "", false
	}

	intro, _ := r.ReadByte()
	seq := []byte{intro}

	if intro == 'O' {
		if r.Buffered() > 0 {
			b, _ := r.ReadByte()
			seq = append(seq, b)
		}
		return string(seq), true
	}

	// CSI: parameter and intermediate bytes up to a final byte in 0x40-0x7e.
	for r.Buffered() > 0 {
		b, _ := r.ReadByte()
		seq = append(seq, b)
		if b >= 0x40 && b <= 0x7e {
			break
		}
	}
	return string(seq), true
}

func eventForRune(ch rune, size int) (keypad.Event, bool) {
	if size == 1 && ch < utf8.RuneSelf {
		return keypad.FromByte(byte(ch))
	}
	return keypad.FromKey(string(ch))
}

// paint redraws the single display line.
func paint(term *termenv.Output, s keypad.State) {
	text := display.Format(s.DisplayText)

	styled := term.String(text).Bold()
	if s.IsError() {
		styled = styled.Foreground(term.Color("1"))
	}

	pending := ""
	if sym := s.PendingOperator.Symbol(); sym != "" {
		pending = " " + term.String(sym).Faint().String()
	}

	term.ClearLine()
	fmt.Fprintf(term, "\r%s%s", styled, pending)
}

// Feed applies a key sequence to a fresh state. Each element is either a
// key name (Enter, Backspace, Escape, ...) or a run of single-character keys
// such as "12+7=".
func Feed(keys ...string) (keypad.State, error) {
	state := keypad.NewState()

	for _, group := range keys {
		events, err := parseGroup(group)
		if err != nil {
			return state, err
		}
		state, err = keypad.ApplyAll(state, events...)
		if err != nil {
			return state, err
		}
	}
	return state, nil
}

func parseGroup(group string) ([]keypad.Event, error) {
	if ev, ok := keypad.FromKey(group); ok {
		return []keypad.Event{ev}, nil
	}

	group = strings.TrimSpace(group)
	events := make([]keypad.Event, 0, len(group))
	for _, ch := range group {
		if ch == ' ' {
			continue
		}
		ev, ok := keypad.FromKey(string(ch))
		if !ok {
			return nil, fmt.Errorf("%w: %q in %q", ErrUnknownKey, ch, group)
		}
		events = append(events, ev)
	}
	return events, nil
}
