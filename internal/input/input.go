// Package input decodes raw terminal bytes into game actions.
package input

import (
	"bufio"
)

// maxPendingCSI bounds an unterminated escape sequence carried across reads.
const maxPendingCSI = 16

// Action is a single decoded key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionConfirm      // Space or Enter: reveal, or dismiss the score
	ActionNextChannel  // Down, j, Tab
	ActionPrevChannel  // Up, k
	ActionSelectRed    // 1, r
	ActionSelectGreen  // 2, g
	ActionSelectBlue   // 3, b
	ActionIncrease     // Right, l
	ActionDecrease     // Left, h
	ActionIncreaseMore // Shift+Right, L, ]
	ActionDecreaseMore // Shift+Left, H, [
	ActionOther        // Any other key; counts as activity
)

// Input holds the actions decoded during one frame, in arrival order.
type Input struct {
	Actions []Action
	Closed  bool // Reader hit EOF or an error
}

// Has reports whether a occurred this frame.
func (in Input) Has(a Action) bool {
	for _, x := range in.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// Active reports whether any key was pressed this frame.
func (in Input) Active() bool {
	return len(in.Actions) > 0
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
	buf    []byte // Bytes of an escape sequence split across frames
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// decodes them.
func ReadInput(s *Stream) Input {
	buf := s.buf
	s.buf = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	actions, rest := Decode(buf)
	if !s.closed && len(rest) > 0 {
		s.buf = rest
	}
	return Input{Actions: actions, Closed: s.closed}
}

// Decode parses buf into actions. A trailing incomplete escape sequence is
// returned as rest so it can be completed by the next read.
func Decode(buf []byte) (actions []Action, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			// Lone ESC at the end may be the start of a sequence.
			if i+1 == len(buf) {
				return actions, buf[i:]
			}
			if buf[i+1] == '[' {
				a, n, ok := decodeCSI(buf[i+2:])
				if !ok {
					if len(buf)-i > maxPendingCSI {
						// Never terminated; drop it rather than buffer forever.
						return append(actions, ActionOther), nil
					}
					return actions, buf[i:]
				}
				actions = append(actions, a)
				i += 1 + n
				continue
			}
			actions = append(actions, ActionOther)
			continue
		}

		actions = append(actions, decodeByte(b))
	}
	return actions, nil
}

// decodeCSI decodes the bytes after "ESC [". n is the number of bytes
// consumed; ok is false when the sequence is incomplete.
func decodeCSI(seq []byte) (a Action, n int, ok bool) {
	// Final byte is in 0x40..0x7e; parameters precede it.
	for j, c := range seq {
		if c < 0x40 || c > 0x7e {
			continue
		}
		shifted := j > 0 && string(seq[:j]) == "1;2"
		switch c {
		case 'A':
			return ActionPrevChannel, j + 1, true
		case 'B':
			return ActionNextChannel, j + 1, true
		case 'C':
			if shifted {
				return ActionIncreaseMore, j + 1, true
			}
			return ActionIncrease, j + 1, true
		case 'D':
			if shifted {
				return ActionDecreaseMore, j + 1, true
			}
			return ActionDecrease, j + 1, true
		case 'Z': // Shift+Tab
			return ActionPrevChannel, j + 1, true
		}
		return ActionOther, j + 1, true
	}
	return ActionNone, 0, false
}

func decodeByte(b byte) Action {
	switch b {
	case 'q', 'Q', '\x03':
		return ActionQuit
	case ' ', '\n', '\r':
		return ActionConfirm
	case '\t', 'j', 'J':
		return ActionNextChannel
	case 'k', 'K':
		return ActionPrevChannel
	case '1', 'r', 'R':
		return ActionSelectRed
	case '2', 'g', 'G':
		return ActionSelectGreen
	case '3', 'b', 'B':
		return ActionSelectBlue
	case 'l', '+', '=':
		return ActionIncrease
	case 'h', '-':
		return ActionDecrease
	case 'L', ']':
		return ActionIncreaseMore
	case 'H', '[':
		return ActionDecreaseMore
	}
	return ActionOther
}
