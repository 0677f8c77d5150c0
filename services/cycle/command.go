package cycle

import "strings"

// Command is one recognised host instruction.
type Command uint8

const (
	CmdNone Command = iota
	CmdDeclamp
	CmdOK
	CmdFail
)

// Ack is the acknowledgement line sent back for a recognised command.
func (c Command) Ack() string {
	switch c {
	case CmdDeclamp:
		return "DECLAMP RECEIVED"
	case CmdOK:
		return "OK RECEIVED"
	case CmdFail:
		return "FAIL RECEIVED"
	default:
		return ""
	}
}

// ParseCommand matches one completed line, trimmed and case-insensitively,
// against the recognised command set. Anything else is CmdNone and stays
// silent: no effect, no acknowledgement, no diagnostic.
func ParseCommand(line string) Command {
	switch strings.ToUpper(strings.TrimSpace(line)) {
	case "DECLAMP":
		return CmdDeclamp
	case "OK":
		return CmdOK
	case "FAIL":
		return CmdFail
	default:
		return CmdNone
	}
}

// Longest valid command is far shorter; bytes beyond this are dropped so a
// runaway sender cannot grow the buffer. The cap means a command padded with
// more than this much leading whitespace is not recognised, a deliberate
// trade against unbounded buffering on the MCU.
const maxLine = 64

// LineBuffer accumulates serial bytes until a newline completes a line.
// Carriage returns are ignored. A partial line with no terminator stays
// buffered indefinitely.
type LineBuffer struct {
	buf []byte
}

// Feed consumes one byte. When b completes a line, Feed returns it (without
// the terminator) and true.
func (l *LineBuffer) Feed(b byte) (string, bool) {
	switch b {
	case '\n':
		line := string(l.buf)
		l.buf = l.buf[:0]
		return line, true
	case '\r':
		return "", false
	default:
		if len(l.buf) < maxLine {
			l.buf = append(l.buf, b)
		}
		return "", false
	}
}
