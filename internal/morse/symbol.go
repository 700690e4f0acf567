package morse

import "strings"

// Symbol is one element of a keyed sequence.
type Symbol byte

const (
	Dot   Symbol = '.'
	Dash  Symbol = '_'
	Space Symbol = ' '
)

// ReferenceWord is the standard word used to calibrate keying speed.
const ReferenceWord = "PARIS"

var patterns = map[rune]string{
	'A': "._",
	'B': "_...",
	'C': "_._.",
	'D': "_..",
	'E': ".",
	'F': ".._.",
	'G': "__.",
	'H': "....",
	'I': "..",
	'J': ".___",
	'K': "_._",
	'L': "._..",
	'M': "__",
	'N': "_.",
	'O': "___",
	'P': ".__.",
	'Q': "__._",
	'R': "._.",
	'S': "...",
	'T': "_",
	'U': ".._",
	'V': "..._",
	'W': ".__",
	'X': "_.._",
	'Y': "_.__",
	'Z': "__..",
	'0': "_____",
	'1': ".____",
	'2': "..___",
	'3': "...__",
	'4': "...._",
	'5': ".....",
	'6': "_....",
	'7': "__...",
	'8': "___..",
	'9': "____.",
}

// Pattern returns the dot/dash pattern for c, or "" if c has none.
func Pattern(c rune) string {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return patterns[c]
}

// Sequence is a keyed sequence stored in reverse, so the next element to play is
// the last one.
type Sequence []Symbol

// Encode builds the reversed sequence for ident. Every character is followed by a
// Space; characters without a pattern contribute only the Space.
func Encode(ident string) Sequence {
	forward := make([]Symbol, 0, len(ident)*6)
	for _, c := range ident {
		for _, e := range Pattern(c) {
			forward = append(forward, Symbol(e))
		}
		forward = append(forward, Space)
	}

	seq := make(Sequence, len(forward))
	for i, s := range forward {
		seq[len(forward)-1-i] = s
	}
	return seq
}

// Pop removes and returns the next element to play.
func (s *Sequence) Pop() (Symbol, bool) {
	n := len(*s)
	if n == 0 {
		return 0, false
	}
	sym := (*s)[n-1]
	*s = (*s)[:n-1]
	return sym, true
}

// String renders the sequence in playback order.
func (s Sequence) String() string {
	var sb strings.Builder
	for i := len(s) - 1; i >= 0; i-- {
		sb.WriteByte(byte(s[i]))
	}
	return sb.String()
}
