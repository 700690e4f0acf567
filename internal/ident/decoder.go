package ident

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrTooLong          = errors.New("identifier longer than 8 characters")
	ErrInvalidCharacter = errors.New("identifier character cannot be packed")
)

// Decode unpacks a station identifier from its packed simulation variable value.
// Empty slots are skipped, so the result never exceeds MaxLength characters.
func Decode(packed uint64) string {
	var sb strings.Builder

	for _, divisor := range slotDivisors {
		code := (packed / divisor) & SlotMask
		if code == 0 {
			continue
		}

		r := rune(code + CharOffset)
		if !utf8.ValidRune(r) {
			panic(fmt.Sprintf("ident: packed slot %d yields invalid rune %U", code, r))
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

// Pack encodes s into the packed layout read by Decode.
func Pack(s string) (uint64, error) {
	if utf8.RuneCountInString(s) > MaxLength {
		return 0, fmt.Errorf("%w: %q", ErrTooLong, s)
	}

	var packed uint64
	slot := 0
	for _, r := range s {
		if r < MinChar || r > MaxChar {
			return 0, fmt.Errorf("%w: %q in %q", ErrInvalidCharacter, r, s)
		}
		packed += uint64(r-CharOffset) * slotDivisors[slot]
		slot++
	}

	return packed, nil
}

// MustPack is Pack for identifiers known at compile time.
func MustPack(s string) uint64 {
	packed, err := Pack(s)
	if err != nil {
		panic(err)
	}
	return packed
}
