package ident

// Packed identifier layout: up to 8 characters of 6 bits each, slot 0 in the
// least significant bits. A slot value v in 1..63 is the character v+31.
const (
	MaxLength  = 8
	SlotBits   = 6
	SlotMask   = 0x3F
	CharOffset = 31

	MinChar = 1 + CharOffset        // ' '
	MaxChar = SlotMask + CharOffset // '^'
)

// slotDivisors holds 64^i for each slot.
var slotDivisors = [MaxLength]uint64{
	1,
	1 << 6,
	1 << 12,
	1 << 18,
	1 << 24,
	1 << 30,
	1 << 36,
	1 << 42,
}
