package forest

import "strconv"

// Serial computes the printable outline label for a node from its depth
// (0 = root), its 0-based position among siblings, and its parent's serial.
//
// Roots are numbered decimally ("1", "2", ...), first-generation children use
// uppercase letters, and every deeper generation reuses the lowercase
// alphabet; the legal document renders as a conventional outline, e.g. the
// first child of the third root's second child is "3.B.a". The label is
// joined to the parent serial with ".". Pure function; call top-down so the
// parent serial is final before children are labelled.
func Serial(depth, siblingIndex int, parentSerial string) string {
	var own string
	switch {
	case depth == 0:
		own = strconv.Itoa(siblingIndex + 1)
	case depth == 1:
		own = letters(siblingIndex, 'A')
	default:
		own = letters(siblingIndex, 'a')
	}
	if parentSerial == "" {
		return own
	}
	return parentSerial + "." + own
}

// letters renders a 0-based index in bijective base-26 over the alphabet
// starting at base, so index 25 is "Z" and index 26 wraps to "AA" rather than
// overflowing into non-letter characters.
func letters(index int, base byte) string {
	n := index + 1
	var buf []byte
	for n > 0 {
		n--
		buf = append([]byte{base + byte(n%26)}, buf...)
		n /= 26
	}
	return string(buf)
}
