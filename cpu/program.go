package cpu

// Statement is one assembled source line: its location, the words it
// parsed to, and the bytes it emitted.
type Statement struct {
	LineNo     int
	Addr       int // Absolute memory address of the first emitted byte.
	Words      []string
	Bytes      []byte
	LinkLabel  string // Pending jump label, patched during linking.
	LinkOffset int    // Offset of the label's address bytes in Bytes.
}

// Program is an assembled listing.
type Program struct {
	Statements []Statement
}

// Binary flattens the listing into a loadable program image.
func (prog *Program) Binary() (bin []byte) {
	for _, st := range prog.Statements {
		bin = append(bin, st.Bytes...)
	}

	return
}

// LineNo returns the source line that emitted the byte at pc, or 0 if
// pc falls outside the listing.
func (prog *Program) LineNo(pc uint16) int {
	for _, st := range prog.Statements {
		if int(pc) >= st.Addr && int(pc) < st.Addr+len(st.Bytes) {
			return st.LineNo
		}
	}

	return 0
}
