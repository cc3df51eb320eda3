package bencode

// A Merger concatenates independently encoded documents into one list
// document without re-encoding them.
type Merger struct {
	// MaxAllocs is the budget each appended document is validated with.
	MaxAllocs int

	numElements int
	finalized   bool
	buf         []byte
}

// NewMerger returns a merger that validates documents with the given
// allocation budget.
func NewMerger(maxAllocs int) *Merger {
	m := Merger{
		MaxAllocs: maxAllocs,
		buf:       make([]byte, 0, 32),
	}
	m.buf = append(m.buf, tokenList)
	return &m
}

// Append adds the value encoded in b as the next list element. b must hold
// exactly one valid value; otherwise ErrInvalid is returned and the merger is
// left unchanged.
func (m *Merger) Append(b []byte) error {
	if m.finalized {
		return ErrFinished
	}

	d := Decoder{MaxAllocs: m.MaxAllocs, Strict: true}
	if _, ok := d.Decode(b); !ok {
		return ErrInvalid
	}

	m.buf = append(m.buf, b...)
	m.numElements++
	return nil
}

// AppendValue encodes v and adds it as the next list element.
func (m *Merger) AppendValue(v Value) error {
	if m.finalized {
		return ErrFinished
	}
	if !v.IsValid() {
		return ErrInvalid
	}

	m.buf = v.AppendTo(m.buf)
	m.numElements++
	return nil
}

// Len returns the number of documents appended so far.
func (m *Merger) Len() int { return m.numElements }

// Finish terminates the list and returns the merged document. Later calls
// return the same bytes.
func (m *Merger) Finish() []byte {
	if !m.finalized {
		m.buf = append(m.buf, tokenEnd)
		m.finalized = true
	}

	return m.buf
}
