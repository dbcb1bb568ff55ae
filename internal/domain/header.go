package domain

// Header is an ordered header set. Names are compared case-sensitively,
// exactly as written, so "Accept" and "accept" are two different entries.
type Header []Field

// Set replaces the value of name, keeping its position, or appends it.
func (h *Header) Set(name, value string) {
	*h = setField(*h, name, value)
}

// Get returns the value of name.
func (h Header) Get(name string) (string, bool) {
	return getField(h, name)
}

// Has reports whether name is present.
func (h Header) Has(name string) bool {
	_, ok := getField(h, name)
	return ok
}

// Del removes name.
func (h *Header) Del(name string) {
	*h = delField(*h, name)
}

// Names returns the header names in order.
func (h Header) Names() []string {
	names := make([]string, len(h))
	for i, p := range h {
		names[i] = p.Key
	}
	return names
}

// Clone returns an independent copy.
func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	return append(Header(nil), h...)
}
