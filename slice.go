package fulcrum

// Slice is a borrowed (offset, length) view into a backing byte buffer.
// It does not own the buffer; the caller guarantees the buffer outlives
// the Slice. A zero-value Slice with Len() == 0 represents "absent".
type Slice struct {
	buf    []byte
	offset int
	length int
}

// NewSlice constructs a Slice over buf[offset:offset+length]. The caller
// must guarantee offset+length <= len(buf).
func NewSlice(buf []byte, offset, length int) Slice {
	return Slice{buf: buf, offset: offset, length: length}
}

// Bytes returns the raw, still-encoded bytes the slice views.
func (s Slice) Bytes() []byte {
	if s.buf == nil {
		return nil
	}
	return s.buf[s.offset : s.offset+s.length]
}

// String returns the slice as a string without allocating, by
// reinterpreting the borrowed bytes. The caller must not mutate the
// backing buffer afterward through any other reference that expects
// the string to stay stable.
func (s Slice) String() string {
	return b2s(s.Bytes())
}

// Len reports the number of bytes the slice views.
func (s Slice) Len() int {
	return s.length
}

// Empty reports whether the slice views zero bytes.
func (s Slice) Empty() bool {
	return s.length == 0
}

// pair is a (key, value) Slice pair, the element type of the bounded
// lists used for query parameters and headers.
type pair struct {
	key   Slice
	value Slice
}

// BoundedList is a fixed-capacity, stack-friendly list of pairs. Append
// beyond N is a caller-visible overflow rather than a silent grow;
// callers that need unbounded accumulation should not use it. N is
// enforced at construction time via NewBoundedList, not by the Go type
// system (Go generics have no const-generic array length), matching the
// "MaybeUninit pairs" note in spec.md §9: a slice of zero-valued pairs
// plus a length cursor, logically identical to a fixed array.
type BoundedList struct {
	items []pair
	cap   int
	len   int
}

// NewBoundedList creates a BoundedList with the given fixed capacity.
func NewBoundedList(capacity int) *BoundedList {
	return &BoundedList{items: make([]pair, capacity), cap: capacity}
}

// Append adds a (key, value) pair. It reports false if the list is at
// capacity; the caller must treat that as a parse error (BadRequest).
func (b *BoundedList) Append(key, value Slice) bool {
	if b.len >= b.cap {
		return false
	}
	b.items[b.len] = pair{key: key, value: value}
	b.len++
	return true
}

// Len reports the number of pairs currently stored.
func (b *BoundedList) Len() int {
	return b.len
}

// At returns the pair at index i. i must be < Len().
func (b *BoundedList) At(i int) (Slice, Slice) {
	p := b.items[i]
	return p.key, p.value
}

// Get returns the value of the first pair whose key, compared
// case-sensitively against key, matches. Header lookups that must be
// case-insensitive go through GetFold instead.
func (b *BoundedList) Get(key string) (Slice, bool) {
	for i := 0; i < b.len; i++ {
		if b.items[i].key.String() == key {
			return b.items[i].value, true
		}
	}
	return Slice{}, false
}

// GetFold is Get with an ASCII case-insensitive key comparison, used for
// header names.
func (b *BoundedList) GetFold(key string) (Slice, bool) {
	for i := 0; i < b.len; i++ {
		if equalFold(b.items[i].key.Bytes(), key) {
			return b.items[i].value, true
		}
	}
	return Slice{}, false
}

// reset clears the list for reuse without releasing the backing array.
func (b *BoundedList) reset() {
	b.len = 0
}

// equalFold reports whether a, interpreted as ASCII, equals b ignoring
// case. It avoids the allocation strings.EqualFold(string(a), b) would
// cost on every header lookup.
func equalFold(a []byte, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
