package fulcrum

// Size limits for the request pipeline. These bound every allocation a
// single request can cause: MetadataSize for the request line + header
// block, PayloadLimit for the body.
const (
	// MetadataSize is the size in bytes of the fixed metadata buffer that
	// holds the request line and header block.
	MetadataSize = 1024

	// PayloadLimit is the maximum number of body bytes a Request will
	// buffer. A declared Content-Length larger than this is clamped.
	PayloadLimit = 65536

	// MaxQueryPairs is the capacity of a Request's query BoundedList.
	MaxQueryPairs = 4

	// MaxHeaderPairs is the capacity of a Request's header BoundedList.
	MaxHeaderPairs = 32
)

// HTTP protocol terminators, byte-literal to avoid repeated allocation.
var (
	crlf       = []byte{'\r', '\n'}
	crlfcrlf   = []byte{'\r', '\n', '\r', '\n'}
	colonSpace = []byte(": ")
)
