package bencode

// tokens of the wire format
const (
	tokenInt   = 'i'
	tokenList  = 'l'
	tokenDict  = 'd'
	tokenEnd   = 'e'
	tokenColon = ':'
	tokenMinus = '-'
)

// DefaultMaxDepth is the nesting limit used when Decoder.MaxDepth is zero.
const DefaultMaxDepth = 512

const encodeBufferSize = 1500

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
