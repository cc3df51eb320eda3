/*
Package envelope wraps bencode documents in a small binary header that
records an optional compression of the body.

A document is the 4-byte magic "=bnc", one byte naming the document type
(raw, snappy, zlib or zstd) and the body. Raw bodies are a single bencode
value. Compressed bodies carry their length as a uvarint in front of the
compressed bytes; zlib bodies also record the uncompressed length first.

	enc := envelope.NewEncoder()
	enc.Compression = envelope.ZstdCompressor{}
	doc, err := enc.Marshal(v)

	dec := envelope.NewDecoder(1024)
	v, err := dec.Unmarshal(doc)
*/
package envelope
