/*
Package bencode implements the bencode serialization format

Values are byte strings, integers, lists and dictionaries. Decoding is
bounded by an allocation budget so that small adversarial inputs cannot
expand into huge trees, and decoded byte strings borrow from the input
buffer instead of copying it. Encoding always produces the canonical form:
dictionary keys in ascending byte order, integers without leading zeros.

	v, ok := bencode.Decode(msg, 64)
	if !ok {
		// malformed, duplicate keys or over budget: no further detail
	}
	out := v.Encode()

For more information on bencode, please see
http://bittorrent.org/beps/bep_0003.html
*/
package bencode
