// Package huffman implements a self-describing Huffman compressor over bytes.
// A compressed stream is a 32-bit magic number, followed by the code tree in
// pre-order, followed by the coded payload.  The payload ends with the code
// for a reserved end-of-stream symbol, so no length field is needed.
//
// Wire layout, most significant bit first:
//
//     magic    32 bits     MagicTree (or the legacy MagicNumber)
//     tree     pre-order   internal node: 0, left, right
//                          leaf:          1, 9-bit symbol
//     payload  codes       one code per input byte, then the code for EOF
//
// The tree always has a leaf for every byte value and for EOF, even when
// the byte never occurs in the input.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
