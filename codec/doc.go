// Package codec provides the block codecs used to decompress index file
// sections on read.
//
// Codec selection is a compatibility boundary: the codec that wrote a
// section must be the one that decodes it, and bytes produced by one codec
// will not decode with another. Formats that need to be self-describing
// store the codec name and resolve it with ByName.
//
// All codecs except Raw share a little-endian block frame:
//
//	[uncompressedSize uint32][compressedSize uint32][payload]
//
// A compressedSize of zero marks a stored payload, which compressors fall
// back to when compression does not pay for itself.
package codec
