package idxgo

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is the root of the format error taxonomy. Every structural
	// problem with an index file (unsupported version, truncated trailer,
	// impossible section offsets, oversized partitions) satisfies
	// errors.Is(err, ErrFormat). Format errors are permanent for that file;
	// retrying the read cannot fix them.
	ErrFormat = errors.New("invalid index file format")

	// ErrClosed is returned by operations on a closed Reader.
	ErrClosed = errors.New("reader is closed")
)

// IncompatibleVersionError indicates the file was written with a format
// version this reader does not support.
type IncompatibleVersionError struct {
	Got  uint32
	Want uint32
}

func (e *IncompatibleVersionError) Error() string {
	return fmt.Sprintf("incompatible format version: %d (supported: %d)", e.Got, e.Want)
}

func (e *IncompatibleVersionError) Unwrap() error { return ErrFormat }

// FileTooSmallError indicates the file is smaller than the fixed version
// header and trailer fields require, so no layout can be resolved from it.
type FileTooSmallError struct {
	Size int64
}

func (e *FileTooSmallError) Error() string {
	return fmt.Sprintf("file too small: %d bytes (minimum %d)", e.Size, MinFileSize)
}

func (e *FileTooSmallError) Unwrap() error { return ErrFormat }

// CorruptLayoutError indicates the trailer length fields place the sections
// outside the file or out of order. Layout holds the values as decoded;
// indices are zero when the lengths alone already ruled the file out.
type CorruptLayoutError struct {
	Layout Layout
}

func (e *CorruptLayoutError) Error() string {
	return fmt.Sprintf(
		"corrupt layout: rowIdListLength=%d footerLength=%d do not fit file of %d bytes (rowIdListIndex=%d, footerIndex=%d)",
		e.Layout.RowIDListLength, e.Layout.FooterLength, e.Layout.FileLength,
		e.Layout.RowIDListIndex, e.Layout.FooterIndex,
	)
}

func (e *CorruptLayoutError) Unwrap() error { return ErrFormat }

// PartitionTooLargeError indicates a computed read length does not fit a
// 32-bit signed size. Partitions must never be configured larger than
// addressable buffer sizes.
type PartitionTooLargeError struct {
	Length int64
}

func (e *PartitionTooLargeError) Error() string {
	return fmt.Sprintf("partition length %d exceeds 32-bit addressable size", e.Length)
}

func (e *PartitionTooLargeError) Unwrap() error { return ErrFormat }

// PartitionOutOfRangeError indicates a partition index beyond the row-id
// list. An out-of-range partition is an error, never a silent wrong read.
type PartitionOutOfRangeError struct {
	Part  int
	Count int
}

func (e *PartitionOutOfRangeError) Error() string {
	return fmt.Sprintf("partition %d out of range (have %d partitions)", e.Part, e.Count)
}

func (e *PartitionOutOfRangeError) Unwrap() error { return ErrFormat }
