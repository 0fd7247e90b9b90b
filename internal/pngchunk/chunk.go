// Package pngchunk implements PNG's generic chunk framing: an 8-byte-prefixed,
// CRC32-trailed container format. It has no notion of any particular chunk's
// payload semantics (IHDR, PLTE, IDAT, ...); callers decode/encode payloads
// themselves and hand this package raw bytes plus a 4-byte type code.
package pngchunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// Signature is the 8-byte magic sequence every PNG stream must begin with.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// HeaderSize is the number of bytes preceding a chunk's payload: a 4-byte
// big-endian length followed by a 4-byte type code.
const HeaderSize = 8

// TrailerSize is the size of a chunk's CRC32 trailer.
const TrailerSize = 4

// Errors returned while reading chunks.
var (
	ErrBadSignature = errors.New("pngchunk: missing PNG signature")
	ErrTruncated    = errors.New("pngchunk: truncated chunk")
	ErrBadCRC       = errors.New("pngchunk: chunk CRC mismatch")
)

// Chunk is one fully-read PNG chunk: a 4-byte type code (e.g. "IHDR") and
// its payload. The CRC trailer has already been validated by the time a
// Chunk is returned from ReadChunk.
type Chunk struct {
	Type string
	Data []byte
}

// ReadSignature consumes and validates the 8-byte PNG signature from r.
func ReadSignature(r io.Reader) error {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return fmt.Errorf("pngchunk: reading signature: %w", ErrBadSignature)
	}
	if sig != Signature {
		return ErrBadSignature
	}
	return nil
}

// WriteSignature writes the 8-byte PNG signature to w.
func WriteSignature(w io.Writer) error {
	_, err := w.Write(Signature[:])
	return err
}

// ReadChunk reads one length-prefixed, CRC-trailed chunk from r.
func ReadChunk(r io.Reader) (Chunk, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Chunk{}, fmt.Errorf("pngchunk: reading header: %w", ErrTruncated)
	}
	length := binary.BigEndian.Uint32(hdr[0:4])
	typ := string(hdr[4:8])

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return Chunk{}, fmt.Errorf("pngchunk: reading %s payload (%d bytes): %w", typ, length, ErrTruncated)
	}

	var crcBuf [TrailerSize]byte
	if _, err := io.ReadFull(r, crcBuf[:]); err != nil {
		return Chunk{}, fmt.Errorf("pngchunk: reading %s crc: %w", typ, ErrTruncated)
	}
	want := binary.BigEndian.Uint32(crcBuf[:])

	crc := crc32.NewIEEE()
	crc.Write(hdr[4:8])
	crc.Write(data)
	if crc.Sum32() != want {
		return Chunk{}, fmt.Errorf("pngchunk: %s: %w", typ, ErrBadCRC)
	}

	return Chunk{Type: typ, Data: data}, nil
}

// WriteChunk writes one length-prefixed, CRC-trailed chunk to w.
func WriteChunk(w io.Writer, typ string, data []byte) error {
	if len(typ) != 4 {
		return fmt.Errorf("pngchunk: chunk type %q must be 4 bytes", typ)
	}
	var hdr [HeaderSize]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(len(data)))
	copy(hdr[4:8], typ)

	crc := crc32.NewIEEE()
	crc.Write(hdr[4:8])
	crc.Write(data)

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	var trailer [TrailerSize]byte
	binary.BigEndian.PutUint32(trailer[:], crc.Sum32())
	_, err := w.Write(trailer[:])
	return err
}
