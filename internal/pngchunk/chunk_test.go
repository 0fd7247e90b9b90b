package pngchunk

import (
	"bytes"
	"errors"
	"testing"
)

func TestSignatureRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSignature(&buf); err != nil {
		t.Fatalf("WriteSignature: %v", err)
	}
	if err := ReadSignature(&buf); err != nil {
		t.Fatalf("ReadSignature: %v", err)
	}
}

func TestReadSignatureRejectsGarbage(t *testing.T) {
	buf := bytes.NewBufferString("not a png file at all")
	if err := ReadSignature(buf); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("ReadSignature on garbage: %v, want ErrBadSignature", err)
	}
}

func TestChunkRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("hello chunk payload")
	if err := WriteChunk(&buf, "tEXt", payload); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	c, err := ReadChunk(&buf)
	if err != nil {
		t.Fatalf("ReadChunk: %v", err)
	}
	if c.Type != "tEXt" {
		t.Errorf("Type = %q, want tEXt", c.Type)
	}
	if !bytes.Equal(c.Data, payload) {
		t.Errorf("Data = %q, want %q", c.Data, payload)
	}
}

func TestChunkEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChunk(&buf, "IEND", nil); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	c, err := ReadChunk(&buf)
	if err != nil {
		t.Fatalf("ReadChunk: %v", err)
	}
	if len(c.Data) != 0 {
		t.Errorf("Data = %v, want empty", c.Data)
	}
}

func TestReadChunkDetectsCorruption(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChunk(&buf, "IDAT", []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xff // flip a bit in the CRC trailer

	if _, err := ReadChunk(bytes.NewReader(corrupted)); !errors.Is(err, ErrBadCRC) {
		t.Fatalf("ReadChunk on corrupted CRC: %v, want ErrBadCRC", err)
	}
}

func TestReadChunkTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChunk(&buf, "IDAT", []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	truncated := buf.Bytes()[:len(buf.Bytes())-2]
	if _, err := ReadChunk(bytes.NewReader(truncated)); !errors.Is(err, ErrTruncated) {
		t.Fatalf("ReadChunk on truncated input: %v, want ErrTruncated", err)
	}
}

func TestWriteChunkRejectsBadType(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChunk(&buf, "abc", nil); err == nil {
		t.Fatal("WriteChunk with 3-byte type: want error, got nil")
	}
}
