package lzss

import (
	"bytes"
	"testing"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0},
		{1, 2, 3, 0},
		bytesOf(0, 24),
		repeatingPattern(200, 5),
		randomish(2048),
	}
	for i, src := range cases {
		payload, err := Compress(src, DefaultConfig())
		if err != nil {
			t.Fatalf("case %d: Compress: %v", i, err)
		}
		got, err := Decompress(payload, len(src))
		if err != nil {
			t.Fatalf("case %d: Decompress: %v", i, err)
		}
		if !bytes.Equal(got, src) {
			t.Fatalf("case %d: round-trip mismatch:\n got  %v\n want %v", i, got, src)
		}
	}
}

func TestCompressRunOfZerosEmitsAtLeastOneReference(t *testing.T) {
	// Scenario 4 of spec.md §8: a run of 24 identical bytes should
	// compress to at least one reference of length >= WireMinMatch once
	// the dictionary has been seeded.
	src := bytesOf(0, 24)
	cfg := DefaultConfig()
	payload, err := Compress(src, cfg)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	fr := NewFramer(payload)
	sawReference := false
	for {
		op, err := fr.NextOp()
		if err != nil {
			t.Fatalf("NextOp: %v", err)
		}
		if op.Kind == OpEnd {
			break
		}
		if op.Kind == OpReference && op.Length >= WireMinMatch {
			sawReference = true
		}
	}
	if !sawReference {
		t.Fatalf("Compress of a 24-byte run of zeros emitted no reference")
	}

	got, err := Decompress(payload, len(src))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round-trip mismatch: got %v, want %v", got, src)
	}
}

func TestCompressAllLiteralModeNeverEmitsReferences(t *testing.T) {
	src := bytesOf(0, 64)
	cfg := DefaultConfig()
	cfg.AllLiteral = true
	payload, err := Compress(src, cfg)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(payload) != 64+8 { // 8 flag bytes (64 literal ops / 8 per group) + 64 literal bytes
		t.Fatalf("payload length = %d, want %d for an all-literal encode", len(payload), 64+8)
	}

	fr := NewFramer(payload)
	for i := 0; i < 64; i++ {
		op, err := fr.NextOp()
		if err != nil {
			t.Fatalf("op %d: NextOp: %v", i, err)
		}
		if op.Kind != OpLiteral {
			t.Fatalf("op %d: Kind = %v, want OpLiteral (AllLiteral mode)", i, op.Kind)
		}
	}
}

func TestDecompressTruncatedStream(t *testing.T) {
	// A single literal byte where 4 are required.
	payload := xorBytes(0xFF, 'a')
	if _, err := Decompress(payload, 4); err != ErrTruncatedStream {
		t.Fatalf("Decompress: err = %v, want ErrTruncatedStream", err)
	}
}

func TestDecompressZeroDistanceReferenceIsTruncated(t *testing.T) {
	// Hand-craft a stream whose first op is a reference at the write
	// cursor's starting position (d=0). The Open Question of spec.md §9
	// is resolved here as TruncatedStream (see DESIGN.md).
	u, l, err := Pack(StartCursor, WireMinMatch)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	flag := byte(0b00000000) // first bit 0 => reference
	payload := xorBytes(flag, u, l)
	if _, err := Decompress(payload, WireMinMatch); err != ErrTruncatedStream {
		t.Fatalf("Decompress with d=0 reference: err = %v, want ErrTruncatedStream", err)
	}
}

func repeatingPattern(n, period int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i % period)
	}
	return out
}

func randomish(n int) []byte {
	// Deterministic pseudo-random bytes (no math/rand dependency on a
	// seed source here: a simple LCG is enough for exercising the
	// matcher against non-repetitive data).
	out := make([]byte, n)
	x := uint32(0x2545F491)
	for i := range out {
		x = x*1664525 + 1013904223
		out[i] = byte(x >> 16)
	}
	return out
}
