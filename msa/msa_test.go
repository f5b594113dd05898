package msa

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name            string
		sides           int
		sectorsPerTrack int
		cylinders       int
		fill            func(track []byte)
	}{
		{
			name: "uniform track compresses", sides: 2, sectorsPerTrack: 10, cylinders: 2,
			fill: func(track []byte) {
				for i := range track {
					track[i] = 0x00
				}
			},
		},
		{
			name: "escape byte in data", sides: 1, sectorsPerTrack: 9, cylinders: 2,
			fill: func(track []byte) {
				for i := range track {
					track[i] = 0xE5
				}
			},
		},
		{
			name: "incompressible random-like track", sides: 2, sectorsPerTrack: 10, cylinders: 1,
			fill: func(track []byte) {
				for i := range track {
					track[i] = byte(i % 251)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trackSize := tt.sectorsPerTrack * 512
			raw := make([]byte, trackSize*tt.cylinders*tt.sides)
			for track := 0; track < tt.cylinders*tt.sides; track++ {
				tt.fill(raw[track*trackSize : (track+1)*trackSize])
			}

			var buf bytes.Buffer
			if err := Encode(&buf, raw, tt.sides, tt.sectorsPerTrack, tt.cylinders); err != nil {
				t.Fatalf("Encode() = %v", err)
			}

			decoded, sides, sectorsPerTrack, cylinders, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode() = %v", err)
			}
			if sides != tt.sides || sectorsPerTrack != tt.sectorsPerTrack || cylinders != tt.cylinders {
				t.Fatalf("geometry = (%d, %d, %d), want (%d, %d, %d)",
					sides, sectorsPerTrack, cylinders, tt.sides, tt.sectorsPerTrack, tt.cylinders)
			}
			if !bytes.Equal(decoded, raw) {
				t.Fatalf("decoded image does not match original")
			}
		})
	}
}

func TestEncodeTrackEscapesRunsOfFiveOrMore(t *testing.T) {
	track := bytes.Repeat([]byte{0x11}, 5)
	encoded := encodeTrack(nil, track)
	want := []byte{escapeByte, 0x11, 0x00, 0x05}
	if !bytes.Equal(encoded, want) {
		t.Errorf("encodeTrack() = %v, want %v", encoded, want)
	}
}

func TestEncodeTrackLeavesShortRunsLiteral(t *testing.T) {
	track := []byte{0x01, 0x01, 0x01, 0x02}
	encoded := encodeTrack(nil, track)
	want := []byte{0x01, 0x01, 0x01, 0x02}
	if !bytes.Equal(encoded, want) {
		t.Errorf("encodeTrack() = %v, want %v", encoded, want)
	}
}

func TestEncodeTrackAlwaysEscapesLiteralEscapeByte(t *testing.T) {
	track := []byte{0xE5}
	encoded := encodeTrack(nil, track)
	want := []byte{escapeByte, 0xE5, 0x00, 0x01}
	if !bytes.Equal(encoded, want) {
		t.Errorf("encodeTrack() = %v, want %v", encoded, want)
	}
}

func TestDecodeRejectsBadSignature(t *testing.T) {
	buf := bytes.NewReader([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	if _, _, _, _, err := Decode(buf); err == nil {
		t.Fatal("Decode() = nil error, want ErrBadSignature")
	}
}
