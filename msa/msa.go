// Package msa encodes and decodes the Magic Shadow Archiver container
// format: a 10-byte header followed by one run-length-compressed (or, if
// compression doesn't help, raw) record per track.
package msa

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/arnaud-carre/dir2msa/checkpoint"
)

const signature = 0x0E0F

// ErrBadSignature is returned by Decode when the input doesn't start with
// the MSA magic number.
var ErrBadSignature = errors.New("not an MSA image")

// escapeByte marks the start of a run-length-encoded run within a track.
const escapeByte = 0xE5

// minRunLength is the shortest run encodeTrack will encode as an escape
// sequence instead of emitting the bytes literally.
const minRunLength = 5

// Encode writes raw (a flat disk image, sides*sectorsPerTrack*cylinders*512
// bytes) to w as an MSA container.
func Encode(w io.Writer, raw []byte, sides, sectorsPerTrack, cylinders int) error {
	var header [10]byte
	binary.BigEndian.PutUint16(header[0:2], signature)
	binary.BigEndian.PutUint16(header[2:4], uint16(sectorsPerTrack))
	binary.BigEndian.PutUint16(header[4:6], uint16(sides-1))
	binary.BigEndian.PutUint16(header[6:8], 0)
	binary.BigEndian.PutUint16(header[8:10], uint16(cylinders-1))
	if _, err := w.Write(header[:]); err != nil {
		return checkpoint.From(err)
	}

	trackSize := sectorsPerTrack * 512
	numTracks := cylinders * sides

	var encoded []byte
	for t := 0; t < numTracks; t++ {
		track := raw[t*trackSize : (t+1)*trackSize]
		encoded = encodeTrack(encoded[:0], track)

		var lenBuf [2]byte
		if len(encoded) < trackSize {
			binary.BigEndian.PutUint16(lenBuf[:], uint16(len(encoded)))
			if err := writeAll(w, lenBuf[:], encoded); err != nil {
				return err
			}
		} else {
			binary.BigEndian.PutUint16(lenBuf[:], uint16(trackSize))
			if err := writeAll(w, lenBuf[:], track); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeAll(w io.Writer, chunks ...[]byte) error {
	for _, c := range chunks {
		if _, err := w.Write(c); err != nil {
			return checkpoint.From(err)
		}
	}
	return nil
}

// encodeTrack appends the RLE encoding of track to dst and returns the
// result. A run of minRunLength or more identical bytes is replaced by an
// escape sequence; so is any run of the escape byte itself, regardless of
// length, since a literal 0xE5 would otherwise be mistaken for one.
func encodeTrack(dst, track []byte) []byte {
	i := 0
	for i < len(track) {
		v := track[i]
		n := 1
		for i+n < len(track) && track[i+n] == v {
			n++
		}

		if n >= minRunLength || v == escapeByte {
			dst = append(dst, escapeByte, v, byte(n>>8), byte(n))
			i += n
		} else {
			dst = append(dst, v)
			i++
		}
	}
	return dst
}

// Decode reads an MSA container from r and returns the flat disk image it
// represents, along with the geometry recorded in its header.
func Decode(r io.Reader) (raw []byte, sides, sectorsPerTrack, cylinders int, err error) {
	var header [10]byte
	if _, err = io.ReadFull(r, header[:]); err != nil {
		return nil, 0, 0, 0, checkpoint.From(err)
	}
	if binary.BigEndian.Uint16(header[0:2]) != signature {
		return nil, 0, 0, 0, checkpoint.From(ErrBadSignature)
	}

	sectorsPerTrack = int(binary.BigEndian.Uint16(header[2:4]))
	sides = int(binary.BigEndian.Uint16(header[4:6])) + 1
	endTrack := int(binary.BigEndian.Uint16(header[8:10]))
	cylinders = endTrack + 1

	trackSize := sectorsPerTrack * 512
	numTracks := cylinders * sides
	raw = make([]byte, 0, numTracks*trackSize)

	for t := 0; t < numTracks; t++ {
		var lenBuf [2]byte
		if _, err = io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, 0, 0, 0, checkpoint.From(err)
		}
		n := int(binary.BigEndian.Uint16(lenBuf[:]))

		buf := make([]byte, n)
		if _, err = io.ReadFull(r, buf); err != nil {
			return nil, 0, 0, 0, checkpoint.From(err)
		}

		if n < trackSize {
			raw = append(raw, decodeTrack(buf, trackSize)...)
		} else {
			raw = append(raw, buf...)
		}
	}

	return raw, sides, sectorsPerTrack, cylinders, nil
}

func decodeTrack(encoded []byte, trackSize int) []byte {
	out := make([]byte, 0, trackSize)
	i := 0
	for i < len(encoded) {
		if encoded[i] == escapeByte {
			v := encoded[i+1]
			n := int(encoded[i+2])<<8 | int(encoded[i+3])
			for j := 0; j < n; j++ {
				out = append(out, v)
			}
			i += 4
			continue
		}
		out = append(out, encoded[i])
		i++
	}
	return out
}
