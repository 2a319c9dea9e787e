package internal

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

const (
	TimecodePacketSize = 19
	FramesPerSecond    = 30

	opTimeCode    uint16 = 0x9700
	protVerHi     byte   = 0
	protVerLo     byte   = 14
	typeSMPTE30fp byte   = 3
)

var artNetID = []byte("Art-Net\x00")

// EncodeTimecode converts a playback position in seconds to a 30 fps SMPTE
// timecode. Hours wrap at 24. Negative or non-finite positions are treated
// as zero; the control session never hands those out.
func EncodeTimecode(position float64) Timecode {
	if position < 0 || math.IsNaN(position) || math.IsInf(position, 0) {
		position = 0
	}
	// wrap at 24h before any integer conversion
	position = math.Mod(position, 24*3600)

	whole, frac := math.Modf(position)
	total := uint64(whole)

	frames := uint64(frac * FramesPerSecond)
	if frames >= FramesPerSecond {
		frames = FramesPerSecond - 1
	}

	return Timecode{
		Hours:   uint8((total / 3600) % 24),
		Minutes: uint8((total % 3600) / 60),
		Seconds: uint8(total % 60),
		Frames:  uint8(frames),
	}
}

// Position returns the playback position the timecode stands for, at 1/30 s resolution.
func (tc Timecode) Position() float64 {
	return float64(tc.Hours)*3600 + float64(tc.Minutes)*60 + float64(tc.Seconds) + float64(tc.Frames)/FramesPerSecond
}

func (tc Timecode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", tc.Hours, tc.Minutes, tc.Seconds, tc.Frames)
}

// Packet lays out an ArtTimeCode packet:
//
//	0  8  ID "Art-Net\0"
//	8  2  OpCode 0x9700, little endian
//	10 1  ProtVerHi
//	11 1  ProtVerLo
//	12 2  filler
//	14 4  frames, seconds, minutes, hours
//	18 1  type (3 = SMPTE 30 fps)
func (tc Timecode) Packet() []byte {
	p := make([]byte, TimecodePacketSize)
	copy(p[0:8], artNetID)
	binary.LittleEndian.PutUint16(p[8:10], opTimeCode)
	p[10] = protVerHi
	p[11] = protVerLo
	p[14] = tc.Frames
	p[15] = tc.Seconds
	p[16] = tc.Minutes
	p[17] = tc.Hours
	p[18] = typeSMPTE30fp
	return p
}

// DecodeTimecodePacket parses an ArtTimeCode packet. Anything that is not an
// Art-Net timecode packet is rejected.
func DecodeTimecodePacket(data []byte) (Timecode, error) {
	if len(data) < TimecodePacketSize {
		return Timecode{}, fmt.Errorf("invalid packet size: %v", len(data))
	}
	if !bytes.Equal(data[0:8], artNetID) {
		return Timecode{}, fmt.Errorf("invalid packet id: %q", data[0:8])
	}
	if op := binary.LittleEndian.Uint16(data[8:10]); op != opTimeCode {
		return Timecode{}, fmt.Errorf("unexpected opcode: %#04x", op)
	}

	return Timecode{
		Frames:  data[14],
		Seconds: data[15],
		Minutes: data[16],
		Hours:   data[17],
	}, nil
}
