package refcodec

import "fmt"

// DecodeResult is the outcome of feeding one byte to a Framer's receive
// side.
type DecodeResult int

const (
	NotReady DecodeResult = iota
	OK
	Failure
	CRCFailure
	BufferOverrun
)

func (r DecodeResult) String() string {
	switch r {
	case NotReady:
		return "NOT_READY"
	case OK:
		return "OK"
	case Failure:
		return "FAILURE"
	case CRCFailure:
		return "CRC_FAILURE"
	case BufferOverrun:
		return "BUFFER_OVERRUN"
	}
	return "UNKNOWN"
}

// Framer is the buffer-layout-aware state machine described in the
// language reference: it joins message-id + payload + CRC + COBS +
// zero-byte terminator on send, and consumes bytes one at a time on
// receive. A Framer is not safe for concurrent use.
type Framer struct {
	maxLength int
	crcWidth  int

	messageOffset int
	buf           []byte
	readPos       int
}

// NewFramer constructs a Framer sized for the given protocol parameters.
// maxLength bounds the message-id-plus-payload region; crcWidth is 0, 1,
// 2, or 4.
func NewFramer(maxLength, crcWidth int) *Framer {
	offset := COBSOverhead(maxLength + crcWidth)
	size := offset + maxLength + crcWidth + 1 // +1 for the terminator
	return &Framer{
		maxLength:     maxLength,
		crcWidth:      crcWidth,
		messageOffset: offset,
		buf:           make([]byte, size),
	}
}

// MessageOffset returns the fixed offset within Buffer() at which a
// zero-copy message overlay begins: the caller writes the message-id byte
// at Buffer()[MessageOffset()].
func (f *Framer) MessageOffset() int { return f.messageOffset }

// Buffer exposes the framer's internal region for zero-copy sends: the
// caller writes message id + payload starting at MessageOffset(), then
// calls SendZeroCopy with the total unframed length.
func (f *Framer) Buffer() []byte { return f.buf }

// SendZeroCopy frames the len bytes already written at buf[messageOffset:]
// in place, returning the framed bytes (including terminator) which alias
// the front of the internal buffer. len is the message-id-plus-payload
// length, excluding CRC.
func (f *Framer) SendZeroCopy(length int) ([]byte, error) {
	if length < 0 || f.messageOffset+length+f.crcWidth > len(f.buf) {
		return nil, fmt.Errorf("refcodec: message of length %d does not fit the framer buffer", length)
	}
	region := f.buf[f.messageOffset : f.messageOffset+length]

	var withCRC []byte
	if f.crcWidth > 0 {
		withCRC = AppendCRC(append([]byte{}, region...), f.crcWidth)
	} else {
		withCRC = region
	}

	encoded := f.buf[:0]
	need := len(withCRC) + COBSOverhead(len(withCRC))
	if need+1 > len(f.buf) {
		return nil, fmt.Errorf("refcodec: encoded frame (%d bytes) exceeds framer buffer (%d bytes)", need+1, len(f.buf))
	}
	encoded = encoded[:need]
	n, status := COBSEncode(encoded, withCRC)
	if status != StatusOK {
		return nil, fmt.Errorf("refcodec: cobs encode failed with status %d", status)
	}
	f.buf[n] = 0x00
	return f.buf[:n+1], nil
}

// SendCopy frames a message supplied by the caller (id followed by
// encoded payload, not including CRC) without requiring the caller to
// have used the zero-copy buffer, returning a freshly allocated framed
// byte slice.
func (f *Framer) SendCopy(messageIDAndPayload []byte) ([]byte, error) {
	if len(messageIDAndPayload) > f.maxLength {
		return nil, fmt.Errorf("refcodec: message of length %d exceeds max_length %d", len(messageIDAndPayload), f.maxLength)
	}
	copy(f.buf[f.messageOffset:], messageIDAndPayload)
	framed, err := f.SendZeroCopy(len(messageIDAndPayload))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(framed))
	copy(out, framed)
	return out, nil
}

// PushByte feeds one inbound byte to the framer's receive state machine.
// On OK, Payload returns the decoded message-id-plus-payload region
// (rebased to MessageOffset, as the spec's zero-copy discipline
// requires) and payloadLen is its length.
func (f *Framer) PushByte(b byte) (result DecodeResult, payloadLen int) {
	if b != 0x00 {
		if f.readPos >= len(f.buf)-1 {
			f.readPos = 0
			return BufferOverrun, 0
		}
		f.buf[f.readPos] = b
		f.readPos++
		return NotReady, 0
	}

	accLen := f.readPos
	if accLen == 0 {
		f.readPos = 0
		return Failure, 0
	}

	outLen, status := COBSDecode(f.buf, f.buf[:accLen])
	if status != StatusOK {
		f.readPos = 0
		return Failure, 0
	}

	payloadAndCRCLen := outLen - f.crcWidth
	if f.crcWidth > 0 {
		if payloadAndCRCLen < 0 || !VerifyCRC(f.buf[:outLen], f.crcWidth) {
			f.readPos = 0
			return CRCFailure, 0
		}
	}

	copy(f.buf[f.messageOffset:f.messageOffset+payloadAndCRCLen], f.buf[:payloadAndCRCLen])
	f.readPos = 0
	return OK, payloadAndCRCLen
}

// Payload returns the slice holding the most recently decoded message-id
// plus payload, valid until the next PushByte call.
func (f *Framer) Payload(payloadLen int) []byte {
	return f.buf[f.messageOffset : f.messageOffset+payloadLen]
}

// Reset returns the framer to its initial receive state, discarding any
// partially-accumulated frame.
func (f *Framer) Reset() { f.readPos = 0 }
