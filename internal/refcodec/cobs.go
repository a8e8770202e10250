// Package refcodec is the Go reference implementation of the wire-framing
// engine described in the language reference: COBS, the three CRC widths,
// and the buffer-layout-aware Framer state machine. It exists to give the
// compiler's conformance tests a byte-exact oracle independent of any
// generated backend.
package refcodec

// COBSStatus is a bitmask of encode/decode outcomes, matching the flag
// values fixed by the wire reference so generated runtimes and this
// package agree bit-for-bit.
type COBSStatus uint8

const (
	StatusOK                 COBSStatus = 0
	StatusNullPointer        COBSStatus = 1
	StatusOutBufferOverflow  COBSStatus = 2
	StatusZeroByteInInput    COBSStatus = 4
	StatusInputTooShort      COBSStatus = 8
)

// COBSOverhead returns the number of code-byte overhead COBS adds to an
// n-byte payload: one code byte per 254-byte group, plus one for the
// (possibly empty) final group. This is floor(n/254)+1 — note that at
// exact multiples of 254 the final group is empty (an explicit trailing
// 0x01), which a naive ceil(n/254) undercounts.
func COBSOverhead(n int) int {
	if n < 0 {
		n = 0
	}
	return n/254 + 1
}

// COBSEncode writes the COBS encoding of src into dst and returns the
// number of bytes written plus a status. dst must have capacity for at
// least len(src)+COBSOverhead(len(src)) bytes.
func COBSEncode(dst, src []byte) (int, COBSStatus) {
	if dst == nil && len(src) > 0 {
		return 0, StatusNullPointer
	}
	need := len(src) + COBSOverhead(len(src))
	if len(dst) < need {
		return 0, StatusOutBufferOverflow
	}

	outIdx := 0
	codeIdx := 0
	dst[0] = 0x01 // placeholder; patched once the run length is known
	code := byte(1)

	for _, b := range src {
		if b == 0 {
			dst[codeIdx] = code
			codeIdx = outIdx + 1
			outIdx++
			if outIdx >= len(dst) {
				return 0, StatusOutBufferOverflow
			}
			dst[outIdx] = 0x01
			code = 1
			continue
		}
		outIdx++
		if outIdx >= len(dst) {
			return 0, StatusOutBufferOverflow
		}
		dst[outIdx] = b
		code++
		if code == 0xFF {
			dst[codeIdx] = code
			codeIdx = outIdx + 1
			outIdx++
			if outIdx >= len(dst) {
				return 0, StatusOutBufferOverflow
			}
			dst[outIdx] = 0x01
			code = 1
		}
	}
	dst[codeIdx] = code
	return outIdx + 1, StatusOK
}

// COBSDecode writes the decoded form of src into dst (which may alias src
// for the canonical in-place path) and returns the number of bytes written
// plus a status. src must not contain a terminating 0x00; the framer
// strips that separately.
func COBSDecode(dst, src []byte) (int, COBSStatus) {
	if len(src) == 0 {
		return 0, StatusInputTooShort
	}
	if dst == nil {
		return 0, StatusNullPointer
	}

	srcIdx := 0
	outIdx := 0
	for srcIdx < len(src) {
		code := src[srcIdx]
		if code == 0 {
			return outIdx, StatusZeroByteInInput
		}
		run := int(code) - 1
		if srcIdx+1+run > len(src) {
			return outIdx, StatusInputTooShort
		}
		for i := 0; i < run; i++ {
			if outIdx >= len(dst) {
				return outIdx, StatusOutBufferOverflow
			}
			dst[outIdx] = src[srcIdx+1+i]
			outIdx++
		}
		srcIdx += 1 + run
		if code != 0xFF && srcIdx < len(src) {
			if outIdx >= len(dst) {
				return outIdx, StatusOutBufferOverflow
			}
			dst[outIdx] = 0
			outIdx++
		}
	}
	return outIdx, StatusOK
}
