// Package runtimeartifacts emits the one-time, language-specific
// runtime-support files the `bakelite runtime` command writes: the
// COBS/CRC/stream/framer implementations that generated code calls into.
// Output is a pure function of the target language, as the language
// reference requires ("idempotent; output is purely a function of the
// chosen target language").
package runtimeartifacts

import "fmt"

// Generate returns the runtime-support source text for lang ("ctiny" or
// "cpptiny").
func Generate(lang string) (string, error) {
	switch lang {
	case "ctiny":
		return cHeader, nil
	case "cpptiny":
		return cppHeader, nil
	}
	return "", fmt.Errorf("runtimeartifacts: unknown target language %q", lang)
}

// Filename returns the conventional file name for lang's runtime artifact.
func Filename(lang string) (string, error) {
	switch lang {
	case "ctiny":
		return "bakelite_runtime.h", nil
	case "cpptiny":
		return "bakelite_runtime.hpp", nil
	}
	return "", fmt.Errorf("runtimeartifacts: unknown target language %q", lang)
}

const cHeader = `/* Code generated by bakelite. DO NOT EDIT. */
#ifndef BAKELITE_RUNTIME_H
#define BAKELITE_RUNTIME_H

#include <stddef.h>
#include <stdint.h>
#include <string.h>

enum {
    BKL_OK = 0,
    BKL_ERR_WRITE = -1,
    BKL_ERR_READ = -2,
    BKL_ERR_SEEK = -3,
    BKL_ERR_CAPACITY = -4,
};

/* Upper bound on a single decoded frame (message id + payload + CRC) that
 * bkl_framer_push_byte can hold in its decode scratch space. Raise this if
 * a protocol's max_length + crc_width exceeds it. */
#ifndef BKL_FRAMER_SCRATCH_MAX
#define BKL_FRAMER_SCRATCH_MAX 256
#endif

typedef struct {
    uint8_t *data;
    size_t size;
    size_t pos;
} bkl_stream_t;

static inline void bkl_stream_init(bkl_stream_t *s, uint8_t *data, size_t size) {
    s->data = data;
    s->size = size;
    s->pos = 0;
}

static inline int bkl_put8(bkl_stream_t *s, uint8_t v) {
    if (s->pos + 1 > s->size) return BKL_ERR_WRITE;
    s->data[s->pos++] = v;
    return BKL_OK;
}

static inline int bkl_put16(bkl_stream_t *s, uint16_t v) {
    if (s->pos + 2 > s->size) return BKL_ERR_WRITE;
    s->data[s->pos++] = (uint8_t)(v);
    s->data[s->pos++] = (uint8_t)(v >> 8);
    return BKL_OK;
}

static inline int bkl_put32(bkl_stream_t *s, uint32_t v) {
    if (s->pos + 4 > s->size) return BKL_ERR_WRITE;
    for (int i = 0; i < 4; i++) s->data[s->pos++] = (uint8_t)(v >> (8 * i));
    return BKL_OK;
}

static inline int bkl_put64(bkl_stream_t *s, uint64_t v) {
    if (s->pos + 8 > s->size) return BKL_ERR_WRITE;
    for (int i = 0; i < 8; i++) s->data[s->pos++] = (uint8_t)(v >> (8 * i));
    return BKL_OK;
}

static inline int bkl_get8(bkl_stream_t *s, uint8_t *v) {
    if (s->pos + 1 > s->size) return BKL_ERR_READ;
    *v = s->data[s->pos++];
    return BKL_OK;
}

static inline int bkl_get16(bkl_stream_t *s, uint16_t *v) {
    if (s->pos + 2 > s->size) return BKL_ERR_READ;
    *v = (uint16_t)s->data[s->pos] | ((uint16_t)s->data[s->pos + 1] << 8);
    s->pos += 2;
    return BKL_OK;
}

static inline int bkl_get32(bkl_stream_t *s, uint32_t *v) {
    if (s->pos + 4 > s->size) return BKL_ERR_READ;
    *v = 0;
    for (int i = 0; i < 4; i++) *v |= (uint32_t)s->data[s->pos + i] << (8 * i);
    s->pos += 4;
    return BKL_OK;
}

static inline int bkl_get64(bkl_stream_t *s, uint64_t *v) {
    if (s->pos + 8 > s->size) return BKL_ERR_READ;
    *v = 0;
    for (int i = 0; i < 8; i++) *v |= (uint64_t)s->data[s->pos + i] << (8 * i);
    s->pos += 8;
    return BKL_OK;
}

static inline int bkl_put_bytes(bkl_stream_t *s, const uint8_t *src, uint8_t len) {
    if (bkl_put8(s, len) != BKL_OK) return BKL_ERR_WRITE;
    if (s->pos + len > s->size) return BKL_ERR_WRITE;
    memcpy(s->data + s->pos, src, len);
    s->pos += len;
    return BKL_OK;
}

static inline int bkl_get_bytes(bkl_stream_t *s, uint8_t *dst, uint8_t cap, uint8_t *out_len) {
    uint8_t n;
    if (bkl_get8(s, &n) != BKL_OK) return BKL_ERR_READ;
    if (n > cap) return BKL_ERR_CAPACITY;
    if (s->pos + n > s->size) return BKL_ERR_READ;
    memcpy(dst, s->data + s->pos, n);
    s->pos += n;
    *out_len = n;
    return BKL_OK;
}

static inline int bkl_put_cstr(bkl_stream_t *s, const char *src, uint8_t cap) {
    size_t n = strnlen(src, cap - 1);
    if (s->pos + cap > s->size) return BKL_ERR_WRITE;
    memcpy(s->data + s->pos, src, n);
    memset(s->data + s->pos + n, 0, cap - n);
    s->pos += cap;
    return BKL_OK;
}

static inline int bkl_get_cstr(bkl_stream_t *s, char *dst, uint8_t cap) {
    if (s->pos + cap > s->size) return BKL_ERR_READ;
    memcpy(dst, s->data + s->pos, cap);
    dst[cap - 1] = '\0';
    s->pos += cap;
    return BKL_OK;
}

/* --- COBS --- */

enum {
    BKL_COBS_OK = 0,
    BKL_COBS_NULL_POINTER = 1,
    BKL_COBS_OUT_BUFFER_OVERFLOW = 2,
    BKL_COBS_ZERO_BYTE_IN_INPUT = 4,
    BKL_COBS_INPUT_TOO_SHORT = 8,
};

static inline size_t bkl_cobs_overhead(size_t n) { return n / 254 + 1; }

static inline int bkl_cobs_encode(uint8_t *dst, size_t dst_len, const uint8_t *src, size_t src_len, size_t *out_len) {
    if (!dst || !src) return BKL_COBS_NULL_POINTER;
    size_t read = 0, write = 1, code_pos = 0;
    uint8_t code = 1;
    if (dst_len < 1) return BKL_COBS_OUT_BUFFER_OVERFLOW;
    while (read < src_len) {
        uint8_t b = src[read++];
        if (b == 0) {
            if (code_pos >= dst_len) return BKL_COBS_OUT_BUFFER_OVERFLOW;
            dst[code_pos] = code;
            code_pos = write;
            if (write >= dst_len) return BKL_COBS_OUT_BUFFER_OVERFLOW;
            write++;
            code = 1;
        } else {
            if (write >= dst_len) return BKL_COBS_OUT_BUFFER_OVERFLOW;
            dst[write++] = b;
            code++;
            if (code == 0xFF) {
                if (code_pos >= dst_len) return BKL_COBS_OUT_BUFFER_OVERFLOW;
                dst[code_pos] = code;
                code_pos = write;
                if (write >= dst_len) return BKL_COBS_OUT_BUFFER_OVERFLOW;
                write++;
                code = 1;
            }
        }
    }
    if (code_pos >= dst_len) return BKL_COBS_OUT_BUFFER_OVERFLOW;
    dst[code_pos] = code;
    *out_len = write;
    return BKL_COBS_OK;
}

static inline int bkl_cobs_decode(uint8_t *dst, size_t dst_len, const uint8_t *src, size_t src_len, size_t *out_len) {
    if (!dst || !src) return BKL_COBS_NULL_POINTER;
    size_t read = 0, write = 0;
    while (read < src_len) {
        uint8_t code = src[read];
        if (code == 0) return BKL_COBS_ZERO_BYTE_IN_INPUT;
        if (read + code > src_len) return BKL_COBS_INPUT_TOO_SHORT;
        read++;
        for (uint8_t i = 1; i < code; i++) {
            if (write >= dst_len) return BKL_COBS_OUT_BUFFER_OVERFLOW;
            dst[write++] = src[read++];
        }
        if (code != 0xFF && read < src_len) {
            if (write >= dst_len) return BKL_COBS_OUT_BUFFER_OVERFLOW;
            dst[write++] = 0;
        }
    }
    *out_len = write;
    return BKL_COBS_OK;
}

/* --- CRC --- */

static inline uint8_t bkl_crc8(const uint8_t *data, size_t len) {
    uint8_t crc = 0x00;
    for (size_t i = 0; i < len; i++) {
        crc ^= data[i];
        for (int b = 0; b < 8; b++)
            crc = (crc & 0x80) ? (uint8_t)((crc << 1) ^ 0x07) : (uint8_t)(crc << 1);
    }
    return crc;
}

static inline uint16_t bkl_crc16(const uint8_t *data, size_t len) {
    uint16_t crc = 0x0000;
    for (size_t i = 0; i < len; i++) {
        crc ^= data[i];
        for (int b = 0; b < 8; b++)
            crc = (crc & 1) ? (uint16_t)((crc >> 1) ^ 0xA001) : (uint16_t)(crc >> 1);
    }
    return crc;
}

static inline uint32_t bkl_crc32(const uint8_t *data, size_t len) {
    uint32_t crc = 0xFFFFFFFFu;
    for (size_t i = 0; i < len; i++) {
        crc ^= data[i];
        for (int b = 0; b < 8; b++)
            crc = (crc & 1) ? (uint32_t)((crc >> 1) ^ 0xEDB88320u) : (crc >> 1);
    }
    return crc ^ 0xFFFFFFFFu;
}

/* --- Framer --- */

typedef enum {
    BKL_DECODE_NOT_READY = 0,
    BKL_DECODE_OK = 1,
    BKL_DECODE_FAILURE = 2,
    BKL_DECODE_CRC_FAILURE = 3,
    BKL_DECODE_BUFFER_OVERRUN = 4,
} bkl_decode_result_t;

typedef struct {
    uint8_t *buf;
    size_t buf_size;
    size_t message_offset;
    size_t max_length;
    size_t crc_width;
    size_t read_pos;
} bkl_framer_t;

static inline void bkl_framer_init(bkl_framer_t *f, uint8_t *buf, size_t buf_size, size_t max_length, size_t crc_width) {
    f->buf = buf;
    f->buf_size = buf_size;
    f->max_length = max_length;
    f->crc_width = crc_width;
    f->message_offset = bkl_cobs_overhead(max_length + crc_width);
    f->read_pos = 0;
}

/* bkl_framer_send appends the CRC (if any) after the message-id/payload
 * bytes already written starting at f->buf[f->message_offset], COBS-encodes
 * them in place at the front of f->buf, and appends a zero terminator. */
static inline int bkl_framer_send(bkl_framer_t *f, size_t len, const uint8_t **out, size_t *out_len) {
    uint8_t *payload = f->buf + f->message_offset;
    if (f->crc_width > 0) {
        uint32_t crc32 = 0;
        uint16_t crc16 = 0;
        uint8_t crc8 = 0;
        switch (f->crc_width) {
        case 1:
            crc8 = bkl_crc8(payload, len);
            payload[len] = crc8;
            break;
        case 2:
            crc16 = bkl_crc16(payload, len);
            payload[len] = (uint8_t)(crc16);
            payload[len + 1] = (uint8_t)(crc16 >> 8);
            break;
        case 4:
            crc32 = bkl_crc32(payload, len);
            for (int i = 0; i < 4; i++) payload[len + i] = (uint8_t)(crc32 >> (8 * i));
            break;
        }
        len += f->crc_width;
    }
    size_t encoded_len;
    int rc = bkl_cobs_encode(f->buf, f->message_offset + len, payload, len, &encoded_len);
    if (rc != BKL_COBS_OK) return BKL_ERR_WRITE;
    if (encoded_len + 1 > f->buf_size) return BKL_ERR_CAPACITY;
    f->buf[encoded_len] = 0x00;
    *out = f->buf;
    *out_len = encoded_len + 1;
    return BKL_OK;
}

/* bkl_framer_push_byte implements the accumulating/terminator-seen state
 * machine: bytes accumulate at f->buf[f->read_pos] until a zero terminator
 * arrives, at which point the frame is COBS-decoded into a stack scratch
 * buffer (not in place), CRC-checked there, and the payload copied to
 * f->buf[f->message_offset]. */
static inline bkl_decode_result_t bkl_framer_push_byte(bkl_framer_t *f, uint8_t b, size_t *out_payload_len) {
    if (f->read_pos >= f->buf_size - 1) {
        f->read_pos = 0;
        return BKL_DECODE_BUFFER_OVERRUN;
    }
    f->buf[f->read_pos++] = b;
    if (b != 0x00) return BKL_DECODE_NOT_READY;

    size_t framed_len = f->read_pos - 1;
    f->read_pos = 0;
    if (framed_len <= 1) return BKL_DECODE_FAILURE;

    uint8_t scratch[BKL_FRAMER_SCRATCH_MAX];
    if (framed_len > sizeof(scratch)) return BKL_DECODE_BUFFER_OVERRUN;
    size_t decoded_len;
    int rc = bkl_cobs_decode(scratch, sizeof(scratch), f->buf, framed_len, &decoded_len);
    if (rc != BKL_COBS_OK) return BKL_DECODE_FAILURE;
    if (decoded_len < f->crc_width) return BKL_DECODE_FAILURE;

    size_t payload_len = decoded_len - f->crc_width;
    if (f->crc_width > 0) {
        uint32_t got = 0, want = 0;
        switch (f->crc_width) {
        case 1:
            got = bkl_crc8(scratch, payload_len);
            want = scratch[payload_len];
            break;
        case 2:
            got = bkl_crc16(scratch, payload_len);
            want = (uint32_t)scratch[payload_len] | ((uint32_t)scratch[payload_len + 1] << 8);
            break;
        case 4:
            got = bkl_crc32(scratch, payload_len);
            for (int i = 0; i < 4; i++) want |= (uint32_t)scratch[payload_len + i] << (8 * i);
            break;
        }
        if (got != want) return BKL_DECODE_CRC_FAILURE;
    }
    if (f->message_offset + payload_len > f->buf_size) return BKL_DECODE_BUFFER_OVERRUN;
    memcpy(f->buf + f->message_offset, scratch, payload_len);
    *out_payload_len = payload_len;
    return BKL_DECODE_OK;
}

#endif /* BAKELITE_RUNTIME_H */
`

const cppHeader = `// Code generated by bakelite. DO NOT EDIT.
#pragma once

#include <cstdint>
#include <cstddef>
#include <cstring>

namespace bkl {

enum Status {
    kOk = 0,
    kErrWrite = -1,
    kErrRead = -2,
    kErrSeek = -3,
    kErrCapacity = -4,
};

// Stream is a thin, non-owning cursor over a caller-provided buffer,
// mirroring the C runtime's bkl_stream_t so both tiny backends share one
// wire behavior.
class Stream {
public:
    Stream(uint8_t *data, size_t size) : data_(data), size_(size), pos_(0) {}

    int PutU8(uint8_t v) {
        if (pos_ + 1 > size_) return kErrWrite;
        data_[pos_++] = v;
        return kOk;
    }
    int GetU8(uint8_t *v) {
        if (pos_ + 1 > size_) return kErrRead;
        *v = data_[pos_++];
        return kOk;
    }
    int PutU16(uint16_t v) { return PutLE(v, 2); }
    int PutU32(uint32_t v) { return PutLE(v, 4); }
    int PutU64(uint64_t v) { return PutLE(v, 8); }
    int GetU16(uint16_t *v) { return GetLE(v, 2); }
    int GetU32(uint32_t *v) { return GetLE(v, 4); }
    int GetU64(uint64_t *v) { return GetLE(v, 8); }

    int PutBytes(const uint8_t *src, size_t len) {
        if (PutU8(static_cast<uint8_t>(len)) != kOk) return kErrWrite;
        if (pos_ + len > size_) return kErrWrite;
        memcpy(data_ + pos_, src, len);
        pos_ += len;
        return kOk;
    }
    int GetBytes(uint8_t *dst, uint8_t cap, uint8_t *out_len) {
        uint8_t n;
        if (GetU8(&n) != kOk) return kErrRead;
        if (n > cap) return kErrCapacity;
        if (pos_ + n > size_) return kErrRead;
        memcpy(dst, data_ + pos_, n);
        pos_ += n;
        *out_len = n;
        return kOk;
    }
    int PutCStr(const char *src, uint8_t cap) {
        size_t n = strnlen(src, cap - 1);
        if (pos_ + cap > size_) return kErrWrite;
        memcpy(data_ + pos_, src, n);
        memset(data_ + pos_ + n, 0, cap - n);
        pos_ += cap;
        return kOk;
    }
    int GetCStr(char *dst, uint8_t cap) {
        if (pos_ + cap > size_) return kErrRead;
        memcpy(dst, data_ + pos_, cap);
        dst[cap - 1] = '\0';
        pos_ += cap;
        return kOk;
    }

private:
    template <typename T>
    int PutLE(T v, int width) {
        if (pos_ + static_cast<size_t>(width) > size_) return kErrWrite;
        for (int i = 0; i < width; i++) data_[pos_++] = static_cast<uint8_t>(v >> (8 * i));
        return kOk;
    }
    template <typename T>
    int GetLE(T *v, int width) {
        if (pos_ + static_cast<size_t>(width) > size_) return kErrRead;
        *v = 0;
        for (int i = 0; i < width; i++) *v |= static_cast<T>(data_[pos_ + i]) << (8 * i);
        pos_ += width;
        return kOk;
    }

    uint8_t *data_;
    size_t size_;
    size_t pos_;
};

// InlineBytes/InlineString/InlineSequence are fixed-capacity containers
// with no heap allocation, used by generated tiny message classes.
template <size_t N>
class InlineBytes {
public:
    const uint8_t *data() const { return data_; }
    uint8_t size() const { return len_; }
    uint8_t *mutable_data() { return data_; }
    uint8_t *mutable_size() { return &len_; }

private:
    uint8_t data_[N]{};
    uint8_t len_ = 0;
};

template <size_t N>
class InlineString {
public:
    const char *data() const { return data_; }
    char *mutable_data() { return data_; }

private:
    char data_[N]{};
};

template <typename T, size_t N>
class InlineSequence {
public:
    size_t size() const { return len_; }
    void SetSize(size_t n) { len_ = n; }
    T &operator[](size_t i) { return data_[i]; }
    const T &operator[](size_t i) const { return data_[i]; }

private:
    T data_[N]{};
    size_t len_ = 0;
};

enum CobsStatus {
    kCobsOk = 0,
    kCobsNullPointer = 1,
    kCobsOutBufferOverflow = 2,
    kCobsZeroByteInInput = 4,
    kCobsInputTooShort = 8,
};

inline size_t CobsOverhead(size_t n) { return n / 254 + 1; }

inline int CobsEncode(uint8_t *dst, size_t dst_len, const uint8_t *src, size_t src_len, size_t *out_len) {
    if (!dst || !src) return kCobsNullPointer;
    size_t read = 0, write = 1, code_pos = 0;
    uint8_t code = 1;
    if (dst_len < 1) return kCobsOutBufferOverflow;
    while (read < src_len) {
        uint8_t b = src[read++];
        if (b == 0) {
            if (code_pos >= dst_len) return kCobsOutBufferOverflow;
            dst[code_pos] = code;
            code_pos = write;
            if (write >= dst_len) return kCobsOutBufferOverflow;
            write++;
            code = 1;
        } else {
            if (write >= dst_len) return kCobsOutBufferOverflow;
            dst[write++] = b;
            code++;
            if (code == 0xFF) {
                if (code_pos >= dst_len) return kCobsOutBufferOverflow;
                dst[code_pos] = code;
                code_pos = write;
                if (write >= dst_len) return kCobsOutBufferOverflow;
                write++;
                code = 1;
            }
        }
    }
    if (code_pos >= dst_len) return kCobsOutBufferOverflow;
    dst[code_pos] = code;
    *out_len = write;
    return kCobsOk;
}

inline int CobsDecode(uint8_t *dst, size_t dst_len, const uint8_t *src, size_t src_len, size_t *out_len) {
    if (!dst || !src) return kCobsNullPointer;
    size_t read = 0, write = 0;
    while (read < src_len) {
        uint8_t code = src[read];
        if (code == 0) return kCobsZeroByteInInput;
        if (read + code > src_len) return kCobsInputTooShort;
        read++;
        for (uint8_t i = 1; i < code; i++) {
            if (write >= dst_len) return kCobsOutBufferOverflow;
            dst[write++] = src[read++];
        }
        if (code != 0xFF && read < src_len) {
            if (write >= dst_len) return kCobsOutBufferOverflow;
            dst[write++] = 0;
        }
    }
    *out_len = write;
    return kCobsOk;
}

inline uint8_t Crc8(const uint8_t *data, size_t len) {
    uint8_t crc = 0x00;
    for (size_t i = 0; i < len; i++) {
        crc ^= data[i];
        for (int b = 0; b < 8; b++)
            crc = (crc & 0x80) ? static_cast<uint8_t>((crc << 1) ^ 0x07) : static_cast<uint8_t>(crc << 1);
    }
    return crc;
}

inline uint16_t Crc16(const uint8_t *data, size_t len) {
    uint16_t crc = 0x0000;
    for (size_t i = 0; i < len; i++) {
        crc ^= data[i];
        for (int b = 0; b < 8; b++)
            crc = (crc & 1) ? static_cast<uint16_t>((crc >> 1) ^ 0xA001) : static_cast<uint16_t>(crc >> 1);
    }
    return crc;
}

inline uint32_t Crc32(const uint8_t *data, size_t len) {
    uint32_t crc = 0xFFFFFFFFu;
    for (size_t i = 0; i < len; i++) {
        crc ^= data[i];
        for (int b = 0; b < 8; b++)
            crc = (crc & 1) ? static_cast<uint32_t>((crc >> 1) ^ 0xEDB88320u) : (crc >> 1);
    }
    return crc ^ 0xFFFFFFFFu;
}

enum class DecodeResult { kNotReady, kOk, kFailure, kCrcFailure, kBufferOverrun };

#ifndef BKL_FRAMER_SCRATCH_MAX
#define BKL_FRAMER_SCRATCH_MAX 256
#endif

// Framer mirrors the C runtime's bkl_framer_t as a small RAII wrapper
// over a caller-owned buffer.
class Framer {
public:
    Framer(uint8_t *buf, size_t buf_size, size_t max_length, size_t crc_width)
        : buf_(buf), buf_size_(buf_size), max_length_(max_length), crc_width_(crc_width),
          message_offset_(CobsOverhead(max_length + crc_width)), read_pos_(0) {}

    size_t message_offset() const { return message_offset_; }
    uint8_t *buffer() { return buf_; }

    int Send(size_t len, const uint8_t **out, size_t *out_len) {
        uint8_t *payload = buf_ + message_offset_;
        if (crc_width_ > 0) {
            switch (crc_width_) {
            case 1:
                payload[len] = Crc8(payload, len);
                break;
            case 2: {
                uint16_t c = Crc16(payload, len);
                payload[len] = static_cast<uint8_t>(c);
                payload[len + 1] = static_cast<uint8_t>(c >> 8);
                break;
            }
            case 4: {
                uint32_t c = Crc32(payload, len);
                for (int i = 0; i < 4; i++) payload[len + i] = static_cast<uint8_t>(c >> (8 * i));
                break;
            }
            }
            len += crc_width_;
        }
        size_t encoded_len;
        if (CobsEncode(buf_, message_offset_ + len, payload, len, &encoded_len) != kCobsOk) return kErrWrite;
        if (encoded_len + 1 > buf_size_) return kErrCapacity;
        buf_[encoded_len] = 0x00;
        *out = buf_;
        *out_len = encoded_len + 1;
        return kOk;
    }

    DecodeResult PushByte(uint8_t b, size_t *out_payload_len) {
        if (read_pos_ >= buf_size_ - 1) {
            read_pos_ = 0;
            return DecodeResult::kBufferOverrun;
        }
        buf_[read_pos_++] = b;
        if (b != 0x00) return DecodeResult::kNotReady;

        size_t framed_len = read_pos_ - 1;
        read_pos_ = 0;
        if (framed_len <= 1) return DecodeResult::kFailure;

        uint8_t scratch[BKL_FRAMER_SCRATCH_MAX];
        if (framed_len > sizeof(scratch)) return DecodeResult::kBufferOverrun;
        size_t decoded_len;
        if (CobsDecode(scratch, sizeof(scratch), buf_, framed_len, &decoded_len) != kCobsOk)
            return DecodeResult::kFailure;
        if (decoded_len < crc_width_) return DecodeResult::kFailure;

        size_t payload_len = decoded_len - crc_width_;
        if (crc_width_ > 0) {
            uint32_t got = 0, want = 0;
            switch (crc_width_) {
            case 1:
                got = Crc8(scratch, payload_len);
                want = scratch[payload_len];
                break;
            case 2:
                got = Crc16(scratch, payload_len);
                want = static_cast<uint32_t>(scratch[payload_len]) | (static_cast<uint32_t>(scratch[payload_len + 1]) << 8);
                break;
            case 4:
                got = Crc32(scratch, payload_len);
                for (int i = 0; i < 4; i++) want |= static_cast<uint32_t>(scratch[payload_len + i]) << (8 * i);
                break;
            }
            if (got != want) return DecodeResult::kCrcFailure;
        }
        if (message_offset_ + payload_len > buf_size_) return DecodeResult::kBufferOverrun;
        memcpy(buf_ + message_offset_, scratch, payload_len);
        *out_payload_len = payload_len;
        return DecodeResult::kOk;
    }

private:
    uint8_t *buf_;
    size_t buf_size_;
    size_t max_length_;
    size_t crc_width_;
    size_t message_offset_;
    size_t read_pos_;
};

} // namespace bkl
`
