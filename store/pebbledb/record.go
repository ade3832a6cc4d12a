package pebbledb

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math"
	"time"

	"github.com/logward/go-logstore/store"
)

/*
	Message record layout, crc32c(castagnoli) over everything before the
	trailer:

	0. Severity
		1 byte (uint8)
	1. Label
		1 byte (uint8) length (X)
		X bytes string
	2. Text
		2 bytes (uint16) length (X)
		X bytes string
	3. File
		2 bytes (uint16) length (X)
		X bytes string
	4. Function
		1 byte (uint8) length (X)
		X bytes string
	5. Line
		4 bytes (uint32)
	6. Time
		8 bytes (int64) unix nanoseconds
	7. Metadata
		1 byte (uint8) count
			1 byte (uint8) key length (X)
			X bytes string key
			1 byte (uint8) value kind
			2 bytes (uint16) value length (Y)
			Y bytes string value
	8. CRC
		4 bytes (uint32)
*/

var (
	ErrTooShort        = errors.New("record too short")
	ErrCorruptRecord   = errors.New("corrupt record")
	ErrInvalidSeverity = errors.New("invalid severity")
	ErrInvalidKind     = errors.New("invalid value kind")
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

const maxMetaCount = math.MaxUint8

func encodeMessage(msg store.Message) []byte {
	label := truncate(msg.Label, math.MaxUint8)
	text := truncate(msg.Text, math.MaxUint16)
	file := truncate(msg.File, math.MaxUint16)
	function := truncate(msg.Function, math.MaxUint8)

	size := 1 + 1 + len(label) + 2 + len(text) + 2 + len(file) + 1 + len(function) + 4 + 8 + 1
	for k, v := range msg.Metadata {
		size += 1 + len(k) + 1 + 2 + len(v.Text)
	}
	size += 4

	b := make([]byte, 0, size)

	// 0. Severity
	b = append(b, byte(msg.Severity))

	// 1. Label
	b = append(b, uint8(len(label)))
	b = append(b, label...)

	// 2. Text
	b = binary.BigEndian.AppendUint16(b, uint16(len(text)))
	b = append(b, text...)

	// 3. File
	b = binary.BigEndian.AppendUint16(b, uint16(len(file)))
	b = append(b, file...)

	// 4. Function
	b = append(b, uint8(len(function)))
	b = append(b, function...)

	// 5. Line
	b = binary.BigEndian.AppendUint32(b, uint32(msg.Line))

	// 6. Time
	b = binary.BigEndian.AppendUint64(b, uint64(msg.Time.UnixNano()))

	// 7. Metadata
	count := len(msg.Metadata)
	if count > maxMetaCount {
		count = maxMetaCount
	}
	b = append(b, uint8(count))

	for k, v := range msg.Metadata {
		if count == 0 {
			break
		}
		count--

		key := truncate(k, math.MaxUint8)
		val := truncate(v.Text, math.MaxUint16)

		b = append(b, uint8(len(key)))
		b = append(b, key...)
		b = append(b, byte(v.Kind))
		b = binary.BigEndian.AppendUint16(b, uint16(len(val)))
		b = append(b, val...)
	}

	// 8. CRC
	b = binary.BigEndian.AppendUint32(b, crc32.Checksum(b, castagnoli))

	return b
}

func decodeMessage(b []byte) (msg store.Message, err error) {
	if len(b) < 1+1+2+2+1+4+8+1+4 {
		return msg, ErrTooShort
	}

	body := b[:len(b)-4]
	if binary.BigEndian.Uint32(b[len(b)-4:]) != crc32.Checksum(body, castagnoli) {
		return msg, ErrCorruptRecord
	}

	var s int

	// 0. Severity
	if body[s] > byte(store.TRACE) {
		return msg, ErrInvalidSeverity
	}
	msg.Severity = store.Severity(body[s])
	s++

	// 1. Label
	if msg.Label, s, err = readStr8(body, s); err != nil {
		return
	}

	// 2. Text
	if msg.Text, s, err = readStr16(body, s); err != nil {
		return
	}

	// 3. File
	if msg.File, s, err = readStr16(body, s); err != nil {
		return
	}

	// 4. Function
	if msg.Function, s, err = readStr8(body, s); err != nil {
		return
	}

	// 5. Line
	if s+4 > len(body) {
		return msg, ErrCorruptRecord
	}
	msg.Line = uint(binary.BigEndian.Uint32(body[s:]))
	s += 4

	// 6. Time
	if s+8 > len(body) {
		return msg, ErrCorruptRecord
	}
	msg.Time = time.Unix(0, int64(binary.BigEndian.Uint64(body[s:])))
	s += 8

	// 7. Metadata
	if s >= len(body) {
		return msg, ErrCorruptRecord
	}
	count := int(body[s])
	s++

	if count > 0 {
		msg.Metadata = make(map[string]store.Value, count)
	}

	for i := 0; i < count; i++ {
		var key, val string

		if key, s, err = readStr8(body, s); err != nil {
			return
		}

		if s >= len(body) {
			return msg, ErrCorruptRecord
		}
		kind := store.ValueKind(body[s])
		if kind > store.ValueDescribed {
			return msg, ErrInvalidKind
		}
		s++

		if val, s, err = readStr16(body, s); err != nil {
			return
		}

		msg.Metadata[key] = store.Value{Kind: kind, Text: val}
	}

	if s != len(body) {
		return msg, ErrCorruptRecord
	}

	return
}

func readStr8(b []byte, s int) (string, int, error) {
	if s >= len(b) {
		return "", s, ErrCorruptRecord
	}

	size := int(b[s])
	s++

	if s+size > len(b) {
		return "", s, ErrCorruptRecord
	}

	return string(b[s : s+size]), s + size, nil
}

func readStr16(b []byte, s int) (string, int, error) {
	if s+2 > len(b) {
		return "", s, ErrCorruptRecord
	}

	size := int(binary.BigEndian.Uint16(b[s:]))
	s += 2

	if s+size > len(b) {
		return "", s, ErrCorruptRecord
	}

	return string(b[s : s+size]), s + size, nil
}
