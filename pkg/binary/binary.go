// Copyright 2025 The LinnFS Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package binary translates between fixed-layout on-disk records and their
// in-memory struct representations.
//
// Records are packed: fields are encoded back to back in declaration order
// with no padding, so a struct's encoded size is exactly the sum of its
// field sizes. Supported field kinds are fixed-width signed and unsigned
// integers, arrays, and structs composed of those.
package binary

import (
	"encoding/binary"
	"fmt"
	"reflect"
)

// LittleEndian is the byte order of all LinnFS on-disk records. It is the
// same as encoding/binary.LittleEndian, included here as a convenience.
var LittleEndian = binary.LittleEndian

// appendUint16 appends the binary representation of a uint16 to buf.
func appendUint16(buf []byte, order binary.ByteOrder, num uint16) []byte {
	buf = append(buf, make([]byte, 2)...)
	order.PutUint16(buf[len(buf)-2:], num)
	return buf
}

// appendUint32 appends the binary representation of a uint32 to buf.
func appendUint32(buf []byte, order binary.ByteOrder, num uint32) []byte {
	buf = append(buf, make([]byte, 4)...)
	order.PutUint32(buf[len(buf)-4:], num)
	return buf
}

// appendUint64 appends the binary representation of a uint64 to buf.
func appendUint64(buf []byte, order binary.ByteOrder, num uint64) []byte {
	buf = append(buf, make([]byte, 8)...)
	order.PutUint64(buf[len(buf)-8:], num)
	return buf
}

// Marshal appends the packed representation of data to buf and returns the
// extended buffer. data may be a pointer to the value to encode.
func Marshal(buf []byte, order binary.ByteOrder, data any) []byte {
	return marshal(buf, order, reflect.Indirect(reflect.ValueOf(data)))
}

func marshal(buf []byte, order binary.ByteOrder, data reflect.Value) []byte {
	switch data.Kind() {
	case reflect.Int8, reflect.Uint8:
		buf = append(buf, byte(asUint(data)))
	case reflect.Int16, reflect.Uint16:
		buf = appendUint16(buf, order, uint16(asUint(data)))
	case reflect.Int32, reflect.Uint32:
		buf = appendUint32(buf, order, uint32(asUint(data)))
	case reflect.Int64, reflect.Uint64:
		buf = appendUint64(buf, order, asUint(data))
	case reflect.Array, reflect.Slice:
		for i, l := 0, data.Len(); i < l; i++ {
			buf = marshal(buf, order, data.Index(i))
		}
	case reflect.Struct:
		for i, l := 0, data.NumField(); i < l; i++ {
			buf = marshal(buf, order, data.Field(i))
		}
	default:
		panic("invalid type: " + data.Type().String())
	}
	return buf
}

func asUint(data reflect.Value) uint64 {
	if data.CanInt() {
		return uint64(data.Int())
	}
	return data.Uint()
}

// Unmarshal unpacks buf into data, which must be a pointer. buf must hold
// exactly Size(data) bytes.
func Unmarshal(buf []byte, order binary.ByteOrder, data any) {
	value := reflect.ValueOf(data)
	if value.Kind() != reflect.Ptr {
		panic("invalid type: " + value.Type().String())
	}
	buf = unmarshal(buf, order, value.Elem())
	if len(buf) != 0 {
		panic(fmt.Sprintf("buffer too long by %d bytes", len(buf)))
	}
}

func unmarshal(buf []byte, order binary.ByteOrder, data reflect.Value) []byte {
	switch data.Kind() {
	case reflect.Int8:
		data.SetInt(int64(int8(buf[0])))
		buf = buf[1:]
	case reflect.Int16:
		data.SetInt(int64(int16(order.Uint16(buf))))
		buf = buf[2:]
	case reflect.Int32:
		data.SetInt(int64(int32(order.Uint32(buf))))
		buf = buf[4:]
	case reflect.Int64:
		data.SetInt(int64(order.Uint64(buf)))
		buf = buf[8:]
	case reflect.Uint8:
		data.SetUint(uint64(buf[0]))
		buf = buf[1:]
	case reflect.Uint16:
		data.SetUint(uint64(order.Uint16(buf)))
		buf = buf[2:]
	case reflect.Uint32:
		data.SetUint(uint64(order.Uint32(buf)))
		buf = buf[4:]
	case reflect.Uint64:
		data.SetUint(order.Uint64(buf))
		buf = buf[8:]
	case reflect.Array, reflect.Slice:
		for i, l := 0, data.Len(); i < l; i++ {
			buf = unmarshal(buf, order, data.Index(i))
		}
	case reflect.Struct:
		for i, l := 0, data.NumField(); i < l; i++ {
			buf = unmarshal(buf, order, data.Field(i))
		}
	default:
		panic("invalid type: " + data.Type().String())
	}
	return buf
}

// Size returns the packed encoded size of v in bytes. v may be a pointer to
// the value to measure.
func Size(v any) uint64 {
	return sizeof(reflect.Indirect(reflect.ValueOf(v)))
}

func sizeof(data reflect.Value) uint64 {
	switch data.Kind() {
	case reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32:
		return 4
	case reflect.Int64, reflect.Uint64:
		return 8
	case reflect.Array, reflect.Slice:
		var size uint64
		for i, l := 0, data.Len(); i < l; i++ {
			size += sizeof(data.Index(i))
		}
		return size
	case reflect.Struct:
		var size uint64
		for i, l := 0, data.NumField(); i < l; i++ {
			size += sizeof(data.Field(i))
		}
		return size
	default:
		panic("invalid type: " + data.Type().String())
	}
}
