package core

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Kind identifies a fixed-width numeric element type.
type Kind uint8

// Element kinds supported by the BIP layout.
const (
	KindInvalid Kind = iota
	Uint8
	Int8
	Uint16
	Int16
	Uint32
	Int32
	Uint64
	Int64
	Float32
	Float64
	Complex64
	Complex128
)

var kindNames = map[Kind]string{
	Uint8:      "uint8",
	Int8:       "int8",
	Uint16:     "uint16",
	Int16:      "int16",
	Uint32:     "uint32",
	Int32:      "int32",
	Uint64:     "uint64",
	Int64:      "int64",
	Float32:    "float32",
	Float64:    "float64",
	Complex64:  "complex64",
	Complex128: "complex128",
}

// numpy-style short codes, accepted by ParseKind.
var kindCodes = map[string]Kind{
	"u1": Uint8, "i1": Int8,
	"u2": Uint16, "i2": Int16,
	"u4": Uint32, "i4": Int32,
	"u8": Uint64, "i8": Int64,
	"f4": Float32, "f8": Float64,
	"c8": Complex64, "c16": Complex128,
}

// Size returns the element width in bytes, or 0 for KindInvalid.
func (k Kind) Size() int {
	switch k {
	case Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32, Float32:
		return 4
	case Uint64, Int64, Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		return 0
	}
}

// IsComplex reports whether k is complex64 or complex128.
func (k Kind) IsComplex() bool {
	return k == Complex64 || k == Complex128
}

// IsFloat reports whether k is float32 or float64.
func (k Kind) IsFloat() bool {
	return k == Float32 || k == Float64
}

// Valid reports whether k names a supported element type.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind parses a kind name ("int16") or numpy code ("i2", optionally
// prefixed with a byte-order character which is ignored here).
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimLeft(s, "<>=|!")
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	if k, ok := kindCodes[s]; ok {
		return k, nil
	}
	return KindInvalid, fmt.Errorf("unknown element type %q", s)
}

// ParseByteOrder parses "big"/">" or "little"/"<". Empty means little-endian.
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "little", "le", "<":
		return binary.LittleEndian, nil
	case "big", "be", ">":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", s)
	}
}

// DataType is an element kind with an explicit byte order.
type DataType struct {
	Kind  Kind
	Order binary.ByteOrder
}

// ByteOrder returns the declared order, defaulting to little-endian.
func (d DataType) ByteOrder() binary.ByteOrder {
	if d.Order == nil {
		return binary.LittleEndian
	}
	return d.Order
}

// Size returns the element width in bytes.
func (d DataType) Size() int {
	return d.Kind.Size()
}

// Equal compares kind and byte order.
func (d DataType) Equal(o DataType) bool {
	return d.Kind == o.Kind && d.ByteOrder().String() == o.ByteOrder().String()
}

func (d DataType) String() string {
	if d.ByteOrder() == binary.BigEndian {
		return ">" + d.Kind.String()
	}
	return "<" + d.Kind.String()
}

// ComplexPair returns the complex kind whose parts have kind k
// (float32 -> complex64, float64 -> complex128).
func ComplexPair(k Kind) (Kind, bool) {
	switch k {
	case Float32:
		return Complex64, true
	case Float64:
		return Complex128, true
	default:
		return KindInvalid, false
	}
}
