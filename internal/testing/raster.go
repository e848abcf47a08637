// Package testing provides raster fixtures for storage tests.
package testing

import "os"

// HeaderByte fills the bytes in front of the first sample.
const HeaderByte = 0xee

// RampPixel returns the fixture bytes of raw pixel (r, c): byte 0 is r,
// byte 1 is c, and any further bytes count up from 2.
func RampPixel(r, c int64, elemSize int) []byte {
	px := make([]byte, elemSize)
	for i := range px {
		switch i {
		case 0:
			px[i] = byte(r)
		case 1:
			px[i] = byte(c)
		default:
			px[i] = byte(i)
		}
	}
	return px
}

// WriteRamp creates name holding offset header bytes followed by a
// rows x cols raster of RampPixel values.
func WriteRamp(name string, offset, rows, cols int64, elemSize int) error {
	data := make([]byte, offset, offset+rows*cols*int64(elemSize))
	for i := range data {
		data[i] = HeaderByte
	}
	for r := int64(0); r < rows; r++ {
		for c := int64(0); c < cols; c++ {
			data = append(data, RampPixel(r, c, elemSize)...)
		}
	}
	return os.WriteFile(name, data, 0o600)
}
