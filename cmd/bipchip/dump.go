package main

import (
	"fmt"
	"io"
	"os"

	ucli "gopkg.in/urfave/cli.v2"
)

// runDump prints raw file bytes as hex and ASCII, 16 per line.
func runDump(c *ucli.Context) error {
	fn, err := fileArg(c)
	if err != nil {
		return err
	}
	offset := c.Int64(argOffset)
	length := c.Int(argLength)

	//nolint:gosec // G304: user-provided raster path is intentional
	f, err := os.Open(fn)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Failed to close file: ", err)
		}
	}()

	fileInfo, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}
	fileSize := fileInfo.Size()

	if offset < 0 || offset >= fileSize {
		return fmt.Errorf("invalid offset: %d (file size: %d)", offset, fileSize)
	}
	if length < 1 {
		return fmt.Errorf("invalid length: %d", length)
	}

	remaining := fileSize - offset
	readLength := int64(length)
	if readLength > remaining {
		readLength = remaining
		fmt.Printf("Warning: requested length %d exceeds available bytes (%d). Dumping %d bytes.\n",
			length, remaining, readLength)
	}

	buf := make([]byte, readLength)
	n, err := f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		logger.Warn("Read error: ", err, " (read ", n, " of ", readLength, " bytes)")
	}

	fmt.Printf("Dumping %d bytes at offset 0x%x (%d) of %s (size: %d bytes):\n",
		n, offset, offset, fn, fileSize)
	hexDump(os.Stdout, buf[:n], offset)
	return nil
}

// hexDump writes buf in the classic 16-bytes-per-line layout, labelling
// lines with absolute file offsets starting at base.
func hexDump(w io.Writer, buf []byte, base int64) {
	n := len(buf)
	for i := 0; i < n; i += 16 {
		end := i + 16
		if end > n {
			end = n
		}
		chunk := buf[i:end]

		// Hexadecimal dump
		fmt.Fprintf(w, "%08x: ", base+int64(i))
		for j := 0; j < 16; j++ {
			if j < len(chunk) {
				fmt.Fprintf(w, "%02x ", chunk[j])
			} else {
				fmt.Fprint(w, "   ")
			}
			if j == 7 {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprint(w, " |")

		// ASCII representation
		for _, b := range chunk {
			if b >= 32 && b <= 126 {
				fmt.Fprintf(w, "%c", b)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w, "|")
	}
}
