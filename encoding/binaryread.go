package encoding

import (
	"fmt"
	"io"
)

// ReadUint32LE reads one little-endian uint32 from r.
func ReadUint32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return ImportU32(buf[:], 0, true, hostLittleEndian), nil
}

// ReadBytes reads exactly n bytes from r.
func ReadBytes(r io.Reader, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("failed to read %d bytes: %w", n, err)
	}
	return buf, nil
}

// WriteUint32LE writes v to w as a little-endian uint32.
func WriteUint32LE(w io.Writer, v uint32) error {
	var buf [4]byte
	ExportU32(buf[:], 0, v, true, hostLittleEndian)
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("failed to write UINT32 binary data: %w", err)
	}
	return nil
}
