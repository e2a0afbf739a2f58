package savefile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// unwrap splits a compressed file into its wrapper header and the inflated body
func unwrap(data []byte, l Layout) (wrapper, body []byte, err error) {
	if len(data) < l.CompressionHeaderSize {
		return nil, nil, fmt.Errorf("%w: %d bytes cannot hold the %d byte wrapper header",
			ErrDecompress, len(data), l.CompressionHeaderSize)
	}
	wrapper = append([]byte(nil), data[:l.CompressionHeaderSize]...)

	zr, err := zlib.NewReader(bytes.NewReader(data[l.CompressionHeaderSize:]))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	defer zr.Close()

	if body, err = io.ReadAll(zr); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	return wrapper, body, nil
}

// wrap compresses body and puts the wrapper header in front of it
func wrap(wrapper, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(wrapper) + len(body)/2)
	buf.Write(wrapper)

	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompress, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompress, err)
	}
	return buf.Bytes(), nil
}
