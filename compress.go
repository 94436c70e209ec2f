package vciph

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Function variables for testing injection.
var (
	newZstdWriter = func() (*zstd.Encoder, error) { return zstd.NewWriter(nil) }
	newZstdReader = func() (*zstd.Decoder, error) { return zstd.NewReader(nil) }
	zipCreate     = func(zw *zip.Writer, name string) (io.Writer, error) { return zw.Create(name) }
	zipClose      = func(zw *zip.Writer) error { return zw.Close() }
	zipOpen       = func(zf *zip.File) (io.ReadCloser, error) { return zf.Open() }
	readAll       = io.ReadAll
	lz4Close      = func(w *lz4.Writer) error { return w.Close() }
	brotliClose   = func(w *brotli.Writer) error { return w.Close() }
)

// PackPayload wraps data in a self-describing envelope suitable for
// embedding: one flag byte identifying the compression algorithm and,
// for compressed payloads, an 8-byte little-endian uncompressed length
// followed by the compressed bytes. CompNone stores data verbatim after
// the flag byte.
//
// Shrinking the payload before embedding raises the effective carrier
// capacity; the envelope keeps the wire layout of the embedded stream
// itself unchanged, since it lives entirely inside the payload field.
func PackPayload(comp Compression, data []byte) ([]byte, error) {
	if comp == CompNone {
		out := make([]byte, 0, 1+len(data))
		out = append(out, byte(CompNone))
		return append(out, data...), nil
	}
	var compressed []byte
	var err error
	switch comp {
	case CompZIP:
		compressed, err = zipCompress(data)
	case CompZSTD:
		compressed, err = zstdCompress(data)
	case CompLZ4:
		compressed, err = lz4Compress(data)
	case CompBR:
		compressed, err = brotliCompress(data)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidPayload, comp)
	}
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 9+len(compressed))
	out = append(out, byte(comp))
	var prefix [8]byte
	binary.LittleEndian.PutUint64(prefix[:], uint64(len(data)))
	out = append(out, prefix[:]...)
	return append(out, compressed...), nil
}

// UnpackPayload reverses PackPayload. maxUnpacked caps the accepted
// uncompressed size to guard against decompression bombs; zero applies
// the default limit.
func UnpackPayload(data []byte, maxUnpacked uint64) ([]byte, error) {
	if maxUnpacked == 0 {
		maxUnpacked = defaultLimits().MaxUnpackedLen
	}
	if len(data) < 1 {
		return nil, fmt.Errorf("%w: missing envelope flag", ErrInvalidPayload)
	}
	comp := Compression(data[0])
	if comp == CompNone {
		return data[1:], nil
	}
	if len(data) < 9 {
		return nil, fmt.Errorf("%w: envelope too short for uncompressed length", ErrInvalidPayload)
	}
	expected := binary.LittleEndian.Uint64(data[1:9])
	if expected > maxUnpacked {
		return nil, fmt.Errorf("%w: uncompressed length %d", ErrLimitExceeded, expected)
	}
	compressed := data[9:]

	var out []byte
	var err error
	switch comp {
	case CompZIP:
		out, err = zipDecompress(compressed, expected)
	case CompZSTD:
		out, err = zstdDecompress(compressed, expected)
	case CompLZ4:
		out, err = lz4Decompress(compressed, expected)
	case CompBR:
		out, err = brotliDecompress(compressed, expected)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidPayload, comp)
	}
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != expected {
		return nil, fmt.Errorf("%w: unpacked length %d != expected %d", ErrInvalidPayload, len(out), expected)
	}
	return out, nil
}

// zipCompress creates a ZIP archive containing in as "payload.bin".
func zipCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := zipCompressNamed(&buf, "payload.bin", in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func zipCompressNamed(w io.Writer, name string, in []byte) error {
	zw := zip.NewWriter(w)
	entry, err := zipCreate(zw, name)
	if err != nil {
		_ = zipClose(zw)
		return err
	}
	if _, err := entry.Write(in); err != nil {
		_ = zipClose(zw)
		return err
	}
	return zipClose(zw)
}

// zipDecompress extracts the single "payload.bin" entry, rejecting
// archives with any other shape.
func zipDecompress(zipBytes []byte, expected uint64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, err
	}
	if len(zr.File) != 1 {
		return nil, fmt.Errorf("%w: zip must contain exactly one entry", ErrInvalidPayload)
	}
	zf := zr.File[0]
	if zf.Name != "payload.bin" {
		return nil, fmt.Errorf("%w: zip entry name must be payload.bin", ErrInvalidPayload)
	}
	if zf.FileInfo().IsDir() {
		return nil, fmt.Errorf("%w: zip entry must be a file", ErrInvalidPayload)
	}
	if zf.UncompressedSize64 != expected {
		return nil, fmt.Errorf("%w: zip uncompressed size %d != expected %d", ErrInvalidPayload, zf.UncompressedSize64, expected)
	}
	rc, err := zipOpen(zf)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return readAll(io.LimitReader(rc, int64(expected)))
}

func zstdCompress(in []byte) ([]byte, error) {
	enc, err := newZstdWriter()
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

func zstdDecompress(in []byte, expected uint64) ([]byte, error) {
	dec, err := newZstdReader()
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(in, nil)
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > expected {
		return nil, fmt.Errorf("%w: zstd expanded beyond expected size", ErrInvalidPayload)
	}
	return out, nil
}

func lz4Compress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := lz4CompressTo(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lz4CompressTo(w io.Writer, in []byte) error {
	zw := lz4.NewWriter(w)
	if _, err := zw.Write(in); err != nil {
		_ = lz4Close(zw)
		return err
	}
	return lz4Close(zw)
}

// lz4Decompress decompresses with a LimitReader so the output can never
// run past expected.
func lz4Decompress(in []byte, expected uint64) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(in))
	b, err := readAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > expected {
		return nil, fmt.Errorf("%w: lz4 expanded beyond expected size", ErrInvalidPayload)
	}
	return b, nil
}

func brotliCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := brotliCompressTo(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func brotliCompressTo(w io.Writer, in []byte) error {
	bw := brotli.NewWriter(w)
	if _, err := bw.Write(in); err != nil {
		_ = brotliClose(bw)
		return err
	}
	return brotliClose(bw)
}

func brotliDecompress(in []byte, expected uint64) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(in))
	b, err := readAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > expected {
		return nil, fmt.Errorf("%w: brotli expanded beyond expected size", ErrInvalidPayload)
	}
	return b, nil
}
