// Package snapshot writes and reads self-describing binary dumps of a
// surfacegrid segment buffer, for offline rendering and regression fixtures.
//
// Layout (little-endian):
//
//	[magic "SGSN"][version u16][compression u8][reserved u8]
//	[count u32][generation u64]
//	[uncompressed size u32][stored size u32 (0 = uncompressed)][block...]
//
// The block holds the source lane, the target lane (float32 x 3 per
// segment), the color lane (4 bytes per segment) and the label lane
// (uint32 LabelID per segment), in that order.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/gogpu/surfacegrid"
)

// Compression selects the block codec.
type Compression uint8

const (
	// CompressionNone stores the block as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

// String returns the codec name used by the command line.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("snapshot: unknown compression %q", s)
	}
}

// Errors returned by Read.
var (
	ErrBadMagic           = errors.New("snapshot: bad magic")
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	ErrCorrupt            = errors.New("snapshot: corrupt data")
)

const (
	magic       = "SGSN"
	version     = 1
	headerSize  = 4 + 2 + 1 + 1 + 4 + 8
	blockHeader = 8

	// maxLZ4Ratio bounds how far an LZ4 block can expand.
	maxLZ4Ratio = 255
)

// segmentBytes is the encoded size of one segment across all lanes.
const segmentBytes = 2*surfacegrid.PositionStride*4 + surfacegrid.ColorStride + 4

// Snapshot is a decoded segment buffer. It owns its lanes.
type Snapshot struct {
	Generation      uint64
	Count           int
	SourcePositions []float32
	TargetPositions []float32
	Colors          []uint8
	LabelIDs        []surfacegrid.LabelID
}

// Label returns the label of slot i in "row-5" / "col-12" form.
func (s *Snapshot) Label(i int) string {
	return s.LabelIDs[i].String()
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Write encodes the populated part of h to w.
func Write(w io.Writer, h *surfacegrid.SegmentBufferHandle, c Compression) error {
	n := h.Count
	buf := h.Buffer

	raw := make([]byte, 0, n*segmentBytes)
	raw = appendFloats(raw, buf.SourcePositions[:n*surfacegrid.PositionStride])
	raw = appendFloats(raw, buf.TargetPositions[:n*surfacegrid.PositionStride])
	raw = append(raw, buf.Colors[:n*surfacegrid.ColorStride]...)
	for _, id := range buf.LabelIDs[:n] {
		raw = binary.LittleEndian.AppendUint32(raw, uint32(id))
	}

	block, err := compressBlock(raw, c)
	if err != nil {
		return fmt.Errorf("snapshot: compress: %w", err)
	}

	hdr := make([]byte, 0, headerSize)
	hdr = append(hdr, magic...)
	hdr = binary.LittleEndian.AppendUint16(hdr, version)
	hdr = append(hdr, byte(c), 0)
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(n))
	hdr = binary.LittleEndian.AppendUint64(hdr, h.Generation)

	if _, err := w.Write(hdr); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}
	if _, err := w.Write(block); err != nil {
		return fmt.Errorf("snapshot: write block: %w", err)
	}
	return nil
}

// Read decodes a snapshot written by Write.
func Read(r io.Reader) (*Snapshot, error) {
	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}
	if string(hdr[:4]) != magic {
		return nil, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(hdr[4:]); v != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	c := Compression(hdr[6])
	n := int(binary.LittleEndian.Uint32(hdr[8:]))
	gen := binary.LittleEndian.Uint64(hdr[12:])

	bh := make([]byte, blockHeader)
	if _, err := io.ReadFull(r, bh); err != nil {
		return nil, fmt.Errorf("%w: block header: %v", ErrCorrupt, err)
	}
	rawSize := binary.LittleEndian.Uint32(bh[0:])
	storedSize := binary.LittleEndian.Uint32(bh[4:])
	if uint64(rawSize) != uint64(n)*segmentBytes {
		return nil, fmt.Errorf("%w: block size %d for %d segments", ErrCorrupt, rawSize, n)
	}

	size := storedSize
	if size == 0 {
		size = rawSize
	} else if c == CompressionLZ4 && uint64(rawSize) > uint64(storedSize)*maxLZ4Ratio {
		return nil, fmt.Errorf("%w: lz4 block of %d bytes cannot expand to %d", ErrCorrupt, storedSize, rawSize)
	}

	// The buffer grows with the bytes actually present, so a header that
	// overstates the size fails without reserving it first.
	data, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return nil, fmt.Errorf("%w: block: %v", ErrCorrupt, err)
	}
	if len(data) != int(size) {
		return nil, fmt.Errorf("%w: block: got %d of %d bytes", ErrCorrupt, len(data), size)
	}

	raw := data
	if storedSize != 0 {
		raw, err = decompressBlock(data, int(rawSize), c)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}

	s := &Snapshot{
		Generation:      gen,
		Count:           n,
		SourcePositions: make([]float32, n*surfacegrid.PositionStride),
		TargetPositions: make([]float32, n*surfacegrid.PositionStride),
		Colors:          make([]uint8, n*surfacegrid.ColorStride),
		LabelIDs:        make([]surfacegrid.LabelID, n),
	}
	raw = readFloats(raw, s.SourcePositions)
	raw = readFloats(raw, s.TargetPositions)
	raw = raw[copy(s.Colors, raw):]
	for i := range s.LabelIDs {
		s.LabelIDs[i] = surfacegrid.LabelID(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return s, nil
}

func appendFloats(dst []byte, v []float32) []byte {
	for _, f := range v {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}

func readFloats(src []byte, dst []float32) []byte {
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}
	return src[len(dst)*4:]
}

// compressBlock returns the block header followed by the stored bytes.
// Data that does not shrink is stored uncompressed.
func compressBlock(data []byte, c Compression) ([]byte, error) {
	var compressed []byte
	switch c {
	case CompressionLZ4:
		if len(data) > 0 {
			out := make([]byte, lz4.CompressBlockBound(len(data)))
			n, err := lz4.CompressBlock(data, out, nil)
			if err != nil {
				return nil, err
			}
			compressed = out[:n]
		}
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	case CompressionNone:
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}

	result := make([]byte, blockHeader, blockHeader+len(data))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
	if len(compressed) == 0 || len(compressed) >= len(data) {
		return append(result, data...), nil
	}
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed)))
	return append(result, compressed...), nil
}

func decompressBlock(data []byte, rawSize int, c Compression) ([]byte, error) {
	switch c {
	case CompressionLZ4:
		out := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, err
		}
		if n != rawSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, err
		}
		if len(out) != rawSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil
	default:
		return nil, fmt.Errorf("compressed block with codec %d", c)
	}
}
