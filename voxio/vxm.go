// Package voxio persists dense voxel volumes as sparse voxel model files.
//
// The VXM1 container is little-endian: a 4-byte "VXM1" magic, a version
// byte, the channel count, the dense bit width (bpp), the three extents as
// uint32, an encoding byte, the stored payload length as uint32 and an
// xxhash64 checksum of the stored payload. The low 7 bits of the encoding
// byte select the payload layout (dense bit-packed cells, or sparse
// varint-index entries); the high bit marks a zstd-compressed payload.
// The smallest candidate wins, compressed or not.
package voxio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"os"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/voxelforge/menger/voxel"
)

const (
	magic   = "VXM1"
	version = 1

	encDense  = 0
	encSparse = 1
	encZstd   = 0x80
)

type header struct {
	Ver      uint8
	Channels uint8
	BPP      uint8
	Nx       uint32
	Ny       uint32
	Nz       uint32
	Enc      uint8
	PLen     uint32
	Sum      uint64
}

// maxCells bounds decoded volumes to keep a corrupt header from allocating
// absurd buffers. 3^6 cubed in RGB is well inside it.
const maxCells = 1 << 30

type encoded struct {
	enc     uint8
	payload []byte
}

// packCells bit-packs cell values at bpp bits each, filling bytes from the
// low bit up. bpp is always in [1,8] here; denseBPP guarantees it.
func packCells(cells []uint8, bpp uint8) []byte {
	out := make([]byte, 0, (len(cells)*int(bpp)+7)/8)
	mask := uint8(1<<bpp - 1)
	var acc uint32
	var n uint8
	for _, c := range cells {
		acc |= uint32(c&mask) << n
		n += bpp
		for n >= 8 {
			out = append(out, byte(acc))
			acc >>= 8
			n -= 8
		}
	}
	if n > 0 {
		out = append(out, byte(acc))
	}
	return out
}

// unpackCells reverses packCells into dst, which fixes the cell count.
func unpackCells(payload []byte, dst []uint8, bpp uint8) error {
	if need := (len(dst)*int(bpp) + 7) / 8; len(payload) < need {
		return fmt.Errorf("dense payload too short: %d bytes, need %d", len(payload), need)
	}
	mask := uint32(1<<bpp - 1)
	var acc uint32
	var n uint8
	pos := 0
	for i := range dst {
		for n < bpp {
			acc |= uint32(payload[pos]) << n
			pos++
			n += 8
		}
		dst[i] = uint8(acc & mask)
		acc >>= bpp
		n -= bpp
	}
	return nil
}

func encodeDense(v *voxel.Volume, bpp uint8) []byte {
	return packCells(v.Cells(), bpp)
}

func encodeSparse(v *voxel.Volume) []byte {
	cells := v.Cells()
	ch := v.Channels
	voxels := len(cells) / ch
	count := 0
	for i := 0; i < voxels; i++ {
		if occupiedAt(cells, i, ch) {
			count++
		}
	}
	out := binary.AppendUvarint(make([]byte, 0, 5+count*(3+ch)), uint64(count))
	for i := 0; i < voxels; i++ {
		if !occupiedAt(cells, i, ch) {
			continue
		}
		out = binary.AppendUvarint(out, uint64(i))
		out = append(out, cells[i*ch:(i+1)*ch]...)
	}
	return out
}

func occupiedAt(cells []uint8, idx, ch int) bool {
	for c := 0; c < ch; c++ {
		if cells[idx*ch+c] != 0 {
			return true
		}
	}
	return false
}

// denseBPP returns the smallest bit width that represents every cell value.
func denseBPP(v *voxel.Volume) uint8 {
	max := uint8(0)
	for _, c := range v.Cells() {
		if c > max {
			max = c
		}
	}
	bpp := uint8(bits.Len8(max))
	if bpp == 0 {
		bpp = 1
	}
	return bpp
}

func bestEncoding(v *voxel.Volume, bpp uint8) encoded {
	candidates := []encoded{
		{enc: encDense, payload: encodeDense(v, bpp)},
		{enc: encSparse, payload: encodeSparse(v)},
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c.payload) < len(best.payload) {
			best = c
		}
	}
	for _, c := range candidates {
		zb := zstdCompress(c.payload)
		if len(zb) < len(best.payload) {
			best = encoded{enc: c.enc | encZstd, payload: zb}
		}
	}
	return best
}

func zstdCompress(b []byte) []byte {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic(err) // only reachable with invalid options
	}
	defer enc.Close()
	return enc.EncodeAll(b, nil)
}

func zstdDecompress(b []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(b, nil)
}

// Encode serializes the volume as a complete VXM1 file in memory.
func Encode(v *voxel.Volume) []byte {
	bpp := denseBPP(v)
	enc := bestEncoding(v, bpp)

	var buf bytes.Buffer
	buf.WriteString(magic)
	_ = binary.Write(&buf, binary.LittleEndian, uint8(version))
	_ = binary.Write(&buf, binary.LittleEndian, uint8(v.Channels))
	_ = binary.Write(&buf, binary.LittleEndian, bpp)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(v.Nx))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(v.Ny))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(v.Nz))
	_ = binary.Write(&buf, binary.LittleEndian, enc.enc)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(enc.payload)))
	_ = binary.Write(&buf, binary.LittleEndian, xxhash.Sum64(enc.payload))
	_, _ = buf.Write(enc.payload)
	return buf.Bytes()
}

// Decode parses a VXM1 file from memory.
func Decode(data []byte) (*voxel.Volume, error) {
	if len(data) < 4 || string(data[:4]) != magic {
		return nil, fmt.Errorf("not a VXM file")
	}
	r := bytes.NewReader(data[4:])
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if h.Ver != version {
		return nil, fmt.Errorf("unsupported VXM version %d", h.Ver)
	}
	if h.Channels != 1 && h.Channels != 3 {
		return nil, fmt.Errorf("unsupported channel count %d", h.Channels)
	}
	if h.Nx == 0 || h.Ny == 0 || h.Nz == 0 {
		return nil, fmt.Errorf("zero extent in header")
	}
	cells := uint64(h.Nx) * uint64(h.Ny) * uint64(h.Nz) * uint64(h.Channels)
	if cells > maxCells {
		return nil, fmt.Errorf("volume too large: %dx%dx%d", h.Nx, h.Ny, h.Nz)
	}
	payload := make([]byte, h.PLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("truncated payload: %w", err)
	}
	if sum := xxhash.Sum64(payload); sum != h.Sum {
		return nil, fmt.Errorf("payload checksum mismatch")
	}
	if h.Enc&encZstd != 0 {
		var err error
		payload, err = zstdDecompress(payload)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
	}

	v := voxel.New(int(h.Nx), int(h.Ny), int(h.Nz), int(h.Channels))
	switch h.Enc &^ encZstd {
	case encDense:
		if h.BPP < 1 || h.BPP > 8 {
			return nil, fmt.Errorf("invalid dense bit width %d", h.BPP)
		}
		if err := unpackCells(payload, v.Cells(), h.BPP); err != nil {
			return nil, err
		}
	case encSparse:
		count, pos := binary.Uvarint(payload)
		if pos <= 0 {
			return nil, fmt.Errorf("bad sparse voxel count")
		}
		ch := int(h.Channels)
		dst := v.Cells()
		voxels := uint64(len(dst) / ch)
		for i := uint64(0); i < count; i++ {
			idx, n := binary.Uvarint(payload[pos:])
			if n <= 0 {
				return nil, fmt.Errorf("bad sparse voxel index in entry %d", i)
			}
			pos += n
			if idx >= voxels {
				return nil, fmt.Errorf("sparse voxel index out of range: %d", idx)
			}
			if pos+ch > len(payload) {
				return nil, fmt.Errorf("truncated sparse entry %d", i)
			}
			copy(dst[int(idx)*ch:], payload[pos:pos+ch])
			pos += ch
		}
	default:
		return nil, fmt.Errorf("unknown encoding: %d", h.Enc&^encZstd)
	}
	return v, nil
}

// Save writes the volume to filename as a VXM1 file.
func Save(v *voxel.Volume, filename string) error {
	return os.WriteFile(filename, Encode(v), 0o644)
}

// Load reads a VXM1 file from disk.
func Load(filename string) (*voxel.Volume, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
