package voxel

import (
	"encoding/binary"
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
)

// Volume is a dense 3D array of voxel cells stored as a flat row-major
// buffer: x is the outermost axis, z the innermost. Channels is 1 for
// occupancy volumes and 3 for RGB volumes; a voxel is empty when all of
// its channel bytes are zero.
type Volume struct {
	Nx, Ny, Nz int
	Channels   int
	cells      []uint8
}

// New allocates a zero-filled volume with the given extents.
func New(nx, ny, nz, channels int) *Volume {
	if nx < 1 || ny < 1 || nz < 1 {
		panic(fmt.Sprintf("voxel: non-positive extents %dx%dx%d", nx, ny, nz))
	}
	if channels != 1 && channels != 3 {
		panic(fmt.Sprintf("voxel: unsupported channel count %d", channels))
	}
	return &Volume{Nx: nx, Ny: ny, Nz: nz, Channels: channels, cells: make([]uint8, nx*ny*nz*channels)}
}

// NewCube allocates a zero-filled cubic volume of the given side.
func NewCube(side, channels int) *Volume {
	return New(side, side, side, channels)
}

// Cells exposes the backing buffer so callers can read/write values directly.
func (v *Volume) Cells() []uint8 { return v.cells }

// Index returns the buffer offset of channel 0 of the voxel at (x, y, z).
func (v *Volume) Index(x, y, z int) int {
	return ((x*v.Ny+y)*v.Nz + z) * v.Channels
}

// At returns channel c of the voxel at (x, y, z).
func (v *Volume) At(x, y, z, c int) uint8 {
	return v.cells[v.Index(x, y, z)+c]
}

// Set writes channel c of the voxel at (x, y, z).
func (v *Volume) Set(x, y, z, c int, val uint8) {
	v.cells[v.Index(x, y, z)+c] = val
}

// SetVoxel writes all channels of the voxel at (x, y, z).
func (v *Volume) SetVoxel(x, y, z int, vals ...uint8) {
	if len(vals) != v.Channels {
		panic(fmt.Sprintf("voxel: SetVoxel got %d values for %d channels", len(vals), v.Channels))
	}
	copy(v.cells[v.Index(x, y, z):], vals)
}

// ClearVoxel zeroes every channel of the voxel at (x, y, z). Coordinates
// outside the volume are an invariant violation and panic.
func (v *Volume) ClearVoxel(x, y, z int) {
	if x < 0 || x >= v.Nx || y < 0 || y >= v.Ny || z < 0 || z >= v.Nz {
		panic(fmt.Sprintf("voxel: clear out of bounds (%d,%d,%d) in %dx%dx%d", x, y, z, v.Nx, v.Ny, v.Nz))
	}
	off := v.Index(x, y, z)
	for c := 0; c < v.Channels; c++ {
		v.cells[off+c] = 0
	}
}

// Occupied reports whether any channel of the voxel at (x, y, z) is non-zero.
func (v *Volume) Occupied(x, y, z int) bool {
	off := v.Index(x, y, z)
	for c := 0; c < v.Channels; c++ {
		if v.cells[off+c] != 0 {
			return true
		}
	}
	return false
}

// CountOccupied returns the number of non-empty voxels.
func (v *Volume) CountOccupied() int {
	n := 0
	for x := 0; x < v.Nx; x++ {
		for y := 0; y < v.Ny; y++ {
			for z := 0; z < v.Nz; z++ {
				if v.Occupied(x, y, z) {
					n++
				}
			}
		}
	}
	return n
}

// Side returns the extent of a cubic volume and panics otherwise; use it
// only where the cubic invariant is guaranteed by construction.
func (v *Volume) Side() int {
	if v.Nx != v.Ny || v.Ny != v.Nz {
		panic(fmt.Sprintf("voxel: volume %dx%dx%d is not cubic", v.Nx, v.Ny, v.Nz))
	}
	return v.Nx
}

// Clone returns a deep copy sharing no storage with the receiver.
func (v *Volume) Clone() *Volume {
	out := &Volume{Nx: v.Nx, Ny: v.Ny, Nz: v.Nz, Channels: v.Channels, cells: make([]uint8, len(v.cells))}
	copy(out.cells, v.cells)
	return out
}

// Map applies fn to every cell value (each channel byte individually) and
// returns a new volume of identical shape.
func (v *Volume) Map(fn func(uint8) uint8) *Volume {
	out := &Volume{Nx: v.Nx, Ny: v.Ny, Nz: v.Nz, Channels: v.Channels, cells: make([]uint8, len(v.cells))}
	for i, c := range v.cells {
		out.cells[i] = fn(c)
	}
	return out
}

// Concat joins two volumes along the given axis (0=x, 1=y, 2=z). The other
// two extents and the channel counts must match; mismatches are programmer
// error and panic.
func Concat(a, b *Volume, axis int) *Volume {
	if axis < 0 || axis > 2 {
		panic(fmt.Sprintf("voxel: bad concat axis %d", axis))
	}
	if a.Channels != b.Channels {
		panic("voxel: concat channel mismatch")
	}
	da := [3]int{a.Nx, a.Ny, a.Nz}
	db := [3]int{b.Nx, b.Ny, b.Nz}
	for i := 0; i < 3; i++ {
		if i != axis && da[i] != db[i] {
			panic(fmt.Sprintf("voxel: concat shape mismatch %v vs %v on axis %d", da, db, axis))
		}
	}
	dims := da
	dims[axis] += db[axis]
	out := New(dims[0], dims[1], dims[2], a.Channels)
	blit(out, a, [3]int{0, 0, 0})
	var off [3]int
	off[axis] = da[axis]
	blit(out, b, off)
	return out
}

func blit(dst, src *Volume, off [3]int) {
	row := src.Nz * src.Channels
	for x := 0; x < src.Nx; x++ {
		for y := 0; y < src.Ny; y++ {
			s := src.Index(x, y, 0)
			d := dst.Index(x+off[0], y+off[1], off[2])
			copy(dst.cells[d:d+row], src.cells[s:s+row])
		}
	}
}

// TrimFace returns a copy of the volume with the first slice (index 0)
// along the given axis removed. The trimmed axis must have extent >= 2.
func (v *Volume) TrimFace(axis int) *Volume {
	dims := [3]int{v.Nx, v.Ny, v.Nz}
	if axis < 0 || axis > 2 {
		panic(fmt.Sprintf("voxel: bad trim axis %d", axis))
	}
	if dims[axis] < 2 {
		panic(fmt.Sprintf("voxel: cannot trim axis %d of %dx%dx%d", axis, v.Nx, v.Ny, v.Nz))
	}
	dims[axis]--
	out := New(dims[0], dims[1], dims[2], v.Channels)
	var start [3]int
	start[axis] = 1
	for x := 0; x < out.Nx; x++ {
		for y := 0; y < out.Ny; y++ {
			s := v.Index(x+start[0], y+start[1], start[2])
			d := out.Index(x, y, 0)
			copy(out.cells[d:d+out.Nz*out.Channels], v.cells[s:s+out.Nz*out.Channels])
		}
	}
	return out
}

// Equal reports whether two volumes have identical shape and cells.
func (v *Volume) Equal(o *Volume) bool {
	if v.Nx != o.Nx || v.Ny != o.Ny || v.Nz != o.Nz || v.Channels != o.Channels {
		return false
	}
	for i := range v.cells {
		if v.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Digest returns an xxhash64 over the volume's shape and cells. Two volumes
// share a digest iff they are bit-identical (modulo hash collisions).
func (v *Volume) Digest() uint64 {
	h := xxhash.New()
	var hdr [16]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(v.Nx))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(v.Ny))
	binary.LittleEndian.PutUint32(hdr[8:], uint32(v.Nz))
	binary.LittleEndian.PutUint32(hdr[12:], uint32(v.Channels))
	_, _ = h.Write(hdr[:])
	_, _ = h.Write(v.cells)
	return h.Sum64()
}

// Log3 returns k such that n == 3^k, or an error when n is not an exact
// power of 3. Sides of generated volumes always satisfy this invariant.
func Log3(n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("log3 of non-positive %d", n)
	}
	k := 0
	for n > 1 {
		if n%3 != 0 {
			return 0, fmt.Errorf("%d is not a power of 3", n)
		}
		n /= 3
		k++
	}
	return k, nil
}
