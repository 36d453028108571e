// Package menger generates Menger-sponge-style fractal voxel volumes by
// recursive subdivision and carving. An Engine subdivides a seed cell into
// a 3x3x3 tiling, computes the set of sub-cells to hollow out at each
// recursion level, zeroes them, and repeats to the requested depth.
package menger

import (
	"fmt"

	"github.com/voxelforge/menger/voxel"
)

// Mode selects the cell representation of generated volumes.
type Mode int

const (
	// Mono volumes hold a binary occupancy scalar per voxel (0 or 1).
	Mono Mode = iota
	// Color volumes hold an RGB triple per voxel, tinted per level.
	Color
)

// DefaultRemovals lists the face-center and center indices of the standard
// Menger pattern within the flattened 3x3x3 neighborhood (0..26).
var DefaultRemovals = []int{4, 10, 12, 13, 14, 16, 22}

const monoRoot = 1

// ColorRoot is the RGB value of the seed voxel in color mode.
var ColorRoot = [3]uint8{81, 168, 221}

type cached struct {
	divisions int
	volume    *voxel.Volume
	ok        bool
}

// Engine owns the seed cell, the removal spec and the result caches. It is
// not safe for concurrent use; callers needing that must synchronize
// externally.
type Engine struct {
	mode     Mode
	removals []int
	base     *voxel.Volume

	// primary is the level-1 hole pattern in (x,y,z) coordinates of the
	// side-3 volume. Recomputed at the first level of every run, then
	// scaled up for deeper levels.
	primary [][3]int

	result  cached
	inverse cached
}

// New returns an engine for the given mode with the default removal spec.
func New(mode Mode) *Engine {
	channels := 1
	if mode == Color {
		channels = 3
	}
	base := voxel.NewCube(1, channels)
	if mode == Color {
		base.SetVoxel(0, 0, 0, ColorRoot[0], ColorRoot[1], ColorRoot[2])
	} else {
		base.SetVoxel(0, 0, 0, monoRoot)
	}
	return &Engine{mode: mode, removals: append([]int(nil), DefaultRemovals...), base: base}
}

// Mode returns the engine's cell representation.
func (e *Engine) Mode() Mode { return e.mode }

// SetRemovals replaces the removal spec and drops both caches, so the next
// Generate or Invert call reflects the new pattern even at a previously
// cached depth. Indices are validated lazily when the first-level lookup
// table is computed.
func (e *Engine) SetRemovals(spec []int) {
	e.removals = append([]int(nil), spec...)
	e.result = cached{}
	e.inverse = cached{}
}

// Generate returns the fractal volume after the given number of recursive
// subdivisions. divisions == 0 yields the single seed cell. The most recent
// (divisions, result) pair is cached; repeating a call returns the cached
// volume, which the caller must treat as read-only.
func (e *Engine) Generate(divisions int) (*voxel.Volume, error) {
	if divisions < 0 {
		return nil, fmt.Errorf("%w: divisions must be non-negative, got %d", ErrInvalidArgument, divisions)
	}
	if e.result.ok && e.result.divisions == divisions {
		return e.result.volume, nil
	}
	cur := e.base.Clone()
	for i := 0; i < divisions; i++ {
		cur = e.subdivide(cur)
		removals, err := e.computeRemovals(cur)
		if err != nil {
			return nil, err
		}
		carve(cur, removals)
	}
	e.result = cached{divisions: divisions, volume: cur, ok: true}
	return cur, nil
}

// subdivide tiles 27 copies of the input in a 3x3x3 grid by growing an
// accumulator twice along each axis (z, then y, then x) and snapshotting it
// as the new tile after each axis pass. In color mode the tile is tinted
// once, before any concatenation, so every position of the 27-tile shares
// the same additive tint for the level.
func (e *Engine) subdivide(tile *voxel.Volume) *voxel.Volume {
	t := tile
	if e.mode == Color {
		level := mustLog3(tile.Side())
		tint := uint8(9 * level)
		t = tile.Map(func(c uint8) uint8 {
			if c == 0 {
				return 0
			}
			return satAdd(c, tint)
		})
	}
	cube := t
	for axis := 2; axis >= 0; axis-- {
		for j := 0; j < 2; j++ {
			cube = voxel.Concat(cube, t, axis)
		}
		t = cube
	}
	return cube
}

// satAdd adds with saturation at 255 so a tinted occupied channel can never
// wrap around to the empty value.
func satAdd(a, b uint8) uint8 {
	if s := uint16(a) + uint16(b); s <= 255 {
		return uint8(s)
	}
	return 255
}

// mustLog3 is Log3 restricted to sides produced by subdivision, where the
// power-of-3 invariant holds by construction.
func mustLog3(side int) int {
	k, err := voxel.Log3(side)
	if err != nil {
		panic("menger: " + err.Error())
	}
	return k
}
