package menger

import (
	"fmt"

	"github.com/voxelforge/menger/voxel"
)

// Slice returns a copy of v with the first depth layers removed along every
// axis (faces are trimmed on axes 0, 1, 2 in sequence, depth times). A nil v
// slices the most recently generated volume.
func (e *Engine) Slice(v *voxel.Volume, depth int) (*voxel.Volume, error) {
	if v == nil {
		if !e.result.ok {
			return nil, fmt.Errorf("%w: no generated volume to slice", ErrInvalidArgument)
		}
		v = e.result.volume
	}
	if depth < 0 {
		return nil, fmt.Errorf("%w: slice depth must be non-negative, got %d", ErrInvalidArgument, depth)
	}
	if depth >= v.Nx || depth >= v.Ny || depth >= v.Nz {
		return nil, fmt.Errorf("%w: slice depth %d leaves no cells in %dx%dx%d", ErrInvalidArgument, depth, v.Nx, v.Ny, v.Nz)
	}
	out := v.Clone()
	for i := 0; i < depth; i++ {
		for axis := 0; axis < 3; axis++ {
			out = out.TrimFace(axis)
		}
	}
	return out, nil
}

// Invert generates the volume for the given depth and returns its
// complement: every occupied cell becomes empty and vice versa. Defined
// only for mono volumes; color cells are not binary, so inverting them is
// out of contract. The inverse is cached per depth, independently of the
// main result cache.
func (e *Engine) Invert(divisions int) (*voxel.Volume, error) {
	if e.mode == Color {
		return nil, fmt.Errorf("%w: invert is defined only for mono volumes", ErrUnsupported)
	}
	if e.inverse.ok && e.inverse.divisions == divisions {
		return e.inverse.volume, nil
	}
	v, err := e.Generate(divisions)
	if err != nil {
		return nil, err
	}
	inv := v.Map(func(c uint8) uint8 {
		if c == 0 {
			return 1
		}
		return 0
	})
	e.inverse = cached{divisions: divisions, volume: inv, ok: true}
	return inv, nil
}
