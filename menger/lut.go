package menger

import (
	"fmt"

	"github.com/voxelforge/menger/voxel"
)

// computeRemovals returns the set of voxel coordinates to hollow out of the
// freshly subdivided volume.
//
// At the first level (side 3) the 27 cells are enumerated in flattened
// row-major order and a cell is removed iff its index appears in the removal
// spec; one decision is made per voxel regardless of the channel count. The
// resulting coordinates are kept as the primary lookup table for the run.
//
// At deeper levels every primary coordinate (cx,cy,cz) is scaled by
// factor = side/3 into the half-open box [factor*c, factor*(c+1)) and all
// integer coordinates inside it are removed. This scales the level-1 hole
// pattern geometrically instead of re-examining the carved volume, which is
// exact for the self-similar Menger pattern but an approximation for
// removal specs that do not compose self-similarly.
func (e *Engine) computeRemovals(v *voxel.Volume) (map[[3]int]struct{}, error) {
	side := v.Side()
	factor := side / 3
	set := make(map[[3]int]struct{})

	if factor == 1 {
		inSpec := make(map[int]bool, len(e.removals))
		for _, i := range e.removals {
			if i < 0 || i > 26 {
				return nil, fmt.Errorf("%w: removal index %d outside [0,26]", ErrInvalidArgument, i)
			}
			inSpec[i] = true
		}
		e.primary = e.primary[:0]
		idx := 0
		for x := 0; x < 3; x++ {
			for y := 0; y < 3; y++ {
				for z := 0; z < 3; z++ {
					if inSpec[idx] {
						c := [3]int{x, y, z}
						e.primary = append(e.primary, c)
						set[c] = struct{}{}
					}
					idx++
				}
			}
		}
		return set, nil
	}

	for _, c := range e.primary {
		for x := factor * c[0]; x < factor*(c[0]+1); x++ {
			for y := factor * c[1]; y < factor*(c[1]+1); y++ {
				for z := factor * c[2]; z < factor*(c[2]+1); z++ {
					set[[3]int{x, y, z}] = struct{}{}
				}
			}
		}
	}
	return set, nil
}

// carve zeroes every channel of each listed voxel in place. Coordinates
// outside the volume mean the lookup table is broken; ClearVoxel panics on
// them rather than skipping silently.
func carve(v *voxel.Volume, removals map[[3]int]struct{}) {
	for c := range removals {
		v.ClearVoxel(c[0], c[1], c[2])
	}
}
