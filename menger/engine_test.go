package menger

import (
	"errors"
	"testing"
)

func pow(base, exp int) int {
	out := 1
	for i := 0; i < exp; i++ {
		out *= base
	}
	return out
}

func TestGenerateSides(t *testing.T) {
	for d := 0; d <= 3; d++ {
		e := New(Mono)
		v, err := e.Generate(d)
		if err != nil {
			t.Fatalf("Generate(%d): %v", d, err)
		}
		if v.Side() != pow(3, d) {
			t.Fatalf("Generate(%d) side = %d, want %d", d, v.Side(), pow(3, d))
		}
	}
}

func TestGenerateZeroIsSeedCell(t *testing.T) {
	v, err := New(Mono).Generate(0)
	if err != nil {
		t.Fatalf("Generate(0): %v", err)
	}
	if v.Side() != 1 || v.At(0, 0, 0, 0) != 1 {
		t.Fatalf("Generate(0) = side %d value %d, want a single occupied cell", v.Side(), v.At(0, 0, 0, 0))
	}
}

func TestFirstLevelPattern(t *testing.T) {
	v, err := New(Mono).Generate(1)
	if err != nil {
		t.Fatalf("Generate(1): %v", err)
	}
	removed := map[int]bool{4: true, 10: true, 12: true, 13: true, 14: true, 16: true, 22: true}
	idx := 0
	occupied := 0
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				if v.Occupied(x, y, z) {
					occupied++
					if removed[idx] {
						t.Fatalf("flattened index %d should be carved", idx)
					}
				} else if !removed[idx] {
					t.Fatalf("flattened index %d should be occupied", idx)
				}
				idx++
			}
		}
	}
	if occupied != 20 {
		t.Fatalf("occupied = %d, want 20", occupied)
	}
}

func TestSelfSimilarCarving(t *testing.T) {
	v, err := New(Mono).Generate(2)
	if err != nil {
		t.Fatalf("Generate(2): %v", err)
	}
	if got := v.CountOccupied(); got != 400 {
		t.Fatalf("occupied = %d, want 20^2 = 400", got)
	}
	// the scaled-up center hole: primary (1,1,1) times factor 3
	for x := 3; x < 6; x++ {
		for y := 3; y < 6; y++ {
			for z := 3; z < 6; z++ {
				if v.Occupied(x, y, z) {
					t.Fatalf("scaled center hole not carved at (%d,%d,%d)", x, y, z)
				}
			}
		}
	}
	// each surviving tile repeats the level-1 pattern, e.g. the origin
	// tile's own center
	if v.Occupied(1, 1, 1) {
		t.Fatalf("origin tile center should be carved")
	}
	if !v.Occupied(0, 0, 0) {
		t.Fatalf("origin tile corner should survive")
	}
}

func TestRepeatedGenerateHitsCache(t *testing.T) {
	e := New(Mono)
	v1, err := e.Generate(2)
	if err != nil {
		t.Fatalf("first Generate(2): %v", err)
	}
	v2, err := e.Generate(2)
	if err != nil {
		t.Fatalf("second Generate(2): %v", err)
	}
	if v1 != v2 {
		t.Fatalf("repeated call should return the cached volume")
	}
	if v1.Digest() != v2.Digest() {
		t.Fatalf("cache hit should be bit-identical")
	}
}

func TestCacheInvalidationAcrossDepths(t *testing.T) {
	e := New(Mono)
	for _, d := range []int{2, 1, 3, 0} {
		v, err := e.Generate(d)
		if err != nil {
			t.Fatalf("Generate(%d): %v", d, err)
		}
		if v.Side() != pow(3, d) {
			t.Fatalf("Generate(%d) side = %d, want %d", d, v.Side(), pow(3, d))
		}
		if got := v.CountOccupied(); got != pow(20, d) {
			t.Fatalf("Generate(%d) occupied = %d, want %d", d, got, pow(20, d))
		}
	}
}

func TestNegativeDivisions(t *testing.T) {
	_, err := New(Mono).Generate(-1)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestRemovalSpecValidation(t *testing.T) {
	e := New(Mono)
	e.SetRemovals([]int{4, 27})
	if _, err := e.Generate(1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument for index 27, got %v", err)
	}
	e.SetRemovals([]int{-1})
	if _, err := e.Generate(1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument for index -1, got %v", err)
	}
}

func TestCustomRemovals(t *testing.T) {
	e := New(Mono)
	e.SetRemovals([]int{13}) // center only
	v, err := e.Generate(1)
	if err != nil {
		t.Fatalf("Generate(1): %v", err)
	}
	if got := v.CountOccupied(); got != 26 {
		t.Fatalf("occupied = %d, want 26", got)
	}
	if v.Occupied(1, 1, 1) {
		t.Fatalf("center should be carved")
	}
}

func TestSetRemovalsDropsCaches(t *testing.T) {
	e := New(Mono)
	if _, err := e.Generate(1); err != nil {
		t.Fatalf("Generate(1): %v", err)
	}
	if _, err := e.Invert(1); err != nil {
		t.Fatalf("Invert(1): %v", err)
	}
	e.SetRemovals([]int{13}) // center only
	v, err := e.Generate(1)
	if err != nil {
		t.Fatalf("Generate(1) after SetRemovals: %v", err)
	}
	if got := v.CountOccupied(); got != 26 {
		t.Fatalf("occupied = %d, want 26 under the new removal spec", got)
	}
	inv, err := e.Invert(1)
	if err != nil {
		t.Fatalf("Invert(1) after SetRemovals: %v", err)
	}
	if got := inv.CountOccupied(); got != 1 {
		t.Fatalf("inverse occupied = %d, want 1 under the new removal spec", got)
	}
}

func TestColorTintPerLevel(t *testing.T) {
	cases := []struct {
		divisions int
		tint      uint8 // cumulative 9 * (0 + 1 + ... + (d-1))
		occupied  int
	}{
		{1, 0, 20},
		{2, 9, 400},
		{3, 27, 8000},
	}
	for _, tc := range cases {
		v, err := New(Color).Generate(tc.divisions)
		if err != nil {
			t.Fatalf("Generate(%d): %v", tc.divisions, err)
		}
		if got := v.CountOccupied(); got != tc.occupied {
			t.Fatalf("divisions %d: occupied = %d, want %d", tc.divisions, got, tc.occupied)
		}
		want := [3]uint8{ColorRoot[0] + tc.tint, ColorRoot[1] + tc.tint, ColorRoot[2] + tc.tint}
		for x := 0; x < v.Nx; x++ {
			for y := 0; y < v.Ny; y++ {
				for z := 0; z < v.Nz; z++ {
					if !v.Occupied(x, y, z) {
						continue
					}
					got := [3]uint8{v.At(x, y, z, 0), v.At(x, y, z, 1), v.At(x, y, z, 2)}
					if got != want {
						t.Fatalf("divisions %d: cell (%d,%d,%d) color %v, want %v", tc.divisions, x, y, z, got, want)
					}
				}
			}
		}
	}
}
