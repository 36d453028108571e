package api

import (
	"testing"

	"github.com/voxelforge/menger/voxio"
)

func TestGenerateVXM(t *testing.T) {
	data, err := GenerateVXM(2, false, nil)
	if err != nil {
		t.Fatalf("GenerateVXM failed: %v", err)
	}
	v, err := voxio.Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if v.Side() != 9 {
		t.Fatalf("side = %d, want 9", v.Side())
	}
	if got := v.CountOccupied(); got != 400 {
		t.Fatalf("occupied = %d, want 400", got)
	}
}

func TestInvertVXM(t *testing.T) {
	data, err := InvertVXM(1, nil)
	if err != nil {
		t.Fatalf("InvertVXM failed: %v", err)
	}
	v, err := voxio.Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := v.CountOccupied(); got != 7 {
		t.Fatalf("occupied = %d, want 7", got)
	}
}

func TestSliceVXM(t *testing.T) {
	data, err := SliceVXM(1, 1, false, nil)
	if err != nil {
		t.Fatalf("SliceVXM failed: %v", err)
	}
	v, err := voxio.Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if v.Nx != 2 || v.Ny != 2 || v.Nz != 2 {
		t.Fatalf("extents %dx%dx%d, want 2x2x2", v.Nx, v.Ny, v.Nz)
	}
}

func TestGenerateGLBThenConvert(t *testing.T) {
	glb, err := GenerateGLB(1, true, nil)
	if err != nil {
		t.Fatalf("GenerateGLB failed: %v", err)
	}
	if len(glb) < 4 || string(glb[:4]) != "glTF" {
		t.Fatalf("GLB output missing glTF magic")
	}

	vxm, err := GenerateVXM(1, false, nil)
	if err != nil {
		t.Fatalf("GenerateVXM failed: %v", err)
	}
	glb2, err := VXMToGLB(vxm)
	if err != nil {
		t.Fatalf("VXMToGLB failed: %v", err)
	}
	if len(glb2) < 4 || string(glb2[:4]) != "glTF" {
		t.Fatalf("converted GLB missing glTF magic")
	}
}

func TestGenerateVXMInvalidArgs(t *testing.T) {
	if _, err := GenerateVXM(-1, false, nil); err == nil {
		t.Fatalf("expected error for negative divisions")
	}
	if _, err := GenerateVXM(1, false, []int{99}); err == nil {
		t.Fatalf("expected error for removal index out of range")
	}
}
