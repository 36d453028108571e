package mesh

import (
	"testing"

	"github.com/voxelforge/menger/voxel"
)

func TestSingleVoxelMesh(t *testing.T) {
	v := voxel.NewCube(1, 1)
	v.SetVoxel(0, 0, 0, 1)
	m, err := Generate(v)
	if err != nil {
		t.Fatalf("generate mesh: %v", err)
	}
	if len(m.Vertices) != 24 {
		t.Fatalf("vertices = %d, want 24 (6 quads)", len(m.Vertices))
	}
	if len(m.Indices) != 36 {
		t.Fatalf("indices = %d, want 36", len(m.Indices))
	}
}

func TestGreedyMergesUniformFaces(t *testing.T) {
	v := voxel.NewCube(2, 1)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				v.SetVoxel(x, y, z, 1)
			}
		}
	}
	m, err := Generate(v)
	if err != nil {
		t.Fatalf("generate mesh: %v", err)
	}
	// each 2x2 face of the cube merges into a single quad
	if len(m.Vertices) != 24 || len(m.Indices) != 36 {
		t.Fatalf("got %d vertices / %d indices, want 24/36", len(m.Vertices), len(m.Indices))
	}
}

func TestHiddenFacesSkipped(t *testing.T) {
	// two adjacent voxels share a hidden face pair: 10 exposed quads
	v := voxel.New(2, 1, 1, 1)
	v.SetVoxel(0, 0, 0, 1)
	v.SetVoxel(1, 0, 0, 1)
	m, err := Generate(v)
	if err != nil {
		t.Fatalf("generate mesh: %v", err)
	}
	// greedy merging collapses the coplanar side faces into one quad each:
	// 2 x-caps + 4 merged side faces
	if got := len(m.Indices) / 6; got != 6 {
		t.Fatalf("quads = %d, want 6", got)
	}
}

func TestColorVolumeVertexColor(t *testing.T) {
	v := voxel.NewCube(1, 3)
	v.SetVoxel(0, 0, 0, 81, 168, 221)
	m, err := Generate(v)
	if err != nil {
		t.Fatalf("generate mesh: %v", err)
	}
	want := [4]float32{81.0 / 255, 168.0 / 255, 221.0 / 255, 1}
	for i, vert := range m.Vertices {
		if vert.Color != want {
			t.Fatalf("vertex %d color %v, want %v", i, vert.Color, want)
		}
	}
}

func TestEncodeGLBMagic(t *testing.T) {
	v := voxel.NewCube(1, 1)
	v.SetVoxel(0, 0, 0, 1)
	m, err := Generate(v)
	if err != nil {
		t.Fatalf("generate mesh: %v", err)
	}
	glb, err := m.EncodeGLB()
	if err != nil {
		t.Fatalf("encode glb: %v", err)
	}
	if len(glb) < 4 || string(glb[:4]) != "glTF" {
		t.Fatalf("GLB output missing glTF magic")
	}
}

func TestEmptyVolumeMesh(t *testing.T) {
	m, err := Generate(voxel.NewCube(2, 1))
	if err != nil {
		t.Fatalf("generate mesh: %v", err)
	}
	if len(m.Vertices) != 0 {
		t.Fatalf("empty volume should produce an empty mesh")
	}
	if _, err := m.EncodeGLB(); err == nil {
		t.Fatalf("encoding an empty mesh should fail")
	}
}
