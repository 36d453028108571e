// Package api exposes byte-level one-shot conversions for embedders (and
// the wasm binding) that want results without touching the filesystem.
package api

import (
	"github.com/voxelforge/menger/menger"
	"github.com/voxelforge/menger/mesh"
	"github.com/voxelforge/menger/voxio"
)

func newEngine(colorMode bool, removals []int) *menger.Engine {
	mode := menger.Mono
	if colorMode {
		mode = menger.Color
	}
	e := menger.New(mode)
	if removals != nil {
		e.SetRemovals(removals)
	}
	return e
}

// GenerateVXM generates a fractal volume and returns it as VXM file bytes.
// A nil removals slice keeps the standard Menger pattern.
func GenerateVXM(divisions int, colorMode bool, removals []int) ([]byte, error) {
	v, err := newEngine(colorMode, removals).Generate(divisions)
	if err != nil {
		return nil, err
	}
	return voxio.Encode(v), nil
}

// SliceVXM generates a fractal volume, trims the first depth layers along
// every axis and returns the result as VXM file bytes.
func SliceVXM(divisions, depth int, colorMode bool, removals []int) ([]byte, error) {
	e := newEngine(colorMode, removals)
	if _, err := e.Generate(divisions); err != nil {
		return nil, err
	}
	v, err := e.Slice(nil, depth)
	if err != nil {
		return nil, err
	}
	return voxio.Encode(v), nil
}

// InvertVXM generates a mono fractal volume and returns its complement as
// VXM file bytes.
func InvertVXM(divisions int, removals []int) ([]byte, error) {
	v, err := newEngine(false, removals).Invert(divisions)
	if err != nil {
		return nil, err
	}
	return voxio.Encode(v), nil
}

// GenerateGLB generates a fractal volume and returns it as a binary glTF
// model built with the greedy surface mesher.
func GenerateGLB(divisions int, colorMode bool, removals []int) ([]byte, error) {
	v, err := newEngine(colorMode, removals).Generate(divisions)
	if err != nil {
		return nil, err
	}
	m, err := mesh.Generate(v)
	if err != nil {
		return nil, err
	}
	return m.EncodeGLB()
}

// VXMToGLB converts VXM file bytes into a binary glTF model.
func VXMToGLB(vxmBytes []byte) ([]byte, error) {
	v, err := voxio.Decode(vxmBytes)
	if err != nil {
		return nil, err
	}
	m, err := mesh.Generate(v)
	if err != nil {
		return nil, err
	}
	return m.EncodeGLB()
}
