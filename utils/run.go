// Package utils holds the file-level helpers behind the CLI subcommands.
package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/voxelforge/menger/menger"
	"github.com/voxelforge/menger/mesh"
	"github.com/voxelforge/menger/voxio"
)

// ParseRemovals parses a comma-separated index list like "4,10,12,13" into
// a removal spec. Range validation happens inside the engine.
func ParseRemovals(arg string) ([]int, error) {
	s := strings.Trim(arg, "[] ")
	parts := strings.Split(s, ",")
	var spec []int
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		i, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("failed to parse removal index '%s': %w", p, err)
		}
		spec = append(spec, i)
	}
	if len(spec) == 0 {
		return nil, fmt.Errorf("empty removal list")
	}
	return spec, nil
}

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

// RunGenerate generates a fractal volume and writes it as a .vxm file.
func RunGenerate(divisions int, colorMode bool, removals []int, outPath string) error {
	v, err := newEngine(colorMode, removals).Generate(divisions)
	if err != nil {
		return err
	}
	if err := voxio.Save(v, outPath); err != nil {
		return fmt.Errorf("failed to save VXM: %w", err)
	}
	reportSaved(outPath)
	return nil
}

// RunSlice generates a fractal volume, trims depth layers off every axis
// and writes the result as a .vxm file.
func RunSlice(divisions, depth int, colorMode bool, removals []int, outPath string) error {
	e := newEngine(colorMode, removals)
	if _, err := e.Generate(divisions); err != nil {
		return err
	}
	v, err := e.Slice(nil, depth)
	if err != nil {
		return err
	}
	if err := voxio.Save(v, outPath); err != nil {
		return fmt.Errorf("failed to save VXM: %w", err)
	}
	reportSaved(outPath)
	return nil
}

// RunInvert generates a mono fractal volume and writes its complement as a
// .vxm file.
func RunInvert(divisions int, removals []int, outPath string) error {
	v, err := newEngine(false, removals).Invert(divisions)
	if err != nil {
		return err
	}
	if err := voxio.Save(v, outPath); err != nil {
		return fmt.Errorf("failed to save VXM: %w", err)
	}
	reportSaved(outPath)
	return nil
}

// RunMesh generates a fractal volume and writes its greedy surface mesh as
// a binary glTF file.
func RunMesh(divisions int, colorMode bool, removals []int, outPath string) error {
	v, err := newEngine(colorMode, removals).Generate(divisions)
	if err != nil {
		return err
	}
	m, err := mesh.Generate(v)
	if err != nil {
		return err
	}
	glb, err := m.EncodeGLB()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, glb, 0o644); err != nil {
		return fmt.Errorf("failed to save GLB: %w", err)
	}
	reportSaved(outPath)
	return nil
}

// RunVXM2GLB converts an existing .vxm file into a .glb mesh file.
func RunVXM2GLB(inPath, outPath string) error {
	v, err := voxio.Load(inPath)
	if err != nil {
		return fmt.Errorf("failed to load VXM: %w", err)
	}
	m, err := mesh.Generate(v)
	if err != nil {
		return err
	}
	glb, err := m.EncodeGLB()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, glb, 0o644); err != nil {
		return fmt.Errorf("failed to save GLB: %w", err)
	}
	reportSaved(outPath)
	return nil
}

func reportSaved(path string) {
	if fi, err := os.Stat(path); err == nil {
		fmt.Printf("%s saved (%d bytes)\n", path, fi.Size())
	} else {
		fmt.Printf("%s saved.\n", path)
	}
}
