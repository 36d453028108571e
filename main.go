//go:build !(js && wasm)

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/voxelforge/menger/utils"
)

func usage() {
	fmt.Println("Usage: menger <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  generate <divisions> <output.vxm> [mono|color] [removals]        (generate a Menger volume)")
	fmt.Println("  slice <divisions> <depth> <output.vxm> [mono|color] [removals]   (trim <depth> layers from every axis)")
	fmt.Println("  invert <divisions> <output.vxm> [removals]                       (complement of the mono volume)")
	fmt.Println("  mesh <divisions> <output.glb> [mono|color] [removals]            (greedy surface mesh as binary glTF)")
	fmt.Println("  vxm2glb input.vxm output.glb                                     (convert an existing .vxm to .glb)")
	fmt.Println()
	fmt.Println("[removals] is a comma-separated list of 3x3x3 cell indices (0..26)")
	fmt.Println("to hollow out at the first level, e.g. 4,10,12,13,14,16,22.")
}

func parseMode(arg string) (bool, error) {
	switch arg {
	case "", "mono":
		return false, nil
	case "color":
		return true, nil
	default:
		return false, fmt.Errorf("unknown mode %q (want mono or color)", arg)
	}
}

func run() error {
	switch os.Args[1] {
	case "generate":
		if len(os.Args) < 4 || len(os.Args) > 6 {
			usage()
			os.Exit(1)
		}
		var divisions int
		if _, err := fmt.Sscan(os.Args[2], &divisions); err != nil {
			return err
		}
		mode := ""
		if len(os.Args) > 4 {
			mode = os.Args[4]
		}
		colorMode, err := parseMode(mode)
		if err != nil {
			return err
		}
		var removals []int
		if len(os.Args) > 5 {
			if removals, err = utils.ParseRemovals(os.Args[5]); err != nil {
				return err
			}
		}
		return utils.RunGenerate(divisions, colorMode, removals, os.Args[3])
	case "slice":
		if len(os.Args) < 5 || len(os.Args) > 7 {
			usage()
			os.Exit(1)
		}
		var divisions, depth int
		if _, err := fmt.Sscan(os.Args[2], &divisions); err != nil {
			return err
		}
		if _, err := fmt.Sscan(os.Args[3], &depth); err != nil {
			return err
		}
		mode := ""
		if len(os.Args) > 5 {
			mode = os.Args[5]
		}
		colorMode, err := parseMode(mode)
		if err != nil {
			return err
		}
		var removals []int
		if len(os.Args) > 6 {
			if removals, err = utils.ParseRemovals(os.Args[6]); err != nil {
				return err
			}
		}
		return utils.RunSlice(divisions, depth, colorMode, removals, os.Args[4])
	case "invert":
		if len(os.Args) < 4 || len(os.Args) > 5 {
			usage()
			os.Exit(1)
		}
		var divisions int
		if _, err := fmt.Sscan(os.Args[2], &divisions); err != nil {
			return err
		}
		var removals []int
		if len(os.Args) > 4 {
			var err error
			if removals, err = utils.ParseRemovals(os.Args[4]); err != nil {
				return err
			}
		}
		return utils.RunInvert(divisions, removals, os.Args[3])
	case "mesh":
		if len(os.Args) < 4 || len(os.Args) > 6 {
			usage()
			os.Exit(1)
		}
		var divisions int
		if _, err := fmt.Sscan(os.Args[2], &divisions); err != nil {
			return err
		}
		mode := ""
		if len(os.Args) > 4 {
			mode = os.Args[4]
		}
		colorMode, err := parseMode(mode)
		if err != nil {
			return err
		}
		var removals []int
		if len(os.Args) > 5 {
			if removals, err = utils.ParseRemovals(os.Args[5]); err != nil {
				return err
			}
		}
		return utils.RunMesh(divisions, colorMode, removals, os.Args[3])
	case "vxm2glb":
		if len(os.Args) != 4 {
			usage()
			os.Exit(1)
		}
		return utils.RunVXM2GLB(os.Args[2], os.Args[3])
	default:
		usage()
		os.Exit(1)
	}
	return nil
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	if err := run(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	color.Green("Operation completed!")
}
