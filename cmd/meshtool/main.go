// meshtool is a CLI utility for inspecting and converting TMSH terrain files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/terragen/internal/export"
	"github.com/Faultbox/terragen/internal/terrain"
	"github.com/Faultbox/terragen/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "probe", "height":
		cmdProbe(args)
	case "glb":
		cmdGLB(args)
	case "csv":
		cmdCSV(args)
	case "img", "image":
		cmdImage(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - terragen mesh utility

Usage:
  meshtool <command> [options]

Commands:
  info <file.tmsh>                 Show grid, counts and height statistics
  probe <file.tmsh> <x> <z>        Sample terrain height at a world position
  glb [-o out.glb] <file.tmsh>     Convert to binary glTF
  csv [-o out.csv] <file.tmsh>     Dump per-vertex heights as CSV (stdout by default)
  img [-o out.png] <file.tmsh>     Render a grayscale height preview (.png or .bmp)

Examples:
  meshtool info out/terrain.tmsh
  meshtool probe out/terrain.tmsh 0.25 -1.0
  meshtool glb -o island.glb out/terrain.tmsh
  meshtool csv out/terrain.tmsh > heights.csv
  meshtool img -o heights.bmp out/terrain.tmsh`)
}

func loadMesh(path string) *terrain.Mesh {
	m, err := terrain.LoadTMSHFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return m
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool info <file.tmsh>")
		os.Exit(1)
	}

	f, err := formats.ParseTMSHFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m, err := terrain.MeshFromTMSH(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	s := terrain.Summarize(m)

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Version:   %s\n", f.Version)
	fmt.Printf("Grid:      %dx%d (extent %.3f)\n", m.Width, m.Height, m.Extent)
	fmt.Printf("Vertices:  %d\n", s.Vertices)
	fmt.Printf("Triangles: %d\n", s.Triangles)
	lo, hi := f.GetHeightRange()
	fmt.Printf("Range:     %.5f .. %.5f\n", lo, hi)
	fmt.Printf("Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		m.Bounds.Min[0], m.Bounds.Min[1], m.Bounds.Min[2],
		m.Bounds.Max[0], m.Bounds.Max[1], m.Bounds.Max[2])
	fmt.Println()
	fmt.Println("Heights:")
	fmt.Printf("  min     %.5f\n", s.MinHeight)
	fmt.Printf("  max     %.5f\n", s.MaxHeight)
	fmt.Printf("  mean    %.5f\n", s.MeanHeight)
	fmt.Printf("  median  %.5f\n", s.MedianHeight)
	fmt.Printf("  stddev  %.5f\n", s.StdDevHeight)
	fmt.Printf("  slope   %.2f° max\n", s.MaxSlopeDegrees)
}

func cmdProbe(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool probe <file.tmsh> <x> <z>")
		os.Exit(1)
	}

	x, errX := strconv.ParseFloat(args[1], 32)
	z, errZ := strconv.ParseFloat(args[2], 32)
	if errX != nil || errZ != nil {
		fmt.Fprintln(os.Stderr, "Error: x and z must be numbers")
		os.Exit(1)
	}

	hm := terrain.NewHeightmap(loadMesh(args[0]))
	fmt.Printf("%.6f\n", hm.HeightAt(float32(x), float32(z)))
}

func cmdGLB(args []string) {
	fs := flag.NewFlagSet("glb", flag.ExitOnError)
	output := fs.String("o", "", "Output file (default: input with .glb extension)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool glb [-o out.glb] <file.tmsh>")
		os.Exit(1)
	}
	input := fs.Arg(0)

	outPath := *output
	if outPath == "" {
		outPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".glb"
	}

	if err := export.WriteGLB(loadMesh(input), outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", outPath)
}

func cmdCSV(args []string) {
	fs := flag.NewFlagSet("csv", flag.ExitOnError)
	output := fs.String("o", "", "Output file (default: stdout)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool csv [-o out.csv] <file.tmsh>")
		os.Exit(1)
	}
	m := loadMesh(fs.Arg(0))

	var err error
	if *output == "" {
		err = export.WriteHeightCSV(m, os.Stdout)
	} else {
		err = export.WriteHeightCSVFile(m, *output)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdImage(args []string) {
	fs := flag.NewFlagSet("img", flag.ExitOnError)
	output := fs.String("o", "", "Output file, .png or .bmp (default: input with .png extension)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool img [-o out.png] <file.tmsh>")
		os.Exit(1)
	}
	input := fs.Arg(0)

	outPath := *output
	if outPath == "" {
		outPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	}

	if err := export.WriteHeightImageFile(loadMesh(input), outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", outPath)
}
