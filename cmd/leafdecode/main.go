/*
DESCRIPTION
  leafdecode is a command-line collaborator for the LEAF256 codec: it
  decodes a LEAF256 file to raw palette-index bytes plus a sibling
  palette file, encodes a raw palette-index file (plus palette) back to
  LEAF256, or round-trip-checks an existing file. It is the CLI
  collaborator spec.md §6 names as an external consumer of Decode,
  Encode, and RoundTripCheck; it does not implement any of the renderer,
  archive, or visualizer collaborators spec.md §1 scopes out.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements the leafdecode command.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kako-jun/retro-decode/container/leaf256"
	"github.com/kako-jun/retro-decode/roundtrip"
)

// Logging configuration, following cmd/rv and cmd/looper's constants.
const (
	logPath      = "leafdecode.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

func main() {
	input := flag.String("input", "", "input file path")
	output := flag.String("output", "", "output file path (decode also writes the palette as <path>.pal; encode reads it from <input>.pal)")
	mode := flag.String("mode", "decode", "one of: decode, encode, roundtrip")
	width := flag.Int("width", 0, "image width in pixels (required for --mode encode)")
	height := flag.Int("height", 0, "image height in pixels (required for --mode encode)")
	transparent := flag.Int("transparent", 0, "transparent palette index (for --mode encode)")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	l := log.New(io.MultiWriter(fileLog, os.Stderr), "leafdecode: ", log.LstdFlags)

	if *input == "" {
		l.Fatal("--input is required")
	}

	var err error
	switch *mode {
	case "decode":
		err = runDecode(*input, *output, l)
	case "encode":
		err = runEncode(*input, *output, *width, *height, *transparent, l)
	case "roundtrip":
		err = runRoundTrip(*input, l)
	default:
		err = errors.Errorf("unknown --mode %q (want decode, encode, or roundtrip)", *mode)
	}
	if err != nil {
		l.Fatal(err)
	}
}

func runDecode(input, output string, l *log.Logger) error {
	b, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}
	img, err := roundtrip.Decode(b)
	if err != nil {
		return errors.Wrap(err, "decoding")
	}

	if output == "" {
		output = input + ".raw"
	}
	if err := os.WriteFile(output, img.Pixels, 0o644); err != nil {
		return errors.Wrap(err, "writing raw pixel output")
	}
	if err := os.WriteFile(output+".pal", paletteBytes(img.Palette), 0o644); err != nil {
		return errors.Wrap(err, "writing palette output")
	}
	l.Printf("decoded %s: %dx%d, %d colors -> %s (+.pal)", input, img.Width, img.Height, img.ColorCount, output)
	return nil
}

func runEncode(input, output string, width, height, transparent int, l *log.Logger) error {
	if width <= 0 || height <= 0 {
		return errors.New("--width and --height are required for --mode encode")
	}
	pixels, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(err, "reading raw pixel input")
	}
	if len(pixels) != width*height {
		return errors.Errorf("input has %d bytes, want %d for a %dx%d image", len(pixels), width*height, width, height)
	}
	palBytes, err := os.ReadFile(input + ".pal")
	if err != nil {
		return errors.Wrap(err, "reading palette input")
	}
	palette, err := paletteFromBytes(palBytes)
	if err != nil {
		return errors.Wrap(err, "parsing palette input")
	}

	img := &leaf256.Image{
		Width: width, Height: height,
		TransparentIndex: transparent,
		ColorCount:       len(palette),
		Palette:          palette,
		Pixels:           pixels,
	}

	encoded, err := roundtrip.Encode(img, leaf256.DefaultOptions())
	if err != nil {
		return errors.Wrap(err, "encoding")
	}

	if output == "" {
		output = input + ".leaf256"
	}
	if err := os.WriteFile(output, encoded, 0o644); err != nil {
		return errors.Wrap(err, "writing encoded output")
	}
	l.Printf("encoded %s: %dx%d, %d colors -> %s", input, width, height, len(palette), output)
	return nil
}

func runRoundTrip(input string, l *log.Logger) error {
	b, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}
	img, _, err := roundtrip.RoundTripCheck(b, leaf256.DefaultOptions())
	if err != nil {
		return errors.Wrapf(err, "round-trip check for %s", input)
	}
	l.Printf("round-trip OK: %s (%dx%d, %d colors)", input, img.Width, img.Height, img.ColorCount)
	fmt.Fprintf(os.Stdout, "OK\n")
	return nil
}

func paletteBytes(palette []leaf256.PaletteEntry) []byte {
	out := make([]byte, 3*len(palette))
	for i, p := range palette {
		out[3*i] = p.B
		out[3*i+1] = p.G
		out[3*i+2] = p.R
	}
	return out
}

func paletteFromBytes(b []byte) ([]leaf256.PaletteEntry, error) {
	if len(b)%3 != 0 {
		return nil, errors.Errorf("palette file has %d bytes, not a multiple of 3", len(b))
	}
	out := make([]leaf256.PaletteEntry, len(b)/3)
	for i := range out {
		out[i] = leaf256.PaletteEntry{B: b[3*i], G: b[3*i+1], R: b[3*i+2]}
	}
	return out, nil
}
