// Package main is the vciph command-line front end.
//
// Subcommands:
//
//	vciph gen     -cover cover.y4m -width 640 -height 480 -frames 120 [-payload secret.bin -size 4096]
//	vciph embed   -cover cover.y4m -payload secret.bin -out stego.y4m [-q 4] [-compress zstd]
//	vciph extract -in stego.y4m -out recovered.bin [-q 4]
//	vciph verify  -a secret.bin -b recovered.bin
//
// embed always wraps the payload in the self-describing envelope (with
// the chosen compression), and extract always unwraps it, so the two
// subcommands are a matched pair.
package main

import (
	"crypto/md5"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"github.com/logicossoftware/go-vciph"
)

func main() {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "gen":
		err = runGen(logger, os.Args[2:])
	case "embed":
		err = runEmbed(logger, os.Args[2:])
	case "extract":
		err = runExtract(logger, os.Args[2:])
	case "verify":
		err = runVerify(logger, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatalw("command failed", "command", os.Args[1], "error", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: vciph <gen|embed|extract|verify> [flags]")
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger.Sugar()
}

// runGen writes a synthetic cover video and, optionally, a dummy payload
// so an embed/extract round trip can be exercised without real footage.
func runGen(logger *zap.SugaredLogger, args []string) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	cover := fs.String("cover", "cover.y4m", "output cover video path")
	width := fs.Int("width", 640, "frame width")
	height := fs.Int("height", 480, "frame height")
	frames := fs.Int("frames", 120, "frame count")
	payload := fs.String("payload", "", "optional dummy payload path to generate")
	size := fs.Int("size", 4096, "dummy payload size in bytes")
	seed := fs.Int64("seed", 1, "generator seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	out, err := os.Create(*cover)
	if err != nil {
		return err
	}
	defer out.Close()

	sink, err := vciph.NewY4MSink(out, vciph.Y4MHeader{
		Width: *width, Height: *height, FrameRate: "25:1", Colorspace: "mono",
	})
	if err != nil {
		return err
	}
	for _, f := range vciph.SyntheticCover(*width, *height, *frames, *seed) {
		if err := sink.Write(f); err != nil {
			return err
		}
	}
	logger.Infow("cover generated",
		"path", *cover, "width", *width, "height", *height, "frames", *frames,
		"capacity_bytes", vciph.Capacity(*width, *height, *frames))

	if *payload != "" {
		data := make([]byte, *size)
		rand.New(rand.NewSource(*seed)).Read(data)
		if err := os.WriteFile(*payload, data, 0o644); err != nil {
			return err
		}
		logger.Infow("dummy payload generated", "path", *payload, "bytes", *size)
	}
	return nil
}

func runEmbed(logger *zap.SugaredLogger, args []string) error {
	fs := flag.NewFlagSet("embed", flag.ExitOnError)
	cover := fs.String("cover", "", "cover video path (y4m)")
	payloadPath := fs.String("payload", "", "payload file path")
	out := fs.String("out", "stego.y4m", "output stego video path")
	q := fs.Float64("q", vciph.DefaultQuantizationStep, "quantization step")
	compress := fs.String("compress", "none", "payload compression: none, zip, zstd, lz4, brotli")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *cover == "" || *payloadPath == "" {
		return errors.New("embed: -cover and -payload are required")
	}

	comp, err := parseCompression(*compress)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(*payloadPath)
	if err != nil {
		return err
	}
	packed, err := vciph.PackPayload(comp, raw)
	if err != nil {
		return err
	}
	logger.Infow("payload packed",
		"bytes", len(raw), "packed_bytes", len(packed), "compression", comp.String())

	in, err := os.Open(*cover)
	if err != nil {
		return err
	}
	defer in.Close()
	src, err := vciph.NewY4MSource(in)
	if err != nil {
		return err
	}

	outFile, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer outFile.Close()
	sink, err := vciph.NewY4MSink(outFile, src.Header())
	if err != nil {
		return err
	}

	if err := vciph.Embed(src, sink, packed, vciph.WithQuantizationStep(*q)); err != nil {
		return err
	}
	w, h, n := src.Geometry()
	logger.Infow("payload embedded",
		"stego", *out, "bits", vciph.StreamBits(len(packed)),
		"width", w, "height", h, "frames", n, "q", *q)
	return nil
}

func runExtract(logger *zap.SugaredLogger, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	in := fs.String("in", "", "stego video path (y4m)")
	out := fs.String("out", "recovered.bin", "recovered payload path")
	q := fs.Float64("q", vciph.DefaultQuantizationStep, "quantization step")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("extract: -in is required")
	}

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()
	src, err := vciph.NewY4MSource(f)
	if err != nil {
		return err
	}

	packed, err := vciph.Extract(src, vciph.WithQuantizationStep(*q))
	if err != nil {
		return err
	}
	raw, err := vciph.UnpackPayload(packed, 0)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, raw, 0o644); err != nil {
		return err
	}
	logger.Infow("payload recovered", "path", *out, "bytes", len(raw))
	return nil
}

// runVerify compares the MD5 digests of two files, mirroring the
// integrity check an embed/extract round trip ends with.
func runVerify(logger *zap.SugaredLogger, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	a := fs.String("a", "", "first file")
	b := fs.String("b", "", "second file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *a == "" || *b == "" {
		return errors.New("verify: -a and -b are required")
	}

	ha, err := fileMD5(*a)
	if err != nil {
		return err
	}
	hb, err := fileMD5(*b)
	if err != nil {
		return err
	}
	if ha != hb {
		return fmt.Errorf("digest mismatch: %s=%s %s=%s", *a, ha, *b, hb)
	}
	logger.Infow("files match", "md5", ha)
	return nil
}

func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func parseCompression(name string) (vciph.Compression, error) {
	switch name {
	case "none":
		return vciph.CompNone, nil
	case "zip":
		return vciph.CompZIP, nil
	case "zstd":
		return vciph.CompZSTD, nil
	case "lz4":
		return vciph.CompLZ4, nil
	case "brotli", "br":
		return vciph.CompBR, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}
