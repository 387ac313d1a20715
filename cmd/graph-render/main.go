package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gioui.org/unit"
	"golang.org/x/text/language"

	"git.sr.ht/~whereswaldon/curvegraph/backend"
	"git.sr.ht/~whereswaldon/curvegraph/config"
	"git.sr.ht/~whereswaldon/curvegraph/graph"
	"git.sr.ht/~whereswaldon/curvegraph/raster"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: render a csv point file as a smoothed line graph
Usage:

 %[1]s -input points.csv -output graph.png

OR

 tail -n 50 points.csv | %[1]s > graph.png

Print the default style to start a configuration file with:

 %[1]s -print-config > style.toml

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	inputName := flag.String("input", "-", "Input CSV point file")
	outputName := flag.String("output", "-", "Output PNG file")
	configPath := flag.String("config", "", "TOML file with the chart style and axis settings")
	width := flag.Int("width", 800, "Image width in pixels")
	height := flag.Int("height", 400, "Image height in pixels")
	scale := flag.Float64("scale", 1, "Pixels per dp")
	localeName := flag.String("locale", "", "Language used to format labels, such as de-DE (default: plain numbers)")
	printConfig := flag.Bool("print-config", false, "Print the effective configuration as TOML and exit")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *printConfig {
		if err := config.Encode(os.Stdout, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	var format graph.Formatter = graph.PlainFormatter{}
	if *localeName != "" {
		tag, err := language.Parse(*localeName)
		if err != nil {
			log.Fatalf("invalid locale %q: %v", *localeName, err)
		}
		format = graph.NewLocaleFormatter(tag)
	}

	var input io.ReadCloser = os.Stdin
	if *inputName != "-" {
		f, err := os.Open(*inputName)
		if err != nil {
			log.Fatalf("failed opening input file %q: %v", *inputName, err)
		}
		input = f
	}
	_, points, err := backend.ReadPoints(input)
	if closeErr := input.Close(); closeErr != nil {
		log.Printf("failed closing input: %v", closeErr)
	}
	if err != nil {
		log.Fatalf("failed reading points: %v", err)
	}

	var buf bytes.Buffer
	if err := render(&buf, cfg.Chart(points, format), *width, *height, float32(*scale)); err != nil {
		log.Fatal(err)
	}

	var output io.WriteCloser = os.Stdout
	if *outputName != "-" {
		f, err := os.Create(*outputName)
		if err != nil {
			log.Fatalf("failed opening output file %q: %v", *outputName, err)
		}
		output = f
	}
	if _, err := buf.WriteTo(output); err != nil {
		log.Fatalf("failed writing image: %v", err)
	}
	if err := output.Close(); err != nil {
		log.Fatalf("failed closing output: %v", err)
	}
}

// render draws chart on a width by height canvas and writes it to w as PNG.
func render(w io.Writer, chart graph.Chart, width, height int, scale float32) (err error) {
	canvas, err := raster.New(width, height)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := canvas.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed closing canvas: %w", closeErr))
		}
	}()
	metric := unit.Metric{PxPerDp: scale, PxPerSp: scale}
	if err := chart.Render(canvas, canvas.Size(), metric); err != nil {
		return fmt.Errorf("failed rendering graph: %w", err)
	}
	if err := canvas.EncodePNG(w); err != nil {
		return fmt.Errorf("failed encoding image: %w", err)
	}
	return nil
}
