// Command graph-viewer shows a point file as a smoothed line graph and
// follows the file as rows are appended.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"golang.org/x/text/language"

	"git.sr.ht/~whereswaldon/curvegraph/backend"
	"git.sr.ht/~whereswaldon/curvegraph/config"
	"git.sr.ht/~whereswaldon/curvegraph/graph"
)

func main() {
	configPath := flag.String("config", "", "TOML file with the chart style and axis settings")
	localeName := flag.String("locale", "", "language used to format labels, such as de-DE (default: system locale)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file.csv]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	format, err := formatter(*localeName)
	if err != nil {
		log.Printf("failed choosing label locale: %v", err)
	}

	bundle, err := backend.NewBundle()
	if err != nil {
		log.Fatal(err)
	}
	if flag.NArg() > 0 {
		bundle.Datasource.Open(flag.Arg(0))
	}

	go func() {
		w := app.NewWindow(app.Title("Curve Graph"))
		err := loop(w, bundle, cfg.Chart(nil, format))
		if closeErr := bundle.Close(); closeErr != nil {
			log.Printf("failed closing backend: %v", closeErr)
		}
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// formatter returns a locale aware label formatter. An empty name selects
// the system locale.
func formatter(name string) (graph.Formatter, error) {
	if name == "" {
		tag, err := graph.SystemLocale()
		return graph.NewLocaleFormatter(tag), err
	}
	tag, err := language.Parse(name)
	if err != nil {
		return graph.NewLocaleFormatter(language.English), fmt.Errorf("invalid locale %q: %w", name, err)
	}
	return graph.NewLocaleFormatter(tag), nil
}

func loop(w *app.Window, bundle backend.Bundle, chart graph.Chart) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	expl := explorer.NewExplorer(w)
	ui := NewUI(backend.NewWindowState(ctx, bundle, w), expl, chart)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
