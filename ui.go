package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/curvegraph/backend"
	"git.sr.ht/~whereswaldon/curvegraph/graph"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

var errorColor = color.NRGBA{R: 150, A: 255}

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer
	th   *material.Theme

	data    backend.Dataset
	chart   *ChartData
	openBtn widget.Clickable
	openErr chan error
	lastErr string

	sessionStream *stream.Stream[backend.Session]
	session       backend.Session
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, chart graph.Chart) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:            ws,
		th:            th,
		expl:          expl,
		openErr:       make(chan error, 1),
		sessionStream: stream.New(ws.Controller, ws.Bundle.Datasource.Sessions),
	}
	ui.chart = NewChart(&ui.data, chart)
	return ui
}

// Update the state of the UI from the backend and input events.
func (ui *UI) Update(gtx C) {
	ui.sessionStream.ReadInto(gtx, &ui.session, backend.Session{})
	ui.data = ui.session.Data
	select {
	case err := <-ui.openErr:
		ui.lastErr = err.Error()
	default:
	}
	if ui.openBtn.Clicked(gtx) {
		ui.lastErr = ""
		go ui.chooseFile()
	}
}

// chooseFile blocks until the user picks a file, so it must not run on the
// event loop.
func (ui *UI) chooseFile() {
	file, err := ui.expl.ChooseFile("csv")
	if err != nil {
		if !errors.Is(err, explorer.ErrUserDecline) {
			log.Printf("failed choosing file: %v", err)
			select {
			case ui.openErr <- fmt.Errorf("failed choosing file: %w", err):
				ui.ws.Window.Invalidate()
			default:
			}
		}
		return
	}
	ui.ws.Bundle.Datasource.OpenReader(file)
}

func (ui *UI) status() (string, bool) {
	if ui.lastErr != "" {
		return ui.lastErr, true
	}
	if ui.session.Err != nil {
		return ui.session.Err.Error(), true
	}
	if err := ui.chart.Err(); err != nil {
		return err.Error(), true
	}
	name := "stream"
	if ui.session.Path != "" {
		name = filepath.Base(ui.session.Path)
	}
	status := fmt.Sprintf("%s: %d points", name, len(ui.data.Points))
	if gaps := ui.data.Gaps(); gaps > 0 {
		status += fmt.Sprintf(", %d gaps", gaps)
	}
	if lo, hi, ok := ui.data.YRange(); ok {
		status += fmt.Sprintf(", y from %g to %g", lo, hi)
	}
	if ui.session.Live {
		status += " (following)"
	}
	return status, false
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					return layout.UniformInset(4).Layout(gtx,
						material.IconButton(ui.th, &ui.openBtn, openIcon, "Open point file").Layout,
					)
				}),
				layout.Flexed(1, func(gtx C) D {
					status, failed := ui.status()
					l := material.Body1(ui.th, status)
					l.MaxLines = 1
					if failed {
						l.Color = errorColor
					}
					return l.Layout(gtx)
				}),
			)
		}),
		layout.Flexed(1, func(gtx C) D {
			return ui.chart.Layout(gtx, ui.th)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	msg := "No data yet."
	if status, failed := ui.status(); failed {
		msg = status
	}
	l := material.Body1(ui.th, msg)
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Point File").Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.data.Initialized() {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
