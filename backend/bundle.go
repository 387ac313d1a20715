package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState is the backend access of a single window.
type WindowState struct {
	Bundle
	Window     *app.Window
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Window:     win,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle holds the backend services shared by all windows.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle() (Bundle, error) {
	ds, err := NewDatasource()
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{
		Datasource: ds,
	}, nil
}

// Close releases the services.
func (b Bundle) Close() error {
	return b.Datasource.Close()
}
