package workflow

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
	"github.com/dmitrijs2005/resumeanalyzer/internal/filex"
)

// Source names the input adapter a resume path came from.
type Source int

const (
	// SourceBrowse is a path typed by the user.
	SourceBrowse Source = iota
	// SourceDrop is text pasted by a terminal drag-and-drop.
	SourceDrop
)

// UploadPath resolves raw through the adapter for src, opens the file and
// uploads it. A path that cannot be opened is reported as an error
// notification without reaching the network.
func (a *App) UploadPath(ctx context.Context, src Source, raw string) error {
	if !a.Snapshot().Session.Authenticated() {
		return ErrNotAuthenticated
	}

	resolve := filex.BrowsePath
	if src == SourceDrop {
		resolve = filex.DropPath
	}
	path, err := resolve(raw)
	if err != nil {
		a.rejectFile(err)
		return err
	}

	f, err := filex.OpenRegular(path)
	if err != nil {
		a.rejectFile(err)
		return err
	}
	defer f.Close()

	return a.Upload(ctx, models.ResumeFile{Name: path, Content: f})
}

func (a *App) rejectFile(err error) {
	a.notes.Show(KindError, fmt.Sprintf("Cannot read file: %v", err))
	a.publish()
}
