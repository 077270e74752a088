package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/client"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/workflow"
	"github.com/dmitrijs2005/resumeanalyzer/internal/filex"
	"github.com/dmitrijs2005/resumeanalyzer/internal/report"
)

// List prints the cached history, newest first as the server orders it.
func (a *App) List(context.Context) error {
	st := a.core.Snapshot()
	if len(st.Analyses) == 0 {
		fmt.Fprintln(a.out, "No analyses yet. Upload a resume with 'upload <path>'.")
		return nil
	}
	for i, r := range st.Analyses {
		score := "-"
		if s, ok := r.Analysis.OverallScore(); ok {
			score = report.ScoreLabel(s)
		}
		date := ""
		if !r.CreatedAt.IsZero() {
			date = r.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(a.out, "%3d. %-32s %-10s %s  [id:%d]\n", i+1, r.Filename, date, score, r.ID)
	}
	return nil
}

// Refresh refetches the history and prints it.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.core.Refresh(ctx); err != nil {
		if !errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Could not refresh history:", err)
		}
		return err
	}
	return a.List(ctx)
}

// Open selects a history entry: "3" is the third listed entry and "id:17"
// the analysis with id 17.
func (a *App) Open(ctx context.Context, arg string) error {
	var err error
	if rest, ok := strings.CutPrefix(arg, "id:"); ok {
		id, perr := strconv.ParseInt(strings.TrimSpace(rest), 10, 64)
		if perr != nil {
			fmt.Fprintln(a.out, "Usage: open <n|id:N>")
			return perr
		}
		err = a.core.SelectID(id)
	} else {
		n, perr := strconv.Atoi(arg)
		if perr != nil {
			fmt.Fprintln(a.out, "Usage: open <n|id:N>")
			return perr
		}
		err = a.core.Select(n - 1)
	}
	if err != nil {
		fmt.Fprintln(a.out, "Cannot open:", err)
		return err
	}
	return a.Show(ctx)
}

// Upload sends the file at a typed path.
func (a *App) Upload(ctx context.Context, path string) error {
	return a.upload(ctx, workflow.SourceBrowse, path)
}

// Drop sends a file whose path was pasted by a terminal drag-and-drop.
func (a *App) Drop(ctx context.Context, raw string) error {
	return a.upload(ctx, workflow.SourceDrop, raw)
}

func (a *App) upload(ctx context.Context, src workflow.Source, raw string) error {
	fmt.Fprintln(a.out, "Analyzing...")
	if err := a.core.UploadPath(ctx, src, raw); err != nil {
		a.log.Debug(ctx, "upload failed", "path", raw, "error", err)
		return err
	}
	if a.view() == workflow.ViewAnalysis {
		return a.Show(ctx)
	}
	return nil
}

// Show prints the selected analysis.
func (a *App) Show(context.Context) error {
	st := a.core.Snapshot()
	rep, err := st.Selected.Report()
	if err != nil {
		rep = nil
	}
	return report.WriteText(a.out, st.SelectedName, rep)
}

// Export writes the selected analysis as Markdown to path. A leading "~"
// is expanded as for uploads.
func (a *App) Export(ctx context.Context, raw string) error {
	st := a.core.Snapshot()

	path, err := filex.ExpandPath(raw)
	if err != nil {
		fmt.Fprintln(a.out, "Cannot export:", err)
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintln(a.out, "Cannot export:", err)
		return err
	}
	if err := report.Export(f, st.SelectedName, st.Selected); err != nil {
		f.Close()
		fmt.Fprintln(a.out, "Cannot export:", err)
		return err
	}
	if err := f.Close(); err != nil {
		fmt.Fprintln(a.out, "Cannot export:", err)
		return err
	}
	a.log.Info(ctx, "analysis exported", "path", path)
	fmt.Fprintln(a.out, "Exported to", path)
	return nil
}

// Back returns to the dashboard.
func (a *App) Back(ctx context.Context) error {
	if err := a.core.Back(); err != nil {
		return err
	}
	return a.List(ctx)
}
