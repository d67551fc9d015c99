package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/dshills/piecechain/internal/dump"
	"github.com/dshills/piecechain/internal/engine/document"
	"github.com/dshills/piecechain/internal/script"
	"github.com/dshills/piecechain/internal/textio"
	"github.com/dshills/piecechain/internal/view"
)

func (a *app) cat(path string) error {
	doc, _, err := textio.Open(path, a.docOptions()...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.stdout, doc.Text())
	return err
}

func (a *app) dump(path string) error {
	doc, _, err := textio.Open(path, a.docOptions()...)
	if err != nil {
		return err
	}
	js, err := dump.JSON(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, js)
	return err
}

// stats prints statistics for a text file or for a previously written dump.
func (a *app) stats(path string) error {
	var st dump.Stats

	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if st, err = dump.Summarize(string(data)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	} else {
		doc, _, err := textio.Open(path, a.docOptions()...)
		if err != nil {
			return err
		}
		st = dump.StatsOf(doc)
	}

	fmt.Fprintf(a.stdout, "characters:  %d\n", st.CharCount)
	fmt.Fprintf(a.stdout, "lines:       %d\n", st.LineCount)
	fmt.Fprintf(a.stdout, "added:       %d\n", st.AddedLen)
	fmt.Fprintf(a.stdout, "pieces:      %d\n", st.Pieces)
	fmt.Fprintf(a.stdout, "  original:  %d\n", st.Original)
	fmt.Fprintf(a.stdout, "  plain:     %d\n", st.Plain)
	fmt.Fprintf(a.stdout, "  breaks:    %d\n", st.LineBreaks)
	return nil
}

func (a *app) replay(ctx context.Context, path, scriptPath string) error {
	doc, enc, err := textio.Open(path, a.docOptions()...)
	if err != nil {
		return err
	}

	res, err := script.RunFile(ctx, doc, scriptPath, a.logger)
	if err != nil {
		return err
	}
	if len(res.Erased) > 0 {
		a.logger.Debug("erased %q", string(res.Erased))
	}

	if a.opts.output == "" {
		_, err = io.WriteString(a.stdout, doc.Text())
		return err
	}
	if err := textio.WriteFile(a.opts.output, doc, enc); err != nil {
		return err
	}
	a.logger.Info("wrote %s (%d pieces)", a.opts.output, doc.PieceCount())
	return nil
}

func (a *app) view(ctx context.Context, path string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("view requires a terminal")
	}

	doc, enc, err := textio.Open(path, a.docOptions()...)
	if errors.Is(err, fs.ErrNotExist) {
		doc, enc, err = document.New("", a.docOptions()...), textio.UTF8, nil
	}
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	v, err := view.New(screen, doc, a.cfg.View, view.WithFile(path, enc), view.WithLogger(a.logger))
	if err != nil {
		return err
	}
	err = v.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
