package script

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/piecechain/internal/engine/document"
	"github.com/dshills/piecechain/internal/logging"
)

// RunFile applies the script at path to doc, choosing the format by extension.
// The returned Result is only populated for YAML scripts.
func RunFile(ctx context.Context, doc *document.Document, path string, logger *logging.Logger) (Result, error) {
	if logger == nil {
		logger = logging.Null
	}
	log := logger.WithComponent("script").WithField("path", path)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return Result{}, err
		}
		defer f.Close()

		ops, err := ParseYAML(f)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", path, err)
		}
		log.Debug("parsed %d operations", len(ops))

		res, err := Apply(doc, ops)
		if err != nil {
			return res, fmt.Errorf("%s: %w", path, err)
		}
		log.Debug("applied %d operations, %d pieces", res.Applied, doc.PieceCount())
		return res, nil

	case ".lua":
		src, err := os.ReadFile(path)
		if err != nil {
			return Result{}, err
		}
		if err := NewLuaRunner(logger).Run(ctx, doc, filepath.Base(path), string(src)); err != nil {
			return Result{}, err
		}
		log.Debug("lua script finished, %d pieces", doc.PieceCount())
		return Result{}, nil

	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}
