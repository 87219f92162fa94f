package site

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"

	"github.com/dgallion1/docsite/internal/fsutil"
)

// DumpTrees writes each page's heading tree as indented JSON under outDir,
// mirroring the docs layout with .json in place of the markdown extension.
func (b *Builder) DumpTrees(ctx context.Context, outDir string) (int, error) {
	ps, err := b.loadPages(ctx)
	if err != nil {
		return 0, err
	}
	if len(ps.errors) > 0 {
		return 0, fmt.Errorf("%d page(s) failed to parse", len(ps.errors))
	}

	count := 0
	for i, p := range ps.nav.Pages {
		doc := ps.docs[i]
		if doc == nil {
			continue
		}
		data, err := json.MarshalIndent(doc.Tree, "", "  ")
		if err != nil {
			return count, fmt.Errorf("encode %s: %w", p.SourcePath, err)
		}
		rel := p.SourcePath[:len(p.SourcePath)-len(path.Ext(p.SourcePath))] + ".json"
		out := filepath.Join(outDir, filepath.FromSlash(rel))
		if err := fsutil.WriteFileAtomic(out, append(data, '\n')); err != nil {
			return count, err
		}
		b.log.Info("wrote doc tree", "page", p.SourcePath, "out", out)
		count++
	}
	return count, nil
}
