package placeholder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Progress is called after each file is written.
type Progress func(done, total int, filename string)

// Generate renders every spec into outputDir, creating the directory if it does not exist, and
// returns the number of files written. Existing files with the same names are overwritten, so
// running it again produces the same set of files.
//
// Any failure stops the run and is returned.
func Generate(ctx context.Context, outputDir string, specs []Spec, r *Renderer, progress Progress) (int, error) {
	if err := checkUniqueFilenames(specs); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	count := 0
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if err := Save(r.Render(spec), filepath.Join(outputDir, spec.Filename)); err != nil {
			return count, err
		}
		count++
		if progress != nil {
			progress(count, len(specs), spec.Filename)
		}
	}
	return count, nil
}

func checkUniqueFilenames(specs []Spec) error {
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if spec.Filename == "" || filepath.Base(spec.Filename) != spec.Filename {
			return fmt.Errorf("invalid image filename %q", spec.Filename)
		}
		if seen[spec.Filename] {
			return fmt.Errorf("duplicate image filename %q", spec.Filename)
		}
		seen[spec.Filename] = true
	}
	return nil
}
