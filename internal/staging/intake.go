package staging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// ErrNotAFile indicates an intake path that is not a regular file.
var ErrNotAFile = errors.New("not a regular file")

const intakeWorkers = 8

// LoadPaths stats each path concurrently and returns inputs in argument order.
// Only "is this a regular file" is checked; content is not read or validated.
func LoadPaths(ctx context.Context, paths ...string) ([]Input, error) {
	inputs := make([]Input, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(intakeWorkers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("intake %s: %w", path, err)
			}
			if !info.Mode().IsRegular() {
				return fmt.Errorf("intake %s: %w", path, ErrNotAFile)
			}

			inputs[i] = Input{
				Name: filepath.Base(path),
				Size: info.Size(),
				Blob: Path(path),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inputs, nil
}
