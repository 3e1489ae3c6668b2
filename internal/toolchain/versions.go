package toolchain

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/programme-lv/runner/api"
)

// Versions reports every toolchain's version string in wire order. The
// queries share no working-directory state, so they run concurrently;
// each stays bounded by VersionTimeout.
func (r *Registry) Versions(ctx context.Context) ([]string, error) {
	langs := api.Languages()
	out := make([]string, len(langs))

	g, ctx := errgroup.WithContext(ctx)
	for i, lang := range langs {
		tc, err := r.For(lang)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			v, err := tc.Version(ctx)
			if err != nil {
				return fmt.Errorf("failed to query %s version: %w", tc.Name(), err)
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
