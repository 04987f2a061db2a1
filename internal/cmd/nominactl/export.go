package nominactl

import (
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// exportConcurrency bounds simultaneous collection fetches.
const exportConcurrency = 4

func exportCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump every collection as one YAML or JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := normalizeFormat(output, formatYAML, formatJSON)
			if err != nil {
				return err
			}
			services, err := a.backend()
			if err != nil {
				return err
			}

			var (
				mu       sync.Mutex
				document = map[string]any{}
			)
			group, ctx := errgroup.WithContext(cmd.Context())
			group.SetLimit(exportConcurrency)
			for _, res := range resources() {
				group.Go(func() error {
					items, err := res.fetchAll(ctx, services)
					if err != nil {
						return err
					}
					mu.Lock()
					document[res.name()] = items
					mu.Unlock()
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}
			return writeStructured(cmd.OutOrStdout(), format, document)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", formatYAML, "Output format: yaml or json")
	return cmd
}
