package nominactl

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	webstorage "github.com/nominaweb/nominaweb/internal/services/web/storage"
	"github.com/nominaweb/nominaweb/internal/services/web/storage/sqlite"
)

func openAudit(ctx context.Context, path string) (webstorage.AuditStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("audit log path is required (--audit-db or NOMINAWEB_AUDIT_DB_PATH)")
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return store, nil
}

func auditCommand(a *app) *cobra.Command {
	var (
		limit  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the newest audit log entries written by the web service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := normalizeFormat(output, formatTable, formatJSON, formatYAML)
			if err != nil {
				return err
			}
			store, err := openAudit(cmd.Context(), a.cfg.AuditDBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.ListAudit(cmd.Context(), webstorage.ClampAuditLimit(limit))
			if err != nil {
				return fmt.Errorf("list audit log: %w", err)
			}
			if format != formatTable {
				if entries == nil {
					entries = []webstorage.AuditEntry{}
				}
				return writeStructured(cmd.OutOrStdout(), format, entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					humanize.Time(entry.At),
					dash(entry.Actor),
					string(entry.Action),
					entry.Entity,
					dash(entry.EntityID),
					dash(entry.Summary),
				})
			}
			return writeTable(cmd.OutOrStdout(), []string{"CUANDO", "ACTOR", "ACCION", "ENTIDAD", "ID", "RESUMEN"}, rows)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", webstorage.DefaultAuditLimit, "Number of entries to show")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table, json, or yaml")
	return cmd
}
