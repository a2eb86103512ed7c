package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"envstash/internal/envstash/spec"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the shared environment cache",
	}

	cmd.AddCommand(newCacheLsCmd())
	cmd.AddCommand(newCacheRmCmd())
	return cmd
}

func newCacheLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List published cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore()
			if err != nil {
				return err
			}

			records, err := store.List(context.Background())
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("cache is empty")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SPEC\tFINGERPRINT\tSIZE\tCREATED\tBY")
			for _, rec := range records {
				created := ""
				if !rec.CreatedAt.IsZero() {
					created = rec.CreatedAt.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					rec.SpecName,
					spec.Fingerprint(rec.Fingerprint).Short(),
					formatSize(rec.SizeBytes),
					created,
					rec.CreatedBy)
			}
			return w.Flush()
		},
	}
}

func newCacheRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <fingerprint>",
		Short: "Remove a cache entry and its archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := spec.Parse(args[0])
			if err != nil {
				return err
			}

			store, err := newStore()
			if err != nil {
				return err
			}

			if err := store.Remove(context.Background(), fp); err != nil {
				return err
			}

			fmt.Printf("removed %s\n", fp.Short())
			return nil
		},
	}
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%dB", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
