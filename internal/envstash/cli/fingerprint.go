package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"envstash/internal/envstash/spec"
	"envstash/pkg/platform"
)

func newFingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <spec-file>",
		Short: "Print the cache fingerprint of an environment spec",
		Long: "Fingerprint prints the content fingerprint a provision run would use\n" +
			"as its cache key. Formatting and comment edits change the fingerprint;\n" +
			"identity is the bytes as written.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := platform.NewPlatform()

			s, raw, err := spec.Load(p, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s  %s\n", spec.Compute(raw), s.Name)
			return nil
		},
	}
}
