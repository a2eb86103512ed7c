package cli

import (
	"github.com/spf13/cobra"

	"envstash/internal/envstash/jobrunner"
	"envstash/pkg/platform"
)

func newRunCmd() *cobra.Command {
	var specPath string
	var targetDir string

	cmd := &cobra.Command{
		Use:   "run --spec <file> -- <command> [args...]",
		Short: "Provision an environment, then exec the workload inside it",
		Long: "Run provisions the environment exactly like 'provision' and then\n" +
			"replaces the envstash process with the given command, with the\n" +
			"environment's bin directory leading PATH.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runProvision(specPath, targetDir)
			if err != nil {
				return err
			}

			// Does not return on success.
			return jobrunner.NewRunner(platform.NewPlatform()).Run(res.Path, args)
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "Path to the environment spec file (required)")
	cmd.Flags().StringVar(&targetDir, "target", "", "Instance-local directory for the environment (scheduler scratch when empty)")
	_ = cmd.MarkFlagRequired("spec")

	return cmd
}
