package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"envstash/internal/envstash/archive"
	"envstash/internal/envstash/builder"
	"envstash/internal/envstash/jobrunner"
	"envstash/internal/envstash/provision"
	"envstash/pkg/errors"
	"envstash/pkg/platform"
)

func newProvisionCmd() *cobra.Command {
	var specPath string
	var targetDir string

	cmd := &cobra.Command{
		Use:   "provision --spec <file>",
		Short: "Provision an environment from a spec, restoring from cache when possible",
		Long: "Provision fingerprints the spec file and either restores the matching\n" +
			"packed environment from the shared cache or builds it and commits the\n" +
			"result for later instances. Exits 0 when the environment is READY.",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runProvision(specPath, targetDir)
			if err != nil {
				exitError(err)
				fmt.Fprintf(os.Stderr, "retryable: %v\n", errors.IsRetryable(err))
				os.Exit(1)
			}

			fmt.Printf("READY %s\n", res.Path)
			fmt.Printf("  spec:        %s\n", res.SpecName)
			fmt.Printf("  fingerprint: %s\n", res.Fingerprint.Short())
			fmt.Printf("  source:      %s\n", res.Source)
			fmt.Printf("  elapsed:     %s\n", res.Elapsed.Round(time.Millisecond))
			if res.CommitWarning != nil {
				fmt.Printf("  warning:     %v\n", res.CommitWarning)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "Path to the environment spec file (required)")
	cmd.Flags().StringVar(&targetDir, "target", "", "Instance-local directory for the environment (scheduler scratch when empty)")
	_ = cmd.MarkFlagRequired("spec")

	return cmd
}

// runProvision wires the pipeline and runs it under a signal-aware
// context so scheduler preemption (SIGTERM) aborts cleanly.
func runProvision(specPath, targetDir string) (*provision.Result, error) {
	p := platform.NewPlatform()

	if targetDir == "" {
		targetDir = cfg.TargetDir
	}
	if targetDir == "" {
		targetDir = jobrunner.ScratchDir(p)
	}
	cfg.TargetDir = targetDir

	store, err := newStore()
	if err != nil {
		return nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instance := jobrunner.NewInstance(p)
	provisioner := provision.New(p, store,
		builder.New(p, cfg), archive.NewPacker(), archive.NewUnpacker(), cfg, instance.ID)

	return provisioner.Provision(ctx, specPath)
}
