package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/workspace"
	"github.com/typua-lang/typua/internal/workspaceconfig"
)

func checkCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
		jobs       int
	)

	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Analyze a file or workspace and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], configPath, debug, jobs)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a .typua.toml (default: searched upward from <path>)")
	cmd.Flags().BoolVar(&debug, "debug", false, "print a debug dump of the inferred type map")
	cmd.Flags().IntVar(&jobs, "jobs", 0, "maximum per-file checks in flight (0 = unbounded)")

	return cmd
}

func runCheck(target, configPath string, debug bool, jobs int) error {
	start := time.Now()
	runID := uuid.NewString()
	logger := newLogger(debug).With(zap.String("run_id", runID))
	defer logger.Sync()

	cfg, err := loadConfig(target, configPath)
	if err != nil {
		return err
	}

	logger.Info("checking workspace", zap.String("target", target))
	result, err := workspace.Check(context.Background(), target, cfg, unconfiguredParser, jobs)
	if err != nil {
		return fmt.Errorf("checking %s: %w", target, err)
	}

	total, errorsFound := 0, 0
	for _, f := range result.Files {
		total += len(f.Result.Diagnostics)
		for _, d := range f.Result.Diagnostics {
			if d.Severity == diagnostics.Error {
				errorsFound++
			}
			fmt.Fprintln(os.Stdout, renderDiagnostic(d))
		}
		if debug {
			pretty.Println(f.Result.TypeMap)
		}
	}

	logger.Info("check finished",
		zap.Int("files", len(result.Files)),
		zap.Int("diagnostics", total),
		zap.String("elapsed", humanize.RelTime(start, time.Now(), "", "")),
	)
	fmt.Fprintf(os.Stderr, "completed in %s\n", humanize.RelTime(start, time.Now(), "", ""))

	if errorsFound > 0 {
		os.Exit(1)
	}
	return nil
}

// loadConfig resolves the .typua.toml for target: configPath if given,
// otherwise the nearest ancestor of target (spec.md §6.3), otherwise
// workspaceconfig.Default().
func loadConfig(target, configPath string) (*workspaceconfig.Config, error) {
	if configPath != "" {
		return workspaceconfig.Load(configPath)
	}

	root := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		root = filepath.Dir(target)
	}
	found, err := workspaceconfig.Find(root)
	if err != nil {
		return nil, fmt.Errorf("locating .typua.toml: %w", err)
	}
	if found == "" {
		return workspaceconfig.Default(), nil
	}
	return workspaceconfig.Load(found)
}

func renderDiagnostic(d diagnostics.Diagnostic) string {
	style := severityStyle(d.Severity)
	return fmt.Sprintf("%s %s", style.Render(d.Severity.String()), d.String())
}
