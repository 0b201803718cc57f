package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"reidset/internal/builder"
	"reidset/internal/catalog"
	"reidset/internal/config"
	"reidset/internal/dataset"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build annotation files from a dataset source tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	buildCmd.AddCommand(newBuildTrainCommand(ctx))
	buildCmd.AddCommand(newBuildEvalCommand(ctx))
	return buildCmd
}

func newBuildTrainCommand(ctx *commandContext) *cobra.Command {
	var rootFlag string
	var outFlag string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Scan the train partition and write the train annotation file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, ctx, "train", rootFlag, outFlag)
		},
	}
	cmd.Flags().StringVar(&rootFlag, "root", "", "Dataset root (defaults to paths.data_root)")
	cmd.Flags().StringVar(&outFlag, "out", "", "Output annotation path (defaults beneath paths.annotation_dir)")
	return cmd
}

func newBuildEvalCommand(ctx *commandContext) *cobra.Command {
	var rootFlag string
	var outFlag string

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Scan the gallery and query partitions and write the evaluation annotation file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, ctx, "eval", rootFlag, outFlag)
		},
	}
	cmd.Flags().StringVar(&rootFlag, "root", "", "Dataset root (defaults to paths.data_root)")
	cmd.Flags().StringVar(&outFlag, "out", "", "Output annotation path (defaults beneath paths.annotation_dir)")
	return cmd
}

func runBuild(cmd *cobra.Command, ctx *commandContext, kind, root, out string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	if root == "" {
		root = cfg.Paths.DataRoot
	}
	if root == "" {
		return fmt.Errorf("no dataset root: pass --root or set paths.data_root")
	}
	root, err = config.ExpandPath(root)
	if err != nil {
		return err
	}

	if out == "" {
		switch kind {
		case "train":
			out = cfg.TrainAnnotationPath()
		default:
			out = cfg.EvalAnnotationPath()
		}
	} else if out, err = config.ExpandPath(out); err != nil {
		return err
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("ensure output directory: %w", err)
	}

	b := builder.New(cfg, logger, nil)
	var result builder.Result
	if kind == "train" {
		result, err = b.BuildTrain(root, out)
	} else {
		result, err = b.BuildEval(root, out)
	}
	if err != nil {
		return err
	}

	if err := recordRun(cmd, cfg, result); err != nil {
		return err
	}

	printBuildSummary(cmd, result)
	return nil
}

func recordRun(cmd *cobra.Command, cfg *config.Config, result builder.Result) error {
	store, err := catalog.Open(cfg.Paths.CatalogPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()

	_, err = store.NewRun(cmd.Context(), catalog.Run{
		Kind:        result.Kind,
		SourceRoot:  result.SourceRoot,
		OutputPath:  result.OutputPath,
		TrainRows:   result.Counts[dataset.RoleTrain],
		QueryRows:   result.Counts[dataset.RoleQuery],
		GalleryRows: result.Counts[dataset.RoleGallery],
		Identities:  result.Identities,
		Checksum:    result.Checksum,
	})
	if err != nil {
		return fmt.Errorf("record build run: %w", err)
	}
	return nil
}

func printBuildSummary(cmd *cobra.Command, result builder.Result) {
	p := message.NewPrinter(language.English)
	out := cmd.OutOrStdout()

	p.Fprintf(out, "Wrote %s annotation to %s\n", result.Kind, result.OutputPath)
	for _, role := range dataset.Roles() {
		if count, ok := result.Counts[role]; ok && count > 0 {
			p.Fprintf(out, "  %-8s %d rows\n", role, count)
		}
	}
	if result.Kind == "train" {
		p.Fprintf(out, "  %-8s %d distinct\n", "classes", result.Identities)
	}
	fmt.Fprintf(out, "  sha256   %s\n", result.Checksum)
}
