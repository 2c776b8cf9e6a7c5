package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/squares/internal/levels/formats"
)

var flagOutput string

var convertCmd = &cobra.Command{
	Use:   "convert <puzzle>",
	Short: "Rewrite a puzzle file as YAML",
	Long: `Parses a puzzle in any supported format and writes it as YAML,
to stdout or to the file given with --output.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write to this file instead of stdout")
}

func runConvert(cmd *cobra.Command, args []string) error {
	p, err := openPuzzle(args[0])
	if err != nil {
		return err
	}

	data, err := formats.MarshalYAML(p)
	if err != nil {
		return fmt.Errorf("converting %s: %w", args[0], err)
	}

	if flagOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(flagOutput, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flagOutput, err)
	}
	return nil
}
