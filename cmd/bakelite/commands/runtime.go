package commands

import (
	"fmt"

	"github.com/bakelite-lang/bakelite/internal/codegen/runtimeartifacts"
	"github.com/bakelite-lang/bakelite/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type runtimeArgs struct {
	Lang   string `validate:"required,oneof=ctiny cpptiny"`
	Output string `validate:"required"`
}

var (
	runtimeLang   string
	runtimeOutput string
)

var runtimeCmd = &cobra.Command{
	Use:   "runtime",
	Short: "Write the language-specific runtime-support artifact",
	Long: `Runtime writes the COBS/CRC/stream/framer support code that generated
"ctiny"/"cpptiny" sources call into. Idempotent: output is purely a function
of the chosen target language.

Examples:
  bakelite runtime -l ctiny -o bakelite_runtime.h
  bakelite runtime -l cpptiny -o bakelite_runtime.hpp`,
	RunE: runRuntime,
}

func init() {
	runtimeCmd.Flags().StringVarP(&runtimeLang, "lang", "l", "", "target language: ctiny, cpptiny")
	runtimeCmd.Flags().StringVarP(&runtimeOutput, "output", "o", "", "output file path")
}

func runRuntime(cmd *cobra.Command, args []string) error {
	ra := runtimeArgs{Lang: runtimeLang, Output: runtimeOutput}
	if err := validator.New().Struct(ra); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	out, err := runtimeartifacts.Generate(runtimeLang)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(FS, runtimeOutput, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", runtimeOutput, err)
	}

	logger.Info("wrote runtime artifact", "lang", runtimeLang, "output", runtimeOutput)
	return nil
}
