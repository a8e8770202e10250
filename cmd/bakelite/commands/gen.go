package commands

import (
	"fmt"
	"path/filepath"

	"github.com/bakelite-lang/bakelite/internal/compile"
	"github.com/bakelite-lang/bakelite/internal/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var genValidate = validator.New()

type genArgs struct {
	Lang   string `validate:"required,oneof=python ctiny cpptiny"`
	Input  string `validate:"required,endswith=.bakelite"`
	Output string `validate:"required"`
}

var (
	genLang     string
	genInput    string
	genOutput   string
	genWatch    bool
	genManifest string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate target-language source from a .bakelite schema",
	Long: `Generate reads a .bakelite IDL file and writes one generated source
artifact for the chosen target language.

Examples:
  bakelite gen -l python -i protocol.bakelite -o protocol.py
  bakelite gen -l ctiny -i protocol.bakelite -o protocol.h
  bakelite gen --manifest build.yaml`,
	RunE: runGen,
}

func init() {
	genCmd.Flags().StringVarP(&genLang, "lang", "l", "", "target language: python, ctiny, cpptiny")
	genCmd.Flags().StringVarP(&genInput, "input", "i", "", "input .bakelite file")
	genCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output file path")
	genCmd.Flags().BoolVar(&genWatch, "watch", false, "re-run generation whenever the input file changes")
	genCmd.Flags().StringVar(&genManifest, "manifest", "", "YAML file listing multiple {lang, input, output} entries to generate in batch")
}

// manifestEntry is one {lang, input, output} triple in a --manifest file.
type manifestEntry struct {
	Lang   string `yaml:"lang" validate:"required,oneof=python ctiny cpptiny"`
	Input  string `yaml:"input" validate:"required,endswith=.bakelite"`
	Output string `yaml:"output" validate:"required"`
}

func runGen(cmd *cobra.Command, args []string) error {
	if genManifest != "" {
		return runGenManifest(cmd, genManifest)
	}

	ga := genArgs{Lang: genLang, Input: genInput, Output: genOutput}
	if err := genValidate.Struct(ga); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	if err := generateOnce(cmd, genLang, genInput, genOutput); err != nil {
		return err
	}

	if !genWatch {
		return nil
	}
	return watchAndRegenerate(cmd, genLang, genInput, genOutput)
}

func runGenManifest(cmd *cobra.Command, manifestPath string) error {
	data, err := afero.ReadFile(FS, manifestPath)
	if err != nil {
		return fmt.Errorf("reading manifest %s: %w", manifestPath, err)
	}

	var entries []manifestEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parsing manifest %s: %w", manifestPath, err)
	}

	var failed int
	for _, entry := range entries {
		if err := genValidate.Struct(entry); err != nil {
			logger.Error("manifest entry invalid", "input", entry.Input, "error", err)
			failed++
			continue
		}
		if err := generateOnce(cmd, entry.Lang, entry.Input, entry.Output); err != nil {
			logger.Error("manifest entry failed", "input", entry.Input, "error", err)
			failed++
			continue
		}
	}

	if failed > 0 {
		return fmt.Errorf("gen: %d of %d manifest entries failed", failed, len(entries))
	}
	return nil
}

func generateOnce(cmd *cobra.Command, lang, input, output string) error {
	source, err := afero.ReadFile(FS, input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}

	out, err := compile.Generate(string(source), lang)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return fmt.Errorf("gen failed")
	}

	if err := afero.WriteFile(FS, output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	logger.Info("generated", "input", input, "output", output, "lang", lang)
	return nil
}

// watchAndRegenerate re-runs generateOnce every time input is written to,
// until the watcher is interrupted. Only meaningful against the real OS
// filesystem; fsnotify has no concept of an afero.Fs.
func watchAndRegenerate(cmd *cobra.Command, lang, input, output string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(input)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	logger.Info("watching for changes", "input", input)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(input) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := generateOnce(cmd, lang, input, output); err != nil {
				logger.Error("regeneration failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
