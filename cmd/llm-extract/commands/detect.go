package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aihes/llm-content-extractor/internal/logger"
	"github.com/aihes/llm-content-extractor/pkg/extract"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the programming language of a code snippet",
	Long: `Detect reads a code snippet from --input or stdin and prints the
language it most resembles. Ambiguous or unrecognized snippets report
"unknown" and exit non-zero.`,
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringP("input", "i", "", "input file (default: stdin)")
}

func runDetect(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})

	raw, err := readInput(cmd)
	if err != nil {
		logger.Error("failed to read input", "error", err)
		return err
	}

	lang, ok := extract.NewCode(extract.CodeConfig{}).DetectLanguage(raw)
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), extract.LanguageUnknown)
		return fmt.Errorf("language could not be determined")
	}

	fmt.Fprintln(cmd.OutOrStdout(), lang)
	return nil
}
