package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aihes/llm-content-extractor/pkg/extract"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages the detector recognizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, lang := range extract.NewCode(extract.CodeConfig{}).SupportedLanguages() {
			fmt.Fprintln(cmd.OutOrStdout(), lang)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
