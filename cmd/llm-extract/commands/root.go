// Package commands implements the CLI commands for llm-extract.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "llm-extract",
	Short: "Extract structured content from LLM output",
	Long: `llm-extract pulls well-formed JSON, XML, HTML or code out of raw
language-model responses, stripping the surrounding prose, markdown
fences and minor syntax damage.

Examples:
  # Extract the JSON object from a saved response
  llm-extract extract -t json -i response.txt

  # Pipe a response through and pull out the python code
  cat response.txt | llm-extract extract -t code -l python

  # Extract every fenced code block with language annotations
  llm-extract extract -t code --all-blocks -i response.txt

  # Detect the language of a code snippet
  llm-extract detect -i snippet.txt`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.llm-extract.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging of strategy attempts")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress all logging except errors")
	rootCmd.PersistentFlags().Bool("log-json", false, "emit logs as JSON")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".llm-extract")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LLM_EXTRACT")
	viper.AutomaticEnv()

	// Missing config files are fine, flags and env cover everything.
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
