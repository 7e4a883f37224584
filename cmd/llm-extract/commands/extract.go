package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aihes/llm-content-extractor/internal/logger"
	"github.com/aihes/llm-content-extractor/internal/output"
	"github.com/aihes/llm-content-extractor/pkg/extract"
)

// extractRequest is the validated shape of an extract invocation.
type extractRequest struct {
	Type     string `validate:"required,oneof=json xml html code"`
	Language string `validate:"omitempty,alphanum"`
	Format   string `validate:"required,oneof=json jsonl yaml text"`
}

var requestValidator = validator.New()

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract one content type from a model response",
	Long: `Extract JSON, XML, HTML or code from a raw model response.

Input comes from --input or stdin. The result is the parsed JSON value
for -t json and the cleaned text for the other types.

Examples:
  # JSON object from a response with prose around it
  llm-extract extract -t json -i response.txt

  # Python code only, fenced blocks required
  llm-extract extract -t code -l python --strict -i response.txt

  # XML with validation but without permissive recovery
  llm-extract extract -t xml --no-recover -i response.txt

  # Every code block as a JSON array with language annotations
  llm-extract extract -t code --all-blocks --format json -i response.txt`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()

	flags.StringP("type", "t", "", "content type: json, xml, html, code (required)")
	flags.StringP("language", "l", "", "restrict code extraction to this language tag")
	flags.StringP("input", "i", "", "input file (default: stdin)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "", "output format: json, jsonl, yaml, text (default: json for -t json, text otherwise)")
	flags.Bool("compact", false, "compact JSON output")

	flags.Bool("strict", false, "accept only content that parses without repair")
	flags.Bool("validate", false, "check located XML or HTML for well-formedness")
	flags.Bool("clean", false, "re-serialize located HTML through a tolerant parser")
	flags.Bool("no-recover", false, "disable permissive recovery of malformed XML")
	flags.Bool("aggressive-repair", false, "enable the last-resort JSON repair stage")

	flags.Bool("all-blocks", false, "emit every fenced code block (only with -t code)")
	flags.Bool("all-fragments", false, "emit every HTML fragment (only with -t html)")

	_ = extractCmd.MarkFlagRequired("type")
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})

	typeStr, _ := cmd.Flags().GetString("type")
	language, _ := cmd.Flags().GetString("language")
	formatStr, _ := cmd.Flags().GetString("format")
	if formatStr == "" {
		if strings.EqualFold(typeStr, "json") {
			formatStr = "json"
		} else {
			formatStr = "text"
		}
	}

	req := extractRequest{
		Type:     strings.ToLower(strings.TrimSpace(typeStr)),
		Language: strings.ToLower(strings.TrimSpace(language)),
		Format:   formatStr,
	}
	if err := requestValidator.Struct(req); err != nil {
		logger.Error("invalid request", "error", err)
		return fmt.Errorf("invalid request: %w", err)
	}

	contentType, err := extract.ParseContentType(req.Type)
	if err != nil {
		return err
	}

	raw, err := readInput(cmd)
	if err != nil {
		logger.Error("failed to read input", "error", err)
		return err
	}

	strict, _ := cmd.Flags().GetBool("strict")
	validate, _ := cmd.Flags().GetBool("validate")
	clean, _ := cmd.Flags().GetBool("clean")
	noRecover, _ := cmd.Flags().GetBool("no-recover")
	aggressive, _ := cmd.Flags().GetBool("aggressive-repair")
	allBlocks, _ := cmd.Flags().GetBool("all-blocks")
	allFragments, _ := cmd.Flags().GetBool("all-fragments")

	writer, closeOut, err := openWriter(cmd, output.Format(req.Format))
	if err != nil {
		return err
	}
	defer closeOut()

	switch {
	case allBlocks:
		if contentType != extract.TypeCode {
			return fmt.Errorf("--all-blocks requires -t code")
		}
		blocks, err := extract.NewCode(extract.CodeConfig{Language: req.Language, Strict: strict}).ExtractAllBlocks(raw)
		if err != nil {
			logger.Error("extraction failed", "type", contentType, "error", err)
			return err
		}
		items := make([]any, len(blocks))
		for i, b := range blocks {
			items[i] = b
		}
		if err := writer.WriteAll(items); err != nil {
			return err
		}

	case allFragments:
		if contentType != extract.TypeHTML {
			return fmt.Errorf("--all-fragments requires -t html")
		}
		frags, err := extract.NewHTML(extract.HTMLConfig{Validate: validate, Clean: clean}).ExtractAllFragments(raw)
		if err != nil {
			logger.Error("extraction failed", "type", contentType, "error", err)
			return err
		}
		items := make([]any, len(frags))
		for i, f := range frags {
			items[i] = f
		}
		if err := writer.WriteAll(items); err != nil {
			return err
		}

	default:
		var e extract.Extractor
		switch contentType {
		case extract.TypeJSON:
			e = extract.NewJSON(extract.JSONConfig{Strict: strict, AggressiveRepair: aggressive})
		case extract.TypeXML:
			cfg := extract.DefaultXMLConfig()
			cfg.Recover = !noRecover
			e = extract.NewXML(cfg)
		case extract.TypeHTML:
			e = extract.NewHTML(extract.HTMLConfig{Validate: validate, Clean: clean})
		case extract.TypeCode:
			e = extract.NewCode(extract.CodeConfig{Language: req.Language, Strict: strict})
		}

		result, err := extract.Extract(raw, contentType, extract.WithExtractor(e))
		if err != nil {
			logger.Error("extraction failed", "type", contentType, "error", err)
			return err
		}
		if err := writer.Write(result); err != nil {
			return err
		}
	}

	return writer.Close()
}

// readInput reads the raw response from --input or stdin.
func readInput(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("input"); path != "" {
		data, err := os.ReadFile(path) //#nosec G304 -- CLI tool reads a user-specified input file
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// openWriter builds the output writer for --output and --format.
func openWriter(cmd *cobra.Command, format output.Format) (output.Writer, func(), error) {
	outFile := os.Stdout
	closeOut := func() {}
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path) //#nosec G304 -- CLI tool writes to a user-specified output file
		if err != nil {
			logger.Error("failed to create output file", "path", path, "error", err)
			return nil, nil, err
		}
		outFile = f
		closeOut = func() { _ = f.Close() }
	}

	var opts []output.WriterOption
	if compact, _ := cmd.Flags().GetBool("compact"); compact {
		opts = append(opts, output.WithPretty(false))
	}

	writer, err := output.NewWriter(outFile, format, opts...)
	if err != nil {
		closeOut()
		logger.Error("failed to create output writer", "format", format, "error", err)
		return nil, nil, err
	}
	return writer, closeOut, nil
}
