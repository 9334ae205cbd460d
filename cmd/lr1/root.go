package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	verr "github.com/bianca-ap01/ParserLR1/error"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	formatJSON  = "json"
	formatTable = "table"
	formatText  = "text"
)

// tracerKeys lists the tracers of the library packages. The CLI sets their level from the
// configuration.
var tracerKeys = []string{
	"lr1.grammar",
	"lr1.lexical",
	"lr1.driver",
	"lr1.engine",
}

var cfgFile string

var logger = gologadapter.New()

var rootCmd = &cobra.Command{
	Use:   "lr1",
	Short: "Build canonical LR(1) tables and trace shift-reduce parses",
	Long: `lr1 provides the following features:
- Builds the canonical LR(1) automaton, ACTION and GOTO tables of a grammar.
- Traces the shift-reduce parse of an input step by step.
- Compiles a regular expression into a Thompson NFA and determinizes an NFA.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupTracing()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.lr1.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", formatText, "output format [json|table|text]")
	rootCmd.PersistentFlags().String("trace-level", "Error", "trace level [Debug|Info|Error]")
	rootCmd.PersistentFlags().Int("max-steps", 0, "step budget of a parse (default 10000)")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("trace-level", rootCmd.PersistentFlags().Lookup("trace-level"))
	_ = viper.BindPFlag("max-steps", rootCmd.PersistentFlags().Lookup("max-steps"))
}

func initConfig() {
	viper.SetEnvPrefix("LR1")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".lr1")
		viper.SetConfigType("yaml")
	}
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			pterm.Warning.Println(fmt.Sprintf("Cannot read the config file %v: %v", cfgFile, err))
		}
	}
}

func setupTracing() error {
	level := tracing.TraceLevelFromString(viper.GetString("trace-level"))
	logger.SetTraceLevel(level)
	for _, key := range tracerKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	if f := viper.ConfigFileUsed(); f != "" {
		logger.Infof("config file: %v", f)
	}
	return nil
}

func outputFormat() (string, error) {
	f := strings.ToLower(viper.GetString("format"))
	switch f {
	case formatJSON, formatTable, formatText:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format: %v", f)
}

func maxSteps() int {
	return viper.GetInt("max-steps")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

// readGrammarText reads a grammar file, or the standard input when path is empty or `-`.
func readGrammarText(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(src), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	return string(src), nil
}

// attachSource lets grammar diagnostics quote the offending line of the grammar file.
func attachSource(err error, path string) error {
	specErrs, ok := err.(verr.SpecErrors)
	if !ok {
		if specErr, ok := err.(*verr.SpecError); ok {
			specErrs = verr.SpecErrors{specErr}
		}
	}
	for _, e := range specErrs {
		if path == "" || path == "-" {
			e.SourceName = "stdin"
			continue
		}
		e.FilePath = path
		e.SourceName = filepath.Base(path)
	}
	return err
}
