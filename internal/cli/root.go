package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is reported by the version command.
const Version = "phasenorm v0.3.0"

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "phasenorm",
	Short: "Normalize phase/property mentions mined from materials-science text",
	Long: `phasenorm cleans extracted (phase, property, relationship) mentions.

It splits compound mentions, canonicalizes Greek-letter and chemical-formula
phase names, removes stop words and unusable records, and resolves the
ambiguous phase "β" from the paragraph each mention came from.

Lookup tables (stop words, element names, chemical synonyms, rename maps)
are read from YAML files.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./phasenorm.yaml or $HOME/.phasenorm/config.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("stopwords", "", "stop-word table (YAML)")
	flags.String("elements", "", "element-name table (YAML)")
	flags.String("chemnames", "", "chemical synonym groups (YAML)")
	flags.String("mappings", "", "removal sets, rename maps, β candidates and reverse names (YAML)")

	for _, name := range []string{"log-level", "stopwords", "elements", "chemnames", "mappings"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("phasenorm")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.phasenorm")
		}
	}

	// PHASENORM_STOPWORDS, PHASENORM_LOG_LEVEL, ...
	viper.SetEnvPrefix("PHASENORM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
	}
}
