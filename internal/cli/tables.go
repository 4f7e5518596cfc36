package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/phasenorm/pkg/phasenorm/config"
	"github.com/cognicore/phasenorm/pkg/phasenorm/vocab"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Load the lookup tables and print their sizes",
	Long: `Load every configured table file, compile the chemical synonym groups
and print how many entries each table holds. Use it to check table files
before a run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := loadTables()
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(statsView(tables.Stats()))
		if err != nil {
			return fmt.Errorf("marshal table stats: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func loadTables() (*vocab.Tables, error) {
	loader := config.Loader{
		StopwordsPath: viper.GetString("stopwords"),
		ElementsPath:  viper.GetString("elements"),
		ChemNamesPath: viper.GetString("chemnames"),
		MappingsPath:  viper.GetString("mappings"),
	}
	tables, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}
	return tables, nil
}

type tableStats struct {
	PhaseHardStops    int `yaml:"phase_hard_stops"`
	PhaseSoftStops    int `yaml:"phase_soft_stops"`
	PropertyHardStops int `yaml:"property_hard_stops"`
	PropertySoftStops int `yaml:"property_soft_stops"`
	Elements          int `yaml:"elements"`
	ChemGroups        int `yaml:"chem_groups"`
	PhaseRemove       int `yaml:"phase_remove"`
	PropertyRemove    int `yaml:"property_remove"`
	PhaseRenames      int `yaml:"phase_renames"`
	PropertyRenames   int `yaml:"property_renames"`
	BetaCandidates    int `yaml:"beta_candidates"`
	ReverseNames      int `yaml:"reverse_names"`
}

func statsView(s vocab.Stats) tableStats {
	return tableStats(s)
}
