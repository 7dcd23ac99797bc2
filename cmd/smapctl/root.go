package main

import (
	"fmt"

	internal "github.com/ZanzyTHEbar/slicemap/smap"
	"github.com/ZanzyTHEbar/slicemap/smap/config"
	"github.com/ZanzyTHEbar/slicemap/smap/table"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the config is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	logger     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "smapctl",
		Short: "Query two-key CSV datasets",
		Long: `
smapctl loads keyA,keyB,value CSV files into a dual-key table and slices
them on either key.
`,
		Example: `  $ smapctl slice --file demand.csv --on a plant-1 plant-2
  $ smapctl sum --file demand.csv --on b widget
  $ smapctl stats --file demand.csv`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = zerolog.New(cmd.ErrOrStderr()).
				Level(internal.GetLeveledLogger(cfg.Log.Level).GetLevel()).
				With().Timestamp().Logger()
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default searches ./config.yaml and "+internal.DefaultConfigFile+")")

	rootCmd.AddCommand(
		newSliceCmd(a),
		newSumCmd(a),
		newStatsCmd(a),
	)
	return rootCmd
}

// load reads the dataset with the configured table options.
func (a *app) load(file string) (*table.Table[string, string, float64], error) {
	opts, err := a.cfg.TableOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, table.WithLogger(a.logger))

	entries, err := readDataset(file)
	if err != nil {
		return nil, err
	}
	tbl, err := table.Build(entries, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build table from %s: %w", file, err)
	}
	a.logger.Debug().Str("file", file).Int("entries", tbl.Len()).Msg("Dataset loaded")
	return tbl, nil
}

func parseOn(on string) (table.Orientation, error) {
	o, err := table.ParseOrientation(on)
	if err != nil {
		return 0, fmt.Errorf("invalid --on value %q: %w", on, err)
	}
	return o, nil
}
