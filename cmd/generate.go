package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mweagle/goloadgen/app"
	"github.com/mweagle/goloadgen/config"
)

type generateFlags struct {
	configFile string
	seed       uint64
	// Overrides, applied only when set on the command line
	overrides config.Config
}

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a CPU load scenario file",
		Long: "Generate a CPU load time series and write it as a JSON scenario file.\n\n" +
			"Flags override the values of the --config file, which override the defaults.\n" +
			"Distribution flags take expressions like \"geom(p=0.2)\" or a constant such as \"20\".\n\n" +
			"Examples:\n" +
			"  goloadgen generate --kind constant --start-value 0.8 --duration 600\n" +
			"  goloadgen generate --timestep \"geom(p=0.2)\" --seed 7 --plot cpu.png",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, cfgErr := flags.resolve(cmd)
			if cfgErr != nil {
				return cfgErr
			}
			_, err := app.GenerateScenario(cfg, opts.logger)
			return err
		},
	}

	defaults := config.Default()
	fs := cmd.Flags()
	fs.StringVar(&flags.configFile, "config", "", "Path to a YAML configuration file.")
	fs.StringVar(&flags.overrides.Kind, "kind", defaults.Kind, "Series kind. Must be one of: {constant, random_walk}.")
	fs.Float64Var(&flags.overrides.StartValue, "start-value", defaults.StartValue, "Initial CPU load in [0, 1].")
	fs.Float64Var(&flags.overrides.StartTime, "start-time", defaults.StartTime, "Time of the first sample.")
	fs.Float64Var(&flags.overrides.Duration, "duration", defaults.Duration, "Length of the series.")
	fs.Float64Var(&flags.overrides.StepScale, "step-scale", defaults.StepScale, "Width of the random walk perturbation.")
	fs.StringVar(&flags.overrides.Timestep, "timestep", defaults.Timestep, "Timestep distribution expression.")
	fs.StringVar(&flags.overrides.Walk, "walk", defaults.Walk, "Random walk distribution expression. Must be continuous.")
	fs.IntVar(&flags.overrides.Precision, "precision", defaults.Precision, "Number of decimal digits kept for load values.")
	fs.Uint64Var(&flags.seed, "seed", 0, "Random seed. Unset means time seeded.")
	fs.IntVar(&flags.overrides.Repeat, "repeat", defaults.Repeat, "Number of times the scenario is replayed.")
	fs.IntVar(&flags.overrides.Indent, "indent", defaults.Indent, "JSON indentation. 0 writes compact JSON.")
	fs.StringVarP(&flags.overrides.Output, "output", "o", defaults.Output, "Path of the scenario file to write.")
	fs.StringVar(&flags.overrides.Plot, "plot", "", "Optional image path (.png, .svg, .pdf) for a plot of the series.")
	fs.StringVar(&flags.overrides.Modulation, "modulation", "", "Optional modulation function, e.g. \"sine(period=600, amplitude=0.3)\".")
	return cmd
}

// resolve layers the changed flags over the configuration file or defaults.
func (gf *generateFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if len(gf.configFile) != 0 {
		loaded, loadedErr := config.LoadFile(gf.configFile)
		if loadedErr != nil {
			return nil, loadedErr
		}
		cfg = loaded
	}
	changed := cmd.Flags().Changed
	if changed("kind") {
		cfg.Kind = gf.overrides.Kind
	}
	if changed("start-value") {
		cfg.StartValue = gf.overrides.StartValue
	}
	if changed("start-time") {
		cfg.StartTime = gf.overrides.StartTime
	}
	if changed("duration") {
		cfg.Duration = gf.overrides.Duration
	}
	if changed("step-scale") {
		cfg.StepScale = gf.overrides.StepScale
	}
	if changed("timestep") {
		cfg.Timestep = gf.overrides.Timestep
	}
	if changed("walk") {
		cfg.Walk = gf.overrides.Walk
	}
	if changed("precision") {
		cfg.Precision = gf.overrides.Precision
	}
	if changed("seed") {
		seed := gf.seed
		cfg.Seed = &seed
	}
	if changed("repeat") {
		cfg.Repeat = gf.overrides.Repeat
	}
	if changed("indent") {
		cfg.Indent = gf.overrides.Indent
	}
	if changed("output") {
		cfg.Output = gf.overrides.Output
	}
	if changed("plot") {
		cfg.Plot = gf.overrides.Plot
	}
	if changed("modulation") {
		cfg.Modulation = gf.overrides.Modulation
	}
	return cfg, cfg.Validate()
}
