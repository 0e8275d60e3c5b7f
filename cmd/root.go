package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	sim "github.com/invsim/invsim/sim"
	"github.com/invsim/invsim/sim/report"
	"github.com/invsim/invsim/sim/trace"
)

var (
	// CLI flags shared by run, compare and trials
	seed         int64  // Seed for demand, disruption and lead-time draws
	logLevel     string // Log verbosity level
	defaultsPath string // Path to defaults.yaml with parameter presets
	scenarioName string // Named preset within defaults.yaml
	outputFormat string // text, json, csv, markdown
	traceLevel   string // Decision trace verbosity

	// CLI flags for the simulation parameters; only applied when set explicitly
	initialInventory      int
	demandMin             int
	demandMax             int
	reorderLevel          int
	reorderQty            int
	supplierProdRate      int
	leadTimeMin           int
	leadTimeMax           int
	simulationDays        int
	disruptionProbability float64

	// run-only
	mode string

	// compare-only
	comparePaired bool // Give both policies identical random draws

	// trials-only
	trialsPaired bool
	numTrials    int
	workers      int
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "invsim",
	Short: "Discrete-time simulator comparing reactive and predictive inventory policies",
}

// runCmd simulates a single policy
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one reorder policy",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		params := resolveParams(cmd)
		agentMode, err := sim.ParseAgentMode(mode)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Starting %s simulation: %d days, seed=%d", agentMode.DisplayName(), params.SimulationDays, seed)

		result, err := sim.RunWithTrace(params, agentMode, sim.NewSimulationKey(seed), trace.TraceLevel(traceLevel))
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		if err := report.RenderResult(cmd.OutOrStdout(), result, report.Format(outputFormat)); err != nil {
			logrus.Fatalf("Rendering failed: %v", err)
		}
		printTraceSummary(result)
		logrus.Info("Simulation complete.")
	},
}

// compareCmd simulates both policies over the same parameters
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Simulate the Traditional and PAA policies side by side",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		params := resolveParams(cmd)
		logrus.Infof("Starting comparison: %d days, seed=%d, paired=%v", params.SimulationDays, seed, comparePaired)

		c, err := sim.Compare(context.Background(), params, sim.CompareOptions{
			Seed:       seed,
			Paired:     comparePaired,
			TraceLevel: trace.TraceLevel(traceLevel),
		})
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		if err := report.Render(cmd.OutOrStdout(), c, report.Format(outputFormat)); err != nil {
			logrus.Fatalf("Rendering failed: %v", err)
		}
		printTraceSummary(c.Traditional)
		printTraceSummary(c.PAA)
	},
}

// trialsCmd repeats the comparison across consecutive seeds
var trialsCmd = &cobra.Command{
	Use:   "trials",
	Short: "Compare both policies over many seeds and aggregate the metrics",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		params := resolveParams(cmd)
		logrus.Infof("Starting %d trials from seed %d, paired=%v", numTrials, seed, trialsPaired)

		summary, err := sim.RunTrials(context.Background(), params, sim.TrialOptions{
			Trials:   numTrials,
			BaseSeed: seed,
			Paired:   trialsPaired,
			Workers:  workers,
		})
		if err != nil {
			logrus.Fatalf("Trials failed: %v", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), report.RenderTrialsMarkdown(summary))
	},
}

// scenariosCmd lists the presets in defaults.yaml
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the parameter presets in the defaults file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadDefaultsConfig(defaultsPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		for _, name := range cfg.ScenarioNames() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", name, cfg.Scenarios[name].Description)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
	if !trace.IsValidTraceLevel(traceLevel) {
		logrus.Fatalf("Invalid trace level %q; valid: none, orders, decisions", traceLevel)
	}
	if !report.ValidFormats[report.Format(outputFormat)] {
		logrus.Fatalf("Invalid output format %q; valid: text, json, csv, markdown", outputFormat)
	}
}

// resolveParams layers defaults.yaml, the selected scenario, and explicitly
// set flags, in that order. Invalid results are fatal before any simulation.
func resolveParams(cmd *cobra.Command) sim.Params {
	params := sim.DefaultParams()
	if _, err := os.Stat(defaultsPath); err == nil || scenarioName != "" {
		cfg, err := loadDefaultsConfig(defaultsPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		params, err = cfg.ResolveParams(scenarioName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if scenarioName != "" {
			logrus.Infof("Using preset scenario %q", scenarioName)
		}
	}
	applyParamFlags(cmd.Flags(), &params)
	if err := params.Validate(); err != nil {
		logrus.Fatalf("%v", err)
	}
	return params
}

// applyParamFlags overrides only the fields whose flags were set on the
// command line, so preset values are not clobbered by flag defaults.
func applyParamFlags(flags *pflag.FlagSet, p *sim.Params) {
	ints := map[string]struct {
		dst *int
		val int
	}{
		"initial-inventory":  {&p.InitialInventory, initialInventory},
		"demand-min":         {&p.DemandMin, demandMin},
		"demand-max":         {&p.DemandMax, demandMax},
		"reorder-level":      {&p.ReorderLevel, reorderLevel},
		"reorder-qty":        {&p.ReorderQty, reorderQty},
		"supplier-prod-rate": {&p.SupplierProdRate, supplierProdRate},
		"lead-time-min":      {&p.LeadTimeMin, leadTimeMin},
		"lead-time-max":      {&p.LeadTimeMax, leadTimeMax},
		"days":               {&p.SimulationDays, simulationDays},
	}
	for name, f := range ints {
		if flags.Changed(name) {
			*f.dst = f.val
		}
	}
	if flags.Changed("disruption-prob") {
		p.DisruptionProbability = disruptionProbability
	}
}

func printTraceSummary(r *sim.Result) {
	if r == nil || r.Trace == nil {
		return
	}
	s := trace.Summarize(r.Trace)
	logrus.Infof("%s trace: %d decisions, %d orders (%d units), %d landed, %d past horizon, mean lead time %.1fd",
		r.Mode.DisplayName(), s.TotalDecisions, s.OrdersPlaced, s.UnitsOrdered, s.OrdersLanded, s.OrdersPastHorizon, s.MeanLeadTime)
	for _, action := range r.Trace.Actions() {
		logrus.Infof("  %s", action)
	}
}

func registerSharedFlags(cmd *cobra.Command) {
	d := sim.DefaultParams()
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for demand, disruption and lead-time draws")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&defaultsPath, "defaults", "defaults.yaml", "Path to the parameter presets file")
	cmd.Flags().StringVar(&scenarioName, "scenario", "", "Preset scenario from the defaults file")
	cmd.Flags().StringVar(&outputFormat, "output", "text", "Output format (text, json, csv, markdown)")
	cmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, orders, decisions)")

	cmd.Flags().IntVar(&initialInventory, "initial-inventory", d.InitialInventory, "Starting on-hand inventory")
	cmd.Flags().IntVar(&demandMin, "demand-min", d.DemandMin, "Minimum daily demand")
	cmd.Flags().IntVar(&demandMax, "demand-max", d.DemandMax, "Maximum daily demand")
	cmd.Flags().IntVar(&reorderLevel, "reorder-level", d.ReorderLevel, "Reorder point (ROP)")
	cmd.Flags().IntVar(&reorderQty, "reorder-qty", d.ReorderQty, "Order quantity (EOQ)")
	cmd.Flags().IntVar(&supplierProdRate, "supplier-prod-rate", d.SupplierProdRate, "Supplier production rate (informational)")
	cmd.Flags().IntVar(&leadTimeMin, "lead-time-min", d.LeadTimeMin, "Minimum lead time in days")
	cmd.Flags().IntVar(&leadTimeMax, "lead-time-max", d.LeadTimeMax, "Maximum lead time in days")
	cmd.Flags().IntVar(&simulationDays, "days", d.SimulationDays, "Simulation horizon in days")
	cmd.Flags().Float64Var(&disruptionProbability, "disruption-prob", d.DisruptionProbability, "Daily disruption probability in [0, 1]")
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, compareCmd, trialsCmd} {
		registerSharedFlags(c)
	}
	runCmd.Flags().StringVar(&mode, "mode", string(sim.ModePAA), "Reorder policy (traditional, paa)")

	compareCmd.Flags().BoolVar(&comparePaired, "paired", false, "Give both policies identical demand and disruption draws")

	trialsCmd.Flags().BoolVar(&trialsPaired, "paired", true, "Give both policies identical draws within each trial")
	trialsCmd.Flags().IntVar(&numTrials, "trials", 100, "Number of seeds to compare")
	trialsCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent trials (0 = GOMAXPROCS)")

	scenariosCmd.Flags().StringVar(&defaultsPath, "defaults", "defaults.yaml", "Path to the parameter presets file")

	rootCmd.AddCommand(runCmd, compareCmd, trialsCmd, scenariosCmd)
}
