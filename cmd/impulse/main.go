package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/impulse/internal/analysis"
	"github.com/san-kum/impulse/internal/constraint"
	"github.com/san-kum/impulse/internal/metrics"
	"github.com/san-kum/impulse/internal/optim"
	"github.com/san-kum/impulse/internal/scene"
	"github.com/san-kum/impulse/internal/simulation"
	"github.com/san-kum/impulse/internal/storage"
	"github.com/san-kum/impulse/internal/tui"
)

var (
	dataDir    string
	dt         float64
	steps      int
	iterations int
	engineName string
	sceneFile  string
	preset     string
	// Analyze column
	column int
	// Sweep settings
	sweepParam  string
	sweepValues string
	sweepMetric string
)

// main registers the impulse commands and executes the root command,
// exiting with status 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "impulse",
		Short: "planar rigid body contact sandbox",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".impulse", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a rollout",
		Args:  cobra.ExactArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().Float64Var(&dt, "dt", scene.DefaultDt, "timestep")
	runCmd.Flags().IntVar(&steps, "steps", 1000, "number of steps")
	runCmd.Flags().IntVar(&iterations, "iterations", 0, "solver iterations (0 = default)")
	runCmd.Flags().StringVar(&engineName, "engine", "default", "constraint engine (default, frictionless, none)")
	runCmd.Flags().StringVar(&sceneFile, "scene-file", "", "scene file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset scene")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scene preset names",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := scene.ListPresets()
			sort.Strings(names)
			for _, n := range names {
				fmt.Printf("  %s\n", n)
			}
			return nil
		},
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "describe built-in scenes",
		RunE:  describeScenes,
	}

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", scene.DefaultDt, "timestep")
	liveCmd.Flags().IntVar(&iterations, "iterations", 0, "solver iterations (0 = default)")
	liveCmd.Flags().StringVar(&engineName, "engine", "default", "constraint engine (default, frictionless, none)")
	liveCmd.Flags().StringVar(&sceneFile, "scene-file", "", "scene file path (yaml)")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark scene stepping",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScene,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&column, "column", 0, "states.csv column to analyze")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "grid search a scene parameter against a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepScene,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "friction", "parameter to sweep (friction, restitution)")
	sweepCmd.Flags().StringVar(&sweepValues, "values", "0.0,0.2,0.4,0.6,0.8", "comma-separated candidate values")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "penetration", "metric to minimize")
	sweepCmd.Flags().IntVar(&steps, "steps", 500, "number of steps")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, presetsCmd, scenesCmd, liveCmd, benchCmd, analyzeCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveScene picks the scene for a command: an explicit file wins,
// then the --preset flag, then the positional name.
func resolveScene(name string) (*scene.Scene, error) {
	if sceneFile != "" {
		sc, err := scene.Load(sceneFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene file: %w", err)
		}
		if sc.Name == "" {
			sc.Name = name
		}
		return sc, nil
	}

	if preset != "" {
		name = preset
	}
	sc := scene.GetPreset(name)
	if sc == nil {
		names := scene.ListPresets()
		sort.Strings(names)
		return nil, fmt.Errorf("unknown scene: %s (available: %v)", name, names)
	}
	cfg := *sc
	return &cfg, nil
}

func engineFor(name string) (constraint.Engine, error) {
	switch name {
	case "default", "lcp":
		return constraint.Default(), nil
	case "frictionless":
		return constraint.Frictionless(constraint.Default()), nil
	case "none":
		return constraint.Func(func() error { return nil }), nil
	default:
		return constraint.Engine{}, fmt.Errorf("unknown engine: %s (default, frictionless, none)", name)
	}
}

func runScene(cmd *cobra.Command, args []string) error {
	sc, err := resolveScene(args[0])
	if err != nil {
		return err
	}

	// CLI flags override the scene file and preset values
	if cmd.Flags().Changed("dt") {
		sc.Dt = dt
	}
	if cmd.Flags().Changed("iterations") {
		sc.Iterations = iterations
	}

	w, err := sc.Build()
	if err != nil {
		return err
	}

	eng, err := engineFor(engineName)
	if err != nil {
		return err
	}
	w.Solver().ReplaceEngine(eng)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	mets := []simulation.Metric{
		metrics.NewEnergy(w),
		metrics.NewEnergyDrift(w),
		metrics.NewContactImpulse(),
		metrics.NewPenetration(w),
		metrics.NewLowestPoint(w),
	}

	fmt.Printf("running %s scene...\n", sc.Name)
	start := time.Now()

	result, err := simulation.Rollout(context.Background(), w, w.State(), make([][]float64, steps), mets...)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(sc.Name, w.TimeStep(), engineName, w.NumBodies(), w.NumDofs(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tSTEPS\tDT\tENGINE\tBODIES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%s\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Engine,
			run.Bodies,
		)
	}

	return w.Flush()
}

// columnLabel names a states.csv column: the position block comes
// first, then velocities, then impulses.
func columnLabel(idx, dofs int) string {
	switch {
	case dofs <= 0:
		return fmt.Sprintf("x%d", idx)
	case idx < dofs:
		return fmt.Sprintf("q%d", idx)
	case idx < 2*dofs:
		return fmt.Sprintf("v%d", idx-dofs)
	default:
		return fmt.Sprintf("j%d", idx-2*dofs)
	}
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(states))

	numVars := len(states[0])
	maxPlots := 6
	if numVars > maxPlots {
		numVars = maxPlots
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(columnLabel(varIdx, meta.Dofs)+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, columnLabel(i, meta.Dofs))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, states, times)
}

func describeScenes(cmd *cobra.Command, args []string) error {
	names := scene.ListPresets()
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tGRAVITY\tDT\tITERS")

	for _, n := range names {
		sc := scene.GetPreset(n)
		fmt.Fprintf(w, "%s\t%d\t(%.1f, %.1f)\t%.4fs\t%d\n",
			n, len(sc.Bodies), sc.GravityX, sc.GravityY, sc.Dt, sc.Iterations)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := resolveScene(args[0])
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("dt") {
		sc.Dt = dt
	}
	if cmd.Flags().Changed("iterations") {
		sc.Iterations = iterations
	}

	w, err := sc.Build()
	if err != nil {
		return err
	}

	eng, err := engineFor(engineName)
	if err != nil {
		return err
	}
	w.Solver().ReplaceEngine(eng)

	m := tui.NewModel(w, sc.Name)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func benchScene(cmd *cobra.Command, args []string) error {
	sc, err := resolveScene(args[0])
	if err != nil {
		return err
	}

	stepCounts := []int{100, 1000, 5000}
	dts := []float64{0.001, 0.005, 0.01}

	fmt.Printf("benchmarking %s\n\n", sc.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPS\tDT\tTIME\tSTEPS/SEC")

	for _, n := range stepCounts {
		for _, h := range dts {
			cfg := *sc
			cfg.Dt = h

			world, err := cfg.Build()
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := simulation.Rollout(context.Background(), world, world.State(), make([][]float64, n))
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%.4fs\t%v\t%.0f\n", result.StepsTaken, h, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 || len(states[0]) == 0 {
		return fmt.Errorf("no data")
	}
	if column < 0 || column >= len(states[0]) {
		return fmt.Errorf("column %d out of range (have %d)", column, len(states[0]))
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scene: %s\n\n", meta.Scene)

	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i][column]
	}
	if len(data) < 2 {
		return fmt.Errorf("not enough samples to analyze")
	}

	ps := analysis.PowerSpectrum(analysis.PadPow2(data))

	plotData := ps[:len(ps)/4]
	if len(plotData) < 2 {
		plotData = ps
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", columnLabel(column, meta.Dofs))),
	)
	fmt.Println(graph)
	fmt.Println()

	hz, power := analysis.DominantFrequency(ps, meta.Dt)
	if power == 0 {
		fmt.Println("no dominant frequency")
		return nil
	}
	fmt.Printf("dominant frequency: %.3f hz\n", hz)
	fmt.Printf("period: %.3f s\n", 1.0/hz)

	return nil
}

func sweepScene(cmd *cobra.Command, args []string) error {
	sc, err := resolveScene(args[0])
	if err != nil {
		return err
	}

	if sweepParam != "friction" && sweepParam != "restitution" {
		return fmt.Errorf("unknown sweep parameter: %s (friction, restitution)", sweepParam)
	}

	vals, err := parseValues(sweepValues)
	if err != nil {
		return err
	}

	search := optim.NewGridSearch([]string{sweepParam}, [][]float64{vals})

	run := func(ctx context.Context, params map[string]float64) (*simulation.Result, error) {
		cfg := applyParams(*sc, params)
		world, err := cfg.Build()
		if err != nil {
			return nil, err
		}
		mets := []simulation.Metric{
			metrics.NewContactImpulse(),
			metrics.NewPenetration(world),
			metrics.NewLowestPoint(world),
		}
		return simulation.Rollout(ctx, world, world.State(), make([][]float64, steps), mets...)
	}

	fmt.Printf("sweeping %s over [%s], minimizing %s...\n", sweepParam, sweepValues, sweepMetric)

	params, best, err := search.Search(context.Background(), run, sweepMetric)
	if err != nil {
		return err
	}

	fmt.Printf("\nbest %s: %.6f\n", sweepMetric, best)
	for k, v := range params {
		fmt.Printf("  %s: %.4f\n", k, v)
	}

	return nil
}

// applyParams copies a scene with swept values written into every body.
func applyParams(sc scene.Scene, params map[string]float64) *scene.Scene {
	bodies := make([]scene.BodySpec, len(sc.Bodies))
	copy(bodies, sc.Bodies)
	for i := range bodies {
		if v, ok := params["friction"]; ok {
			bodies[i].Friction = v
		}
		if v, ok := params["restitution"]; ok {
			bodies[i].Restitution = v
		}
	}
	sc.Bodies = bodies
	return &sc
}

func parseValues(list string) ([]float64, error) {
	parts := strings.Split(list, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad sweep value %q: %w", p, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
