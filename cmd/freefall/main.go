package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/freefall/internal/analysis"
	"github.com/san-kum/freefall/internal/config"
	"github.com/san-kum/freefall/internal/experiment"
	"github.com/san-kum/freefall/internal/export"
	"github.com/san-kum/freefall/internal/optim"
	"github.com/san-kum/freefall/internal/physics"
	"github.com/san-kum/freefall/internal/storage"
	"github.com/san-kum/freefall/internal/viz"
)

var (
	dataDir    string
	dt         float64
	maxTime    float64
	height     float64
	velocity   float64
	speed      float64
	angle      float64
	drag       float64
	mass       float64
	gravity    float64
	integrator string
	forcingArg string
	wind       float64
	gustPeriod float64
	configFile string
	preset     string
	// fit
	observedTime float64
	dragMin      float64
	dragMax      float64
	dragSteps    int
	// export
	outFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "freefall",
		Short: "falling and projected mass simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".freefall", "data directory")

	dropCmd := &cobra.Command{
		Use:   "drop",
		Short: "drop a mass and record the trajectory",
		RunE:  runDrop,
	}
	dropCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "initial height (m)")
	dropCmd.Flags().Float64Var(&velocity, "vel", 0.0, "initial vertical velocity (m/s)")
	dropCmd.Flags().Float64Var(&drag, "k", 0.0, "quadratic drag coefficient")
	dropCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass (kg)")
	dropCmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravity (m/s^2, signed)")
	dropCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	dropCmd.Flags().Float64Var(&maxTime, "time", config.DefaultMaxTime, "time cap (s)")
	dropCmd.Flags().StringVar(&integrator, "integrator", "semi", "integrator")
	dropCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	dropCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	launchCmd := &cobra.Command{
		Use:   "launch",
		Short: "launch a projectile and record the arc",
		RunE:  runLaunch,
	}
	launchCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "launch speed (m/s)")
	launchCmd.Flags().Float64Var(&angle, "angle", config.DefaultAngle, "elevation angle (deg)")
	launchCmd.Flags().Float64Var(&drag, "k", 0.0, "quadratic drag coefficient")
	launchCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass (kg)")
	launchCmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravity (m/s^2, signed)")
	launchCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	launchCmd.Flags().Float64Var(&maxTime, "time", config.DefaultMaxTime, "time cap (s)")
	launchCmd.Flags().StringVar(&integrator, "integrator", "semi", "integrator")
	launchCmd.Flags().StringVar(&forcingArg, "forcing", "none", "forcing (none|wind|gust)")
	launchCmd.Flags().Float64Var(&wind, "wind", 0.0, "wind force (N)")
	launchCmd.Flags().Float64Var(&gustPeriod, "gust-period", 5.0, "gust period (s)")
	launchCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	launchCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

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

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same drop",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "initial height (m)")
	compareCmd.Flags().Float64Var(&drag, "k", 0.0, "quadratic drag coefficient")
	compareCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass (kg)")
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")

	fitCmd := &cobra.Command{
		Use:   "fit",
		Short: "fit the drag coefficient to an observed fall time",
		RunE:  runFit,
	}
	fitCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "drop height (m)")
	fitCmd.Flags().Float64Var(&observedTime, "observed", 0.0, "observed fall time (s)")
	fitCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass (kg)")
	fitCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	fitCmd.Flags().Float64Var(&dragMin, "k-min", 0.0, "drag grid lower bound")
	fitCmd.Flags().Float64Var(&dragMax, "k-max", 1.0, "drag grid upper bound")
	fitCmd.Flags().IntVar(&dragSteps, "k-steps", 101, "drag grid points")

	liveCmd := &cobra.Command{
		Use:   "live [system]",
		Short: "animate a run in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "initial height (m)")
	liveCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "launch speed (m/s)")
	liveCmd.Flags().Float64Var(&angle, "angle", config.DefaultAngle, "elevation angle (deg)")
	liveCmd.Flags().Float64Var(&drag, "k", 0.0, "quadratic drag coefficient")
	liveCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass (kg)")
	liveCmd.Flags().Float64Var(&dt, "dt", 0.05, "timestep")
	liveCmd.Flags().StringVar(&integrator, "integrator", "semi", "integrator")
	liveCmd.Flags().StringVar(&forcingArg, "forcing", "none", "forcing (none|wind|gust)")
	liveCmd.Flags().Float64Var(&wind, "wind", 0.0, "wind force (N)")
	liveCmd.Flags().Float64Var(&gustPeriod, "gust-period", 5.0, "gust period (s)")

	presetsCmd := &cobra.Command{
		Use:   "presets [system]",
		Short: "list available presets for a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for system: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the drop driver",
		RunE:  benchDrop,
	}

	rootCmd.AddCommand(dropCmd, launchCmd, listCmd, plotCmd, compareCmd, fitCmd,
		liveCmd, presetsCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyFileAndPreset merges preset and config-file values for flags the user
// did not set explicitly. CLI flags always win.
func applyFileAndPreset(cmd *cobra.Command, system string) error {
	if preset != "" {
		cfg := config.GetPreset(system, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(system))
		}
		applyConfig(cmd, cfg)
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyConfig(cmd, cfg)
	}

	return nil
}

func applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("dt") && cfg.Dt > 0 {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("time") && cfg.MaxTime > 0 {
		maxTime = cfg.MaxTime
	}
	if !cmd.Flags().Changed("integrator") && cfg.Integrator != "" {
		integrator = cfg.Integrator
	}
	if !cmd.Flags().Changed("k") {
		drag = cfg.Body.Drag
	}
	if !cmd.Flags().Changed("mass") && cfg.Body.Mass > 0 {
		mass = cfg.Body.Mass
	}
	if !cmd.Flags().Changed("gravity") && cfg.Body.Gravity != 0 {
		gravity = cfg.Body.Gravity
	}
	if f := cmd.Flags().Lookup("height"); f != nil && !f.Changed && cfg.Init.Height > 0 {
		height = cfg.Init.Height
	}
	if f := cmd.Flags().Lookup("vel"); f != nil && !f.Changed {
		velocity = cfg.Init.Velocity
	}
	if f := cmd.Flags().Lookup("speed"); f != nil && !f.Changed && cfg.Init.Speed > 0 {
		speed = cfg.Init.Speed
	}
	if f := cmd.Flags().Lookup("angle"); f != nil && !f.Changed && cfg.Init.Angle != 0 {
		angle = cfg.Init.Angle
	}
	if f := cmd.Flags().Lookup("forcing"); f != nil && !f.Changed && cfg.Forcing != "" {
		forcingArg = cfg.Forcing
	}
	if f := cmd.Flags().Lookup("wind"); f != nil && !f.Changed {
		wind = cfg.Wind.Force
	}
	if f := cmd.Flags().Lookup("gust-period"); f != nil && !f.Changed && cfg.Wind.GustPeriod > 0 {
		gustPeriod = cfg.Wind.GustPeriod
	}
}

func runDrop(cmd *cobra.Command, args []string) error {
	if err := applyFileAndPreset(cmd, "falling"); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("dropping from %.2f m (k=%.4f, mass=%.3f kg)...\n", height, drag, mass)
	start := time.Now()

	result, err := experiment.Drop(context.Background(), experiment.DropConfig{
		Height:     height,
		Velocity:   velocity,
		Drag:       drag,
		Mass:       mass,
		Gravity:    gravity,
		Dt:         dt,
		MaxTime:    maxTime,
		Integrator: integrator,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		System:     "falling",
		Dt:         dt,
		MaxTime:    maxTime,
		Integrator: integrator,
		Forcing:    "none",
		Drag:       drag,
		Mass:       mass,
		Gravity:    gravity,
	}, result)
	if err != nil {
		return err
	}

	printRunSummary(runID, result.Times, result.Column(0), result.Metrics, elapsed, len(result.States))
	return nil
}

func runLaunch(cmd *cobra.Command, args []string) error {
	if err := applyFileAndPreset(cmd, "projectile"); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	f, err := registry.GetForcing(forcingArg, map[string]float64{
		"wind":        wind,
		"gust_period": gustPeriod,
	}, 2)
	if err != nil {
		return err
	}

	fmt.Printf("launching at %.2f m/s, %.1f deg (k=%.4f)...\n", speed, angle, drag)
	start := time.Now()

	result, err := experiment.Launch(context.Background(), experiment.LaunchConfig{
		Speed:      speed,
		Angle:      angle,
		Drag:       drag,
		Mass:       mass,
		Gravity:    gravity,
		Dt:         dt,
		MaxTime:    maxTime,
		Integrator: integrator,
		Forcing:    f,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		System:     "projectile",
		Dt:         dt,
		MaxTime:    maxTime,
		Integrator: integrator,
		Forcing:    forcingArg,
		Drag:       drag,
		Mass:       mass,
		Gravity:    gravity,
	}, result)
	if err != nil {
		return err
	}

	printRunSummary(runID, result.Times, result.Column(1), result.Metrics, elapsed, len(result.States))

	if n := len(result.States); n > 0 {
		fmt.Printf("range: %.2f m\n", result.States[n-1][0])
	}
	return nil
}

func printRunSummary(runID string, times, altitudes []float64, metrics map[string]float64, elapsed time.Duration, samples int) {
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", samples)

	if impact, err := analysis.ImpactTime(times, altitudes); err == nil {
		fmt.Printf("estimated impact: t=%.3f s\n", impact)
	}

	fmt.Println("\nmetrics:")
	for name, val := range metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
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
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tDT\tK\tMASS\tINTEG\tLANDED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4fs\t%.4f\t%.3f\t%s\t%v\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dt,
			run.Drag,
			run.Mass,
			run.Integrator,
			run.Stopped,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s\n", meta.System)
	fmt.Printf("samples: %d\n", len(states))
	fmt.Printf("duration: %.2f s\n\n", times[len(times)-1])

	column := func(i int) []float64 {
		data := make([]float64, len(states))
		for j := range states {
			if i < len(states[j]) {
				data[j] = states[j][i]
			}
		}
		return data
	}

	var series [][]float64
	var captions []string
	if meta.System == "projectile" {
		series = [][]float64{column(1), column(3)}
		captions = []string{"altitude (m) vs time", "vertical velocity (m/s) vs time"}
	} else {
		series = [][]float64{column(0), column(1)}
		captions = []string{"height (m) vs time", "velocity (m/s) vs time"}
	}

	fmt.Println(viz.Stacked(series, captions))
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	integrators := args

	fmt.Printf("comparing integrators for a %.1f m drop (k=%.4f, dt=%.4f)\n\n", height, drag, dt)
	fmt.Printf("%-10s  %12s  %12s  %12s  %10s\n", "integrator", "final_h", "final_v", "vs_theory", "time_ms")
	fmt.Println(strings.Repeat("-", 64))

	for _, name := range integrators {
		start := time.Now()
		result, err := experiment.Drop(context.Background(), experiment.DropConfig{
			Height:     height,
			Drag:       drag,
			Mass:       mass,
			Dt:         dt,
			Integrator: name,
		})
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		n := len(result.States) - 1
		finalT := result.Times[n]
		finalH := result.States[n][0]
		finalV := result.States[n][1]

		// Against closed form: exact height when drag-free, tanh speed
		// profile otherwise.
		var theoryErr float64
		if drag == 0 {
			theoryErr = math.Abs(finalH - analysis.FreeFallHeight(height, config.DefaultGravity, finalT))
		} else {
			theoryErr = math.Abs(math.Abs(finalV) - analysis.DragFallSpeed(mass, config.DefaultGravity, drag, finalT))
		}

		fmt.Printf("%-10s  %12.6f  %12.6f  %12.2e  %10.2f\n",
			name, finalH, finalV, theoryErr, float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func runFit(cmd *cobra.Command, args []string) error {
	if observedTime <= 0 {
		return fmt.Errorf("--observed fall time is required")
	}

	grid := optim.Linspace(dragMin, dragMax, dragSteps)

	fmt.Printf("fitting k for a %.1f m drop observed at %.3f s (%d grid points)...\n",
		height, observedTime, len(grid))

	k, loss, err := optim.FitDrag(context.Background(), height, mass, dt, observedTime, grid)
	if err != nil {
		return err
	}

	fmt.Printf("best k: %.6f (time error %.4f s)\n", k, math.Sqrt(loss))
	fmt.Printf("implied terminal speed: %.3f m/s\n", analysis.TerminalSpeed(mass, config.DefaultGravity, k))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	system := "falling"
	if len(args) > 0 {
		system = args[0]
	}

	registry := experiment.NewRegistry()

	params := map[string]float64{
		"drag":        drag,
		"mass":        mass,
		"gravity":     config.DefaultGravity,
		"wind":        wind,
		"gust_period": gustPeriod,
	}

	sys, err := registry.GetSystem(system, params)
	if err != nil {
		return err
	}

	integ, err := registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	f, err := registry.GetForcing(forcingArg, params, sys.ForceDim())
	if err != nil {
		return err
	}

	var initState []float64
	if system == "projectile" {
		initState = physics.LaunchState(speed, angle)
	} else {
		initState = []float64{height, 0}
	}

	m := viz.NewModel(sys, integ, f, initState, dt, system)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
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

	return storage.ExportJSONTo(os.Stdout, meta, states, times)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
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
		header = append(header, fmt.Sprintf("x%d", i))
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

func exportSVG(cmd *cobra.Command, args []string) error {
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

	points := export.TrajectoryPoints(meta.System, states, times)
	svg := export.TrajectorySVG(points, 800, 400, "#00ff88")
	if svg == "" {
		return fmt.Errorf("not enough data to draw")
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(outFile, []byte(svg), 0644)
}

func benchDrop(cmd *cobra.Command, args []string) error {
	heights := []float64{20.0, 200.0, 2000.0}
	dts := []float64{0.001, 0.01, 0.1}

	fmt.Println("benchmarking drop driver")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HEIGHT\tDT\tSAMPLES\tTIME\tSTEPS/SEC")

	for _, h := range heights {
		for _, d := range dts {
			start := time.Now()
			result, err := experiment.Drop(context.Background(), experiment.DropConfig{
				Height: h,
				Drag:   0.035,
				Dt:     d,
			})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			steps := result.StepsTaken
			stepsPerSec := float64(steps) / elapsed.Seconds()

			fmt.Fprintf(w, "%.0fm\t%.4fs\t%d\t%v\t%.0f\n",
				h, d, len(result.States), elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
