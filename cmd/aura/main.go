package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/aura/internal/analysis"
	"github.com/san-kum/aura/internal/audio"
	"github.com/san-kum/aura/internal/config"
	"github.com/san-kum/aura/internal/engine"
	"github.com/san-kum/aura/internal/feed"
	"github.com/san-kum/aura/internal/gui"
	"github.com/san-kum/aura/internal/phase"
	"github.com/san-kum/aura/internal/trace"
	"github.com/san-kum/aura/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	feedURL    string
	withAudio  bool
	// Headless recording parameters
	recordPhase  string
	recordFrames int
	dt           float64
	seed         int64
	count        int
	// Plot column selection
	column string
)

// main registers commands and flags and launches the animated GUI with the
// scripted demo feed when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "aura",
		Short: "phase-driven particle blob",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runGUI(cfg, func(ctx context.Context, cell *feed.Cell) {
				go cfg.BuildScript().Run(ctx, cell)
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVar(&withAudio, "audio", false, "enable ambient audio pad")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "animate phases from a live websocket feed",
		RunE:  watchFeed,
	}
	watchCmd.Flags().StringVar(&feedURL, "url", "ws://localhost:8000/ws", "websocket state feed url")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal preview",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng := engine.New(cfg.Particles.Count, cfg.Particles.Seed)
			cell := feed.NewCell()
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go cfg.BuildScript().Run(ctx, cell)
			return viz.RunPreview(eng, cell)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "show the phase parameter table",
		RunE:  listPresets,
	}

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record a headless run for tuning",
		RunE:  recordRun,
	}
	recordCmd.Flags().StringVar(&recordPhase, "phase", "thinking", "phase to hold")
	recordCmd.Flags().IntVar(&recordFrames, "frames", 600, "frames to record")
	recordCmd.Flags().Float64Var(&dt, "dt", 1.0/60.0, "timestep")
	recordCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	recordCmd.Flags().IntVar(&count, "count", engine.DefaultCount, "particle count")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "single column to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the blob radius",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(watchCmd, tuiCmd, presetsCmd, recordCmd, listCmd, plotCmd, analyzeCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// runGUI wires a phase cell to a feed source and blocks in the render loop.
func runGUI(cfg *config.Config, startFeed func(context.Context, *feed.Cell)) error {
	cell := feed.NewCell()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startFeed(ctx, cell)

	var pad *audio.Pad
	if withAudio || cfg.Audio.Enabled {
		pad = audio.NewPad()
		if err := pad.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "audio unavailable: %v\n", err)
			pad = nil
		} else {
			defer pad.Stop()
		}
	}

	gui.Run(cfg, cell, pad)
	return nil
}

func watchFeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	url := feedURL
	if !cmd.Flags().Changed("url") && cfg.Feed.URL != "" {
		url = cfg.Feed.URL
	}
	return runGUI(cfg, func(ctx context.Context, cell *feed.Cell) {
		go func() {
			if err := feed.Watch(ctx, url, cell); err != nil && ctx.Err() == nil {
				fmt.Fprintf(os.Stderr, "feed: %v\n", err)
			}
		}()
	})
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHASE\tSPEED\tCOHESION\tSEPARATION\tCHAOS\tPULSE\tRADIUS\tSWIRL")
	for _, name := range phase.Names() {
		p := phase.PresetFor(string(name))
		fmt.Fprintf(w, "%s\t%.3f\t%.4f\t%.3f\t%.3f\t%.3f\t%.3f\t%.4f\n",
			name, p.Speed, p.Cohesion, p.Separation, p.Chaos, p.Pulse, p.RadiusScale, p.Swirl)
	}
	return w.Flush()
}

func recordRun(cmd *cobra.Command, args []string) error {
	st := trace.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if recordFrames < 1 {
		return fmt.Errorf("frames must be positive")
	}

	target := phase.PresetFor(recordPhase)
	eng := engine.New(count, seed)
	eng.Resize(config.DefaultWidth, config.DefaultHeight)

	fmt.Printf("recording %s for %d frames...\n", recordPhase, recordFrames)
	start := time.Now()

	frames := make([]trace.Frame, 0, recordFrames)
	settleFrame := -1
	for i := 0; i < recordFrames; i++ {
		eng.Step(target, dt)
		frames = append(frames, trace.Frame{
			Time:       eng.Elapsed(),
			Params:     eng.Params(),
			MeanRadius: eng.MeanRadius(),
			Spread:     eng.Spread(),
		})
		if settleFrame < 0 && paramsClose(eng.Params(), target, 1e-3) {
			settleFrame = i
		}
	}
	elapsed := time.Since(start)

	last := frames[len(frames)-1]
	metrics := map[string]float64{
		"settle_frame":      float64(settleFrame),
		"final_mean_radius": last.MeanRadius,
		"final_spread":      last.Spread,
		"bounces":           float64(eng.Bounces()),
	}

	runID, err := st.Save(recordPhase, dt, seed, frames, metrics)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nmetrics:")
	for name, val := range metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func paramsClose(a, b phase.Params, tol float64) bool {
	af, bf := a.Fields(), b.Fields()
	for i := range af {
		if math.Abs(af[i]-bf[i]) > tol {
			return false
		}
	}
	return true
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := trace.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPHASE\tTIME\tFRAMES\tDT\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%d\n",
			run.ID,
			run.Phase,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Dt,
			run.Seed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := trace.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("phase: %s\n", meta.Phase)
	fmt.Printf("samples: %d\n\n", len(frames))

	columns := trace.ColumnNames()
	if column != "" {
		columns = []string{column}
	}

	for _, name := range columns {
		data := trace.Column(frames, name)
		if data == nil {
			return fmt.Errorf("unknown column: %s (available: %v)", name, trace.ColumnNames())
		}
		if flat(data) {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func flat(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] {
			return false
		}
	}
	return true
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := trace.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("phase: %s\n\n", meta.Phase)

	data := trace.Column(frames, "mean_radius")
	ps := analysis.PowerSpectrum(data)
	if ps == nil {
		return fmt.Errorf("trace too short")
	}

	plotData := ps[:len(ps)/4]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (mean radius)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(ps, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := trace.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
