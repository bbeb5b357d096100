package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/flamemaker/internal/config"
	"github.com/san-kum/flamemaker/internal/export"
	"github.com/san-kum/flamemaker/internal/flame"
	"github.com/san-kum/flamemaker/internal/geometry"
	"github.com/san-kum/flamemaker/internal/ifs"
	"github.com/san-kum/flamemaker/internal/palette"
	"github.com/san-kum/flamemaker/internal/storage"
	"github.com/san-kum/flamemaker/internal/tui"
	"github.com/san-kum/flamemaker/internal/viz"
)

var (
	dataDir string
	verbose bool

	configFile   string
	width        int
	height       int
	density      int
	frameX       float64
	frameY       float64
	frameWidth   float64
	frameHeight  float64
	paletteSpec  string
	background   string
	output       string
	streams      int
	maxValue     int
	seed         int64
	save         bool
	previewCols  int
	previewRows  int
	themeName    string
	plotHeight   int
	ifsSize      int
	ifsDensity   int
	ifsOutput    string
	editedOutput string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "flamemaker [preset]",
		Short:        "flame fractal renderer",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runEdit,
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogging(verbose)
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".flamemaker", "run store directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	renderCmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "render a preset to an image file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	addRenderFlags(renderCmd)
	renderCmd.Flags().StringVarP(&output, "out", "o", config.DefaultOutput, "output file (.ppm, .png, .bmp, .tiff)")
	renderCmd.Flags().IntVar(&streams, "streams", config.DefaultStreams, "parallel seeded streams (1 renders the reference sequence)")
	renderCmd.Flags().IntVar(&maxValue, "max", config.DefaultMaxValue, "ppm channel maximum")
	renderCmd.Flags().BoolVar(&save, "save", false, "record the render in the run store")

	previewCmd := &cobra.Command{
		Use:   "preview [preset]",
		Short: "draw a preset in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPreview,
	}
	addRenderFlags(previewCmd)
	previewCmd.Flags().IntVar(&previewCols, "cols", 80, "preview width in characters")
	previewCmd.Flags().IntVar(&previewRows, "rows", 30, "preview height in characters")

	statsCmd := &cobra.Command{
		Use:   "stats [preset]",
		Short: "plot the hit profile of a preset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStats,
	}
	addRenderFlags(statsCmd)
	statsCmd.Flags().IntVar(&plotHeight, "plot-height", 10, "plot height in lines")

	editCmd := &cobra.Command{
		Use:   "edit [preset]",
		Short: "edit a preset's transformations in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEdit,
	}
	addRenderFlags(editCmd)
	editCmd.Flags().StringVar(&themeName, "theme", viz.Themes[0].Name, fmt.Sprintf("color theme (%s)", strings.Join(viz.ThemeNames(), ", ")))
	editCmd.Flags().StringVarP(&editedOutput, "out", "o", "", "render the edited flame to this file on exit")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the stored hit profile of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotHeight, "plot-height", 10, "plot height in lines")

	ifsCmd := &cobra.Command{
		Use:   "ifs",
		Short: "render the Sierpinski triangle as a plain IFS",
		RunE:  runIFS,
	}
	ifsCmd.Flags().IntVar(&ifsSize, "size", 512, "image width and height")
	ifsCmd.Flags().IntVar(&ifsDensity, "density", 5, "iterations per pixel")
	ifsCmd.Flags().StringVarP(&ifsOutput, "out", "o", "sierpinski.png", "output file (.ppm, .png, .bmp, .tiff, .svg)")

	rootCmd.AddCommand(renderCmd, previewCmd, statsCmd, editCmd, presetsCmd, listCmd, showCmd, plotCmd, ifsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	flame.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "render config file (yaml)")
	cmd.Flags().IntVar(&width, "width", 0, "image width (default: preset)")
	cmd.Flags().IntVar(&height, "height", 0, "image height (default: preset)")
	cmd.Flags().IntVar(&density, "density", config.DefaultDensity, "iterations per pixel")
	cmd.Flags().Float64Var(&frameX, "frame-x", 0, "frame center x")
	cmd.Flags().Float64Var(&frameY, "frame-y", 0, "frame center y")
	cmd.Flags().Float64Var(&frameWidth, "frame-width", 0, "frame width")
	cmd.Flags().Float64Var(&frameHeight, "frame-height", 0, "frame height")
	cmd.Flags().StringVar(&paletteSpec, "palette", "", `comma separated hex colors or "random:N"`)
	cmd.Flags().StringVar(&background, "background", config.DefaultBackground, "background color")
	cmd.Flags().Int64Var(&seed, "seed", 0, "chaos game seed (0 uses the fixed default)")
}

// job is a fully resolved render request.
type job struct {
	cfg     *config.Config
	preset  *config.Preset
	flame   *flame.Flame
	frame   geometry.Rectangle
	width   int
	height  int
	palette palette.Palette
	bg      palette.Color
}

// resolveJob merges, in increasing priority, the defaults, the config file,
// the preset argument and the command line flags.
func resolveJob(cmd *cobra.Command, args []string) (*job, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Preset = args[0]
	}

	preset := config.GetPreset(cfg.Preset)
	if preset == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", cfg.Preset, config.ListPresets())
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}
	if changed("width") {
		cfg.Width = width
	}
	if changed("height") {
		cfg.Height = height
	}
	if changed("density") {
		cfg.Density = density
	}
	if changed("frame-x") || changed("frame-y") || changed("frame-width") || changed("frame-height") {
		f := preset.Frame
		if cfg.Frame != nil {
			f = *cfg.Frame
		}
		if changed("frame-x") {
			f.X = frameX
		}
		if changed("frame-y") {
			f.Y = frameY
		}
		if changed("frame-width") {
			f.Width = frameWidth
		}
		if changed("frame-height") {
			f.Height = frameHeight
		}
		cfg.Frame = &f
	}
	if changed("palette") {
		pc, err := config.ParsePalette(paletteSpec)
		if err != nil {
			return nil, err
		}
		cfg.Palette = pc
	}
	if changed("background") {
		cfg.Background = background
	}
	if changed("out") && cmd.Name() == "render" {
		cfg.Output = output
	}
	if changed("streams") {
		cfg.Streams = streams
	}
	if changed("max") {
		cfg.MaxValue = maxValue
	}
	if changed("seed") {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	j := &job{cfg: cfg, preset: preset}
	var err error
	if j.flame, err = preset.Flame(); err != nil {
		return nil, err
	}
	if j.frame, err = cfg.Rectangle(preset); err != nil {
		return nil, err
	}
	j.width, j.height = cfg.Size(preset)
	if j.palette, err = cfg.Palette.Build(); err != nil {
		return nil, err
	}
	if j.bg, err = cfg.BackgroundColor(); err != nil {
		return nil, err
	}
	return j, nil
}

// compute renders f for j, on several streams when configured.
func (j *job) compute(ctx context.Context, f *flame.Flame) (*flame.Accumulator, error) {
	if j.cfg.Streams > 1 {
		return flame.NewEnsemble(f, j.cfg.Streams, j.cfg.RenderSeed()).Run(ctx, j.frame, j.width, j.height, j.cfg.Density)
	}
	if j.cfg.Seed != 0 {
		return f.ComputeWithSeed(j.frame, j.width, j.height, j.cfg.Density, j.cfg.Seed)
	}
	return f.Compute(j.frame, j.width, j.height, j.cfg.Density)
}

func runRender(cmd *cobra.Command, args []string) error {
	j, err := resolveJob(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("rendering %s at %dx%d...\n", j.preset.Name, j.width, j.height)
	start := time.Now()

	acc, err := j.compute(ctx, j.flame)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := export.Write(j.cfg.Output, acc, j.palette, j.bg, j.cfg.MaxValue); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("wrote %s\n", j.cfg.Output)

	if !save {
		return nil
	}
	return saveRun(j, acc, elapsed)
}

func saveRun(j *job, acc *flame.Accumulator, elapsed time.Duration) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	colors := j.cfg.Palette.Colors
	if rp, ok := j.palette.(*palette.Random); ok {
		colors = nil
		for _, c := range rp.Colors() {
			colors = append(colors, c.Hex())
		}
	}

	meta := storage.RunMetadata{
		Preset:  j.preset.Name,
		Seed:    j.cfg.RenderSeed(),
		Width:   j.width,
		Height:  j.height,
		Density: j.cfg.Density,
		Streams: j.cfg.Streams,
		Frame: storage.Frame{
			X:      j.frame.Center().X,
			Y:      j.frame.Center().Y,
			Width:  j.frame.Width(),
			Height: j.frame.Height(),
		},
		Palette:    colors,
		Background: j.bg.Hex(),
		Elapsed:    elapsed.Seconds(),
	}
	runID, err := st.Save(meta, acc, j.palette, j.bg)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	j, err := resolveJob(cmd, args)
	if err != nil {
		return err
	}
	density := j.cfg.Density
	if !cmd.Flags().Changed("density") && j.cfg.Density == config.DefaultDensity {
		density = 10
	}
	out, err := viz.Preview(j.flame, j.frame, previewCols, previewRows, density, j.palette, j.bg)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	j, err := resolveJob(cmd, args)
	if err != nil {
		return err
	}

	acc, err := j.compute(context.Background(), j.flame)
	if err != nil {
		return err
	}

	fmt.Printf("preset: %s\n", j.preset.Name)
	fmt.Printf("size: %dx%d  density: %d\n\n", j.width, j.height, j.cfg.Density)
	printMetrics(storage.Summarize(acc))
	fmt.Printf("hits per column: %s\n\n", viz.ColumnSparkline(acc, 80))
	plotProfile(storage.Profile(acc))
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("metrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metrics[name])
	}
	fmt.Println()
}

// plotProfile plots hits and mean intensity per grid row, top row first.
func plotProfile(rows []storage.ProfileRow) {
	if len(rows) == 0 {
		fmt.Println("no data to plot")
		return
	}
	hits := make([]float64, len(rows))
	intensity := make([]float64, len(rows))
	for i, r := range rows {
		hits[len(rows)-1-i] = float64(r.Hits)
		intensity[len(rows)-1-i] = r.Intensity
	}

	fmt.Println(asciigraph.Plot(hits,
		asciigraph.Height(plotHeight),
		asciigraph.Width(80),
		asciigraph.Caption("hits per row (top to bottom)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(intensity,
		asciigraph.Height(plotHeight),
		asciigraph.Width(80),
		asciigraph.Caption("mean intensity per row (top to bottom)"),
	))
	fmt.Println()
}

func runEdit(cmd *cobra.Command, args []string) error {
	j, err := resolveJob(cmd, args)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Frame:      j.frame,
		Palette:    j.palette,
		Background: j.bg,
		Density:    5,
		Theme:      viz.GetTheme(themeName),
	}
	edited, err := tui.Run(flame.NewBuilder(j.flame), opts)
	if err != nil {
		return err
	}

	if editedOutput == "" {
		return nil
	}
	acc, err := j.compute(context.Background(), edited)
	if err != nil {
		return err
	}
	if err := export.Write(editedOutput, acc, j.palette, j.bg, j.cfg.MaxValue); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", editedOutput)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tTRANSFORMATIONS\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%s\n", p.Name, p.Width, p.Height, len(p.Transformations), p.Description)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSIZE\tDENSITY\tSTREAMS\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%.2fs\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Density,
			run.Streams,
			run.Elapsed,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadProfile(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("image: %s\n\n", st.ImagePath(runID))
	printMetrics(meta.Metrics)
	plotProfile(rows)
	return nil
}

func runIFS(cmd *cobra.Command, args []string) error {
	frame, err := geometry.NewRectangle(geometry.Pt(0.5, 0.5), 1, 1)
	if err != nil {
		return err
	}
	acc, err := ifs.Sierpinski().Compute(frame, ifsSize, ifsSize, ifsDensity)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(ifsOutput), ".svg") {
		svg := export.IFSToSVG(acc, 1, palette.Black, palette.White)
		if err := os.WriteFile(ifsOutput, []byte(svg), 0644); err != nil {
			return err
		}
	} else {
		img, err := export.IFSImage(acc, palette.Black, palette.White)
		if err != nil {
			return err
		}
		if err := export.WriteImage(ifsOutput, img); err != nil {
			return err
		}
	}

	fmt.Printf("%d of %d cells hit\n", acc.Count(), ifsSize*ifsSize)
	fmt.Printf("wrote %s\n", ifsOutput)
	return nil
}
