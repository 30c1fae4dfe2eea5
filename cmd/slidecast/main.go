package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/keagan/slidecast/internal/config"
	"github.com/keagan/slidecast/internal/effects"
	"github.com/keagan/slidecast/internal/logging"
	"github.com/keagan/slidecast/internal/overlays"
	"github.com/keagan/slidecast/internal/pipeline"
	"github.com/keagan/slidecast/internal/sequence"
	"github.com/keagan/slidecast/internal/transitions"
	"github.com/keagan/slidecast/pkg/util"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slidecast",
	Short: "slidecast - slideshow video renderer",
	Long:  "Turns an ordered set of still images into a video: per-image durations, transitions, motion effects and overlays, composed into a single encoded file.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(os.Stderr, verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./slidecast.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

var renderFlags struct {
	manifest      string
	output        string
	aspect        string
	frameRate     int
	quality       string
	duration      float64
	effect        string
	overlay       string
	overlayText   string
	startTrans    string
	startDuration float64
	endTrans      string
	endDuration   float64
	noProgress    bool
}

var renderCmd = &cobra.Command{
	Use:   "render [images or directories...]",
	Short: "Render a slideshow video from images, directories, or a manifest",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		manager, settings, err := buildSequence(cfg, args)
		if err != nil {
			return err
		}
		if manager.Len() == 0 {
			return pipeline.ErrNoImages
		}

		total := manager.TotalDuration()
		fmt.Printf("rendering %d images, %s total, estimated %.1f MB\n",
			manager.Len(), util.FormatClock(total),
			util.EstimatedFileSizeMB(total, settings.BitrateKbps()))

		var progress pipeline.ProgressFunc
		if !renderFlags.noProgress {
			bar := progressbar.NewOptions(100,
				progressbar.OptionSetDescription("rendering"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			progress = func(percent int, message string) {
				bar.Describe(message)
				_ = bar.Set(percent)
			}
		}

		renderer := pipeline.New(log.Logger, cfg, nil)

		// the render runs on a worker goroutine so the terminal UI stays
		// responsive to the progress callback and to interrupts
		type result struct {
			path string
			err  error
		}
		done := make(chan result, 1)
		go func() {
			path, err := renderer.Render(cmd.Context(), manager.All(), settings, renderFlags.output, progress)
			done <- result{path, err}
		}()

		res := <-done
		if res.err != nil {
			return res.err
		}

		fmt.Printf("wrote %s\n", res.path)
		return nil
	},
}

// buildSequence assembles the sequence either from a manifest file or from
// image paths on the command line with flag overrides applied to all.
func buildSequence(cfg *config.Config, args []string) (*sequence.Manager, sequence.RenderSettings, error) {
	if renderFlags.manifest != "" {
		if len(args) > 0 {
			return nil, sequence.RenderSettings{}, fmt.Errorf("pass either --manifest or image paths, not both")
		}
		return sequence.LoadManifest(renderFlags.manifest)
	}

	paths, err := expandImageArgs(args)
	if err != nil {
		return nil, sequence.RenderSettings{}, err
	}

	manager := sequence.NewManager()
	for _, path := range paths {
		if _, err := manager.Add(path); err != nil {
			return nil, sequence.RenderSettings{}, err
		}
	}

	manager.ApplyToAll(sequence.BulkSettings{
		Duration:                pick(renderFlags.duration, cfg.Defaults.Duration),
		StartTransition:         pickStr(renderFlags.startTrans, cfg.Defaults.StartTransition),
		StartTransitionDuration: pick(renderFlags.startDuration, cfg.Defaults.StartTransitionDuration),
		EndTransition:           pickStr(renderFlags.endTrans, cfg.Defaults.EndTransition),
		EndTransitionDuration:   pick(renderFlags.endDuration, cfg.Defaults.EndTransitionDuration),
		Effect:                  renderFlags.effect,
		OverlayEffect:           renderFlags.overlay,
	})
	if renderFlags.overlayText != "" {
		for _, item := range manager.All() {
			item.OverlayText = renderFlags.overlayText
		}
	}

	settings := sequence.RenderSettings{
		AspectRatio: pickStr(renderFlags.aspect, cfg.Output.AspectRatio),
		FrameRate:   renderFlags.frameRate,
		Quality:     pickStr(renderFlags.quality, cfg.Output.Quality),
		Overlap:     cfg.Output.Overlap,
	}
	if settings.FrameRate <= 0 {
		settings.FrameRate = cfg.Output.FrameRate
	}
	return manager, settings, nil
}

// expandImageArgs resolves directory arguments into their contained image
// files, sorted by name; plain paths pass through in order.
func expandImageArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, entry := range entries {
			p := filepath.Join(arg, entry.Name())
			if util.IsImageFile(p) {
				found = append(found, p)
			}
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no images found in %s", arg)
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}

func pick(flag, fallback float64) float64 {
	if flag > 0 {
		return flag
	}
	return fallback
}

func pickStr(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

func init() {
	renderCmd.Flags().StringVarP(&renderFlags.manifest, "manifest", "m", "", "render from a project manifest instead of image arguments")
	renderCmd.Flags().StringVarP(&renderFlags.output, "output", "o", "slideshow.mp4", "output video path")
	renderCmd.Flags().StringVar(&renderFlags.aspect, "aspect", "", "aspect ratio preset (see: slidecast list aspects)")
	renderCmd.Flags().IntVar(&renderFlags.frameRate, "fps", 0, "output frame rate")
	renderCmd.Flags().StringVar(&renderFlags.quality, "quality", "", "quality preset (see: slidecast list qualities)")
	renderCmd.Flags().Float64Var(&renderFlags.duration, "duration", 0, "seconds each image stays on screen")
	renderCmd.Flags().StringVar(&renderFlags.effect, "effect", "", "motion effect applied to every image")
	renderCmd.Flags().StringVar(&renderFlags.overlay, "overlay", "", "overlay applied to every image")
	renderCmd.Flags().StringVar(&renderFlags.overlayText, "overlay-text", "", "text for text-based overlays")
	renderCmd.Flags().StringVar(&renderFlags.startTrans, "start-transition", "", "entry transition for every image")
	renderCmd.Flags().Float64Var(&renderFlags.startDuration, "start-duration", 0, "entry transition window in seconds")
	renderCmd.Flags().StringVar(&renderFlags.endTrans, "end-transition", "", "exit transition for every image")
	renderCmd.Flags().Float64Var(&renderFlags.endDuration, "end-duration", 0, "exit transition window in seconds")
	renderCmd.Flags().BoolVar(&renderFlags.noProgress, "no-progress", false, "disable the progress bar")
}

var manifestOut string

var manifestCmd = &cobra.Command{
	Use:   "manifest [images...]",
	Short: "Write a project manifest with default settings for the given images",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		manager := sequence.NewManager()
		for _, path := range args {
			if _, err := manager.Add(path); err != nil {
				return err
			}
		}
		manager.ApplyToAll(sequence.BulkSettings{
			Duration:                cfg.Defaults.Duration,
			StartTransition:         cfg.Defaults.StartTransition,
			StartTransitionDuration: cfg.Defaults.StartTransitionDuration,
			EndTransition:           cfg.Defaults.EndTransition,
			EndTransitionDuration:   cfg.Defaults.EndTransitionDuration,
		})

		settings := sequence.RenderSettings{
			AspectRatio: cfg.Output.AspectRatio,
			FrameRate:   cfg.Output.FrameRate,
			Quality:     cfg.Output.Quality,
			Overlap:     cfg.Output.Overlap,
		}
		if err := sequence.SaveManifest(manifestOut, manager, settings); err != nil {
			return err
		}

		fmt.Printf("wrote %s with %d images\n", manifestOut, manager.Len())
		return nil
	},
}

func init() {
	manifestCmd.Flags().StringVarP(&manifestOut, "output", "o", "project.yaml", "manifest path to write")
}

var listCmd = &cobra.Command{
	Use:   "list [effects|transitions|overlays|aspects|qualities]",
	Short: "List available presets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		switch args[0] {
		case "effects":
			printNames(effects.NewRegistry(log.Logger).Names())
		case "transitions":
			reg := transitions.NewRegistry(log.Logger)
			fmt.Println("start:")
			printNames(reg.StartNames())
			fmt.Println("end:")
			printNames(reg.EndNames())
		case "overlays":
			fonts := overlays.NewFontSet(log.Logger, cfg.Fonts.Candidates, cfg.Fonts.Size)
			printNames(overlays.NewRegistry(log.Logger, fonts, nil).Names())
		case "aspects":
			printNames(sequence.AspectRatioNames())
		case "qualities":
			printNames(sequence.QualityNames())
		default:
			return fmt.Errorf("unknown resource %q", args[0])
		}
		return nil
	},
}

func printNames(names []string) {
	for _, name := range names {
		fmt.Println("  " + name)
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config management commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		return cfg.Write(os.Stdout)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file to ./slidecast.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		if err := cfg.Save("slidecast.yaml"); err != nil {
			return err
		}
		fmt.Println("wrote slidecast.yaml")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
