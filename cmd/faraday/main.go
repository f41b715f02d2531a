// Package main provides the CLI entrypoint for faraday.
package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/faraday/internal/audio"
	"github.com/verte-zerg/faraday/internal/config"
	"github.com/verte-zerg/faraday/internal/export"
	"github.com/verte-zerg/faraday/internal/game"
	"github.com/verte-zerg/faraday/internal/logging"
	"github.com/verte-zerg/faraday/internal/model"
	"github.com/verte-zerg/faraday/internal/sim"
	"github.com/verte-zerg/faraday/internal/stats"
	"github.com/verte-zerg/faraday/internal/store"
	"github.com/verte-zerg/faraday/internal/tui"
)

const (
	defaultTurns    = 5
	defaultStrength = 1.0
	defaultVolume   = 0.8
	defaultLogLevel = "info"
	defaultPreset   = "through"
	demoTableRows   = 20
	demoCurveHeight = 8
	demoTimeout     = 30 * time.Second
)

var (
	labTurns      int
	labStrength   float64
	labMagnet     string
	labMaterial   string
	labSound      bool
	labVolume     float64
	labParticles  bool
	labFieldLines bool
	labSlowMotion bool
	labExportDir  string
	logLevel      string

	demoPreset string
	demoOut    string

	scoreReset bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "faraday",
		Short:         "Electromagnetic induction lab for the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runLabCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&labTurns, "turns", defaultTurns, fmt.Sprintf("coil turns (%d-%d)", sim.MinTurns, sim.MaxTurns))
	flags.Float64Var(&labStrength, "strength", defaultStrength, fmt.Sprintf("magnet strength (%.1f-%.1f)", sim.MinStrength, sim.MaxStrength))
	flags.StringVar(&labMagnet, "magnet", string(model.MagnetBar), "magnet type (bar, horseshoe, ring)")
	flags.StringVar(&labMaterial, "material", model.ReferenceMaterial, "coil material ("+strings.Join(model.MaterialNames(), ", ")+")")
	flags.BoolVar(&labSound, "sound", true, "play audio cues")
	flags.Float64Var(&labVolume, "volume", defaultVolume, "audio volume (0-1)")
	flags.BoolVar(&labParticles, "particles", true, "draw drifting electrons in the coil")
	flags.BoolVar(&labFieldLines, "field-lines", true, "draw field lines around the magnet")
	flags.BoolVar(&labSlowMotion, "slow-motion", false, "ease brightness changes slowly")
	flags.StringVar(&labExportDir, "export-dir", "", "directory for CSV exports")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newMaterialsCmd())

	return rootCmd
}

// labSettings is the merged result of flags and the config file.
type labSettings struct {
	lab       model.LabConfig
	volume    float64
	exportDir string
	log       logging.Config
}

func loadSettings(cmd *cobra.Command) (labSettings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return labSettings{}, fmt.Errorf("failed to load config: %w", err)
	}
	lab := fileCfg.Lab
	applyIntConfig(cmd, "turns", &labTurns, lab.Turns)
	applyFloatConfig(cmd, "strength", &labStrength, lab.Strength)
	applyStringConfig(cmd, "magnet", &labMagnet, lab.Magnet)
	applyStringConfig(cmd, "material", &labMaterial, lab.Material)
	applyBoolConfig(cmd, "sound", &labSound, lab.Sound)
	applyFloatConfig(cmd, "volume", &labVolume, lab.Volume)
	applyBoolConfig(cmd, "particles", &labParticles, lab.Particles)
	applyBoolConfig(cmd, "field-lines", &labFieldLines, lab.FieldLines)
	applyBoolConfig(cmd, "slow-motion", &labSlowMotion, lab.SlowMotion)
	applyStringConfig(cmd, "export-dir", &labExportDir, fileCfg.Export.Dir)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	magnet, ok := model.ParseMagnetType(labMagnet)
	if !ok {
		return labSettings{}, fmt.Errorf("--magnet must be one of bar, horseshoe, ring")
	}
	settings := labSettings{
		lab: model.LabConfig{
			Turns:             labTurns,
			Strength:          labStrength,
			MagnetType:        magnet,
			Material:          strings.TrimSpace(strings.ToLower(labMaterial)),
			SoundEnabled:      labSound,
			ParticlesEnabled:  labParticles,
			FieldLinesEnabled: labFieldLines,
			SlowMotion:        labSlowMotion,
		},
		volume:    labVolume,
		exportDir: labExportDir,
		log:       logConfig(fileCfg.Log),
	}
	if settings.exportDir == "" {
		settings.exportDir = config.DefaultExportDir()
	}
	if err := validateSettings(settings); err != nil {
		return labSettings{}, err
	}
	return settings, nil
}

func logConfig(fc config.LogConfig) logging.Config {
	cfg := logging.DefaultConfig(config.DefaultLogPath())
	cfg.Level = logLevel
	if fc.File != nil {
		cfg.File = *fc.File
	}
	if fc.MaxSize != nil {
		cfg.MaxSize = *fc.MaxSize
	}
	if fc.MaxBackups != nil {
		cfg.MaxBackups = *fc.MaxBackups
	}
	if fc.MaxAge != nil {
		cfg.MaxAge = *fc.MaxAge
	}
	if fc.Compress != nil {
		cfg.Compress = *fc.Compress
	}
	return cfg
}

func runLabCmd(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(settings.log, nil)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer syncLogger(logger)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	player := audio.NewPlayer(audio.WithLogger(logger.Named("audio")), audio.WithVolume(settings.volume))
	defer player.Close()
	player.SetEnabled(settings.lab.SoundEnabled)

	ctx := context.Background()
	s := sim.New(settings.lab,
		sim.WithGame(game.NewMachine(ctx, st, logger.Named("game"))),
		sim.WithSoundSink(player),
		sim.WithLogger(logger.Named("sim")),
	)
	logger.Info("lab started",
		zap.Int("turns", settings.lab.Turns),
		zap.Float64("strength", settings.lab.Strength),
		zap.String("magnet", string(settings.lab.MagnetType)),
		zap.String("material", settings.lab.Material),
	)

	m := tui.NewModel(s, settings.exportDir, logger.Named("tui"), tui.WithAudio(player))
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	s.Close()
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a demo preset headless and print the data log",
		Args:  cobra.NoArgs,
		RunE:  runDemoCmd,
	}
	cmd.Flags().StringVar(&demoPreset, "preset", defaultPreset, "preset to run ("+strings.Join(sim.ScriptNames(), ", ")+")")
	cmd.Flags().StringVar(&demoOut, "out", "", "write the data log as CSV into this directory")
	return cmd
}

func runDemoCmd(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if _, ok := sim.LookupScript(demoPreset); !ok {
		return fmt.Errorf("unknown preset %q (available: %s)", demoPreset, strings.Join(sim.ScriptNames(), ", "))
	}
	logger, err := logging.New(logging.Config{Level: logLevel}, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer syncLogger(logger)

	settings.lab.SoundEnabled = false
	s := sim.New(settings.lab, sim.WithLogger(logger.Named("sim")))
	if err := s.StartPreset(demoPreset); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, demoTimeout)
	defer cancel()

	var last model.Telemetry
	runner := sim.NewRunner(s,
		sim.WithRunnerLogger(logger.Named("runner")),
		sim.WithPublish(func(tel model.Telemetry) { last = tel }),
		sim.WithUntil(func(tel model.Telemetry) bool { return tel.Preset == "" }),
	)
	logger.Info("demo started", zap.String("preset", demoPreset))
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("demo failed: %w", err)
	}
	logger.Info("demo finished", zap.Int("samples", len(last.History)), zap.Int("achievements", last.UnlockedCount))

	if err := printDemoReport(cmd.OutOrStdout(), last.History); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if demoOut == "" {
		return nil
	}
	path, err := export.ExportFile(demoOut, last.History, time.Now())
	if err != nil {
		return fmt.Errorf("failed to export data: %w", err)
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func printDemoReport(w io.Writer, points []model.HistoryPoint) error {
	if err := stats.RenderSummary(w, points); err != nil {
		return err
	}
	if err := stats.RenderHistoryTable(w, points, demoTableRows); err != nil {
		return err
	}
	return stats.RenderCurves(w, points, 0, demoCurveHeight, false)
}

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show or reset the game high score",
		Args:  cobra.NoArgs,
		RunE:  runScoreCmd,
	}
	cmd.Flags().BoolVar(&scoreReset, "reset", false, "reset the high score to zero")
	return cmd
}

func runScoreCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if scoreReset {
		if err := st.ResetHighScore(ctx); err != nil {
			return fmt.Errorf("failed to reset high score: %w", err)
		}
	}
	score, err := st.HighScore(ctx)
	if err != nil {
		return fmt.Errorf("failed to read high score: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "High score: %d\n", score); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newMaterialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "List coil materials",
		Args:  cobra.NoArgs,
		RunE:  runMaterialsCmd,
	}
}

func runMaterialsCmd(cmd *cobra.Command, _ []string) error {
	return writeMaterials(cmd.OutOrStdout())
}

func writeMaterials(w io.Writer) error {
	if _, err := fmt.Fprintln(w, runewidth.FillRight("Material", 10)+"Conductivity"); err != nil {
		return err
	}
	for _, name := range model.MaterialNames() {
		m, _ := model.LookupMaterial(name)
		if _, err := fmt.Fprintf(w, "%s%s\n", runewidth.FillRight(m.Name, 10), runewidth.FillLeft(fmt.Sprintf("%.2f", m.Conductivity), 12)); err != nil {
			return err
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# faraday configuration
# Uncomment a value to enable it. CLI flags override config values.

[lab]
# turns = %d              # Coil turns (%d-%d)
# strength = %.1f         # Magnet strength (%.1f-%.1f, steps of %.1f)
# magnet = "bar"          # bar, horseshoe or ring
# material = %q       # %s
# sound = true            # Play audio cues
# volume = %.1f           # Audio volume (0-1)
# particles = true        # Draw drifting electrons
# field-lines = true      # Draw field lines
# slow-motion = false     # Ease brightness changes slowly

[log]
# level = %q          # debug, info, warn, error
# file = %q
# max-size = 10           # Megabytes before rotation
# max-backups = 3
# max-age = 28            # Days
# compress = false

[export]
# dir = %q
`,
		defaultTurns, sim.MinTurns, sim.MaxTurns,
		defaultStrength, sim.MinStrength, sim.MaxStrength, sim.StrengthInc,
		model.ReferenceMaterial, strings.Join(model.MaterialNames(), ", "),
		defaultVolume,
		defaultLogLevel,
		config.DefaultLogPath(),
		config.DefaultExportDir(),
	)
}

func validateSettings(s labSettings) error {
	cfg := s.lab
	if cfg.Turns < sim.MinTurns || cfg.Turns > sim.MaxTurns {
		return fmt.Errorf("--turns must be between %d and %d", sim.MinTurns, sim.MaxTurns)
	}
	if cfg.Strength < sim.MinStrength || cfg.Strength > sim.MaxStrength {
		return fmt.Errorf("--strength must be between %.1f and %.1f", sim.MinStrength, sim.MaxStrength)
	}
	if steps := cfg.Strength / sim.StrengthInc; math.Abs(steps-math.Round(steps)) > 1e-9 {
		return fmt.Errorf("--strength must be a multiple of %.1f", sim.StrengthInc)
	}
	if _, ok := model.LookupMaterial(cfg.Material); !ok {
		return fmt.Errorf("--material must be one of %s", strings.Join(model.MaterialNames(), ", "))
	}
	if s.volume < 0 || s.volume > 1 {
		return fmt.Errorf("--volume must be between 0 and 1")
	}
	if s.log.MaxSize < 0 || s.log.MaxBackups < 0 || s.log.MaxAge < 0 {
		return fmt.Errorf("log rotation limits must be >= 0")
	}
	return nil
}

func syncLogger(logger *zap.Logger) {
	if err := logger.Sync(); err != nil {
		// Best-effort flush; stderr sync fails on some terminals.
		_ = err
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
