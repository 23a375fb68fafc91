package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vocalab/vocaldose/internal/analysis"
	"github.com/vocalab/vocaldose/internal/cli"
	"github.com/vocalab/vocaldose/internal/config"
	"github.com/vocalab/vocaldose/internal/export"
	"github.com/vocalab/vocaldose/internal/logging"
	"github.com/vocalab/vocaldose/internal/mains"
	"github.com/vocalab/vocaldose/internal/ui"
)

var (
	version = "0.0.1"
)

// CLI defines the command-line interface
type CLI struct {
	Version bool   `short:"v" help:"Show version information"`
	Config  string `short:"c" type:"path" help:"Path to YAML config file (optional)"`

	Calibration    string  `type:"existingfile" help:"Calibration recording (WAV)"`
	Level          float64 `help:"SPL measured during calibration in dBA" placeholder:"DBA"`
	Distance       float64 `default:"0.30" help:"Microphone distance of the calibration take in meters"`
	TargetDistance float64 `default:"0.30" help:"Distance SPL and doses are reported at, in meters"`

	Sex  string  `default:"other" enum:"male,female,other" help:"Biomechanical profile for dose integration"`
	Fmin float64 `default:"75" help:"Lower pitch search bound in Hz"`
	Fmax float64 `default:"500" help:"Upper pitch search bound in Hz"`

	HumFilter bool    `help:"Notch out mains hum before analysis"`
	HumFreq   float64 `help:"Mains frequency in Hz (default: detect from timezone)"`
	NoCpps    bool    `help:"Skip cepstral peak prominence analysis"`

	CSV   bool `help:"Write per-frame and dose summary CSV files next to each recording"`
	Logs  bool `help:"Save a detailed analysis report next to each recording"`
	Plain bool `help:"Print results to the console instead of the TUI"`

	Files []string `arg:"" name:"files" help:"Voice recordings to analyze (WAV)" type:"existingfile" optional:""`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("vocaldose"),
		kong.Description("Vocal dose analyzer for voice recordings"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}
	if len(cliArgs.Files) == 0 {
		cli.PrintError("No voice recordings specified")
		ctx.PrintUsage(false)
		os.Exit(1)
	}
	if cliArgs.Calibration != "" && cliArgs.Level == 0 {
		cli.PrintError("--calibration requires --level (the SPL measured during the calibration take)")
		os.Exit(1)
	}

	cfg, err := buildConfig(cliArgs)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
	profile, err := analysis.ParseSexProfile(cliArgs.Sex)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	if cliArgs.Plain {
		if runPlain(cliArgs, cfg, profile) {
			os.Exit(1)
		}
		return
	}
	runTUI(cliArgs, cfg, profile)
}

// buildConfig merges defaults, the optional config file and command line
// flags, in that order of precedence.
func buildConfig(args *CLI) (analysis.Config, error) {
	cfg := analysis.DefaultConfig()

	if args.Config != "" {
		file, err := config.Load(args.Config)
		if err != nil {
			return cfg, err
		}
		cfg = file.Apply(cfg)
	}

	if args.Fmin != 0 {
		cfg.F0Min = args.Fmin
	}
	if args.Fmax != 0 {
		cfg.F0Max = args.Fmax
	}
	if cfg.F0Min >= cfg.F0Max {
		return cfg, fmt.Errorf("pitch bounds out of order: fmin %.1f >= fmax %.1f", cfg.F0Min, cfg.F0Max)
	}
	if args.HumFilter {
		cfg.HumFilterEnabled = true
		cfg.HumFrequency = args.HumFreq
	}
	if cfg.HumFilterEnabled && cfg.HumFrequency == 0 {
		cfg.HumFrequency = mains.Detect()
	}
	if args.NoCpps {
		cfg.CPPSEnabled = false
	}
	return cfg, nil
}

func pipelineOptions(args *CLI, voicePath string, cfg analysis.Config, profile analysis.SexProfile) analysis.PipelineOptions {
	return analysis.PipelineOptions{
		VoicePath:       voicePath,
		CalibrationPath: args.Calibration,
		MeasuredSPL:     args.Level,
		CalDistance:     args.Distance,
		TargetDistance:  args.TargetDistance,
		Profile:         profile,
		Config:          cfg,
	}
}

// writeArtifacts saves the optional CSV exports and the report for one
// completed recording.
func writeArtifacts(args *CLI, voicePath string, start time.Time, result *analysis.PipelineResult, profile analysis.SexProfile) error {
	base := strings.TrimSuffix(voicePath, filepath.Ext(voicePath))

	if args.CSV {
		if err := export.WriteFrameTable(base+"-frames.csv", result.Table); err != nil {
			return err
		}
		if err := export.WriteDoseSummary(base+"-doses.csv", result.Summary); err != nil {
			return err
		}
	}
	if args.Logs {
		return logging.GenerateReport(logging.ReportData{
			VoicePath:       voicePath,
			CalibrationPath: args.Calibration,
			StartTime:       start,
			EndTime:         time.Now(),
			Result:          result,
			Profile:         profile,
			Calibrated:      result.Calibration != nil,
		})
	}
	return nil
}

// runPlain analyzes every recording sequentially, printing results to the
// console. Returns true when any recording failed.
func runPlain(args *CLI, cfg analysis.Config, profile analysis.SexProfile) bool {
	failed := false
	for _, voicePath := range args.Files {
		start := time.Now()
		result, err := analysis.Run(context.Background(), pipelineOptions(args, voicePath, cfg, profile), nil)
		if err != nil {
			cli.PrintError(fmt.Sprintf("%s: %v", voicePath, err))
			failed = true
			continue
		}
		logging.DisplayResults(os.Stdout, voicePath, result, profile)
		if err := writeArtifacts(args, voicePath, start, result, profile); err != nil {
			cli.PrintError(fmt.Sprintf("%s: %v", voicePath, err))
			failed = true
		}
	}
	return failed
}

// runTUI drives the Bubbletea interface while the pipeline runs in the
// background.
func runTUI(args *CLI, cfg analysis.Config, profile analysis.SexProfile) {
	model := ui.NewModel(args.Files)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		for i, voicePath := range args.Files {
			start := time.Now()
			p.Send(ui.FileStartMsg{
				FileIndex: i,
				FileName:  voicePath,
			})

			progress := func(pass int, passName string, frac float64) {
				p.Send(ui.ProgressMsg{
					Pass:     pass,
					PassName: passName,
					Progress: frac,
				})
			}

			result, err := analysis.Run(context.Background(), pipelineOptions(args, voicePath, cfg, profile), progress)
			if err == nil {
				err = writeArtifacts(args, voicePath, start, result, profile)
			}
			p.Send(ui.FileCompleteMsg{
				FileIndex: i,
				Result:    result,
				Error:     err,
			})
		}
		p.Send(ui.AllCompleteMsg{})
	}()

	if _, err := p.Run(); err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		os.Exit(1)
	}
}
