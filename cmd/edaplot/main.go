// edaplot renders an electrodermal activity recording to a PNG.
//
// Two input modes:
//  1. Processed mode (default for CSV): the input already carries the full
//     column set (EDA_Raw, EDA_Clean, EDA_Phasic, EDA_Tonic and the SCR
//     indicator columns) and is plotted as-is.
//  2. Raw mode (-raw, always used for EDF): a single channel is read and
//     run through the processing pass first.
//
// For EDF input the sampling rate comes from the file header unless -rate
// or the config overrides it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edaview/edaview/src/config"
	"github.com/edaview/edaview/src/csvio"
	"github.com/edaview/edaview/src/eda"
	"github.com/edaview/edaview/src/edfio"
	"github.com/edaview/edaview/src/elog"
	"github.com/edaview/edaview/src/process"
	"github.com/edaview/edaview/src/render"
	_ "github.com/edaview/edaview/src/render/staticchart"
)

func main() {
	var (
		inPath     string
		outPath    string
		configPath string
		backend    string
		rate       float64
		rawMode    bool
		column     string
		channel    string
		signalIdx  int
		logLevel   string
	)
	flag.StringVar(&inPath, "in", "", "Input file (.csv processed table or raw column, .edf recording)")
	flag.StringVar(&outPath, "out", "eda_plot.png", "Output PNG path")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file")
	flag.StringVar(&backend, "backend", string(render.Static),
		fmt.Sprintf("Rendering backend (available: %s)", backendNames()))
	flag.Float64Var(&rate, "rate", 0, "Sampling rate in Hz (0 = EDF header rate, or sample index)")
	flag.BoolVar(&rawMode, "raw", false, "Treat CSV input as a raw recording and process it first")
	flag.StringVar(&column, "column", eda.ColRaw, "CSV column holding the raw recording (raw mode)")
	flag.StringVar(&channel, "channel", "", "EDF channel label (takes precedence over -signal)")
	flag.IntVar(&signalIdx, "signal", 0, "EDF signal index")
	flag.StringVar(&logLevel, "loglevel", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	if inPath == "" {
		fmt.Fprintln(os.Stderr, "edaplot: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fatalf("config: %v", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	elog.SetLevel(cfg.LogLevel)
	if rate > 0 {
		cfg.SamplingRate = rate
	}

	table, samplingRate, err := loadTable(inPath, column, channel, signalIdx, rawMode, cfg.SamplingRate)
	if err != nil {
		fatalf("%v", err)
	}
	cfg.SamplingRate = samplingRate
	logSummary(table, cfg.SamplingRate)

	fig, err := render.BuildFigureStyled(table, cfg.SamplingRate, palette(cfg))
	if err != nil {
		fatalf("%v", err)
	}

	r, err := render.New(render.Backend(backend), render.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		MarkerSize: cfg.MarkerSize,
		Hints:      cfg.Hints,
	})
	if err != nil {
		var ie *render.IntegrationError
		if errors.As(err, &ie) {
			fatalf("%v (available: %s)", err, backendNames())
		}
		fatalf("%v", err)
	}
	start := time.Now()
	img, err := r.Render(fig)
	if err != nil {
		fatalf("render: %v", err)
	}
	elog.TimeTrack(start, "render")

	f, err := os.Create(outPath)
	if err != nil {
		fatalf("%v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		fatalf("write %s: %v", outPath, err)
	}
	elog.Infof("wrote %s", outPath)
}

// backendNames lists the backends linked into this binary.
func backendNames() string {
	bs := render.Backends()
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = string(b)
	}
	return strings.Join(names, ", ")
}

// palette maps the config color overrides onto the figure palette.
func palette(cfg *config.Config) render.Palette {
	return render.Palette{
		Raw:      cfg.Colors.Raw,
		Clean:    cfg.Colors.Clean,
		Phasic:   cfg.Colors.Phasic,
		Tonic:    cfg.Colors.Tonic,
		Onsets:   cfg.Colors.Onsets,
		Peaks:    cfg.Colors.Peaks,
		Recovery: cfg.Colors.Recovery,
	}
}

// loadTable reads the input into a processed table, running the
// processing pass when the input is a raw channel. It returns the
// effective sampling rate: the caller's when positive, otherwise the EDF
// header rate (0 for CSV input without a rate).
func loadTable(path, column, channel string, signalIdx int, rawMode bool, samplingRate float64) (*eda.Table, float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".edf":
		var (
			raw        []float64
			headerRate float64
			err        error
		)
		if channel != "" {
			raw, headerRate, err = edfio.LoadChannel(path, channel)
			elog.Debugf("loaded %d samples from %s (channel %q)", len(raw), path, channel)
		} else {
			raw, headerRate, err = edfio.LoadSignal(path, signalIdx)
			elog.Debugf("loaded %d samples from %s (signal %d)", len(raw), path, signalIdx)
		}
		if err != nil {
			return nil, 0, err
		}
		if samplingRate <= 0 && headerRate > 0 {
			samplingRate = headerRate
			elog.Infof("sampling rate %g Hz from EDF header", headerRate)
		}
		t, err := process.Process(raw, samplingRate)
		return t, samplingRate, err
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, err
		}
		defer f.Close()
		if rawMode {
			raw, err := csvio.LoadColumn(f, column)
			if err != nil {
				return nil, 0, err
			}
			elog.Debugf("loaded %d raw samples from %s column %s", len(raw), path, column)
			t, err := process.Process(raw, samplingRate)
			return t, samplingRate, err
		}
		t, err := csvio.Load(f)
		return t, samplingRate, err
	}
}

// logSummary reports detected SCR activity at info level.
func logSummary(t *eda.Table, samplingRate float64) {
	ev, err := eda.ScanEvents(t)
	if err != nil {
		elog.Warnf("no SCR indicator columns: %v", err)
		return
	}
	phasic, err := t.Column(eda.ColPhasic)
	if err != nil {
		return
	}
	f := process.SCRFeatures(phasic, samplingRate, ev)
	if samplingRate > 0 {
		elog.Infof("%d SCRs (%.1f/min), mean amplitude %.3f, mean rise time %.2fs",
			f.SCRCount, f.SCRPerMinute, f.MeanAmplitude, f.MeanRiseTime)
		return
	}
	elog.Infof("%d SCRs, mean amplitude %.3f, mean rise time %.0f samples",
		f.SCRCount, f.MeanAmplitude, f.MeanRiseTime)
}

func fatalf(format string, a ...interface{}) {
	elog.Errorf(format, a...)
	os.Exit(1)
}
