// edaviewer opens an electrodermal activity recording in the interactive
// viewer. Input handling matches edaplot: processed CSV tables are shown
// as-is, raw CSV columns and EDF channels run through the processing pass
// first, and the EDF header supplies the sampling rate unless -rate or the
// config overrides it.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/edaview/edaview/src/config"
	"github.com/edaview/edaview/src/csvio"
	"github.com/edaview/edaview/src/eda"
	"github.com/edaview/edaview/src/edfio"
	"github.com/edaview/edaview/src/elog"
	"github.com/edaview/edaview/src/process"
	"github.com/edaview/edaview/src/render"
	"github.com/edaview/edaview/src/render/fyneview"
)

func main() {
	var (
		inPath     string
		configPath string
		rate       float64
		rawMode    bool
		column     string
		channel    string
		signalIdx  int
		logLevel   string
	)
	flag.StringVar(&inPath, "in", "", "Input file (.csv processed table or raw column, .edf recording)")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file")
	flag.Float64Var(&rate, "rate", 0, "Sampling rate in Hz (0 = EDF header rate, or sample index)")
	flag.BoolVar(&rawMode, "raw", false, "Treat CSV input as a raw recording and process it first")
	flag.StringVar(&column, "column", eda.ColRaw, "CSV column holding the raw recording (raw mode)")
	flag.StringVar(&channel, "channel", "", "EDF channel label (takes precedence over -signal)")
	flag.IntVar(&signalIdx, "signal", 0, "EDF signal index")
	flag.StringVar(&logLevel, "loglevel", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	if inPath == "" {
		fmt.Fprintln(os.Stderr, "edaviewer: -in is required")
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

	fig, err := render.BuildFigureStyled(table, cfg.SamplingRate, render.Palette{
		Raw:      cfg.Colors.Raw,
		Clean:    cfg.Colors.Clean,
		Phasic:   cfg.Colors.Phasic,
		Tonic:    cfg.Colors.Tonic,
		Onsets:   cfg.Colors.Onsets,
		Peaks:    cfg.Colors.Peaks,
		Recovery: cfg.Colors.Recovery,
	})
	if err != nil {
		fatalf("%v", err)
	}

	viewer := fyneview.New(render.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		MarkerSize: cfg.MarkerSize,
		Hints:      cfg.Hints,
	})
	if _, err := viewer.Render(fig); err != nil {
		fatalf("render: %v", err)
	}
	viewer.Run()
}

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
		} else {
			raw, headerRate, err = edfio.LoadSignal(path, signalIdx)
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
			t, err := process.Process(raw, samplingRate)
			return t, samplingRate, err
		}
		t, err := csvio.Load(f)
		return t, samplingRate, err
	}
}

func fatalf(format string, a ...interface{}) {
	elog.Errorf(format, a...)
	os.Exit(1)
}
