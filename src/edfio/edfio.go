// Package edfio pulls a single channel out of an EDF/EDF+ recording so it
// can feed the processing pass. Channels are selected by label or index,
// and the sampling rate is derived from the record duration and per-record
// sample count in the file header.
package edfio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/OpenPSG/edf"
)

// readChunk is the per-call buffer handed to the EDF signal reader.
const readChunk = 4096

// EDF header field widths, per the specification: a 256-byte fixed block
// followed by 256 bytes of channel directory per signal. The edf package
// keeps its parsed header unexported, so the directory is re-read here.
const (
	fixedHeaderBytes  = 256
	perSignalBytes    = 256
	labelBytes        = 16
	samplesFieldBytes = 8
	// Offset of the samples-per-record block inside the channel
	// directory: label 16, transducer 80, dimension 8, physical min/max
	// 8+8, digital min/max 8+8, prefiltering 80.
	samplesBlockOffset = 16 + 80 + 8 + 8 + 8 + 8 + 8 + 80
)

// channelInfo is the slice of the header needed to pick a channel and
// derive its sampling rate.
type channelInfo struct {
	labels           []string
	samplesPerRecord []int
	recordDuration   float64 // seconds
}

// rate returns the sampling rate of channel i in Hz, or 0 when the record
// duration is unknown.
func (ci *channelInfo) rate(i int) float64 {
	if ci.recordDuration <= 0 {
		return 0
	}
	return float64(ci.samplesPerRecord[i]) / ci.recordDuration
}

// indexOf finds the channel whose trimmed label matches, first occurrence.
func (ci *channelInfo) indexOf(label string) (int, error) {
	for i, l := range ci.labels {
		if strings.EqualFold(l, label) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("edfio: no channel %q (have %s)", label, strings.Join(ci.labels, ", "))
}

// readChannelInfo parses the channel directory from the stream and leaves
// the cursor position unspecified; callers re-seek before reading samples.
func readChannelInfo(r io.ReadSeeker) (*channelInfo, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("edfio: seek header: %w", err)
	}
	fixed := make([]byte, fixedHeaderBytes)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, fmt.Errorf("edfio: read header: %w", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(fixed[244:252])), 64)
	if err != nil {
		return nil, fmt.Errorf("edfio: parse record duration: %w", err)
	}
	ns, err := strconv.Atoi(strings.TrimSpace(string(fixed[252:256])))
	if err != nil {
		return nil, fmt.Errorf("edfio: parse signal count: %w", err)
	}
	if ns <= 0 {
		return nil, fmt.Errorf("edfio: no signals in header")
	}
	dir := make([]byte, ns*perSignalBytes)
	if _, err := io.ReadFull(r, dir); err != nil {
		return nil, fmt.Errorf("edfio: read channel directory: %w", err)
	}
	ci := &channelInfo{
		labels:           make([]string, ns),
		samplesPerRecord: make([]int, ns),
		recordDuration:   duration,
	}
	for i := 0; i < ns; i++ {
		ci.labels[i] = strings.TrimSpace(string(dir[i*labelBytes : (i+1)*labelBytes]))
		field := dir[ns*samplesBlockOffset+i*samplesFieldBytes : ns*samplesBlockOffset+(i+1)*samplesFieldBytes]
		spr, err := strconv.Atoi(strings.TrimSpace(string(field)))
		if err != nil {
			return nil, fmt.Errorf("edfio: parse samples per record for %q: %w", ci.labels[i], err)
		}
		ci.samplesPerRecord[i] = spr
	}
	return ci, nil
}

// drainSignal reads every sample of one channel in physical units.
func drainSignal(r io.ReadSeeker, signalIndex int) ([]float64, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("edfio: seek start: %w", err)
	}
	er, err := edf.Open(r)
	if err != nil {
		return nil, fmt.Errorf("edfio: open: %w", err)
	}
	sr, err := er.Signal(signalIndex)
	if err != nil {
		return nil, fmt.Errorf("edfio: signal %d: %w", signalIndex, err)
	}
	var samples []float64
	buf := make([]float64, readChunk)
	for {
		n, err := sr.Read(buf)
		samples = append(samples, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return samples, nil
		}
		if err != nil {
			return nil, fmt.Errorf("edfio: read signal %d: %w", signalIndex, err)
		}
	}
}

// ReadSignal drains the signalIndex-th channel of an EDF stream and
// returns its samples with the sampling rate from the header (0 when the
// record duration is unknown).
func ReadSignal(r io.ReadSeeker, signalIndex int) ([]float64, float64, error) {
	ci, err := readChannelInfo(r)
	if err != nil {
		return nil, 0, err
	}
	if signalIndex < 0 || signalIndex >= len(ci.labels) {
		return nil, 0, fmt.Errorf("edfio: signal index %d out of range (%d channels)", signalIndex, len(ci.labels))
	}
	samples, err := drainSignal(r, signalIndex)
	if err != nil {
		return nil, 0, err
	}
	return samples, ci.rate(signalIndex), nil
}

// ReadChannel selects a channel by its header label (case-insensitive)
// and returns its samples with the sampling rate.
func ReadChannel(r io.ReadSeeker, label string) ([]float64, float64, error) {
	ci, err := readChannelInfo(r)
	if err != nil {
		return nil, 0, err
	}
	i, err := ci.indexOf(label)
	if err != nil {
		return nil, 0, err
	}
	samples, err := drainSignal(r, i)
	if err != nil {
		return nil, 0, err
	}
	return samples, ci.rate(i), nil
}

// LoadSignal reads one channel by index from an EDF file on disk.
func LoadSignal(path string, signalIndex int) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("edfio: %w", err)
	}
	defer f.Close()
	return ReadSignal(f, signalIndex)
}

// LoadChannel reads one channel by label from an EDF file on disk.
func LoadChannel(path, label string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("edfio: %w", err)
	}
	defer f.Close()
	return ReadChannel(f, label)
}
