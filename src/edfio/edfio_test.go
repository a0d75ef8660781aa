package edfio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OpenPSG/edf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestEDF creates a two-record EDF file with an EDA channel holding a
// slow ramp and a second marker channel, and returns its path.
func writeTestEDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eda.edf")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, f.Close())
	})

	hdr := edf.Header{
		Version:            edf.Version0,
		PatientID:          "Subject 01",
		RecordingID:        "EDA session",
		StartTime:          time.Now(),
		DataRecordDuration: time.Second,
		SignalCount:        2,
		Signals: []edf.SignalHeader{
			{
				Label:             "EDA",
				TransducerType:    "GSR electrode",
				PhysicalDimension: "uS",
				PhysicalMin:       0,
				PhysicalMax:       100,
				DigitalMin:        -32768,
				DigitalMax:        32767,
				SamplesPerRecord:  128,
			},
			{
				Label:             "Marker",
				PhysicalDimension: "",
				PhysicalMin:       0,
				PhysicalMax:       1,
				DigitalMin:        -32768,
				DigitalMax:        32767,
				SamplesPerRecord:  32,
			},
		},
	}
	ew, err := edf.Create(f, hdr)
	require.NoError(t, err)

	for rec := 0; rec < 2; rec++ {
		eda := make([]float64, 128)
		for i := range eda {
			eda[i] = float64(rec*128+i) * 0.1
		}
		markers := make([]float64, 32)
		require.NoError(t, ew.WriteRecord([][]float64{eda, markers}))
	}
	require.NoError(t, ew.Close())
	return path
}

func TestLoadSignalReadsAllRecords(t *testing.T) {
	path := writeTestEDF(t)
	samples, rate, err := LoadSignal(path, 0)
	require.NoError(t, err)
	require.Len(t, samples, 256)
	// 128 samples per one-second record.
	assert.InDelta(t, 128.0, rate, 1e-9)
	// Quantization through the digital representation allows small error.
	assert.InDelta(t, 0.0, samples[0], 0.01)
	assert.InDelta(t, 12.8, samples[128], 0.01)
	assert.InDelta(t, 25.5, samples[255], 0.01)
}

func TestLoadChannelByLabel(t *testing.T) {
	path := writeTestEDF(t)
	samples, rate, err := LoadChannel(path, "EDA")
	require.NoError(t, err)
	require.Len(t, samples, 256)
	assert.InDelta(t, 128.0, rate, 1e-9)
	assert.InDelta(t, 12.8, samples[128], 0.01)
}

func TestLoadChannelLabelCaseInsensitive(t *testing.T) {
	path := writeTestEDF(t)
	samples, rate, err := LoadChannel(path, "eda")
	require.NoError(t, err)
	require.Len(t, samples, 256)
	assert.InDelta(t, 128.0, rate, 1e-9)
}

func TestLoadChannelRatePerChannel(t *testing.T) {
	path := writeTestEDF(t)
	samples, rate, err := LoadChannel(path, "Marker")
	require.NoError(t, err)
	require.Len(t, samples, 64)
	assert.InDelta(t, 32.0, rate, 1e-9)
}

func TestLoadChannelUnknownLabel(t *testing.T) {
	path := writeTestEDF(t)
	_, _, err := LoadChannel(path, "ECG")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ECG")
	assert.Contains(t, err.Error(), "EDA")
}

func TestLoadSignalBadIndex(t *testing.T) {
	path := writeTestEDF(t)
	_, _, err := LoadSignal(path, 3)
	require.Error(t, err)
}

func TestLoadSignalMissingFile(t *testing.T) {
	_, _, err := LoadSignal(filepath.Join(t.TempDir(), "absent.edf"), 0)
	require.Error(t, err)
}
