package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dgnsrekt/fftpricer/internal/api"
	"github.com/dgnsrekt/fftpricer/internal/config"
	"github.com/dgnsrekt/fftpricer/internal/report"
	"github.com/dgnsrekt/fftpricer/internal/server"
)

// execute runs the root command with a clean set of package flags.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FFTPRICER_CONFIG", "")
	cfgFile, verbose, outputPath, remoteURL = "", false, "", ""

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBSSingleCombination(t *testing.T) {
	out, err := execute(t, "bs", "--alpha", "1.5", "--eta", "0.25", "--n", "10", "--reference")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Model = Black-Scholes", lines[0])
	assert.Equal(t, report.TableHeader, lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "0.25\t2^10\t1.50\t3.03"), lines[2])
	assert.Equal(t, "analytic put = 2.9264", lines[3])
}

func TestBSSweepsOmittedParameters(t *testing.T) {
	out, err := execute(t, "bs", "--eta", "0.25", "--n", "10")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// banner + header + one row per default alpha
	assert.Len(t, lines, 2+6)
}

func TestFailedCombinationsProduceNoRows(t *testing.T) {
	out, err := execute(t, "bs", "--n", "25")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "combinations failed")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"Model = Black-Scholes", report.TableHeader}, lines)
}

func TestInvalidModelParameters(t *testing.T) {
	_, err := execute(t, "heston", "--kappa=-1")
	require.Error(t, err)

	_, err = execute(t, "bs", "--k=-80")
	require.Error(t, err)
}

func TestJSONLOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vg.jsonl")

	out, err := execute(t, "vg", "--alpha", "1.5", "--eta", "0.25", "--n", "10", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var row report.Row
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &row))
	assert.Equal(t, "vg", row.Model)
	require.NotNil(t, row.Put)
	assert.Greater(t, *row.Put, 0.0)
}

func TestRemotePricing(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	ts := httptest.NewServer(server.NewRouter(server.NewServer(cfg, zap.NewNop()), zap.NewNop()))
	defer ts.Close()

	local, err := execute(t, "bs", "--eta", "0.25", "--n", "10")
	require.NoError(t, err)

	remote, err := execute(t, "bs", "--eta", "0.25", "--n", "10", "--remote", ts.URL)
	require.NoError(t, err)

	assert.Equal(t, local, remote)
}

func TestBatchFromResponse(t *testing.T) {
	put := 3.0376
	batch := batchFromResponse(&api.SweepResponse{
		RunID: "run",
		Rows: []api.SweepRow{
			{Eta: 0.25, N: 10, Alpha: 1.5, Put: &put},
			{Eta: 0.25, N: 25, Alpha: 1.5, Error: "n too large"},
			{Eta: 0.1, N: 6, Alpha: 1.5},
		},
	})

	assert.Equal(t, "run", batch.RunID)
	assert.Equal(t, 3, batch.Total)
	assert.Equal(t, 1, batch.Success)
	assert.Equal(t, 2, batch.Failed)
	assert.Len(t, batch.Errors, 2)
	assert.Equal(t, put, batch.Results[0].Quote.Put)
	assert.EqualError(t, batch.Results[1].Error, "n too large")
}
