package cli_test

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnlab/churnlab/internal/config"
	"github.com/churnlab/churnlab/internal/dataset"
)

const telcoCSV = "customerID,gender,tenure,Churn\n7590-VHVEG,Female,1,No\n"

func telcoZip(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("WA_Fn-UseC_-Telco-Customer-Churn.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte(telcoCSV))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newDatasetServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	payload := telcoZip(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/datasets/download/blastchar/telco-customer-churn" {
			http.NotFound(w, r)
			return
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDatasetFetch(t *testing.T) {
	root := newWorkspace(t)
	server := newDatasetServer(t, http.StatusOK)
	writeSettings(t, root, fmt.Sprintf("dataset:\n  base_url: %s/api/v1\n", server.URL))

	out, _, err := execute(t, root, "dataset", "fetch")
	require.NoError(t, err)
	assert.Contains(t, out, "Fetching blastchar/telco-customer-churn")
	assert.Contains(t, out, "data_path set to ../Data/telco_customer_churn.csv")

	data, err := os.ReadFile(filepath.Join(root, config.DefaultDatasetDestination))
	require.NoError(t, err)
	assert.Equal(t, telcoCSV, string(data))

	store := config.NewAnalysisStore(
		filepath.Join(root, config.DefaultAnalysisConfig),
		filepath.Join(root, config.DefaultDataPathBase),
	)
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "../Data/telco_customer_churn.csv", got.DataPath)
	assert.Equal(t, "Churn", got.TargetVariable)
}

func TestDatasetFetch_MissingAnalysisConfig(t *testing.T) {
	setupCLITest(t)
	root := t.TempDir()
	server := newDatasetServer(t, http.StatusOK)
	writeSettings(t, root, fmt.Sprintf("dataset:\n  base_url: %s/api/v1\n", server.URL))

	out, errOut, err := execute(t, root, "dataset", "fetch")
	require.NoError(t, err, "a missing analysis configuration is not fatal")
	assert.Contains(t, out, "Dataset copied to")
	assert.Contains(t, errOut, "data_path not updated")

	_, statErr := os.Stat(filepath.Join(root, config.DefaultDatasetDestination))
	require.NoError(t, statErr)
}

func TestDatasetFetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		args    []string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: dataset.ErrDatasetNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: dataset.ErrUnauthorized},
		{name: "invalid handle", status: http.StatusOK, args: []string{"--handle", "noslash"}, wantErr: dataset.ErrInvalidHandle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newWorkspace(t)
			server := newDatasetServer(t, tt.status)
			writeSettings(t, root, fmt.Sprintf("dataset:\n  base_url: %s/api/v1\n", server.URL))

			_, _, err := execute(t, root, append([]string{"dataset", "fetch"}, tt.args...)...)
			require.ErrorIs(t, err, tt.wantErr)

			_, statErr := os.Stat(filepath.Join(root, config.DefaultDatasetDestination))
			assert.True(t, os.IsNotExist(statErr), "nothing is installed on failure")
		})
	}
}
