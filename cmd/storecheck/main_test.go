package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-store-check/internal/model"
	"creator-store-check/internal/revenue"
	"creator-store-check/internal/storetest"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("STORECHECK_STORE_DIR", "")
	t.Setenv("STORECHECK_OUT_DIR", "")
	base := []string{"--no-color", "--config", filepath.Join(t.TempDir(), "none.yaml")}

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), append(base, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestFee_JSON(t *testing.T) {
	code, out, _ := runCLI(t, "fee", "14.99", "--json")
	require.Equal(t, 0, code)

	var sales []revenue.Sale
	require.NoError(t, json.Unmarshal([]byte(out), &sales))
	require.Len(t, sales, 1)
	assert.InDelta(t, 0.73471, sales[0].Fee, 1e-9)
	assert.InDelta(t, 14.25529, sales[0].CreatorNet, 1e-9)
	assert.InDelta(t, 95.099, sales[0].SharePercent, 1e-3)
}

func TestFee_Table(t *testing.T) {
	code, out, _ := runCLI(t, "fee", "$10")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "$0.59")
	assert.Contains(t, out, "$9.41")
	assert.Contains(t, out, "Fees: 2.9% + $0.30 per sale")
}

func TestFee_InvalidPrice(t *testing.T) {
	code, _, errOut := runCLI(t, "fee", "ten")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `invalid price "ten"`)
}

func TestFee_NonFinitePrice(t *testing.T) {
	for _, arg := range []string{"NaN", "Inf", "-Inf", "$+Inf"} {
		t.Run(arg, func(t *testing.T) {
			code, out, errOut := runCLI(t, "fee", arg)
			assert.Equal(t, 1, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, "invalid price")
		})
	}
}

func TestRun_CIPassing(t *testing.T) {
	cfg := storetest.Complete(t)
	code, out, _ := runCLI(t, "--store", cfg.StoreDir, "run", "--ci")
	require.Equal(t, 0, code, out)

	var s model.RunSummary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "PASSED", s.Status)
	assert.Equal(t, 6, s.Passed)
	assert.Equal(t, model.VerdictReady, s.Verdict)
	assert.Equal(t, "FIRST_RUN", s.Trend)
	assert.FileExists(t, s.Report)
}

func TestRoot_DefaultsToRunAndFailsOnEmptyStore(t *testing.T) {
	store := t.TempDir()
	code, out, _ := runCLI(t, "--store", store, "--out", t.TempDir())
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Testing Store Infrastructure...")
	assert.Contains(t, out, "index.html: FAIL")
	assert.Contains(t, out, "Tests Passed: 0/6")
	assert.Contains(t, out, "STATUS: NEEDS WORK")
	assert.Contains(t, out, "Detailed results saved:")
}

func TestHistory_AfterRuns(t *testing.T) {
	cfg := storetest.Complete(t)
	code, _, _ := runCLI(t, "--store", cfg.StoreDir, "run", "--ci")
	require.Equal(t, 0, code)

	code, out, _ := runCLI(t, "--store", cfg.StoreDir, "history")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "6/6")
	assert.Contains(t, out, string(model.VerdictReady))

	code, out, _ = runCLI(t, "--store", t.TempDir(), "history")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "No runs recorded")
}
