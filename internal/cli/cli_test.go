package cli_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/chronos-ledger/internal/cli"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_STORAGE", "memory")
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// ─── distribution ───────────────────────────────────────────────────────────

func TestDistribution_Tabla(t *testing.T) {
	out, err := run(t, "distribution", "--sale", "10000", "--purchase", "6300", "--qty", "10", "--paid", "40000")
	require.NoError(t, err)

	assert.Contains(t, out, "63000.00")
	assert.Contains(t, out, "5000.00")
	assert.Contains(t, out, "32000.00")
	assert.Contains(t, out, "100000.00")
	assert.Contains(t, out, "25200.00")
	assert.Contains(t, out, "margen neto: 32.00%")
}

func TestDistribution_JSON(t *testing.T) {
	out, err := run(t, "distribution", "--sale", "10000", "--purchase", "6300", "--qty", "10", "--paid", "40000", "--json")
	require.NoError(t, err)

	var rep struct {
		Distribution struct {
			BucketProfit string `json:"bucket_profit"`
			Total        string `json:"total"`
		} `json:"distribution"`
		Realized struct {
			CapitalFreight string `json:"capital_freight"`
		} `json:"realized"`
		Validation struct {
			Valid bool `json:"valid"`
		} `json:"validation"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "32000", rep.Distribution.BucketProfit)
	assert.Equal(t, "100000", rep.Distribution.Total)
	assert.Equal(t, "2000", rep.Realized.CapitalFreight)
	assert.True(t, rep.Validation.Valid)
}

func TestDistribution_MargenNegativoReportaError(t *testing.T) {
	out, err := run(t, "distribution", "--sale", "5000", "--purchase", "6300", "--qty", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "error:")
}

func TestDistribution_NumeroInvalido(t *testing.T) {
	_, err := run(t, "distribution", "--sale", "abc", "--qty", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--sale")
}

func TestDistribution_FaltaCantidad(t *testing.T) {
	_, err := run(t, "distribution", "--sale", "100")
	require.Error(t, err)
}

// ─── mantenimiento ──────────────────────────────────────────────────────────

func TestRecompute_CuentasNuevasConsistentes(t *testing.T) {
	out, err := run(t, "recompute")
	require.NoError(t, err)
	for _, id := range []string{"boveda_monte", "flete_sur", "utilidades"} {
		assert.Contains(t, out, id)
	}
	assert.NotContains(t, out, "diferencia\n")
}

func TestRecompute_CuentaInexistente(t *testing.T) {
	_, err := run(t, "recompute", "no-existe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-existe")
}

func TestReconcile_RegistraSobrante(t *testing.T) {
	out, err := run(t, "reconcile", "boveda_monte", "150.25", "--note", "corte")
	require.NoError(t, err)
	assert.Contains(t, out, "diferencia: 150.25")
	assert.Contains(t, out, "ajuste: income 150.25")
}

func TestReconcile_SinDiferencia(t *testing.T) {
	out, err := run(t, "reconcile", "utilidades", "0.005")
	require.NoError(t, err)
	assert.Contains(t, out, "diferencia: 0.00")
	assert.Contains(t, out, "sin ajuste")
}

func TestReconcile_ConteoNegativo(t *testing.T) {
	_, err := run(t, "reconcile", "utilidades", "--", "-5")
	require.Error(t, err)
}

func TestReconcile_ArgumentosIncompletos(t *testing.T) {
	_, err := run(t, "reconcile", "utilidades")
	require.Error(t, err)
}

func TestDebts_SinPartes(t *testing.T) {
	out, err := run(t, "debts")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "TIPO"))
}
