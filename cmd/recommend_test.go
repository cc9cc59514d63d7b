package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/mowradar/internal/model"
)

func TestRecommendCommand_Execute(t *testing.T) {
	// Run from an empty directory so no config.yaml or .env is picked up.
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"recommend",
		"--temp", "90",
		"--forecast", "Hot", "--forecast", "Dry", "--forecast", "Sunny",
		"--flowerbeds=false",
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	var got recommendation
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []model.Service{
		model.ServiceBushTrimming,
		model.ServiceLawnTreatment,
		model.ServiceMosquitoTreatment,
	}, got.Services)
	assert.Equal(t, []string{"heat", "dry"}, got.Rules)
}
