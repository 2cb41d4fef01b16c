package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/unclebandit/campaign-studio-backend/internal/model"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBrandCmd(t *testing.T) {
	out, err := run(t, "", "brand", "Pixel 9 Pro")
	require.NoError(t, err)
	assert.Equal(t, "Google\n", out)
}

func TestDateCmd_MonthBucket(t *testing.T) {
	out, err := run(t, "", "date", "early_month", "--index", "3")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "-04"), out)
}

func TestStatusCmd_RejectsBadDate(t *testing.T) {
	_, err := run(t, "", "status", "19/10/2026")
	assert.Error(t, err)
}

func TestGenerateCmd_OfflineFromStdin(t *testing.T) {
	t.Chdir(t.TempDir())

	req := `{
	  "product": {"name": "Kindle Paperwhite"},
	  "strategy": {"description": "Holiday reading"},
	  "weeklySchedule": [
	    {"day": "today", "time": "08:00", "type": "Popup Campaign", "audience": "Readers", "theme": "Cozy"},
	    {"day": "mid_month", "time": "19:00", "type": "Premium Drop", "audience": "Readers", "theme": "Gift"}
	  ]
	}`

	out, err := run(t, req, "generate", "--offline")
	require.NoError(t, err)

	var cards []model.CampaignCard
	require.NoError(t, json.Unmarshal([]byte(out), &cards))
	require.Len(t, cards, 2)
	for _, c := range cards {
		assert.Equal(t, "Amazon", c.Brand)
		assert.Equal(t, model.SourceFallback, c.Source)
	}
	assert.Equal(t, model.StatusScheduled, cards[0].Status)
}

func TestGenerateCmd_YAMLInOut(t *testing.T) {
	t.Chdir(t.TempDir())

	req := `
product:
  name: Surface Laptop 7
strategy:
  description: Back to school
weeklySchedule:
  - day: Friday
    time: "10:00"
    type: Follow-up
    audience: Students
    theme: Study
`

	out, err := run(t, req, "generate", "--offline", "-o", "yaml")
	require.NoError(t, err)

	var cards []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "Microsoft", cards[0]["brand"])
	assert.Equal(t, "Friday", cards[0]["day"])
	assert.Equal(t, "fallback", cards[0]["source"])
}

func TestGenerateCmd_RejectsUnknownOutput(t *testing.T) {
	_, err := run(t, `{"product":{"name":"x"}}`, "generate", "--offline", "-o", "xml")
	assert.Error(t, err)
}

func TestReadGenerateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"product":{"name":"Switch 2"},"strategy":{},"weeklySchedule":[]}`), 0o600))

	req, err := readGenerateFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Switch 2", req.Product.Name)

	_, err = readGenerateFile("-", strings.NewReader(`{"product":{}}`))
	assert.Error(t, err)

	_, err = readGenerateFile(filepath.Join(dir, "missing.json"), nil)
	assert.Error(t, err)
}
