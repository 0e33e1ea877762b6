package e2e_test

import (
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mcncl/dataconv/internal/jsoncodec"
	"github.com/mcncl/dataconv/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convert(t testing.TB, input, output string, extra ...string) {
	t.Helper()
	args := append([]string{"run", "../../main.go", "-i", input, "-o", output}, extra...)
	cmd := exec.Command("go", args...)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(out))
}

// TestEndToEnd_FormatChain sends nested data through JSON -> XML -> JSON and
// flat data through JSON -> CSV -> XML.
func TestEndToEnd_FormatChain(t *testing.T) {
	tempDir := t.TempDir()

	jsonContent := `[
		{
			"id": 12345,
			"uuid": "550e8400-e29b-41d4-a716-446655440000",
			"updated_at": null,
			"config": {
				"enabled": true,
				"timeout_seconds": 30,
				"features": ["logging", "metrics", "alerting"],
				"rate_limits": {"per_second": 100, "burst": 150}
			},
			"users": [
				{"id": 1, "name": "Alice", "roles": ["admin", "user"]},
				{"id": 2, "name": "Bob", "roles": ["user"]}
			],
			"stats": {
				"requests": 12345678901,
				"success_rate": 0.9999,
				"response_times": [0.045, 0.067, 0.032]
			},
			"active": true
		},
		{"id": 2, "note": "Tom & Jerry <friends>"}
	]`
	source := filepath.Join(tempDir, "source.json")
	require.NoError(t, os.WriteFile(source, []byte(jsonContent), 0o644))

	xmlFile := filepath.Join(tempDir, "step1.xml")
	back := filepath.Join(tempDir, "step2.json")
	convert(t, source, xmlFile)
	convert(t, xmlFile, back)

	want, err := jsoncodec.ParseString(jsonContent)
	require.NoError(t, err)
	data, err := os.ReadFile(back)
	require.NoError(t, err)
	got, err := jsoncodec.ParseBytes(data)
	require.NoError(t, err)
	assert.True(t, models.RecordsEqual(want, got), "JSON -> XML -> JSON changed the data:\n%s", string(data))

	flat := filepath.Join(tempDir, "flat.json")
	require.NoError(t, os.WriteFile(flat, []byte(`[{"name":"Ann","score":9.5},{"name":"Bo","ok":false}]`), 0o644))
	csvFile := filepath.Join(tempDir, "flat.csv")
	xmlOut := filepath.Join(tempDir, "flat.xml")
	convert(t, flat, csvFile)
	convert(t, csvFile, xmlOut)

	content, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.Equal(t, "name,ok,score\nAnn,,9.5\nBo,false,\n", string(content))

	content, err = os.ReadFile(xmlOut)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<name>Bo</name>\n    <ok>false</ok>\n    <score></score>")
}

// TestEndToEnd_EdgeCases converts unusual JSON inputs to XML
func TestEndToEnd_EdgeCases(t *testing.T) {
	testCases := []struct {
		name     string
		json     string
		expected string
		isError  bool
	}{
		{
			name:     "EmptyObject",
			json:     `{}`,
			expected: "<records>\n  <record></record>\n</records>",
		},
		{
			name:     "EmptyArray",
			json:     `[]`,
			expected: "<records></records>",
		},
		{
			name:    "SingleValue",
			json:    `"just a string"`,
			isError: true,
		},
		{
			name:    "SingleNumber",
			json:    `42`,
			isError: true,
		},
		{
			name:    "InvalidJSON",
			json:    `{"name": "Invalid JSON",}`,
			isError: true,
		},
		{
			name:     "DeeplyNestedObject",
			json:     `{"level1":{"level2":{"level3":{"level4":{"level5":{"value":42}}}}}}`,
			expected: "<value>42</value>",
		},
		{
			name:     "ArrayOfScalars",
			json:     `[1, "two", null]`,
			expected: "<record></record>\n  <record></record>\n  <record></record>",
		},
		{
			name:     "NestedLists",
			json:     `{"grid":[[1,2],[3]]}`,
			expected: "<grid>\n      <item>\n        <item>1</item>\n        <item>2</item>\n      </item>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(dir, "in.json")
			output := filepath.Join(dir, "out.xml")
			require.NoError(t, os.WriteFile(input, []byte(tc.json), 0o644))

			cmd := exec.Command("go", "run", "../../main.go", "-i", input, "-o", output)
			out, err := cmd.CombinedOutput()

			if tc.isError {
				assert.Error(t, err, "Expected an error for %s", tc.name)
				assert.NoFileExists(t, output)
				return
			}
			require.NoError(t, err, "Unexpected error for %s: %s", tc.name, string(out))
			content, err := os.ReadFile(output)
			require.NoError(t, err)
			assert.Contains(t, string(content), tc.expected, "Expected output not found for %s", tc.name)
		})
	}
}

func generateLargeJSON(t testing.TB, filePath string, itemCount int) {
	// Seed random for reproducible results
	rng := rand.New(rand.NewSource(42))

	items := make([]map[string]interface{}, itemCount)
	for i := 0; i < itemCount; i++ {
		items[i] = map[string]interface{}{
			"id":          i + 1,
			"guid":        fmt.Sprintf("%x-%x-%x", rng.Uint32(), rng.Uint32()&0xffff, rng.Uint32()),
			"name":        fmt.Sprintf("Item %d", i+1),
			"description": fmt.Sprintf("This is item number %d in the test dataset", i+1),
			"created_at":  time.Now().Add(-time.Duration(rng.Intn(10000)) * time.Hour).Format(time.RFC3339),
			"price":       rng.Float64() * 1000,
			"quantity":    rng.Intn(100),
			"active":      rng.Intn(2) == 1,
			"tags":        []string{"tag1", "tag2", "tag3"}[0 : rng.Intn(3)+1],
			"metadata": map[string]interface{}{
				"source":   "test",
				"priority": rng.Intn(5) + 1,
				"score":    rng.Float64(),
			},
		}
	}

	jsonData, err := json.MarshalIndent(items, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filePath, jsonData, 0o644))
}

// TestEndToEnd_LargeFile converts a generated file to every other format
func TestEndToEnd_LargeFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large file conversion in short mode")
	}

	dir := t.TempDir()
	source := filepath.Join(dir, "large.json")
	generateLargeJSON(t, source, 2000)

	for _, ext := range []string{"xml", "csv"} {
		output := filepath.Join(dir, "large."+ext)
		convert(t, source, output)
		info, err := os.Stat(output)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
