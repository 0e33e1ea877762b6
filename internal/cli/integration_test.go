package cli_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// TestCLI_JSONToXML converts a JSON file to XML through the binary
func TestCLI_JSONToXML(t *testing.T) {
	tempDir := t.TempDir()

	jsonContent := `{
		"name": "John Doe",
		"age": 30,
		"email": "john.doe@example.com",
		"address": {
			"street": "123 Main St",
			"city": "Anytown"
		},
		"phones": [
			{"type": "home", "number": "555-1234"},
			{"type": "work", "number": "555-5678"}
		],
		"active": true
	}`
	jsonFile := filepath.Join(tempDir, "test.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(jsonContent), 0o644))
	outputFile := filepath.Join(tempDir, "output.xml")

	output, err := runCLI(t, "-i", jsonFile, "-o", outputFile)
	require.NoError(t, err, "CLI command failed: %s", output)
	assert.Contains(t, output, "Converted 1 record(s)")

	generated, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	xml := string(generated)
	assert.True(t, strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, xml, "<age>30</age>")
	assert.Contains(t, xml, "<street>123 Main St</street>")
	assert.Regexp(t, `<phones>\s*<item>\s*<type>home</type>`, xml)
	assert.Contains(t, xml, "<active>true</active>")
}

// TestCLI_CSVMapping checks that --csv-mapping drops the header row
func TestCLI_CSVMapping(t *testing.T) {
	tempDir := t.TempDir()

	jsonFile := filepath.Join(tempDir, "people.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(`[{"name":"Ann","age":41},{"name":"Bo"}]`), 0o644))

	withHeaders := filepath.Join(tempDir, "with.csv")
	output, err := runCLI(t, "-i", jsonFile, "-o", withHeaders)
	require.NoError(t, err, "CLI command failed: %s", output)

	withoutHeaders := filepath.Join(tempDir, "without.csv")
	output, err = runCLI(t, "-i", jsonFile, "-o", withoutHeaders, "--csv-mapping")
	require.NoError(t, err, "CLI command failed: %s", output)

	negated := filepath.Join(tempDir, "negated.csv")
	output, err = runCLI(t, "--input", jsonFile, "--output", negated, "--no-headers")
	require.NoError(t, err, "CLI command failed: %s", output)

	content, err := os.ReadFile(withHeaders)
	require.NoError(t, err)
	assert.Equal(t, "age,name\n41,Ann\n,Bo\n", string(content))

	for _, p := range []string{withoutHeaders, negated} {
		content, err = os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "41,Ann\n,Bo\n", string(content))
	}
}

// TestCLI_ConfigFile uses a config file passed with --config
func TestCLI_ConfigFile(t *testing.T) {
	tempDir := t.TempDir()

	configFile := filepath.Join(tempDir, "dataconv.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("xml:\n  declaration: false\n  indent: \"\"\n"), 0o644))

	csvFile := filepath.Join(tempDir, "in.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte("a,b\n1,\n"), 0o644))
	xmlFile := filepath.Join(tempDir, "out.xml")

	output, err := runCLI(t, "-i", csvFile, "-o", xmlFile, "--config", configFile)
	require.NoError(t, err, "CLI command failed: %s", output)

	content, err := os.ReadFile(xmlFile)
	require.NoError(t, err)
	assert.Equal(t, "<records><record><a>1</a><b></b></record></records>\n", string(content))
}

// TestCLI_InvalidInput checks that malformed input exits non-zero with a message
func TestCLI_InvalidInput(t *testing.T) {
	tempDir := t.TempDir()

	xmlFile := filepath.Join(tempDir, "broken.xml")
	require.NoError(t, os.WriteFile(xmlFile, []byte("<records><record>"), 0o644))
	outputFile := filepath.Join(tempDir, "out.json")

	output, err := runCLI(t, "-i", xmlFile, "-o", outputFile)
	assert.Error(t, err)
	assert.Contains(t, output, "Format error")
	assert.NoFileExists(t, outputFile)
}

func TestCLI_UnsupportedExtension(t *testing.T) {
	tempDir := t.TempDir()

	inputFile := filepath.Join(tempDir, "data.txt")
	require.NoError(t, os.WriteFile(inputFile, []byte("hello"), 0o644))

	output, err := runCLI(t, "-i", inputFile, "-o", filepath.Join(tempDir, "out.json"))
	assert.Error(t, err)
	assert.Contains(t, output, "Unsupported file format")
}

func TestCLI_MissingInputFile(t *testing.T) {
	tempDir := t.TempDir()

	output, err := runCLI(t, "-i", filepath.Join(tempDir, "nope.json"), "-o", filepath.Join(tempDir, "out.xml"))
	assert.Error(t, err)
	assert.Contains(t, output, "Input error")
	assert.Contains(t, output, "does not exist")
}

func TestCLI_MissingFlags(t *testing.T) {
	output, err := runCLI(t, "-o", "out.xml")
	assert.Error(t, err)
	assert.Contains(t, output, "--input")
}

func TestCLI_Version(t *testing.T) {
	output, err := runCLI(t, "-v")
	require.NoError(t, err)
	assert.Contains(t, output, "dataconv version")
}

func TestCLI_Help(t *testing.T) {
	output, err := runCLI(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "--input")
	assert.Contains(t, output, "--csv-mapping")
	assert.Contains(t, output, "--[no-]headers")
}
