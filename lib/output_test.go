package lib

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockFlag struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

func (m MockFlag) String() string {
	return "--" + m.Name + "=" + m.Value
}

func (m MockFlag) Pretty() string {
	return fmt.Sprintf("Name: %s | Value: %s", m.Name, m.Value)
}

func (m MockFlag) TableHeaders() []string {
	return []string{"Name", "Value"}
}

func (m MockFlag) TableRow() []string {
	return []string{m.Name, m.Value}
}

func TestFormatOutput(t *testing.T) {
	data := []MockFlag{
		{Name: "window-size", Value: "1920,1080"},
		{Name: "headless", Value: "new"},
	}

	tests := []struct {
		format FormatType
		output string
		hasErr bool
	}{
		{Text, "--window-size=1920,1080\n--headless=new", false},
		{Pretty, "Name: window-size | Value: 1920,1080\nName: headless | Value: new", false},
		{JSON, `[
  {
    "name": "window-size",
    "value": "1920,1080"
  },
  {
    "name": "headless",
    "value": "new"
  }
]`, false},
		{FormatType("unknown"), "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			result, err := FormatOutput(data, tt.format)
			if (err != nil) != tt.hasErr {
				t.Errorf("expected error %v, got %v", tt.hasErr, err)
			}
			if result != tt.output {
				t.Errorf("expected output %q, got %q", tt.output, result)
			}
		})
	}
}

func TestFormatOutputTable(t *testing.T) {
	data := []MockFlag{{Name: "window-size", Value: "1920,1080"}}
	result, err := FormatOutput(data, Table)
	assert.NoError(t, err)
	assert.Contains(t, result, "NAME")
	assert.Contains(t, result, "window-size")
	assert.Contains(t, result, "1920,1080")
	assert.True(t, strings.HasPrefix(result, "+"))
}

func TestFormatOutputYAML(t *testing.T) {
	data := []MockFlag{{Name: "window-size", Value: "1920,1080"}}
	result, err := FormatOutput(data, YAML)
	assert.NoError(t, err)
	assert.Contains(t, result, "name: window-size")
	assert.Contains(t, result, "value: 1920,1080")
}

func TestParseFormatType(t *testing.T) {
	f, err := ParseFormatType("JSON")
	assert.NoError(t, err)
	assert.Equal(t, JSON, f)

	_, err = ParseFormatType("xml")
	assert.Error(t, err)
}
