package lib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"gopkg.in/yaml.v3"
)

type FormatType string

const (
	Pretty FormatType = "pretty"
	Text   FormatType = "text"
	JSON   FormatType = "json"
	YAML   FormatType = "yaml"
	Table  FormatType = "table"
)

// ParseFormatType maps a CLI value to a FormatType.
func ParseFormatType(s string) (FormatType, error) {
	switch f := FormatType(strings.ToLower(s)); f {
	case Pretty, Text, JSON, YAML, Table:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format: %v", s)
	}
}

type Formattable interface {
	String() string
	Pretty() string
	TableHeaders() []string
	TableRow() []string
}

func FormatOutput[T Formattable](data []T, format FormatType) (string, error) {
	switch format {
	case Text:
		lines := make([]string, 0, len(data))
		for _, item := range data {
			lines = append(lines, item.String())
		}
		return strings.Join(lines, "\n"), nil
	case Pretty:
		lines := make([]string, 0, len(data))
		for _, item := range data {
			lines = append(lines, item.Pretty())
		}
		return strings.Join(lines, "\n"), nil
	case JSON:
		j, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(j), nil
	case YAML:
		y, err := yaml.Marshal(data)
		if err != nil {
			return "", err
		}
		return string(y), nil
	case Table:
		rows := make([][]string, 0, len(data))
		for _, item := range data {
			rows = append(rows, item.TableRow())
		}

		buffer := new(bytes.Buffer)
		table := tablewriter.NewWriter(buffer)
		if len(data) > 0 {
			table.SetHeader(data[0].TableHeaders())
		}
		table.SetBorder(true)
		table.SetAutoWrapText(false)
		table.AppendBulk(rows)
		table.Render()

		return buffer.String(), nil
	default:
		return "", fmt.Errorf("unknown format: %v", format)
	}
}
