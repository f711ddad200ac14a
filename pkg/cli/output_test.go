package cli

import (
	"bytes"
	"errors"
	"testing"
)

type table struct{}

func (table) Header() []string { return []string{"file", "valid"} }
func (table) Rows() [][]string {
	return [][]string{{"a.tmpl", "true"}, {"b,c.tmpl", "false"}}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		allowed []OutputFormat
		want    OutputFormat
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "JSON", want: FormatJSON},
		{in: " csv ", want: FormatCSV},
		{in: "csv", allowed: []OutputFormat{FormatText, FormatJSON}, wantErr: true},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in, tt.allowed...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			var cfgErr *ConfigError
			if err != nil && !errors.As(err, &cfgErr) {
				t.Errorf("ParseFormat() error type = %T, want *ConfigError", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		name    string
		format  OutputFormat
		data    any
		want    string
		wantErr bool
	}{
		{name: "text", format: FormatText, data: "hello", want: "hello\n"},
		{name: "json", format: FormatJSON, data: map[string]int{"files": 2}, want: "{\n  \"files\": 2\n}\n"},
		{name: "csv", format: FormatCSV, data: table{}, want: "file,valid\na.tmpl,true\n\"b,c.tmpl\",false\n"},
		{name: "csv rejects non-tabular", format: FormatCSV, data: 42, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := NewFormatter(tt.format).FormatTo(&buf, tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatTo() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && buf.String() != tt.want {
				t.Errorf("FormatTo() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
