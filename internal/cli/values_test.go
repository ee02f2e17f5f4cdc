package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/promptkit/promptkit/template"
)

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		varType template.VarType
		want    any
		wantErr bool
	}{
		{name: "text passthrough", raw: "hello world", varType: template.TypeText, want: "hello world"},
		{name: "undeclared passthrough", raw: "42", varType: "", want: "42"},
		{name: "select passthrough", raw: "high", varType: template.TypeSelect, want: "high"},
		{name: "number", raw: "3.5", varType: template.TypeNumber, want: 3.5},
		{name: "number trimmed", raw: " 7 ", varType: template.TypeNumber, want: 7.0},
		{name: "bad number", raw: "abc", varType: template.TypeNumber, wantErr: true},
		{name: "bool true", raw: "true", varType: template.TypeBoolean, want: true},
		{name: "bool yes upper", raw: "YES", varType: template.TypeBoolean, want: true},
		{name: "bool off", raw: "off", varType: template.TypeBoolean, want: false},
		{name: "bad bool", raw: "maybe", varType: template.TypeBoolean, wantErr: true},
		{name: "bad date", raw: "not a date", varType: template.TypeDate, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceValue(tt.raw, tt.varType)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCoerceValueDate(t *testing.T) {
	got, err := coerceValue("2026-03-01", template.TypeDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsed, ok := got.(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", got)
	}
	if parsed.Year() != 2026 || parsed.Month() != time.March || parsed.Day() != 1 {
		t.Errorf("unexpected date: %v", parsed)
	}
}

func TestParseVarFlags(t *testing.T) {
	variables := []template.Variable{
		{Name: "COUNT", Type: template.TypeNumber},
		{Name: "RUSH", Type: template.TypeBoolean},
	}

	values, err := parseVarFlags([]string{"count=3", "RUSH=yes", "name=Ann"}, variables)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["COUNT"] != 3.0 {
		t.Errorf("expected COUNT 3, got %v", values["COUNT"])
	}
	if values["RUSH"] != true {
		t.Errorf("expected RUSH true, got %v", values["RUSH"])
	}
	if values["NAME"] != "Ann" {
		t.Errorf("expected NAME Ann, got %v", values["NAME"])
	}
}

func TestParseVarFlagsRejectsMalformed(t *testing.T) {
	if _, err := parseVarFlags([]string{"noequals"}, nil); err == nil {
		t.Fatal("expected error for pair without =")
	}
	if _, err := parseVarFlags([]string{"=value"}, nil); err == nil {
		t.Fatal("expected error for empty name")
	}

	_, err := parseVarFlags([]string{"COUNT=abc"}, []template.Variable{{Name: "COUNT", Type: template.TypeNumber}})
	if err == nil {
		t.Fatal("expected coercion error")
	}
	if !strings.Contains(err.Error(), "COUNT") {
		t.Errorf("expected error to name the variable, got %v", err)
	}
}

func TestBuildValues(t *testing.T) {
	dir := t.TempDir()
	valuesPath := filepath.Join(dir, "values.yaml")
	content := "name: Ann\ncount: 2\n"
	if err := os.WriteFile(valuesPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write values file: %v", err)
	}

	variables := []template.Variable{{Name: "COUNT", Type: template.TypeNumber}}
	values, err := buildValues(valuesPath, []string{"count=5"}, variables)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if values["NAME"] != "Ann" {
		t.Errorf("expected NAME from file, got %v", values["NAME"])
	}
	if values["COUNT"] != 5.0 {
		t.Errorf("expected --var to win over the file, got %v", values["COUNT"])
	}
}

func TestBuildValuesMissingFile(t *testing.T) {
	_, err := buildValues(filepath.Join(t.TempDir(), "absent.yaml"), nil, nil)
	if err == nil {
		t.Fatal("expected error for missing values file")
	}
}

func TestMissingOptions(t *testing.T) {
	opts, err := missingOptions("highlight")
	if err != nil || opts.KeepMissing || opts.FailOnMissing {
		t.Errorf("highlight: expected zero options, got %+v, err %v", opts, err)
	}

	opts, err = missingOptions("keep")
	if err != nil || !opts.KeepMissing {
		t.Errorf("keep: expected KeepMissing, got %+v, err %v", opts, err)
	}

	opts, err = missingOptions("fail")
	if err != nil || !opts.FailOnMissing {
		t.Errorf("fail: expected FailOnMissing, got %+v, err %v", opts, err)
	}

	if _, err = missingOptions("explode"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
