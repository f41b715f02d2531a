package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/faraday/internal/config"
	"github.com/verte-zerg/faraday/internal/logging"
	"github.com/verte-zerg/faraday/internal/model"
)

func TestConfigTemplateDecodes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	var lines []string
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
		}
		lines = append(lines, line)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Lab.Turns == nil || *cfg.Lab.Turns != defaultTurns {
		t.Fatalf("expected turns %d, got %v", defaultTurns, cfg.Lab.Turns)
	}
	if cfg.Lab.Material == nil || *cfg.Lab.Material != model.ReferenceMaterial {
		t.Fatalf("expected material %q, got %v", model.ReferenceMaterial, cfg.Lab.Material)
	}
	if cfg.Export.Dir == nil || *cfg.Export.Dir == "" {
		t.Fatalf("expected export dir")
	}
}

func TestValidateSettings(t *testing.T) {
	valid := labSettings{
		lab:    model.DefaultLabConfig(),
		volume: 0.5,
		log:    logging.DefaultConfig(""),
	}
	if err := validateSettings(valid); err != nil {
		t.Fatalf("expected valid settings, got %v", err)
	}
	stepped := valid
	stepped.lab.Strength = 2.5
	if err := validateSettings(stepped); err != nil {
		t.Fatalf("expected strength 2.5 to be accepted, got %v", err)
	}

	cases := map[string]func(*labSettings){
		"turns":         func(s *labSettings) { s.lab.Turns = 11 },
		"strength":      func(s *labSettings) { s.lab.Strength = 0.1 },
		"strength-step": func(s *labSettings) { s.lab.Strength = 1.3 },
		"material":      func(s *labSettings) { s.lab.Material = "gold" },
		"volume":        func(s *labSettings) { s.volume = 1.5 },
		"log":           func(s *labSettings) { s.log.MaxAge = -1 },
	}
	for name, mutate := range cases {
		s := valid
		mutate(&s)
		if err := validateSettings(s); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestWriteMaterials(t *testing.T) {
	var buf bytes.Buffer
	if err := writeMaterials(&buf); err != nil {
		t.Fatalf("write materials: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(model.MaterialNames())+1 {
		t.Fatalf("expected header plus %d rows, got %d", len(model.MaterialNames()), len(lines))
	}
	if !strings.HasPrefix(lines[2], "copper") || !strings.HasSuffix(lines[2], "1.00") {
		t.Fatalf("unexpected copper row %q", lines[2])
	}
}

func TestPrintDemoReport(t *testing.T) {
	points := []model.HistoryPoint{
		{Time: 0.5, Current: 0.1, FluxRate: 0.01, Distance: 30},
		{Time: 1.0, Current: 1.2, FluxRate: 0.12, Distance: 12},
		{Time: 1.5, Current: 0.4, FluxRate: 0.04, Distance: 5},
	}
	var buf bytes.Buffer
	if err := printDemoReport(&buf, points); err != nil {
		t.Fatalf("print report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Summary", "Peak current", "Time (s)", "1.200"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}
