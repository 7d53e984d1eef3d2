// Command dashgen generates the Grafana overview dashboard and Prometheus
// rule files for amazon-sp-proxy from code, so panels and alerts stay in
// sync with the metrics the proxy exports.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mfigueredo/amazon-sp-proxy/tools/dashgen/dashboards"
	"github.com/mfigueredo/amazon-sp-proxy/tools/dashgen/rules"
	"github.com/mfigueredo/amazon-sp-proxy/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, validateOnly bool) error {
	dash, err := dashboards.BuildOverview().Build()
	if err != nil {
		return fmt.Errorf("build overview dashboard: %w", err)
	}

	result := validate.Dashboard(dash, KnownMetrics)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if !result.Ok() {
		return fmt.Errorf("dashboard validation failed: %v", result.Errors)
	}

	recording := rules.RecordingRules()
	alerts := rules.AlertRules()
	for _, cr := range []rules.PrometheusRule{recording, alerts} {
		for _, group := range cr.Spec.Groups {
			for _, rule := range group.Rules {
				if res := validate.Expr(rule.Expr, KnownMetrics); !res.Ok() {
					return fmt.Errorf("rule validation failed in %s: %v", group.Name, res.Errors)
				}
			}
		}
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	if cfg.DashboardEnabled {
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal dashboard: %w", err)
		}
		data = append(data, '\n')
		if err := writeArtifact(filepath.Join(cfg.OutputDir, "grafana", "data", "spproxy-overview.json"), data); err != nil {
			return err
		}
	}

	if cfg.RulesEnabled {
		if err := writeRuleFile(filepath.Join(cfg.OutputDir, "prometheus", "spproxy-recording-rules.yaml"), recording); err != nil {
			return err
		}
		if err := writeRuleFile(filepath.Join(cfg.OutputDir, "prometheus", "spproxy-alerts.yaml"), alerts); err != nil {
			return err
		}
	}

	return nil
}

func writeRuleFile(path string, cr rules.PrometheusRule) error {
	data, err := yaml.Marshal(cr)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	return writeArtifact(path, append([]byte(generatedHeader), data...))
}

func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("dashgen: wrote %s\n", path)
	return nil
}
