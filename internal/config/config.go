// internal/config/config.go
//
// Optional YAML configuration. Precedence, lowest first: built-in flag
// defaults, the config file, IXRNA_* environment variables, explicit flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"ixrna/internal/cli"
)

type File struct {
	Model   ModelConfig  `yaml:"model"`
	Output  OutputConfig `yaml:"output"`
	Threads *int         `yaml:"threads"`
}

type ModelConfig struct {
	Temperature *float64 `yaml:"temperature"`
	Dangles     *int     `yaml:"dangles"`
	NoGU        *bool    `yaml:"noGU"`
	NoGUClosure *bool    `yaml:"noGUClosure"`
	MaxBPSpan   *int     `yaml:"maxBPSpan"`
	WindowSize  *int     `yaml:"windowSize"`
	Energy      string   `yaml:"energy"`
	Mode        string   `yaml:"mode"`
	SeedBP      *int     `yaml:"seedBP"`
	MaxLoop     *int     `yaml:"maxLoop"`
}

type OutputConfig struct {
	Number   *int     `yaml:"number"`
	MaxE     *float64 `yaml:"maxE"`
	DeltaE   *float64 `yaml:"deltaE"`
	Overlap  string   `yaml:"overlap"`
	Format   string   `yaml:"format"`
	Header   *bool    `yaml:"header"`
	DB       string   `yaml:"db"`
	Metrics  string   `yaml:"metrics"`
	SpotProb []string `yaml:"spotProb"`
}

// LoadFromPath parses the YAML file at path. Unknown keys are an error.
func LoadFromPath(path string) (File, error) {
	var f File
	fh, err := os.Open(path)
	if err != nil {
		return f, err
	}
	defer fh.Close()
	dec := yaml.NewDecoder(fh)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return f, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// Merge copies every value set in src into dst unless the matching flag
// was given explicitly.
func Merge(dst *cli.Options, src File) {
	m, o := src.Model, src.Output
	setFloat(dst, "temperature", &dst.Temperature, m.Temperature)
	setInt(dst, "dangles", &dst.Dangles, m.Dangles)
	setBool(dst, "no-gu", &dst.NoGU, m.NoGU)
	setBool(dst, "no-gu-closure", &dst.NoGUClosure, m.NoGUClosure)
	setInt(dst, "max-bp-span", &dst.MaxBPSpan, m.MaxBPSpan)
	setInt(dst, "window-size", &dst.WindowSize, m.WindowSize)
	setString(dst, "energy", &dst.Energy, m.Energy)
	setString(dst, "mode", &dst.Mode, m.Mode)
	setInt(dst, "seed-bp", &dst.SeedBP, m.SeedBP)
	setInt(dst, "max-loop", &dst.MaxLoop, m.MaxLoop)

	setInt(dst, "out-number", &dst.OutNumber, o.Number)
	setFloat(dst, "out-max-e", &dst.OutMaxE, o.MaxE)
	setFloat(dst, "out-delta-e", &dst.OutDeltaE, o.DeltaE)
	setString(dst, "out-overlap", &dst.OutOverlap, o.Overlap)
	setString(dst, "output", &dst.Output, o.Format)
	if o.Header != nil && !dst.Set["no-header"] {
		dst.Header = *o.Header
	}
	setString(dst, "db", &dst.DB, o.DB)
	setString(dst, "metrics", &dst.Metrics, o.Metrics)
	if o.SpotProb != nil && !dst.Set["spot-prob"] {
		dst.SpotProb = o.SpotProb
	}
	setInt(dst, "threads", &dst.Threads, src.Threads)
}

// ApplyEnvOverrides reads IXRNA_THREADS, IXRNA_TEMPERATURE, IXRNA_OUTPUT,
// IXRNA_DB and IXRNA_METRICS. Malformed numbers are reported.
func ApplyEnvOverrides(dst *cli.Options) error {
	if raw := strings.TrimSpace(os.Getenv("IXRNA_THREADS")); raw != "" && !dst.Set["threads"] {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("IXRNA_THREADS: %w", err)
		}
		dst.Threads = v
	}
	if raw := strings.TrimSpace(os.Getenv("IXRNA_TEMPERATURE")); raw != "" && !dst.Set["temperature"] {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("IXRNA_TEMPERATURE: %w", err)
		}
		dst.Temperature = v
	}
	setString(dst, "output", &dst.Output, strings.TrimSpace(os.Getenv("IXRNA_OUTPUT")))
	setString(dst, "db", &dst.DB, strings.TrimSpace(os.Getenv("IXRNA_DB")))
	setString(dst, "metrics", &dst.Metrics, strings.TrimSpace(os.Getenv("IXRNA_METRICS")))
	return nil
}

func setString(o *cli.Options, flag string, dst *string, v string) {
	if v != "" && !o.Set[flag] {
		*dst = v
	}
}

func setInt(o *cli.Options, flag string, dst *int, v *int) {
	if v != nil && !o.Set[flag] {
		*dst = *v
	}
}

func setFloat(o *cli.Options, flag string, dst *float64, v *float64) {
	if v != nil && !o.Set[flag] {
		*dst = *v
	}
}

func setBool(o *cli.Options, flag string, dst *bool, v *bool) {
	if v != nil && !o.Set[flag] {
		*dst = *v
	}
}
