package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"colorlife/src/universe"
)

//DefaultPath is read when no config file is given on the command line
const DefaultPath = "colorlife.yaml"

//Config holds the whole application configuration
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Web        WebConfig        `yaml:"web"`
	Log        LogConfig        `yaml:"log"`
	Templates  []TemplateConfig `yaml:"templates"`
}

//SimulationConfig holds the generation clock settings and the initial board
type SimulationConfig struct {
	Interval       time.Duration `yaml:"interval"`
	MaxGenerations int           `yaml:"max_generations"`
	Evaluation     string        `yaml:"evaluation"`
	Template       string        `yaml:"template"`
	Random         bool          `yaml:"random"`
	Density        float64       `yaml:"density"`
	Seed           int64         `yaml:"seed"`
}

//WebConfig holds the web board settings, an empty address disables it
type WebConfig struct {
	Addr string `yaml:"addr"`
}

//LogConfig holds the log destination, empty means stderr
//(discarded in interactive mode)
type LogConfig struct {
	File string `yaml:"file"`
}

//TemplateConfig is a named list of painted cells
type TemplateConfig struct {
	Name  string       `yaml:"name"`
	Descr string       `yaml:"descr"`
	Cells []CellConfig `yaml:"cells"`
}

//CellConfig is one painted cell, color in #rrggbb form
type CellConfig struct {
	Row   int    `yaml:"row"`
	Col   int    `yaml:"col"`
	Color string `yaml:"color"`
}

//Default returns sensible defaults
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Interval:       universe.DefInterval,
			MaxGenerations: universe.DefMaxGenerations,
			Evaluation:     universe.DefEvaluation,
			Density:        0.3,
		},
	}
}

//Load reads the configuration from a YAML file on top of the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "[Load] failed to read file: %s", path)
	}

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return cfg, errors.Wrapf(err, "[Load] failed to parse file: %s", path)
	}

	if err = cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "[Load] invalid config: %s", path)
	}

	return cfg, nil
}

//LoadOptional is Load for the default path: a missing file gives the defaults
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && os.IsNotExist(errors.Cause(err)) {
		return Default(), nil
	}
	return cfg, err
}

//Validate checks the values which would make the simulation misbehave
func (c *Config) Validate() error {
	s := c.Simulation
	if s.Interval <= 0 {
		return errors.Errorf("interval must be positive, got %v", s.Interval)
	}
	if s.MaxGenerations < 0 {
		return errors.Errorf("max_generations must not be negative, got %d", s.MaxGenerations)
	}
	if s.Density < 0 || s.Density > 1 {
		return errors.Errorf("density must be within [0, 1], got %v", s.Density)
	}
	if _, ok := universe.EvaluatorByName(s.Evaluation); !ok {
		return errors.Errorf("unknown evaluation %q, expected one of %s",
			s.Evaluation, strings.Join(universe.Evaluations(), ", "))
	}
	for _, t := range c.Templates {
		if _, err := t.Template(); err != nil {
			return err
		}
	}
	return nil
}

//Options converts the simulation section to universe options
func (c *Config) Options() universe.Options {
	return universe.Options{
		Interval:       c.Simulation.Interval,
		MaxGenerations: c.Simulation.MaxGenerations,
		Evaluation:     c.Simulation.Evaluation,
		Seed:           c.Simulation.Seed,
	}
}

//Template converts the configured cells to a seeding template
func (t TemplateConfig) Template() (universe.Template, error) {
	tmpl := universe.Template{Name: t.Name, Descr: t.Descr}
	if t.Name == "" {
		return tmpl, errors.New("template without a name")
	}
	for _, c := range t.Cells {
		color, err := universe.ParseColor(c.Color)
		if err != nil {
			return tmpl, errors.Wrapf(err, "template %s, cell %d,%d", t.Name, c.Row, c.Col)
		}
		tmpl.Seeds = append(tmpl.Seeds, universe.Seed{Row: c.Row, Col: c.Col, Color: color})
	}
	return tmpl, tmpl.Validate()
}
