// Package config loads solver settings from defaults, an optional YAML file,
// optional dotenv files and TSPBB_* environment variables, in that order of
// precedence (lowest first). Command-line flags are applied on top by the cmd package, after
// which Validate must be called again.
package config

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tspbb/tsp"
)

// Environment variables consulted by Load.
const (
	EnvWorkers   = "TSPBB_WORKERS"
	EnvMaxNodes  = "TSPBB_MAX_NODES"
	EnvTimeLimit = "TSPBB_TIME_LIMIT"
	EnvLogLevel  = "TSPBB_LOG_LEVEL"
)

// ErrInvalid is returned when a configuration source holds an unusable value.
var ErrInvalid = errors.New("config: invalid configuration")

var validate = validator.New()

// Config is the full solver configuration.
type Config struct {
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
}

// SearchConfig mirrors tsp.Options.
type SearchConfig struct {
	Workers             int           `yaml:"workers" validate:"gte=0,lte=1024"`
	MaxNodes            int64         `yaml:"max_nodes" validate:"gte=0"`
	TimeLimit           time.Duration `yaml:"time_limit" validate:"gte=0"`
	StartCity           int           `yaml:"start_city" validate:"gte=0"`
	SeedNearestNeighbor bool          `yaml:"seed_nearest_neighbor"`
}

// LogConfig selects logrus level and formatter.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// OutputConfig controls how the result is rendered.
type OutputConfig struct {
	Format    string `yaml:"format" validate:"oneof=tour json"`
	Canonical bool   `yaml:"canonical"`
	Path      string `yaml:"path"`
}

// Default returns the configuration used when no source overrides anything.
func Default() *Config {
	return &Config{
		Search: SearchConfig{Workers: 1},
		Log:    LogConfig{Level: "info", Format: "text"},
		Output: OutputConfig{Format: "tour"},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), the dotenv envFiles and the environment, then validates it.
// A variable set in the process environment wins over the same key in an
// env file.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err = cfg.decode(data); err != nil {
			return nil, errors.WithMessage(err, path)
		}
	}
	lookup := os.LookupEnv
	if len(envFiles) > 0 {
		fileEnv, err := godotenv.Read(envFiles...)
		if err != nil {
			return nil, errors.Wrap(err, "read env file")
		}
		lookup = func(key string) (string, bool) {
			if v, ok := os.LookupEnv(key); ok {
				return v, true
			}
			v, ok := fileEnv[key]
			return v, ok
		}
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decode overlays YAML onto cfg. Unknown keys are rejected.
func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // empty file
		}
		return errors.Wrapf(ErrInvalid, "yaml: %v", err)
	}

	return nil
}

// applyEnv overlays TSPBB_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var (
		v   string
		ok  bool
		err error
	)
	if v, ok = lookup(EnvWorkers); ok && v != "" {
		if c.Search.Workers, err = strconv.Atoi(v); err != nil {
			return errors.Wrapf(ErrInvalid, "%s=%q", EnvWorkers, v)
		}
	}
	if v, ok = lookup(EnvMaxNodes); ok && v != "" {
		if c.Search.MaxNodes, err = strconv.ParseInt(v, 10, 64); err != nil {
			return errors.Wrapf(ErrInvalid, "%s=%q", EnvMaxNodes, v)
		}
	}
	if v, ok = lookup(EnvTimeLimit); ok && v != "" {
		if c.Search.TimeLimit, err = time.ParseDuration(v); err != nil {
			return errors.Wrapf(ErrInvalid, "%s=%q", EnvTimeLimit, v)
		}
	}
	if v, ok = lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}

	return nil
}

// Validate checks the struct tags and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}

	return errors.Wrap(ErrInvalid, strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Namespace())
	switch fe.Tag() {
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "gte":
		return field + " must be at least " + fe.Param()
	case "lte":
		return field + " must be at most " + fe.Param()
	default:
		return field + " is invalid"
	}
}

// SearchOptions maps the search section onto tsp.Options.
func (c *Config) SearchOptions() tsp.Options {
	opts := tsp.DefaultOptions()
	opts.Workers = c.Search.Workers
	opts.MaxNodes = c.Search.MaxNodes
	opts.TimeLimit = c.Search.TimeLimit
	opts.StartCity = c.Search.StartCity
	opts.SeedNearestNeighbor = c.Search.SeedNearestNeighbor

	return opts
}
