package shinyoracle

import (
	"encoding/json"
	"os"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/autom8ter/shinyoracle/util"
)

const (
	// DefaultWorkers is the default number of cases evaluated concurrently
	DefaultWorkers = 4
	// DefaultOutput is the default report path
	DefaultOutput = "expected.json"
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "info"
)

// DefaultCollections are the ShinyDB sample collections loaded by a preloading run
var DefaultCollections = []string{
	"orders",
	"customers",
	"employees",
	"products",
	"productcategories",
	"productsubcategories",
	"vendors",
	"vendorproducts",
}

// DefaultCollectionFiles maps collections whose source file is not <name>.json
var DefaultCollectionFiles = map[string]string{
	"vendorproducts": "vendorproduct.json",
}

// Config configures an oracle run
type Config struct {
	// DataDir is the directory holding the json collection files
	DataDir string `json:"data_dir" validate:"required"`
	// Collections overrides the file name of a collection (relative to DataDir)
	Collections map[string]string `json:"collections"`
	// CasesFile is a yaml or json case registry. The embedded default registry is used when empty.
	CasesFile string `json:"cases_file"`
	// Output is the path of the generated report
	Output string `json:"output"`
	// Workers is the number of cases evaluated concurrently
	Workers int `json:"workers" validate:"gte=0"`
	// Preload loads the default and configured collections before any case runs. A missing collection
	// fails the run even when no case queries it.
	Preload bool `json:"preload"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
}

// SetDefaults fills in zero values
func (c *Config) SetDefaults() {
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	files := map[string]string{}
	for k, v := range DefaultCollectionFiles {
		files[k] = v
	}
	for k, v := range c.Collections {
		files[k] = v
	}
	c.Collections = files
}

// Validate validates the config
func (c Config) Validate() error {
	return util.ValidateStruct(c)
}

// LoadConfig parses a yaml or json config, applies defaults and validates it
func LoadConfig(content []byte) (Config, error) {
	jsonContent, err := util.YAMLToJSON(content)
	if err != nil {
		return Config{}, errors.Wrap(err, errors.InvalidArgument, "failed to parse config")
	}
	values := map[string]any{}
	if err := json.Unmarshal(jsonContent, &values); err != nil {
		return Config{}, errors.Wrap(err, errors.InvalidArgument, "failed to parse config")
	}
	var c Config
	if err := util.Decode(values, &c); err != nil {
		return Config{}, errors.Wrap(err, errors.InvalidArgument, "failed to decode config")
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadConfigFile reads and parses the config file at path
func LoadConfigFile(path string) (Config, error) {
	bits, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, errors.InvalidArgument, "failed to read config: %s", path)
	}
	return LoadConfig(bits)
}
