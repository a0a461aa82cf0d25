package shinyoracle

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/autom8ter/shinyoracle/util"
	"github.com/samber/lo"
)

var (
	//go:embed registry/default.yaml
	defaultCases []byte
	//go:embed registry/schema.json
	casesSchema []byte
)

// DefaultRegistry returns the yaml source of the embedded cases
func DefaultRegistry() []byte {
	return defaultCases
}

// CasesSchema returns the json schema that case registries are validated against
func CasesSchema() []byte {
	return casesSchema
}

// LoadCases parses a yaml or json registry of cases. The registry is validated against the cases
// schema and every case is validated. Duplicate ids are an InvalidArgument error.
func LoadCases(content []byte) ([]Case, error) {
	jsonContent, err := util.YAMLToJSON(content)
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidArgument, "failed to parse cases")
	}
	if err := util.ValidateJSONSchema(casesSchema, jsonContent); err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(jsonContent))
	decoder.UseNumber()
	var cases []Case
	if err := decoder.Decode(&cases); err != nil {
		return nil, errors.Wrap(err, errors.InvalidArgument, "failed to decode cases")
	}
	for _, c := range cases {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	ids := lo.Map(cases, func(c Case, _ int) string {
		return c.ID
	})
	if len(lo.Uniq(ids)) != len(ids) {
		return nil, errors.New(errors.InvalidArgument, "duplicate case ids")
	}
	return cases, nil
}

// LoadCasesFile reads and parses the case registry at path
func LoadCasesFile(path string) ([]Case, error) {
	bits, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidArgument, "failed to read cases: %s", path)
	}
	return LoadCases(bits)
}

// DefaultCases returns the embedded query-correctness cases
func DefaultCases() []Case {
	cases, err := LoadCases(defaultCases)
	if err != nil {
		panic(err)
	}
	return cases
}
