package util

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/ghodss/yaml"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
	yamlv3 "gopkg.in/yaml.v3"
)

var validate = validator.New()

// ValidateStruct validates the struct's `validate` tags
func ValidateStruct(val any) error {
	return errors.Wrap(validate.Struct(val), errors.InvalidArgument, "")
}

// ValidateJSONSchema validates the json document against the json schema
func ValidateJSONSchema(schema []byte, document []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(document))
	if err != nil {
		return errors.Wrap(err, errors.InvalidArgument, "failed to validate json schema")
	}
	if !result.Valid() {
		var problems []string
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return errors.New(errors.InvalidArgument, "schema validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Decode decodes the input into the output based on json tags
func Decode(input any, output any) error {
	config := &mapstructure.DecoderConfig{
		WeaklyTypedInput:     true,
		Result:               output,
		TagName:              "json",
		IgnoreUntaggedFields: true,
	}
	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// JSONString returns a json string of the input
func JSONString(input any) string {
	bits, _ := json.Marshal(input)
	return string(bits)
}

// YAMLToJSON converts yaml content to json. json content is returned as is.
// Scalars resolve with the yaml 1.2 core schema: only true and false are booleans, so y, n, on and off stay text.
// Numbers keep their literal form.
func YAMLToJSON(yamlContent []byte) ([]byte, error) {
	if isJSON(string(yamlContent)) {
		return yamlContent, nil
	}
	var node yamlv3.Node
	if err := yamlv3.Unmarshal(yamlContent, &node); err != nil {
		return nil, errors.Wrap(err, errors.InvalidArgument, "malformed yaml")
	}
	value, err := fromYAMLNode(&node)
	if err != nil {
		return nil, err
	}
	return json.Marshal(value)
}

func fromYAMLNode(node *yamlv3.Node) (any, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yamlv3.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(node.Content[0])
	case yamlv3.AliasNode:
		return fromYAMLNode(node.Alias)
	case yamlv3.SequenceNode:
		values := make([]any, 0, len(node.Content))
		for _, n := range node.Content {
			v, err := fromYAMLNode(n)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	case yamlv3.MappingNode:
		values := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yamlv3.ScalarNode {
				return nil, errors.New(errors.InvalidArgument, "line %d: mapping keys must be scalars", key.Line)
			}
			v, err := fromYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			values[key.Value] = v
		}
		return values, nil
	case yamlv3.ScalarNode:
		return fromYAMLScalar(node)
	default:
		return nil, errors.New(errors.InvalidArgument, "line %d: unsupported yaml node", node.Line)
	}
}

func fromYAMLScalar(node *yamlv3.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, errors.Wrap(err, errors.InvalidArgument, "line %d", node.Line)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return nil, errors.Wrap(err, errors.InvalidArgument, "line %d: integer out of range", node.Line)
		}
		return json.Number(strconv.FormatInt(i, 10)), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, errors.Wrap(err, errors.InvalidArgument, "line %d", node.Line)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, errors.New(errors.InvalidArgument, "line %d: non-finite number: %s", node.Line, node.Value)
		}
		if isJSON(node.Value) {
			return json.Number(node.Value), nil
		}
		formatted := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(formatted, ".e") {
			formatted += ".0"
		}
		return json.Number(formatted), nil
	default:
		return node.Value, nil
	}
}

// JSONToYAML converts json content to yaml
func JSONToYAML(jsonContent []byte) ([]byte, error) {
	return yaml.JSONToYAML(jsonContent)
}

func isJSON(str string) bool {
	var js json.RawMessage
	return json.Unmarshal([]byte(str), &js) == nil
}
