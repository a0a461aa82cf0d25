package util_test

import (
	"testing"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/autom8ter/shinyoracle/util"
	"github.com/stretchr/testify/assert"
)

func TestUtil(t *testing.T) {
	t.Run("yaml / json conversions", func(t *testing.T) {
		const doc = `{"collection":"orders","limit":10}`
		yml, err := util.JSONToYAML([]byte(doc))
		assert.Nil(t, err)
		jsonData, err := util.YAMLToJSON(yml)
		assert.Nil(t, err)
		assert.JSONEq(t, doc, string(jsonData))
	})
	t.Run("yaml 1.1 booleans stay text", func(t *testing.T) {
		out, err := util.YAMLToJSON([]byte("- {as: n, value: Y}\n- {as: on, value: off}\n- {value: true}\n"))
		assert.Nil(t, err)
		assert.JSONEq(t, `[{"as":"n","value":"Y"},{"as":"on","value":"off"},{"value":true}]`, string(out))
	})
	t.Run("yaml numbers keep their literal form", func(t *testing.T) {
		out, err := util.YAMLToJSON([]byte("int: 289\nfloat: 14.0\nexp: 1e5\nneg: -0.5\nnull: ~\n"))
		assert.Nil(t, err)
		assert.Equal(t, `{"exp":1e5,"float":14.0,"int":289,"neg":-0.5,"null":null}`, string(out))
	})
	t.Run("yaml anchors resolve", func(t *testing.T) {
		out, err := util.YAMLToJSON([]byte("a: &x [1, 2]\nb: *x\n"))
		assert.Nil(t, err)
		assert.JSONEq(t, `{"a":[1,2],"b":[1,2]}`, string(out))
	})
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := util.YAMLToJSON([]byte("a: [1, 2\n"))
		assert.True(t, errors.Is(err, errors.InvalidArgument))
	})
	t.Run("json passes through", func(t *testing.T) {
		const doc = `{"a": 1}`
		out, err := util.YAMLToJSON([]byte(doc))
		assert.Nil(t, err)
		assert.Equal(t, doc, string(out))
	})
	t.Run("json string", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, util.JSONString(map[string]int{"a": 1}))
	})
	t.Run("decode", func(t *testing.T) {
		type config struct {
			DataDir string `json:"data_dir"`
			Workers int    `json:"workers"`
		}
		var c config
		assert.Nil(t, util.Decode(map[string]any{"data_dir": "./json", "workers": "8"}, &c))
		assert.Equal(t, "./json", c.DataDir)
		assert.Equal(t, 8, c.Workers)
	})
	t.Run("validate", func(t *testing.T) {
		type usr struct {
			Name string `validate:"required"`
		}
		var u = usr{}
		err := util.ValidateStruct(&u)
		assert.True(t, errors.Is(err, errors.InvalidArgument))
		u.Name = "a name"
		assert.Nil(t, util.ValidateStruct(&u))
	})
	t.Run("json schema", func(t *testing.T) {
		schema := []byte(`{"type": "object", "required": ["id"], "properties": {"id": {"type": "string"}}}`)
		assert.Nil(t, util.ValidateJSONSchema(schema, []byte(`{"id": "1.1"}`)))
		err := util.ValidateJSONSchema(schema, []byte(`{"id": 1}`))
		assert.True(t, errors.Is(err, errors.InvalidArgument))
	})
}
