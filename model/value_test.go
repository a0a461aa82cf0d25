package model_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/autom8ter/shinyoracle/model"
	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	t.Run("value of", func(t *testing.T) {
		v, err := model.ValueOf(289)
		assert.Nil(t, err)
		assert.Equal(t, model.KindInt, v.Kind())
		v, err = model.ValueOf(json.Number("289"))
		assert.Nil(t, err)
		assert.Equal(t, model.KindInt, v.Kind())
		v, err = model.ValueOf(json.Number("50000.5"))
		assert.Nil(t, err)
		assert.Equal(t, model.KindFloat, v.Kind())
		v, err = model.ValueOf("Bikes")
		assert.Nil(t, err)
		assert.Equal(t, model.KindText, v.Kind())
		v, err = model.ValueOf(true)
		assert.Nil(t, err)
		assert.Equal(t, model.KindBool, v.Kind())
		_, err = model.ValueOf([]int{1})
		assert.True(t, errors.Is(err, errors.TypeMismatch))
	})
	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "289", model.Int(289).String())
		assert.Equal(t, "14.0", model.Float(14).String())
		assert.Equal(t, "3578.27", model.Float(3578.27).String())
		assert.Equal(t, "1234567.0", model.Float(1234567).String())
		assert.Equal(t, "1e+16", model.Float(1e16).String())
		assert.Equal(t, "M", model.Text("M").String())
		assert.Equal(t, "True", model.Bool(true).String())
		assert.Equal(t, "False", model.Bool(false).String())
	})
	t.Run("equal", func(t *testing.T) {
		assert.True(t, model.Int(289).Equal(model.Float(289)))
		assert.True(t, model.Text("M").Equal(model.Text("M")))
		assert.False(t, model.Text("M").Equal(model.Text("m")))
		assert.True(t, model.Bool(true).Equal(model.Int(1)))
		assert.False(t, model.Bool(false).Equal(model.Int(1)))
		assert.False(t, model.Text("1").Equal(model.Int(1)))
	})
	t.Run("equal beyond float precision", func(t *testing.T) {
		const big = int64(1) << 53
		assert.False(t, model.Int(big+1).Equal(model.Int(big)))
		assert.False(t, model.Int(big+1).Equal(model.Float(float64(big+1))))
		assert.True(t, model.Int(big).Equal(model.Float(float64(big+1))))
		assert.False(t, model.Int(math.MaxInt64).Equal(model.Float(math.MaxInt64)))
		assert.False(t, model.Int(3).Equal(model.Float(3.5)))
		assert.False(t, model.Float(math.NaN()).Equal(model.Int(0)))
	})
	t.Run("compare", func(t *testing.T) {
		cmp, err := model.Int(1).Compare(model.Float(1.5))
		assert.Nil(t, err)
		assert.Equal(t, -1, cmp)
		cmp, err = model.Text("b").Compare(model.Text("a"))
		assert.Nil(t, err)
		assert.Equal(t, 1, cmp)
		cmp, err = model.Int(7).Compare(model.Int(7))
		assert.Nil(t, err)
		assert.Equal(t, 0, cmp)
		cmp, err = model.Int(1<<53 + 1).Compare(model.Float(1 << 53))
		assert.Nil(t, err)
		assert.Equal(t, 1, cmp)
		cmp, err = model.Float(-3.5).Compare(model.Int(-3))
		assert.Nil(t, err)
		assert.Equal(t, -1, cmp)
		cmp, err = model.Int(-4).Compare(model.Float(-3.5))
		assert.Nil(t, err)
		assert.Equal(t, -1, cmp)
		cmp, err = model.Int(math.MaxInt64).Compare(model.Float(math.Inf(1)))
		assert.Nil(t, err)
		assert.Equal(t, -1, cmp)
		_, err = model.Text("a").Compare(model.Int(1))
		assert.True(t, errors.Is(err, errors.TypeMismatch))
	})
	t.Run("marshal json", func(t *testing.T) {
		bits, err := json.Marshal(map[string]model.Value{
			"f": model.Float(150),
			"i": model.Int(150),
			"s": model.Text("x"),
			"b": model.Bool(false),
		})
		assert.Nil(t, err)
		assert.Equal(t, `{"b":false,"f":150.0,"i":150,"s":"x"}`, string(bits))
	})
}
