package errors_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Run("wrap nil error", func(t *testing.T) {
		var err error
		err = errors.Wrap(err, errors.FieldNotFound, "")
		assert.Nil(t, err)
	})
	t.Run("wrap error", func(t *testing.T) {
		var err = fmt.Errorf("not found")
		err = errors.Wrap(err, errors.FieldNotFound, "")
		assert.Equal(t, errors.FieldNotFound, errors.Extract(err).Code)
	})
	t.Run("new error", func(t *testing.T) {
		err := errors.New(errors.TypeMismatch, "cannot order text field")
		assert.Equal(t, errors.TypeMismatch, errors.Extract(err).Code)
		assert.True(t, errors.Is(err, errors.TypeMismatch))
		assert.False(t, errors.Is(err, errors.FieldNotFound))
	})
	t.Run("new error then wrap", func(t *testing.T) {
		err := errors.New("", "not found")
		err = errors.Wrap(err, errors.FieldNotFound, "case %s", "1.1")
		e := errors.Extract(err)
		assert.Equal(t, errors.FieldNotFound, e.Code)
		assert.Equal(t, []string{"not found", "case 1.1"}, e.Messages)
	})
	t.Run("wrap keeps code when empty", func(t *testing.T) {
		err := errors.New(errors.UndefinedAggregate, "empty input")
		err = errors.Wrap(err, "", "case %s", "8.2")
		assert.True(t, errors.Is(err, errors.UndefinedAggregate))
	})
	t.Run("wrap leaves the wrapped error untouched", func(t *testing.T) {
		shared := errors.New(errors.SourceLoadFailure, "collection orders")
		first := errors.Wrap(shared, "", "case %s", "1.1")
		second := errors.Wrap(shared, errors.Internal, "case %s", "1.4")
		assert.Equal(t, []string{"collection orders"}, errors.Extract(shared).Messages)
		assert.True(t, errors.Is(shared, errors.SourceLoadFailure))
		assert.Equal(t, []string{"collection orders", "case 1.1"}, errors.Extract(first).Messages)
		assert.Equal(t, []string{"collection orders", "case 1.4"}, errors.Extract(second).Messages)
		assert.True(t, errors.Is(second, errors.Internal))
	})
	t.Run("wrap concurrently", func(t *testing.T) {
		shared := errors.New(errors.SourceLoadFailure, "collection orders")
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := errors.Wrap(shared, "", "case %d", i)
				assert.Len(t, errors.Extract(err).Messages, 2)
			}(i)
		}
		wg.Wait()
		assert.Len(t, errors.Extract(shared).Messages, 1)
	})
	t.Run("error json string", func(t *testing.T) {
		err := errors.New(errors.InvalidArgument, "negative skip")
		assert.JSONEq(t, `{ "code":"InvalidArgument", "messages": ["negative skip"]}`, err.Error())
	})
	t.Run("error json string with cause", func(t *testing.T) {
		err := errors.Wrap(fmt.Errorf("no such file"), errors.SourceLoadFailure, "orders")
		assert.JSONEq(t, `{ "code":"SourceLoadFailure", "messages": ["orders"], "err": "no such file"}`, err.Error())
	})
	t.Run("extract foreign error", func(t *testing.T) {
		e := errors.Extract(fmt.Errorf("plain"))
		assert.Equal(t, errors.Code(""), e.Code)
		assert.False(t, errors.Is(fmt.Errorf("plain"), errors.Internal))
	})
}
