package invoker_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhulik/invoker"
)

// TestDefault tests the package-level API backed by the default registry
func TestDefault(t *testing.T) {
	t.Parallel()

	// The default registry outlives a single run of the test.
	registered := func(err error) {
		if !errors.Is(err, invoker.ErrAlreadyRegistered) {
			require.NoError(t, err)
		}
	}

	registered(invoker.RegisterFunction("api_test_sum", func(a, b int) int {
		return a + b
	}, invoker.Params("a", "b")...))

	registered(invoker.RegisterClass[Counter]("ApiTestCounter", invoker.Method("Add", invoker.Param("delta"))))

	t.Run("calls registered functions", func(t *testing.T) {
		t.Parallel()

		result, err := invoker.Call(t.Context(), "api_test_sum", map[string]any{"a": 1, "b": 2}, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result)
	})

	t.Run("calls registered classes", func(t *testing.T) {
		t.Parallel()

		result := invoker.MustCall(t.Context(), "ApiTestCounter::Add", map[string]any{"delta": 2}, nil)

		assert.Equal(t, 2, result)
	})

	t.Run("DefaultInvoker uses the default registry", func(t *testing.T) {
		t.Parallel()

		assert.Same(t, invoker.DefaultRegistry, invoker.DefaultInvoker().Registry())
		assert.Contains(t, invoker.DefaultRegistry.Functions(), "api_test_sum")
	})

	t.Run("MustCall panics on errors", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			invoker.MustCall(t.Context(), "api_test_unknown", nil, nil)
		})
	})
}

// TestCallAs tests typed calls
func TestCallAs(t *testing.T) {
	t.Parallel()

	inv := invoker.New(nil)

	t.Run("casts the result", func(t *testing.T) {
		t.Parallel()

		result, err := invoker.CallAs[string](t.Context(), inv, func() string { return "foo" }, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, "foo", result)
	})

	t.Run("casts to interfaces", func(t *testing.T) {
		t.Parallel()

		result, err := invoker.CallAs[error](t.Context(), inv, func() any { return errTest }, nil, nil)

		require.NoError(t, err)
		assert.Same(t, errTest, result)
	})

	t.Run("nil result is a zero value of a nillable type", func(t *testing.T) {
		t.Parallel()

		result, err := invoker.CallAs[*Object](t.Context(), inv, func() {}, nil, nil)

		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("when the result has another type, returns an error", func(t *testing.T) {
		t.Parallel()

		_, err := invoker.CallAs[int](t.Context(), inv, func() string { return "foo" }, nil, nil)

		assert.ErrorIs(t, err, invoker.ErrInvalidResult)
	})

	t.Run("when the call fails, returns its error", func(t *testing.T) {
		t.Parallel()

		_, err := invoker.CallAs[int](t.Context(), inv, func() (int, error) { return 1, errTest }, nil, nil)

		assert.ErrorIs(t, err, errTest)
	})

	t.Run("MustCallAs returns the casted result", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 42, invoker.MustCallAs[int](t.Context(), inv, func(a int) int { return a }, map[string]any{"arg0": 42}, nil))
	})

	t.Run("MustCallAs panics on errors", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			invoker.MustCallAs[int](t.Context(), inv, func() string { return "foo" }, nil, nil)
		})
	})
}
