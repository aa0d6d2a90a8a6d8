package pegstack

import (
	"bytes"
	"testing"

	"github.com/renstrom/dedent"
	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := NewConfig()

		assert.Equal(t, "main", cfg.GetString("vm.main"))
		assert.True(t, cfg.GetBool("vm.exact"))
		assert.Equal(t, 0, cfg.GetInt("vm.limit"))
		assert.False(t, cfg.GetBool("vm.debug"))
		assert.False(t, cfg.GetBool("vm.debug.colors"))
	})

	t.Run("unknown settings and wrong types panic", func(t *testing.T) {
		cfg := NewConfig()

		assert.Panics(t, func() { cfg.GetBool("vm.nope") })
		assert.Panics(t, func() { cfg.GetInt("vm.main") })
		assert.Panics(t, func() { cfg.SetString("vm.limit", "10") })
	})

	t.Run("clones are independent", func(t *testing.T) {
		cfg := NewConfig()
		clone := cfg.Clone()
		clone.SetInt("vm.limit", 7)

		assert.Equal(t, 0, cfg.GetInt("vm.limit"))
		assert.Equal(t, 7, clone.GetInt("vm.limit"))
	})

	t.Run("debug lists every setting", func(t *testing.T) {
		var buf bytes.Buffer
		NewConfig().Debug(&buf)

		expected := dedent.Dedent(`
			Configuration
			vm.debug        : false (bool)
			vm.debug.colors : false (bool)
			vm.exact        : true (bool)
			vm.limit        : 0 (int)
			vm.main         : main (string)
		`)[1:]
		if expected != buf.String() {
			t.Errorf("%s: wrong output:\n%s", t.Name(), diff(expected, buf.String()))
		}
	})
}
