package godeco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("it should return the published container for a class", func(t *testing.T) {
		// GIVEN
		registry := NewRegistry()
		cls := newClass("Widget", nil)
		meta := NewMetadata(nil)

		// WHEN
		registry.Publish(cls, meta)

		// THEN
		found, ok := registry.Lookup(cls)
		require.True(t, ok)
		assert.Same(t, meta, found)
	})

	t.Run("it should report absence for classes never published", func(t *testing.T) {
		// GIVEN
		registry := NewRegistry()
		cls := newClass("Widget", nil)

		// WHEN
		meta, found := registry.Lookup(cls)

		// THEN
		assert.False(t, found)
		assert.Nil(t, meta)
	})

	t.Run("it should panic when publishing twice for the same class", func(t *testing.T) {
		// GIVEN
		registry := NewRegistry()
		cls := newClass("Widget", nil)
		registry.Publish(cls, NewMetadata(nil))

		// WHEN / THEN
		assert.PanicsWithValue(
			t,
			"registry: metadata already published for class Widget",
			func() {
				registry.Publish(cls, NewMetadata(nil))
			},
		)
	})

	t.Run("it should keep containers of independent classes independent", func(t *testing.T) {
		// GIVEN
		registry := NewRegistry()
		first := newClass("First", nil)
		second := newClass("Second", nil)
		firstMeta := NewMetadata(nil)
		secondMeta := NewMetadata(nil)
		registry.Publish(first, firstMeta)
		registry.Publish(second, secondMeta)

		// WHEN
		firstMeta.Set("only", "first")

		// THEN
		found, _ := registry.Lookup(second)
		assert.False(t, found.Has("only"))
	})

	t.Run("it should notify subscribers on publication", func(t *testing.T) {
		// GIVEN
		registry := NewRegistry()
		var (
			notifiedCls  *Class
			notifiedMeta *Metadata
		)
		registry.Subscribe(func(cls *Class, meta *Metadata) {
			notifiedCls = cls
			notifiedMeta = meta
		})

		cls := newClass("Widget", nil)
		meta := NewMetadata(nil)

		// WHEN
		registry.Publish(cls, meta)

		// THEN
		assert.Same(t, cls, notifiedCls)
		assert.Same(t, meta, notifiedMeta)
	})

	t.Run("it should iterate over all published classes", func(t *testing.T) {
		// GIVEN
		registry := NewRegistry()
		registry.Publish(newClass("First", nil), NewMetadata(nil))
		registry.Publish(newClass("Second", nil), NewMetadata(nil))

		// WHEN
		var names []string
		registry.Range(func(cls *Class, _ *Metadata) bool {
			names = append(names, cls.Name())
			return true
		})

		// THEN
		assert.ElementsMatch(t, []string{"First", "Second"}, names)
	})
}
