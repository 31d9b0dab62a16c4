package syncutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type phase struct {
	Value string
}

func TestAtomic(t *testing.T) {
	t.Run("LoadEmpty", func(t *testing.T) {
		atom := &Atomic[phase]{}
		assert.Equal(t, phase{}, atom.Load())
	})

	t.Run("StoreAndLoad", func(t *testing.T) {
		atom := &Atomic[phase]{}
		atom.Store(phase{Value: "opened"})
		assert.Equal(t, phase{Value: "opened"}, atom.Load())
	})

	t.Run("NewAtomic", func(t *testing.T) {
		atom := NewAtomic(phase{Value: "unopened"})
		assert.Equal(t, "unopened", atom.Load().Value)

		atom.Store(phase{Value: "connected"})
		assert.Equal(t, "connected", atom.Load().Value)
	})

	t.Run("Swap", func(t *testing.T) {
		atom := &Atomic[int]{}
		assert.Equal(t, 0, atom.Swap(1))
		assert.Equal(t, 1, atom.Swap(2))
		assert.Equal(t, 2, atom.Load())
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		atom := NewAtomic(phase{Value: "initial"})

		const goroutines = 100
		var wg sync.WaitGroup
		wg.Add(goroutines)

		for i := 0; i < goroutines; i++ {
			go func(i int) {
				defer wg.Done()
				atom.Store(phase{Value: fmt.Sprintf("value %d", i)})
				_ = atom.Load()
			}(i)
		}

		wg.Wait()
		assert.NotEmpty(t, atom.Load().Value)
	})
}
