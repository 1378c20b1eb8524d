/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sync"

	"github.com/suparena/healthprofile/records"
)

var defaultRegistry = sync.OnceValue(func() *Registry {
	b := NewBuilder()
	for _, tag := range records.QuantityTypes() {
		b.RegisterFunc(tag, records.NewQuantity(tag))
	}
	for _, tag := range records.CategoryTypes() {
		b.RegisterFunc(tag, records.NewCategory(tag))
	}
	b.RegisterFunc(records.WorkoutType, records.NewWorkout())
	return b.Build()
})

// Default returns the registry of every known record variant. It is built
// on first use and shared afterwards.
func Default() *Registry {
	return defaultRegistry()
}
