/*
Package registry maps record type tags to the creators that rebuild typed
records from untyped document fields.

A Registry is built once and never changes afterwards:

	reg := registry.NewBuilder().
	    RegisterFunc("HKQuantityTypeIdentifierStepCount",
	        records.NewQuantity("HKQuantityTypeIdentifierStepCount")).
	    Build()

	if c, ok := reg.Get(tag); ok {
	    rec, err := c.Create(fields)
	    ...
	}

Default returns the registry of every variant in the records package. It is
passed by reference into profiles and stores rather than reached through
package state, and since it is read-only, concurrent lookups are safe.

Registering the same tag twice panics, so conflicting registrations surface
at start-up.
*/
package registry
