/*
Package records defines the typed health records a profile document carries.

Record is a closed tagged union:

	QuantitySample  a value with a unit (HKQuantityTypeIdentifier...)
	CategorySample  an enumerated value (HKCategoryTypeIdentifier...)
	Workout         a recorded activity (HKWorkoutTypeIdentifier)
	Unrecognized    a tag with no creator, carrying the raw field map

Every record can be written back with Tag() and Fields(). Timestamps are
epoch milliseconds in the document and time.Time in Go; UUIDs are
strfmt.UUID values.

The CreateFunc constructors (NewQuantity, NewCategory, NewWorkout) turn a
document field map into a Record and are what the registry package binds to
type tags.
*/
package records
