/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package records

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// Kind identifies the variant of a Record.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindQuantity
	KindCategory
	KindWorkout
)

func (k Kind) String() string {
	switch k {
	case KindQuantity:
		return "quantity"
	case KindCategory:
		return "category"
	case KindWorkout:
		return "workout"
	default:
		return "unrecognized"
	}
}

// Field names shared by the document format and the store payload.
const (
	FieldUUID              = "uuid"
	FieldStartDate         = "sdate"
	FieldEndDate           = "edate"
	FieldUnit              = "unit"
	FieldValue             = "value"
	FieldActivityType      = "workoutActivityType"
	FieldDuration          = "duration"
	FieldTotalDistance     = "totalDistance"
	FieldTotalEnergyBurned = "totalEnergyBurned"
)

// Record is a reconstructed health record. The set of implementations is
// closed: QuantitySample, CategorySample, Workout and Unrecognized.
type Record interface {
	// Tag returns the discriminant the record was (or will be) written with.
	Tag() string
	// Kind returns the variant of the record.
	Kind() Kind
	// Fields returns the record's document fields, without the discriminant.
	Fields() map[string]any

	isRecord()
}

// QuantitySample is a measured value with a unit, e.g. a step count or a heart rate.
type QuantitySample struct {
	Type  string
	UUID  strfmt.UUID
	Start time.Time
	End   time.Time
	Unit  string
	Value float64
}

func (s *QuantitySample) Tag() string { return s.Type }
func (s *QuantitySample) Kind() Kind  { return KindQuantity }
func (s *QuantitySample) isRecord()   {}

func (s *QuantitySample) Fields() map[string]any {
	fields := sampleFields(s.UUID, s.Start, s.End)
	fields[FieldUnit] = s.Unit
	fields[FieldValue] = s.Value
	return fields
}

// CategorySample is an enumerated value over a time range, e.g. sleep analysis.
type CategorySample struct {
	Type  string
	UUID  strfmt.UUID
	Start time.Time
	End   time.Time
	Value int
}

func (s *CategorySample) Tag() string { return s.Type }
func (s *CategorySample) Kind() Kind  { return KindCategory }
func (s *CategorySample) isRecord()   {}

func (s *CategorySample) Fields() map[string]any {
	fields := sampleFields(s.UUID, s.Start, s.End)
	fields[FieldValue] = float64(s.Value)
	return fields
}

// Workout is a recorded physical activity.
type Workout struct {
	UUID              strfmt.UUID
	Start             time.Time
	End               time.Time
	ActivityType      int
	Duration          float64
	TotalDistance     *float64
	TotalEnergyBurned *float64
}

func (w *Workout) Tag() string { return WorkoutType }
func (w *Workout) Kind() Kind  { return KindWorkout }
func (w *Workout) isRecord()   {}

func (w *Workout) Fields() map[string]any {
	fields := sampleFields(w.UUID, w.Start, w.End)
	fields[FieldActivityType] = float64(w.ActivityType)
	fields[FieldDuration] = w.Duration
	if w.TotalDistance != nil {
		fields[FieldTotalDistance] = *w.TotalDistance
	}
	if w.TotalEnergyBurned != nil {
		fields[FieldTotalEnergyBurned] = *w.TotalEnergyBurned
	}
	return fields
}

// Unrecognized carries a record whose tag has no registered creator.
type Unrecognized struct {
	TypeTag string
	Raw     map[string]any
}

func (u *Unrecognized) Tag() string { return u.TypeTag }
func (u *Unrecognized) Kind() Kind  { return KindUnrecognized }
func (u *Unrecognized) isRecord()   {}

func (u *Unrecognized) Fields() map[string]any {
	fields := make(map[string]any, len(u.Raw))
	for k, v := range u.Raw {
		fields[k] = v
	}
	return fields
}

func sampleFields(id strfmt.UUID, start, end time.Time) map[string]any {
	fields := map[string]any{
		FieldStartDate: float64(start.UnixMilli()),
		FieldEndDate:   float64(end.UnixMilli()),
	}
	if id != "" {
		fields[FieldUUID] = id.String()
	}
	return fields
}

// IDOf returns the UUID a record carries, or "" if it has none.
func IDOf(rec Record) strfmt.UUID {
	switch r := rec.(type) {
	case *QuantitySample:
		return r.UUID
	case *CategorySample:
		return r.UUID
	case *Workout:
		return r.UUID
	case *Unrecognized:
		if s, ok := r.Raw[FieldUUID].(string); ok && strfmt.IsUUID(s) {
			return strfmt.UUID(s)
		}
	}
	return ""
}
