/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package records

import (
	"encoding/json"
	"math"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/suparena/healthprofile/errors"
)

// CreateFunc reconstructs a Record from a document field map. It returns a
// validation error when the fields are insufficient for the variant.
type CreateFunc func(fields map[string]any) (Record, error)

// NewQuantity returns the CreateFunc for quantity samples tagged typeTag.
func NewQuantity(typeTag string) CreateFunc {
	return func(fields map[string]any) (Record, error) {
		id, start, end, err := sampleHeader(fields)
		if err != nil {
			return nil, err
		}
		unit, err := stringField(fields, FieldUnit)
		if err != nil {
			return nil, err
		}
		value, err := numberField(fields, FieldValue)
		if err != nil {
			return nil, err
		}
		return &QuantitySample{
			Type:  typeTag,
			UUID:  id,
			Start: start,
			End:   end,
			Unit:  unit,
			Value: value,
		}, nil
	}
}

// NewCategory returns the CreateFunc for category samples tagged typeTag.
func NewCategory(typeTag string) CreateFunc {
	return func(fields map[string]any) (Record, error) {
		id, start, end, err := sampleHeader(fields)
		if err != nil {
			return nil, err
		}
		value, err := intField(fields, FieldValue)
		if err != nil {
			return nil, err
		}
		return &CategorySample{
			Type:  typeTag,
			UUID:  id,
			Start: start,
			End:   end,
			Value: value,
		}, nil
	}
}

// NewWorkout returns the CreateFunc for workouts.
func NewWorkout() CreateFunc {
	return func(fields map[string]any) (Record, error) {
		id, start, end, err := sampleHeader(fields)
		if err != nil {
			return nil, err
		}
		activity, err := intField(fields, FieldActivityType)
		if err != nil {
			return nil, err
		}
		duration, err := numberField(fields, FieldDuration)
		if err != nil {
			return nil, err
		}
		w := &Workout{
			UUID:         id,
			Start:        start,
			End:          end,
			ActivityType: activity,
			Duration:     duration,
		}
		if w.TotalDistance, err = optionalNumberField(fields, FieldTotalDistance); err != nil {
			return nil, err
		}
		if w.TotalEnergyBurned, err = optionalNumberField(fields, FieldTotalEnergyBurned); err != nil {
			return nil, err
		}
		return w, nil
	}
}

func sampleHeader(fields map[string]any) (strfmt.UUID, time.Time, time.Time, error) {
	var id strfmt.UUID
	if raw, ok := fields[FieldUUID]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok || !strfmt.IsUUID(s) {
			return "", time.Time{}, time.Time{}, errors.NewValidationError(FieldUUID, "must be a UUID string")
		}
		id = strfmt.UUID(s)
	}
	start, err := timeField(fields, FieldStartDate)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	end, err := timeField(fields, FieldEndDate)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return "", time.Time{}, time.Time{}, errors.NewValidationError(FieldEndDate, "must not precede sdate")
	}
	return id, start, end, nil
}

func stringField(fields map[string]any, name string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", errors.NewValidationError(name, "is required")
	}
	s, ok := raw.(string)
	if !ok {
		return "", errors.NewValidationError(name, "must be a string")
	}
	return s, nil
}

func numberField(fields map[string]any, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok || raw == nil {
		return 0, errors.NewValidationError(name, "is required")
	}
	return toFloat(name, raw)
}

func optionalNumberField(fields map[string]any, name string) (*float64, error) {
	raw, ok := fields[name]
	if !ok || raw == nil {
		return nil, nil
	}
	v, err := toFloat(name, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func intField(fields map[string]any, name string) (int, error) {
	v, err := numberField(fields, name)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, errors.NewValidationError(name, "must be an integer")
	}
	return int(v), nil
}

// timeField reads epoch milliseconds.
func timeField(fields map[string]any, name string) (time.Time, error) {
	ms, err := numberField(fields, name)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}

func toFloat(name string, raw any) (float64, error) {
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, errors.NewValidationError(name, "must be a number")
		}
		v = f
	default:
		return 0, errors.NewValidationError(name, "must be a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.NewValidationError(name, "must be finite")
	}
	return v, nil
}
