/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package records

import "sort"

// WorkoutType is the discriminant of workout records.
const WorkoutType = "HKWorkoutTypeIdentifier"

// quantityTypes are the quantity sample tags this module reads and writes.
var quantityTypes = []string{
	"HKQuantityTypeIdentifierActiveEnergyBurned",
	"HKQuantityTypeIdentifierBasalEnergyBurned",
	"HKQuantityTypeIdentifierBloodGlucose",
	"HKQuantityTypeIdentifierBloodPressureDiastolic",
	"HKQuantityTypeIdentifierBloodPressureSystolic",
	"HKQuantityTypeIdentifierBodyFatPercentage",
	"HKQuantityTypeIdentifierBodyMass",
	"HKQuantityTypeIdentifierBodyMassIndex",
	"HKQuantityTypeIdentifierBodyTemperature",
	"HKQuantityTypeIdentifierDietaryEnergyConsumed",
	"HKQuantityTypeIdentifierDietaryWater",
	"HKQuantityTypeIdentifierDistanceCycling",
	"HKQuantityTypeIdentifierDistanceWalkingRunning",
	"HKQuantityTypeIdentifierFlightsClimbed",
	"HKQuantityTypeIdentifierHeartRate",
	"HKQuantityTypeIdentifierHeight",
	"HKQuantityTypeIdentifierLeanBodyMass",
	"HKQuantityTypeIdentifierOxygenSaturation",
	"HKQuantityTypeIdentifierRespiratoryRate",
	"HKQuantityTypeIdentifierStepCount",
}

// categoryTypes are the category sample tags this module reads and writes.
var categoryTypes = []string{
	"HKCategoryTypeIdentifierAppleStandHour",
	"HKCategoryTypeIdentifierCervicalMucusQuality",
	"HKCategoryTypeIdentifierMenstrualFlow",
	"HKCategoryTypeIdentifierOvulationTestResult",
	"HKCategoryTypeIdentifierSleepAnalysis",
}

// QuantityTypes returns the known quantity sample tags.
func QuantityTypes() []string {
	return append([]string(nil), quantityTypes...)
}

// CategoryTypes returns the known category sample tags.
func CategoryTypes() []string {
	return append([]string(nil), categoryTypes...)
}

// KnownTypes returns every known record tag, sorted.
func KnownTypes() []string {
	all := make([]string, 0, len(quantityTypes)+len(categoryTypes)+1)
	all = append(all, quantityTypes...)
	all = append(all, categoryTypes...)
	all = append(all, WorkoutType)
	sort.Strings(all)
	return all
}
