/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"github.com/google/uuid"

	"github.com/suparena/healthprofile/records"
)

// RecordID returns the id a record is stored under: its own UUID, or a new
// random one when it carries none.
func RecordID(rec records.Record) string {
	if id := records.IDOf(rec); id != "" {
		return id.String()
	}
	return uuid.NewString()
}
