/*
Package profile ties a profile document on disk to the reader and the record
registry.

A Profile serializes its reads: LoadMetadata with async queues the read on the
profile's own worker, and inline reads wait for whatever read is in flight.

	p, err := profile.Open("export.json", profile.WithLogger(log))
	if err != nil {
		return err
	}
	defer p.Close()

	p.LoadMetadata(true, func(m profile.Metadata) { ... })
	stats, err := p.ImportRecords(func(rec records.Record) { ... })
*/
package profile
