/*
Package healthprofile reads, writes and syncs exported health profiles.

A health profile is one JSON document: a few metadata fields followed by a
records array that can hold millions of samples. The module reads such
documents in bounded memory, turns their records into typed values, and
keeps a DynamoDB table in sync with them.

Key Features:
  - Streaming document reader that stops as soon as a handler has what it needs
  - Immutable registry from record type tag to record constructor
  - Profiles with a serial read queue per document
  - Paged, best effort cleanup of everything an application wrote to the store
  - Semantic error types for better error handling
  - In-memory store implementation for testing

Basic Usage:

	p, err := profile.Open("export.json")
	if err != nil {
	    return err
	}
	defer p.Close()

	meta := p.Metadata()
	stats, err := p.ImportRecords(func(rec records.Record) {
	    batch = append(batch, rec)
	})

	store, _ := ddb.NewDynamodbSampleStore(ctx, key, secret, region, "", table)
	cleaner.New(store, "healthsync").Clean(ctx, func(msg string) { log.Println(msg) })

The healthsync command in cmd/healthsync wires these together.
*/
package healthprofile
