/*
Package cleaner removes the records an application wrote to a SampleStore.

Clean walks the record types one after another. For each type it requests a
page, deletes it, and requests the page after it, until a page comes back
empty:

	c := cleaner.New(store, "healthsync",
	    cleaner.WithPageSize(1000),
	    cleaner.WithLogger(log),
	)
	c.Clean(ctx, func(msg string) { fmt.Println(msg) })

Cleaning is best effort. A failed delete is logged and paging goes on; a
failed query is logged and ends that type, and the next type starts.
*/
package cleaner
