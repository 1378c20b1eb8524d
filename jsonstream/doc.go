/*
Package jsonstream reads and writes profile documents without holding them in
memory.

A profile document is one JSON object: metadata fields followed by a records
array whose elements carry a discriminant naming their type:

	{
	  "profileName": "Profilname",
	  "creationDate": 1446760800000,
	  "version": "1.0.0",
	  "type": "JsonSingleDocExportTarget",
	  "records": [
	    {"type": "HKQuantityTypeIdentifierStepCount", "sdate": 1446760800000, ...},
	    ...
	  ]
	}

Reader pulls tokens through a fixed buffer and calls a Handler for each
metadata field and each record. A Handler can stop the read through
ShouldAbort, which is how metadata is read from very large files without
touching the records array:

	err := jsonstream.NewReader().ReadFile(path, handler)

Writer is the inverse and streams a document to a sink.Sink:

	w, _ := jsonstream.NewWriter(sink.NewFileSink(path))
	w.WriteMetadata("profileName", "Profilname")
	w.WriteRecord(rec.Tag(), rec.Fields())
	w.Close()
*/
package jsonstream
