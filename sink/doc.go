// Package sink provides the byte destinations an exported profile document
// is written to: an in-memory sink and a file-backed sink behind one Sink
// interface, with WriteString as the shared string helper.
package sink
