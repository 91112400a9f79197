// Package keyword implements the body store record format and the keyword
// reader that recovers per-page term frequencies from it.
//
// Two record formats are supported. The positional format is the historical
// one: records are separated by '^', a title line carries the "!@" marker and
// a body line is recognised only because it starts with '<'. The tagged format
// writes one "title=" line and one "body=" line per record so that no content
// sniffing is needed to tell them apart.
package keyword
