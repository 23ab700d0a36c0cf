// Package normalisers holds the helpers shared by the per-source
// normaliser packages. Each subpackage converts one source's payload
// into canonical 1-based inclusive ranges.
//
// Normalisers are registered with the NormaliserRegistry at startup.
package normalisers
