// Package writers turns reported interactions into serialized outputs.
//
// Writers own all presentation knowledge (ASCII duplex, TSV, JSON/JSONL).
// Prediction stays domain-only; JSON and JSONL go through pkg/api (v1)
// for a stable wire format.
package writers
