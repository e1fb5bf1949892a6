// Package pipeline fans target×query jobs out to a bounded worker pool
// and hands results back in job order.
//
// The only contract is the per-job function; prediction, observers and
// writers all live with the caller. This keeps the pipeline swappable and
// testable.
package pipeline
