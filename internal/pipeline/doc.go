// Package pipeline runs every input line through a sequence of steps:
// hex decoding, an optional lookup in the result history, and cracking.
//
// Each line gets its own Pipeline and its own model.LineResult, so a bad
// line is recorded and skipped instead of failing the whole run. The
// BatchProcessor runs lines concurrently with a bounded errgroup and keeps
// results in input order, which is what makes the best-overall selection
// deterministic. In strict mode the first failing line cancels the batch.
package pipeline
