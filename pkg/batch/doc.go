// Package batch implements the group-at-a-time fetch controller.
//
// Concurrency model:
//   - identifiers are partitioned into contiguous groups of batchSize
//   - every item in a group runs concurrently (one goroutine per item)
//   - the controller joins the whole group before starting the next one
//   - results are reassembled in input order by positional accumulation
//
// Bounding concurrency to one group caps simultaneous open connections to
// the remote service while keeping full parallelism inside that bound. The
// controller never inspects failure causes; it counts and forwards them.
package batch
