// Package pace implements an adaptive practice scheduler for drill-style
// learning apps.
//
// pace tracks one statistics record per item (recent response latencies, an
// EWMA, a half-life forgetting curve) and uses them to decide which item to
// drill next: unseen items get an exploration boost, slow and forgotten
// items are pulled harder, and the previously shown item is never repeated
// back-to-back. After each answer the per-item memory model is updated from
// the response latency and correctness.
//
// Basic usage:
//
//	sel, err := pace.NewSelector(pace.SelectorConfig{
//	    Storage: pace.NewMemoryStore(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	next, err := sel.SelectNext([]string{"C#", "F", "Bb"})
//	// ... present the item, time the answer ...
//	sel.RecordResponse(next, 1450, true)
//
// Durable per-profile storage lives in the pace/badgerstore subpackage;
// user profiles and motor-baseline calibration in pace/profile.
package pace
