// Package seatplan seats event participants at tables and repairs the conflicts
// that manual editing leaves behind.
//
// Seatplan runs one of three placement algorithms over an event roster,
// validates the result, and keeps an editable draft per event. The draft is
// re-inspected for conflicts after every change, can be fixed conflict by
// conflict or in bulk, and is committed as an append-only version with a
// diff against the previous one.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import "github.com/arloliu/seatplan"
//
//	src := source.NewStatic()
//	src.Set("gala-2025", source.Roster{Participants: participants, Tables: tables})
//
//	cfg := seatplan.DefaultConfig()
//	planner, err := seatplan.NewPlanner(&cfg, src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session, _ := planner.Session(ctx, "gala-2025")
//	if _, err := session.ApplyAlgorithm(ctx, seatplan.AlgorithmVIPSpread); err != nil {
//	    log.Fatal(err)
//	}
//	session.FixAll(ctx)
//	fmt.Println(session.Preview())
//	version, err := session.Commit(ctx, "alice@example.com")
//
// # Algorithms
//
//   - round_robin: rotates over tables in order, one participant per table per tick
//   - vip_spread: spreads VIPs over VIP tables first, then fills the least loaded tables
//   - group_by_company: seats the largest companies first, keeping colleagues together
//
// # Conflicts
//
// The inspector reports three errors (capacity_overflow, duplicate_assignment,
// unassigned) and two warnings (vip_imbalance, group_scatter). Each conflict
// has a smart fix; FixAll applies errors first, then warnings.
//
// # History
//
// Committed versions go to a VersionStore: in memory by default, or NATS
// JetStream KV through OpenHistory and WithVersionStore.
//
// See the examples/ directory for a complete working example.
package seatplan
