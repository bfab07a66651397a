// Package strategy provides the built-in placement algorithms.
//
// Placement algorithms seat participants at capacity-bounded tables. The
// package includes three strategies, selected by the closed types.Algorithm
// enum:
//
//   - RoundRobin: deals participants one per table in table order
//   - VIPSpread: seats VIPs first, evenly over VIP tables, then balances the rest
//   - GroupByCompany: seats each company together, largest company first
//
// # Strategy Selection Guide
//
// RoundRobin:
//   - Use when tables are interchangeable
//   - Guarantees occupancy differing by at most one for equal capacities
//
// VIPSpread:
//   - Use when VIP tables exist or VIPs must not cluster
//   - Restricts VIPs to VIP tables while they have seats
//
// GroupByCompany:
//   - Use for networking events where colleagues sit together
//   - A company is split only when no single table has enough free seats
//
// All strategies share the same contract: inputs are never mutated, working
// state is rebuilt on every call, and a capacity shortfall is reported
// through Summary.UnassignedCount rather than an error.
package strategy
