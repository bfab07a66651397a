// Package conflict detects and repairs problems in an assignment set.
//
// The Inspector scans an assignment list for five conflict classes. The
// Fixer computes a corrective next state for one conflict. The Rebalancer
// levels occupancy across tables one move at a time.
//
// All three are pure: they never mutate their inputs and always return a
// complete new assignment list. Callers re-run the Inspector after applying
// a fix; fixing one conflict never looks at the others.
package conflict
