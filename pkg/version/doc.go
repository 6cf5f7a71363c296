// Package version implements the generic Maven version scheme used by
// artifact repositories, and an ordered version set.
//
// Versions are split into items at '.', '-' and '_' and wherever digits
// meet letters. Numeric items compare numerically, well known qualifiers
// (alpha, beta, milestone, rc, snapshot, ga, sp) compare by rank and any
// other string compares lexically. Trailing zero items are padding, so
// "1.0" and "1" are the same version while "1-alpha" sorts before "1"
// and "1-foo" after it.
package version
