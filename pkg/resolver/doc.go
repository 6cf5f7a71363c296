// Package resolver finds the plugin versions an application can upgrade to.
//
// ResolveVersions asks the repository for every version of an artifact and
// keeps only those whose jar carries the plugin marker file at its root.
// Candidate versions are probed in parallel on a bounded errgroup; each
// probe writes its own slot and the set is filtered once the group joins.
// A repository bootstrap failure or an unreachable repository yields no
// versions for that call instead of an error.
package resolver
