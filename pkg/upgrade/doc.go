// Package upgrade builds and applies upgrade plans for GATE application files.
//
// Suggest classifies every plugin reference of a document and resolves the
// versions its artifact can move to, producing one Path per reference. A
// Path is changed only through SetCoordinates, SetStrategy and
// SetSelectedVersion, which keep the selected version inside the resolved
// version set. Apply then rewrites the document: plugin entries are
// replaced by Maven plugin entries, and resource URLs that lived under an
// upgraded plugin become creole:// resource references.
//
// The usual flow:
//
//	paths, _ := upgrade.Suggest(ctx, doc, resolver, opts)
//	// optionally let a user adjust paths
//	paths = upgrade.FilterNoOps(paths)
//	result, err := upgrade.Apply(doc, paths, upgrade.ApplyOptions{})
package upgrade
