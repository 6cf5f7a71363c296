// Package document reads and rewrites saved GATE application files.
//
// An application file is XML whose root holds urlList/localList, the list
// of plugins that were loaded when the application was saved. Each plugin
// entry is decoded once, at load time, into a Reference of a fixed Kind.
// Resource URLs anywhere in the tree are exposed as ResourceURL handles so
// they can be replaced in place.
package document
