// Package testutil provides fixtures shared by xgappup tests: an in-process
// Maven repository serving metadata and plugin jars, a jar builder, and a
// builder for GATE application files.
package testutil
