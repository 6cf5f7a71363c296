// Package repository talks to Maven 2 layout artifact repositories.
//
// A Client lists the versions of an artifact from maven-metadata.xml and
// fetches artifact files into the local repository, reading remotes over
// HTTP(S) or directly from file: URLs. NewSession bootstraps a Client from
// the xgappup configuration and the user's Maven settings.xml (local
// repository, offline flag, server credentials, mirrors and the
// repositories of active profiles).
package repository
