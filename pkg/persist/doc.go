// Package persist writes upgraded application files back to disk.
//
// The original file is copied to a backup next to it and the new content is
// staged in a temporary sibling, both through a synthfs pipeline on the OS
// filesystem. The temporary file replaces the original only after the
// pipeline succeeded, so a failed run never leaves a half written
// application behind.
package persist
