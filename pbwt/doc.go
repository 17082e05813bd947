// Package pbwt implements the positional Burrows-Wheeler transform (PBWT)
// cursor and the long-haplotype-match algorithms built on top of it:
// within-panel enumeration (threshold and set-maximal) and panel-vs-query
// matching (naive, indexed, dynamic-sweep, sparse-sweep and projected).
//
// The package does not know how panels are stored on disk or fetched from
// remote storage; see github.com/grailbio/pbwt/encoding/pbwtio for a
// concrete Panel implementation and file format.
package pbwt
