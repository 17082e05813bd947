// Package pbwtio implements the on-disk format for biallelic haplotype
// panels read and written by cmd/pbwt-match: a small header followed by
// one snappy-compressed, highwayhash-checked block per site, plus
// MemPanel, an in-memory pbwt.Panel over the fully decoded symbol
// matrix.
package pbwtio
