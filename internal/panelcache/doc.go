// Package panelcache fetches reference panel files from S3 into a local
// directory, keyed by a FarmHash fingerprint of their source URL, so that
// repeated runs of cmd/pbwt-match against the same s3:// panel avoid
// re-downloading it.
package panelcache
