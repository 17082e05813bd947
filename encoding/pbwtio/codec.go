package pbwtio

import (
	"context"
	"encoding/binary"
	"io"

	"github.com/golang/snappy"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
)

// On-disk format (see spec.md §6's panel file): a small header, then one
// block per site, each independently snappy-compressed and guarded by a
// highwayhash-256 checksum so a truncated or corrupted block is caught
// at read time instead of silently producing wrong match calls.
//
//	magic    [8]byte  "PBWTPNL1"
//	m        uint32   number of haplotypes
//	n        uint32   number of sites
//	per site:
//	  clen     uint32   length of the compressed block
//	  data     [clen]byte   snappy.Encode of the site's m-byte symbol column
//	  checksum [highwayhash.Size]byte   highwayhash.Sum of data, zero key
var magic = [8]byte{'P', 'B', 'W', 'T', 'P', 'N', 'L', '1'}

var checksumKey [highwayhash.Size]byte // the zero key; integrity only, not a MAC

// WritePanel writes p to path in the pbwtio block format.
func WritePanel(ctx context.Context, path string, p *MemPanel) error {
	f, err := file.Create(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "pbwtio: create %s", path)
	}
	w := f.Writer(ctx)
	if err := writePanel(w, p); err != nil {
		_ = f.Close(ctx)
		return errors.Wrapf(err, "pbwtio: write %s", path)
	}
	if err := f.Close(ctx); err != nil {
		return errors.Wrapf(err, "pbwtio: close %s", path)
	}
	log.Printf("pbwtio: wrote %s (%d haplotypes, %d sites)", path, p.m, p.n)
	return nil
}

func writePanel(w io.Writer, p *MemPanel) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(p.m))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(p.n))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	var lenBuf [4]byte
	for _, col := range p.data {
		compressed := snappy.Encode(nil, col)
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(compressed)))
		if _, err := w.Write(lenBuf[:]); err != nil {
			return err
		}
		if _, err := w.Write(compressed); err != nil {
			return err
		}
		sum := highwayhash.Sum(compressed, checksumKey[:])
		if _, err := w.Write(sum[:]); err != nil {
			return err
		}
	}
	return nil
}

// ReadPanel reads a panel previously written by WritePanel.
func ReadPanel(ctx context.Context, path string) (*MemPanel, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "pbwtio: open %s", path)
	}
	defer func() { _ = f.Close(ctx) }() // nolint: errcheck
	p, err := readPanel(f.Reader(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "pbwtio: read %s", path)
	}
	log.Printf("pbwtio: read %s (%d haplotypes, %d sites)", path, p.m, p.n)
	return p, nil
}

func readPanel(r io.Reader) (*MemPanel, error) {
	var gotMagic [8]byte
	if _, err := io.ReadFull(r, gotMagic[:]); err != nil {
		return nil, errors.Wrap(err, "read magic")
	}
	if gotMagic != magic {
		return nil, errors.Errorf("bad magic %q, want %q", gotMagic, magic)
	}
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	m := int(binary.LittleEndian.Uint32(hdr[0:4]))
	n := int(binary.LittleEndian.Uint32(hdr[4:8]))

	data := make([][]uint8, n)
	var lenBuf [4]byte
	var sum [highwayhash.Size]byte
	for k := 0; k < n; k++ {
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, errors.Wrapf(err, "read block %d length", k)
		}
		clen := binary.LittleEndian.Uint32(lenBuf[:])
		compressed := make([]byte, clen)
		if _, err := io.ReadFull(r, compressed); err != nil {
			return nil, errors.Wrapf(err, "read block %d data", k)
		}
		if _, err := io.ReadFull(r, sum[:]); err != nil {
			return nil, errors.Wrapf(err, "read block %d checksum", k)
		}
		if got := highwayhash.Sum(compressed, checksumKey[:]); got != sum {
			return nil, errors.Errorf("block %d checksum mismatch: corrupt panel file", k)
		}
		col, err := snappy.Decode(nil, compressed)
		if err != nil {
			return nil, errors.Wrapf(err, "decompress block %d", k)
		}
		if len(col) != m {
			return nil, errors.Errorf("block %d has %d haplotypes, header says %d", k, len(col), m)
		}
		data[k] = col
	}
	return &MemPanel{m: m, n: n, data: data}, nil
}
