package panelcache

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Fetch returns the local path of srcURL (an s3://bucket/key URL),
// downloading it into dir first if it isn't already cached there. The
// local filename is a FarmHash-64 fingerprint of srcURL plus its base
// name, so distinct source objects never collide.
func Fetch(dir, srcURL string) (string, error) {
	if !strings.HasPrefix(srcURL, "s3://") {
		return srcURL, nil
	}
	localPath := cachePath(dir, srcURL)
	if _, err := os.Stat(localPath); err == nil {
		log.Printf("panelcache: %s already cached at %s", srcURL, localPath)
		return localPath, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "panelcache: mkdir %s", dir)
	}
	bucket, key, err := parseS3URL(srcURL)
	if err != nil {
		return "", err
	}
	out, err := os.Create(localPath + ".tmp")
	if err != nil {
		return "", errors.Wrapf(err, "panelcache: create %s", localPath)
	}
	sess, err := session.NewSession()
	if err != nil {
		_ = out.Close()
		return "", errors.Wrap(err, "panelcache: new AWS session")
	}
	downloader := s3manager.NewDownloader(sess)
	n, err := downloader.Download(out, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", errors.Wrapf(err, "panelcache: download %s", srcURL)
	}
	if err := os.Rename(localPath+".tmp", localPath); err != nil {
		return "", errors.Wrapf(err, "panelcache: rename into place %s", localPath)
	}
	log.Printf("panelcache: fetched %s (%d bytes) to %s", srcURL, n, localPath)
	return localPath, nil
}

// VerifyCache reports the FarmHash-64 fingerprint of the local file at
// path, logging it at debug level so mismatched caches are easy to spot
// across runs.
func VerifyCache(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "panelcache: read %s", path)
	}
	sum := farm.Hash64(data)
	log.Debug.Printf("panelcache: %s fingerprint=%x", path, sum)
	return sum, nil
}

func cachePath(dir, srcURL string) string {
	sum := farm.Hash64WithSeed([]byte(srcURL), 0)
	base := filepath.Base(srcURL)
	return filepath.Join(dir, fmt.Sprintf("%016x-%s", sum, base))
}

func parseS3URL(s string) (bucket, key string, err error) {
	u, err := url.Parse(s)
	if err != nil {
		return "", "", errors.Wrapf(err, "panelcache: parse %s", s)
	}
	if u.Scheme != "s3" {
		return "", "", errors.Errorf("panelcache: not an s3:// URL: %s", s)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}
