package ioloader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnsys"
	"github.com/gnames/taxodrift/pkg/config"
)

// locate returns a local path to the release file. Remote files are
// downloaded to the cache once and reused afterwards.
func (l *Loader) locate(ctx context.Context, src string) (string, error) {
	switch {
	case isURL(src):
		return l.download(ctx, src)
	case strings.HasPrefix(src, "s3://"):
		return l.downloadS3(ctx, src)
	}

	if !filepath.IsAbs(src) {
		src = filepath.Join(l.cfg.InputDir(l.cl.Name), src)
	}

	if isGlob(src) {
		return latestMatch(src)
	}

	if _, err := os.Stat(src); err != nil {
		return "", SourceError(src, err)
	}
	return src, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// latestMatch finds files that match a glob pattern and picks the one
// with the latest date in its name.
func latestMatch(pattern string) (string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return "", SourceError(pattern, err)
	}

	var files []string
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return "", SourceError(pattern, os.ErrNotExist)
	}

	res := selectLatestFile(files)
	if len(files) > 1 {
		slog.Warn("Several files match release pattern, using the latest",
			"pattern", pattern, "matches", len(files), "selected", res)
	}
	return res, nil
}

var datePattern = regexp.MustCompile(`(\d{4})[-._]?(\d{2})(?:[-._]?(\d{2}))?`)

// fileDate extracts a date from a file name as YYYYMMDD. Missing day
// becomes "00".
func fileDate(name string) string {
	m := datePattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return ""
	}
	day := m[3]
	if day == "" {
		day = "00"
	}
	return m[1] + m[2] + day
}

// selectLatestFile returns the file with the latest date in its name.
// Files without a date lose to dated ones, ties are broken by name.
func selectLatestFile(files []string) string {
	best := files[0]
	bestDate := fileDate(best)
	for _, f := range files[1:] {
		d := fileDate(f)
		if d > bestDate || (d == bestDate && f > best) {
			best, bestDate = f, d
		}
	}
	return best
}

func (l *Loader) download(ctx context.Context, src string) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", FetchError(src, err)
	}
	dir := config.DownloadDir(l.cfg.HomeDir)
	target := filepath.Join(dir, path.Base(u.Path))
	if _, err = os.Stat(target); err == nil {
		slog.Info("Using cached download", "source", src, "path", target)
		return target, nil
	}
	if err = gnsys.MakeDir(dir); err != nil {
		return "", FetchError(src, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", FetchError(src, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", FetchError(src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", FetchError(src, fmt.Errorf("status %d", resp.StatusCode))
	}

	err = l.save(target, resp.Body, resp.ContentLength)
	if err != nil {
		return "", FetchError(src, err)
	}
	return target, nil
}

// s3Client creates the S3 client on first use.
type s3Client struct {
	once   sync.Once
	client *s3.Client
	err    error
}

func (c *s3Client) get(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	c.once.Do(func() {
		var loadOpts []func(*awscfg.LoadOptions) error
		if cfg.Region != "" {
			loadOpts = append(loadOpts, awscfg.WithRegion(cfg.Region))
		}
		awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			c.err = err
			return
		}
		c.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.PathStyle {
				o.UsePathStyle = true
			}
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
		})
	})
	return c.client, c.err
}

// parseS3 splits s3://bucket/key into bucket and key.
func parseS3(src string) (string, string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", "", err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("location %q is not s3://bucket/key", src)
	}
	return u.Host, key, nil
}

func (l *Loader) downloadS3(ctx context.Context, src string) (string, error) {
	bucket, key, err := parseS3(src)
	if err != nil {
		return "", FetchError(src, err)
	}
	dir := filepath.Join(config.DownloadDir(l.cfg.HomeDir), bucket)
	target := filepath.Join(dir, path.Base(key))
	if _, err = os.Stat(target); err == nil {
		slog.Info("Using cached download", "source", src, "path", target)
		return target, nil
	}
	if err = gnsys.MakeDir(dir); err != nil {
		return "", FetchError(src, err)
	}

	client, err := l.s3.get(ctx, l.cfg.S3)
	if err != nil {
		return "", FetchError(src, err)
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return "", FetchError(src, err)
	}
	defer out.Body.Close()

	var size int64
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	if err = l.save(target, out.Body, size); err != nil {
		return "", FetchError(src, err)
	}
	return target, nil
}

// save writes r to a temporary file and renames it to target when the
// copy is complete.
func (l *Loader) save(target string, r io.Reader, size int64) error {
	tmp := target + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	bar := l.newBar(size, "Downloading "+filepath.Base(target)+": ")
	bar.Set(pb.Bytes, true)
	_, err = io.Copy(f, bar.NewProxyReader(r))
	bar.Finish()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, target)
}
