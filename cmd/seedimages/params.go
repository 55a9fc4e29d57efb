package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MiniCooper40/ecommerce-website/placeholder"
)

type commandParams struct {
	outputDir string
	upload    placeholder.UploaderConfig
	jsonLogs  bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.outputDir, "out", defaultOutputDir(), "directory the images are written to")
	fs.StringVar(&c.upload.Endpoint, "minio-endpoint", "", "if set, upload the images to this MinIO endpoint (host:port)")
	fs.StringVar(&c.upload.Bucket, "minio-bucket", placeholder.DefaultBucket, "MinIO bucket for the images")
	fs.StringVar(&c.upload.Prefix, "minio-prefix", placeholder.DefaultObjectPrefix, "object name prefix for the images")
	fs.StringVar(&c.upload.AccessKey, "minio-access-key", os.Getenv("MINIO_ACCESS_KEY"), "MinIO access key (default $MINIO_ACCESS_KEY)")
	fs.StringVar(&c.upload.SecretKey, "minio-secret-key", os.Getenv("MINIO_SECRET_KEY"), "MinIO secret key (default $MINIO_SECRET_KEY)")
	fs.BoolVar(&c.upload.Secure, "minio-secure", false, "use HTTPS for MinIO")
	fs.BoolVar(&c.jsonLogs, "json", false, "log in JSON instead of console format")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return false
	}
	return true
}

// defaultOutputDir is "products" next to the executable. Under "go run" the executable lives
// in a temporary build directory, so the working directory is used instead.
func defaultOutputDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "products"
	}
	dir := filepath.Dir(exe)
	if strings.HasPrefix(dir, filepath.Clean(os.TempDir())) {
		return "products"
	}
	return filepath.Join(dir, "products")
}
