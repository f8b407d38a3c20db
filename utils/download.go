package utils

import (
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// IsURL reports whether the source should be fetched over http.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// DownloadImage fetches the image found at url into a temporary file.
// The caller is responsible for closing and removing the file.
func DownloadImage(url string) (*os.File, error) {
	res, err := http.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to download image file from URI: %s", url)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unable to download image file from URI: %s, status %v", url, res.Status)
	}

	tmpfile, err := os.CreateTemp("", "image")
	if err != nil {
		return nil, errors.Wrap(err, "unable to create temporary file")
	}

	// Copy the image binary data into the temporary file.
	if _, err = io.Copy(tmpfile, res.Body); err != nil {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
		return nil, errors.Wrap(err, "unable to copy the source URI into the destination file")
	}
	if _, err = tmpfile.Seek(0, io.SeekStart); err != nil {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
		return nil, errors.Wrap(err, "unable to rewind the downloaded file")
	}
	return tmpfile, nil
}
