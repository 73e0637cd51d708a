package imagefile

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const maxImageBytes = 10 << 20

var ErrReadFailed = errors.New("failed to read file")

type Result struct {
	DataURL string
	Err     error
}

// DataURL reads r fully and encodes it as a base64 data URL whose media type
// is sniffed from the content.
func DataURL(r io.Reader) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	if len(b) > maxImageBytes {
		return "", fmt.Errorf("%w: larger than %d bytes", ErrReadFailed, maxImageBytes)
	}

	media := mimetype.Detect(b).String()
	if i := strings.IndexByte(media, ';'); i >= 0 {
		media = media[:i]
	}
	return "data:" + media + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	defer f.Close()
	return DataURL(f)
}

// Capture reads path in the background and delivers exactly one Result on
// the returned channel. A started read cannot be cancelled.
func Capture(path string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		url, err := ReadFile(path)
		out <- Result{DataURL: url, Err: err}
		close(out)
	}()
	return out
}
