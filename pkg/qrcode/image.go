package qr

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

var ErrImage = errors.New("failed to load embedded image")

const maxImageBytes = 10 << 20

// Image is a decoded embedded image together with its raw encoding
type Image struct {
	image.Image
	Raw  []byte
	MIME string
}

// ImageLoader resolves the image reference of a form state
type ImageLoader interface {
	Load(ctx context.Context, ref string, crossOrigin qrstyle.CrossOrigin) (*Image, error)
}

// Loader loads data URIs, http(s) URLs and local files.
type Loader struct {
	Client *http.Client
	// Credentials is sent as the Authorization header for use-credentials
	// fetches from CredentialHosts only.
	Credentials     string
	CredentialHosts []string
	// AllowedHosts limits remote fetches, empty allows any host
	AllowedHosts []string
	// AllowFiles enables local file references
	AllowFiles bool
}

func NewLoader(timeout time.Duration, allowFiles bool) *Loader {
	l := &Loader{AllowFiles: allowFiles}
	l.Client = &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			if len(l.AllowedHosts) > 0 && !hostListed(req.URL, l.AllowedHosts) {
				return fmt.Errorf("redirect to %s is not allowed", req.URL.Host)
			}
			if !hostListed(req.URL, l.CredentialHosts) {
				req.Header.Del("Authorization")
			}
			return nil
		},
	}
	return l
}

// hostListed matches u against entries given as "host" or "host:port".
func hostListed(u *url.URL, hosts []string) bool {
	for _, h := range hosts {
		if strings.EqualFold(h, u.Host) || strings.EqualFold(h, u.Hostname()) {
			return true
		}
	}
	return false
}

func (l *Loader) Load(ctx context.Context, ref string, crossOrigin qrstyle.CrossOrigin) (*Image, error) {
	var (
		raw []byte
		err error
	)
	switch {
	case strings.HasPrefix(ref, "data:"):
		raw, err = decodeDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		raw, err = l.fetch(ctx, ref, crossOrigin)
	case l.AllowFiles:
		raw, err = os.ReadFile(ref)
	default:
		err = fmt.Errorf("unsupported image reference %q", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImage, err)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImage, err)
	}
	return &Image{Image: img, Raw: raw, MIME: "image/" + format}, nil
}

func (l *Loader) fetch(ctx context.Context, ref string, crossOrigin qrstyle.CrossOrigin) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	if len(l.AllowedHosts) > 0 && !hostListed(req.URL, l.AllowedHosts) {
		return nil, fmt.Errorf("host %s is not allowed", req.URL.Host)
	}
	if crossOrigin == qrstyle.CrossOriginUseCredentials && l.Credentials != "" && hostListed(req.URL, l.CredentialHosts) {
		req.Header.Set("Authorization", l.Credentials)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", ref, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

func decodeDataURI(uri string) ([]byte, error) {
	meta, data, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URI")
	}
	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(data)
	}
	return []byte(data), nil
}

// dataURI encodes raw bytes for inline embedding.
func dataURI(mime string, raw []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)
}
