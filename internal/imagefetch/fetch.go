package imagefetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultMaxBytes caps fetched image payloads at 10 MB.
const DefaultMaxBytes int64 = 10 * 1024 * 1024

// ErrBlockedAddress is returned when a URL resolves to a non-public address.
var ErrBlockedAddress = errors.New("imagefetch: address not allowed")

// Image is the fetched payload handed to the vision prompt path.
type Image struct {
	Data     []byte
	MimeType string
}

// Fetcher retrieves product images with SSRF validation. Hosts must resolve
// to public unicast addresses; payloads are capped at MaxBytes.
type Fetcher struct {
	client   *http.Client
	resolver func(ctx context.Context, host string) ([]net.IP, error)
	MaxBytes int64
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{
		client: client,
		resolver: func(ctx context.Context, host string) ([]net.IP, error) {
			addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
			if err != nil {
				return nil, err
			}
			ips := make([]net.IP, 0, len(addrs))
			for _, addr := range addrs {
				ips = append(ips, addr.IP)
			}
			return ips, nil
		},
		MaxBytes: DefaultMaxBytes,
	}
}

// Fetch downloads the image at rawURL. It returns nil (not an error) when
// the image is unusable: blocked address, non-image response, or oversized
// payload. Alt-text generation falls back to text-only prompts in that case.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Image, error) {
	target, err := f.validate(ctx, rawURL)
	if err != nil {
		if errors.Is(err, ErrBlockedAddress) {
			return nil, nil
		}
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("imagefetch: create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagefetch: fetch %s: %w", target.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	maxBytes := f.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if resp.ContentLength > maxBytes {
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("imagefetch: read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, nil
	}

	mime := strings.TrimSpace(strings.Split(resp.Header.Get("Content-Type"), ";")[0])
	if !strings.HasPrefix(mime, "image/") {
		return nil, nil
	}
	return &Image{Data: data, MimeType: mime}, nil
}

func (f *Fetcher) validate(ctx context.Context, rawURL string) (*url.URL, error) {
	target, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("imagefetch: parse url: %w", err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, ErrBlockedAddress
	}
	host := target.Hostname()
	if host == "" {
		return nil, ErrBlockedAddress
	}

	if ip := net.ParseIP(host); ip != nil {
		if !isPublicIP(ip) {
			return nil, ErrBlockedAddress
		}
		return target, nil
	}

	ips, err := f.resolver(ctx, host)
	if err != nil || len(ips) == 0 {
		return nil, ErrBlockedAddress
	}
	for _, ip := range ips {
		if !isPublicIP(ip) {
			return nil, ErrBlockedAddress
		}
	}
	return target, nil
}

func isPublicIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsMulticast() {
		return false
	}
	return true
}
