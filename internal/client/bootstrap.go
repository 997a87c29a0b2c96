package client

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/LacunaOmnibus/Chat-Envolve/pkg/envolve"
)

// BootstrapStatus describes one fetch of the widget loader script.
type BootstrapStatus struct {
	URL        string
	StatusCode int
	Bytes      int
}

// WidgetClient talks to Envolve's static hosting. It is only used by the
// doctor command to confirm the bootstrap script is reachable; the signing
// core never performs network I/O.
type WidgetClient struct {
	HTTP *resty.Client
}

func New() *WidgetClient {
	r := resty.New()
	r.SetHeader("Accept", "application/javascript, text/javascript, */*")
	return &WidgetClient{HTTP: r}
}

// FetchBootstrap downloads the widget loader and sanity-checks the response.
// An empty url falls back to the published loader location.
func (c *WidgetClient) FetchBootstrap(url string) (*BootstrapStatus, error) {
	if url == "" {
		url = envolve.BootstrapURL
	}

	resp, err := c.HTTP.R().Get(url)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("bootstrap fetch failed: %s returned %s", url, resp.Status())
	}

	body := resp.String()
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("bootstrap fetch returned an empty body from %s", url)
	}

	return &BootstrapStatus{
		URL:        url,
		StatusCode: resp.StatusCode(),
		Bytes:      len(body),
	}, nil
}
