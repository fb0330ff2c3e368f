// Package gtex is a client library for the GTEx Portal REST API. Each
// endpoint is wrapped by a model type whose factory on *Client performs
// exactly one blocking GET, validates the response shape, and returns a
// fully populated, immutable value.
//
// See https://www.gtexportal.org/home/api-docs for the upstream API.
package gtex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// DatasetID is the GTEx release all expression queries are pinned to.
	DatasetID = "gtex_v8"

	defaultBaseURL   = "https://gtexportal.org/rest/v1/"
	defaultTimeout   = 30 * time.Second
	defaultRateLimit = 5 // requests per second; the portal has no published limit

	userAgent = "gtex-go/1.0"
)

// Supported annotation version and genome build tags. The two parameters
// co-vary: only v26/GRCh38 and v19/GRCh37 are accepted by the portal.
const (
	GencodeV26 = "v26"
	GencodeV19 = "v19"

	GenomeBuildGRCh38 = "GRCh38/hg38"
	GenomeBuildGRCh37 = "GRCh37/hg19"
)

// Config represents configuration for the GTEx portal client.
type Config struct {
	BaseURL        string        `json:"base_url"`
	Timeout        time.Duration `json:"timeout"`
	RateLimit      int           `json:"rate_limit"` // requests per second
	GencodeVersion string        `json:"gencode_version"`
	GenomeBuild    string        `json:"genome_build"`

	// Logger receives a debug entry per outgoing request. Defaults to the
	// logrus standard logger.
	Logger logrus.FieldLogger `json:"-"`
}

// Client handles interactions with the GTEx Portal REST API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	rateLimit      *rate.Limiter
	log            logrus.FieldLogger
	gencodeVersion string
	genomeBuild    string
}

// NewClient creates a GTEx portal client. The gencode version and genome
// build must be one of the two permitted combinations; any other pairing
// fails with a ConfigurationError before any network activity.
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if !strings.HasSuffix(config.BaseURL, "/") {
		config.BaseURL += "/"
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.RateLimit == 0 {
		config.RateLimit = defaultRateLimit
	}
	if config.GencodeVersion == "" && config.GenomeBuild == "" {
		config.GencodeVersion = GencodeV26
		config.GenomeBuild = GenomeBuildGRCh38
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	valid := (config.GencodeVersion == GencodeV26 && config.GenomeBuild == GenomeBuildGRCh38) ||
		(config.GencodeVersion == GencodeV19 && config.GenomeBuild == GenomeBuildGRCh37)
	if !valid {
		return nil, newConfigurationError("gencodeVersion",
			fmt.Sprintf("gencode version %q does not match genome build %q", config.GencodeVersion, config.GenomeBuild),
			config.GencodeVersion+"/"+config.GenomeBuild)
	}

	return &Client{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimit:      rate.NewLimiter(rate.Limit(config.RateLimit), 1),
		log:            config.Logger,
		gencodeVersion: config.GencodeVersion,
		genomeBuild:    config.GenomeBuild,
	}, nil
}

// GencodeVersion returns the annotation version tag sent with every query.
func (c *Client) GencodeVersion() string {
	return c.gencodeVersion
}

// GenomeBuild returns the genome build tag sent with every query.
func (c *Client) GenomeBuild() string {
	return c.genomeBuild
}

// getJSON performs a single GET against the given endpoint path and decodes
// the body into out. The annotation version pair rides along on every
// request. All failure modes collapse into an APIError; there are no
// retries.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.rateLimit.Wait(ctx); err != nil {
		return newAPIError(path, "rate limit wait failed", 0, err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("gencodeVersion", c.gencodeVersion)
	params.Set("genomeBuild", c.genomeBuild)

	requestURL := c.baseURL + path + "?" + params.Encode()
	c.log.WithFields(logrus.Fields{
		"path":   path,
		"params": params.Encode(),
	}).Debug("fetching from GTEx portal")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return newAPIError(path, "failed to create request", 0, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newAPIError(path, "failed to execute request", 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newAPIError(path, "failed to read response body", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		return newAPIError(path, strings.TrimSpace(string(body)), resp.StatusCode, nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return newAPIError(path, "failed to parse JSON response", resp.StatusCode, err)
	}

	return nil
}
