// Package uldk is a client for the ULDK cadastral lookup service, which
// resolves Polish administrative units (voivodeship, district, commune,
// precinct) and parcel/region geometries by TERYT code and parcel id.
package uldk

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public ULDK endpoint.
const DefaultBaseURL = "https://uldk.gugik.gov.pl/"

// Administrative unit kinds accepted by the list endpoint.
const (
	KindVoivodeship = "wojewodztwo"
	KindDistrict    = "powiat"
	KindCommune     = "gmina"
	KindPrecinct    = "obreb"
)

// Option is one administrative unit as returned by the list endpoint:
// a display label and the TERYT code used to query the next level down.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Client looks up administrative units and cadastral geometries.
type Client interface {
	// Voivodeships fetches the top-level unit list.
	Voivodeships(ctx context.Context) ([]Option, error)

	// Districts fetches the districts of a voivodeship.
	Districts(ctx context.Context, teryt string) ([]Option, error)

	// Communes fetches the communes of a district.
	Communes(ctx context.Context, teryt string) ([]Option, error)

	// Precincts fetches the cadastral precincts of a commune.
	Precincts(ctx context.Context, teryt string) ([]Option, error)

	// RegionByID fetches the geometry of an administrative region,
	// reprojected to WGS84.
	RegionByID(ctx context.Context, id string) ([]geom.T, error)

	// ParcelByID fetches the geometry of a cadastral parcel,
	// reprojected to WGS84.
	ParcelByID(ctx context.Context, id string) ([]geom.T, error)
}

// ClientOption configures the client.
type ClientOption func(*client)

// WithBaseURL overrides the service endpoint.
func WithBaseURL(u string) ClientOption {
	return func(c *client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit for service calls.
func WithRateLimit(rps float64) ClientOption {
	return func(c *client) {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

type client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Client with the given options.
func NewClient(opts ...ClientOption) Client {
	c := &client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(5, 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) Voivodeships(ctx context.Context) ([]Option, error) {
	return c.list(ctx, KindVoivodeship, "")
}

func (c *client) Districts(ctx context.Context, teryt string) ([]Option, error) {
	return c.list(ctx, KindDistrict, teryt)
}

func (c *client) Communes(ctx context.Context, teryt string) ([]Option, error) {
	return c.list(ctx, KindCommune, teryt)
}

func (c *client) Precincts(ctx context.Context, teryt string) ([]Option, error) {
	return c.list(ctx, KindPrecinct, teryt)
}

func (c *client) RegionByID(ctx context.Context, id string) ([]geom.T, error) {
	return c.geometry(ctx, "GetRegionById", id)
}

func (c *client) ParcelByID(ctx context.Context, id string) ([]geom.T, error) {
	return c.geometry(ctx, "GetParcelById", id)
}

// list fetches and parses one administrative unit list. teryt is the
// parent unit code, empty for the top level.
func (c *client) list(ctx context.Context, kind, teryt string) ([]Option, error) {
	params := url.Values{"obiekt": {kind}}
	if teryt != "" {
		params.Set("teryt", teryt)
	}

	raw, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}
	return ParseUnitList(raw), nil
}

// geometry fetches one geometry response and runs it through the decode
// and reprojection pipeline.
func (c *client) geometry(ctx context.Context, request, id string) ([]geom.T, error) {
	params := url.Values{
		"request": {request},
		"id":      {id},
	}

	raw, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	geoms, err := ParseGeometryResponse(raw)
	if err != nil {
		return nil, eris.Wrapf(err, "uldk: %s id=%s", request, id)
	}
	return geoms, nil
}

func (c *client) get(ctx context.Context, params url.Values) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "uldk: rate limit")
	}

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "uldk: build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", &NetworkError{URL: reqURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{URL: reqURL, Err: err}
	}
	return string(body), nil
}
