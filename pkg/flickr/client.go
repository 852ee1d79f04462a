package flickr

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"flickrget/pkg/config"
	"flickrget/pkg/errors"
	"flickrget/pkg/logger"
)

// Client talks to the Flickr REST API: photo searches against the endpoint
// and plain GET downloads of the image URLs the search returns.
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
	apiKey     string
	logger     logger.Logger
}

// NewClient creates a Flickr API client from the loaded configuration.
// The API key is expected to be resolved into cfg.Flickr.APIKey before
// the client is constructed.
func NewClient(cfg *config.Config, log logger.Logger) *Client {
	// Use default logger if none provided
	if log == nil {
		log = logger.GetLogger()
	}

	endpoint := cfg.Flickr.Endpoint
	if endpoint == "" {
		endpoint = config.DefaultEndpoint
	}
	userAgent := cfg.Flickr.UserAgent
	if userAgent == "" {
		userAgent = "flickrget/1.0"
	}

	timeout := cfg.HTTP.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoint:  endpoint,
		userAgent: userAgent,
		apiKey:    cfg.Flickr.APIKey,
		logger:    log,
	}
}

// Endpoint returns the REST endpoint the client sends searches to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// doRequest performs an HTTP request with the configured headers
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Code:    0,
		}
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// Search executes one photo search. It POSTs the query as form fields, adds
// the API key, and decodes the JSON body. The raw body bytes are returned
// alongside the decoded response so callers can persist the payload exactly
// as the API sent it.
//
// A non-200 status is an error for searches as well as downloads; an error
// page that happens to be JSON never masquerades as an empty result.
func (c *Client) Search(query SearchQuery) (*SearchResponse, []byte, error) {
	form := query.Values()
	form.Set("api_key", c.apiKey)

	req, err := http.NewRequest(http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, nil, &errors.Error{
			Type:    errors.ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Code:    0,
		}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.DebugWithFields("searching photos", map[string]interface{}{
		"word":     query.Word,
		"page":     query.Page,
		"per_page": query.PerPage,
		"license":  query.License,
	})

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorWithFields("search request failed", map[string]interface{}{
			"word":   query.Word,
			"page":   query.Page,
			"status": resp.StatusCode,
		})
		return nil, nil, &errors.Error{
			Type:    errors.FromStatusCode(resp.StatusCode),
			Message: "search request failed",
			Code:    resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse search response", map[string]interface{}{
			"word":         query.Word,
			"page":         query.Page,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return nil, nil, &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse JSON: %v", err),
			Code:    resp.StatusCode,
		}
	}

	if result.Stat != "ok" {
		c.logger.ErrorWithFields("API reported failure", map[string]interface{}{
			"word":        query.Word,
			"page":        query.Page,
			"flickr_code": result.Code,
			"message":     result.Message,
		})
		return nil, nil, &errors.Error{
			Type:    errors.ErrorTypeAPI,
			Message: fmt.Sprintf("flickr error %d: %s", result.Code, result.Message),
			Code:    resp.StatusCode,
		}
	}

	c.logger.DebugWithFields("search completed", map[string]interface{}{
		"word":   query.Word,
		"page":   result.Photos.Page,
		"pages":  result.Photos.Pages,
		"photos": len(result.Photos.Photo),
	})

	return &result, body, nil
}

// Download fetches an image URL and returns the body bytes. Any status
// other than 200 is a download failure carrying the status code; the
// caller decides whether that aborts anything.
func (c *Client) Download(imageURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Code:    0,
		}
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorWithFields("server error response", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    imageURL,
		})
		return nil, &errors.Error{
			Type:    errors.ErrorTypeDownload,
			Message: "download failure",
			Code:    resp.StatusCode,
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.ErrorWithFields("failed to read image data", map[string]interface{}{
			"url":   imageURL,
			"error": err.Error(),
		})
		return nil, &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to download image: %v", err),
			Code:    0,
		}
	}

	c.logger.DebugWithFields("image downloaded", map[string]interface{}{
		"url":  imageURL,
		"size": len(data),
	})

	return data, nil
}
