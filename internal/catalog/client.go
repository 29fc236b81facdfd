package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// API defines the catalog operations the UI consumes.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	FetchProducts(ctx context.Context, query ProductQuery) (Page[ProductSummary], error)
	FetchProductByID(ctx context.Context, id int64) (*ProductDetail, error)
	FetchReviewSummary(ctx context.Context, productID int64, limit int, lang string) (*ReviewSummary, error)
	FetchReviews(ctx context.Context, query ReviewQuery) (Page[Review], error)
	SubmitReview(ctx context.Context, input SubmitReviewInput) (*Review, error)
	ToggleHelpful(ctx context.Context, reviewID int64, deviceID string) (*HelpfulVote, error)
	TranslateBatch(ctx context.Context, lang string, texts []string) ([]string, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	transport *breakerTransport
	userAgent string
}

const (
	defaultBaseURL   = "http://127.0.0.1:8080"
	defaultUserAgent = "claro/0.1"
	requestTimeout   = 10 * time.Second
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewClient builds a Client for the given base URL (host:port or full URL).
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		transport: newBreakerTransport(&http.Client{
			Timeout: requestTimeout,
		}),
		userAgent: defaultUserAgent,
	}, nil
}

// ProductQuery configures /api/products requests.
type ProductQuery struct {
	Page      int
	Size      int
	SortBy    string
	SortDir   string
	Category  string
	Search    string
	MinRating int
	MinPrice  string
	MaxPrice  string
}

// FetchProducts retrieves one page of the filtered, sorted product list.
// The category is normalized to the server's canonical token before it
// is sent, with the same function the favorites-mode filter uses.
func (c *Client) FetchProducts(ctx context.Context, query ProductQuery) (Page[ProductSummary], error) {
	if c == nil {
		return Page[ProductSummary]{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(query.Page))
	if query.Size > 0 {
		values.Set("size", strconv.Itoa(query.Size))
	}
	if sortBy := strings.TrimSpace(query.SortBy); sortBy != "" {
		values.Set("sortBy", sortBy)
	}
	if sortDir := strings.TrimSpace(query.SortDir); sortDir != "" {
		values.Set("sortDir", sortDir)
	}
	if cat := NormalizeCategory(query.Category); cat != "" {
		values.Set("category", cat)
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		values.Set("search", search)
	}
	if query.MinRating > 0 {
		values.Set("minRating", strconv.Itoa(query.MinRating))
	}
	if minPrice := strings.TrimSpace(query.MinPrice); minPrice != "" {
		values.Set("minPrice", minPrice)
	}
	if maxPrice := strings.TrimSpace(query.MaxPrice); maxPrice != "" {
		values.Set("maxPrice", maxPrice)
	}
	rel := &url.URL{Path: "/api/products", RawQuery: values.Encode()}
	var payload Page[ProductSummary]
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return Page[ProductSummary]{}, err
	}
	return payload, nil
}

// FetchProductByID retrieves the full detail for one product.
// Returns an error wrapping ErrNotFound when the id is unknown.
func (c *Client) FetchProductByID(ctx context.Context, id int64) (*ProductDetail, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ProductDetail
	rel := &url.URL{Path: fmt.Sprintf("/api/products/%d", id)}
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchReviewSummary retrieves the aggregated review insight for a
// product, computed over a bounded sample of its most helpful reviews.
func (c *Client) FetchReviewSummary(ctx context.Context, productID int64, limit int, lang string) (*ReviewSummary, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if lang = strings.TrimSpace(lang); lang != "" {
		values.Set("lang", lang)
	}
	rel := &url.URL{
		Path:     fmt.Sprintf("/api/products/%d/review-summary", productID),
		RawQuery: values.Encode(),
	}
	var payload ReviewSummary
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ReviewQuery configures /api/reviews/product/{id} requests.
type ReviewQuery struct {
	ProductID int64
	Page      int
	Size      int
	SortBy    string
	SortDir   string
	MinRating int
}

// FetchReviews retrieves one page of a product's reviews.
func (c *Client) FetchReviews(ctx context.Context, query ReviewQuery) (Page[Review], error) {
	if c == nil {
		return Page[Review]{}, fmt.Errorf("client is nil")
	}
	if query.ProductID <= 0 {
		return Page[Review]{}, fmt.Errorf("product id required")
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(query.Page))
	if query.Size > 0 {
		values.Set("size", strconv.Itoa(query.Size))
	}
	if sortBy := strings.TrimSpace(query.SortBy); sortBy != "" {
		values.Set("sortBy", sortBy)
	}
	if sortDir := strings.TrimSpace(query.SortDir); sortDir != "" {
		values.Set("sortDir", sortDir)
	}
	if query.MinRating > 0 {
		values.Set("minRating", strconv.Itoa(query.MinRating))
	}
	rel := &url.URL{
		Path:     fmt.Sprintf("/api/reviews/product/%d", query.ProductID),
		RawQuery: values.Encode(),
	}
	var payload Page[Review]
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return Page[Review]{}, err
	}
	return payload, nil
}

// ValidateRating checks the 1-5 inclusive rating range without touching
// the network. Screens call this before flipping any submitting flag.
func ValidateRating(rating int) error {
	if err := validate.Var(rating, "min=1,max=5"); err != nil {
		return &ValidationError{Msg: "rating must be between 1 and 5"}
	}
	return nil
}

// SubmitReview creates a review. Input is validated locally first; a
// ValidationError return means no request was issued.
func (c *Client) SubmitReview(ctx context.Context, input SubmitReviewInput) (*Review, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if err := validate.Struct(input); err != nil {
		return nil, validationMessage(err)
	}
	var payload Review
	rel := &url.URL{Path: "/api/reviews"}
	if err := c.doURL(ctx, http.MethodPost, rel, input, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ToggleHelpful flips the device's helpful vote on a review and returns
// the authoritative new count.
func (c *Client) ToggleHelpful(ctx context.Context, reviewID int64, deviceID string) (*HelpfulVote, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(deviceID) == "" {
		return nil, &ValidationError{Msg: "device id is required"}
	}
	values := url.Values{}
	values.Set("deviceId", deviceID)
	rel := &url.URL{
		Path:     fmt.Sprintf("/api/reviews/%d/helpful", reviewID),
		RawQuery: values.Encode(),
	}
	var payload HelpfulVote
	if err := c.doURL(ctx, http.MethodPost, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

type translateRequest struct {
	Lang  string   `json:"lang"`
	Texts []string `json:"texts"`
}

type translateResponse struct {
	Translations []string `json:"translations"`
}

// TranslateBatch translates texts to the target language, preserving
// order. Callers must check the response length against the request
// length before applying any of it.
func (c *Client) TranslateBatch(ctx context.Context, lang string, texts []string) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload translateResponse
	rel := &url.URL{Path: "/api/translate"}
	if err := c.doURL(ctx, http.MethodPost, rel, translateRequest{Lang: lang, Texts: texts}, &payload); err != nil {
		return nil, err
	}
	return payload.Translations, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.transport.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return statusError(rel.Path, resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func validationMessage(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "Rating":
			return &ValidationError{Msg: "rating must be between 1 and 5"}
		case "ProductID":
			return &ValidationError{Msg: "product id is required"}
		case "DeviceID":
			return &ValidationError{Msg: "device id is required"}
		}
	}
	return &ValidationError{Msg: "invalid review input"}
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
