package catalog

import (
	"strconv"
	"time"
)

// ProductSummary is the list-level representation of a product.
// Values are replaced wholesale on refetch and never mutated in place.
type ProductSummary struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category,omitempty"`
	Price         string   `json:"price,omitempty"`
	ImageURLs     []string `json:"imageUrls,omitempty"`
	AverageRating float64  `json:"averageRating,omitempty"`
	ReviewCount   int64    `json:"reviewCount,omitempty"`
}

// PriceValue parses the decimal price string, returning 0 when it is
// blank or unparseable. Mirrors the server's comparison semantics.
func (p ProductSummary) PriceValue() float64 {
	v, err := strconv.ParseFloat(p.Price, 64)
	if err != nil {
		return 0
	}
	return v
}

// ProductDetail is the full product payload. The embedded Reviews slice
// is whatever the server happened to include and may be stale relative
// to the review list the detail screen paginates itself; the two are
// kept separate on purpose.
type ProductDetail struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category,omitempty"`
	Price         string   `json:"price,omitempty"`
	ImageURLs     []string `json:"imageUrls,omitempty"`
	AverageRating float64  `json:"averageRating,omitempty"`
	ReviewCount   int64    `json:"reviewCount,omitempty"`
	Reviews       []Review `json:"reviews,omitempty"`
}

// Summary converts a detail payload to its list-level form by explicit
// field copy. The favorites view builds its rows through this.
func (d ProductDetail) Summary() ProductSummary {
	return ProductSummary{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Category:      d.Category,
		Price:         d.Price,
		ImageURLs:     d.ImageURLs,
		AverageRating: d.AverageRating,
		ReviewCount:   d.ReviewCount,
	}
}

// Review is a single product review. Reviews are created by submission
// and mutated only through helpful-count updates.
type Review struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"productId"`
	Comment      string `json:"comment,omitempty"`
	Rating       int    `json:"rating,omitempty"`
	ReviewerName string `json:"reviewerName,omitempty"`
	DeviceID     string `json:"deviceId,omitempty"`
	HelpfulCount int64  `json:"helpfulCount,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// ParsedCreatedAt returns the creation timestamp as time.Time when possible.
func (r Review) ParsedCreatedAt() time.Time {
	if r.CreatedAt == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, r.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Page mirrors the server's page envelope for a paginated collection.
// Number and Last are pointers because the server may omit them; the
// accessors below encode the policy every consumer must share.
type Page[T any] struct {
	Content       []T    `json:"content"`
	Number        *int   `json:"number"`
	Size          *int   `json:"size,omitempty"`
	TotalElements *int64 `json:"totalElements,omitempty"`
	TotalPages    *int   `json:"totalPages,omitempty"`
	Last          *bool  `json:"last"`
	First         *bool  `json:"first,omitempty"`
}

// HasMore reports whether another page exists. `last == false` is the
// only continuation signal; a missing flag means no more pages, which
// keeps a misbehaving server from inducing an infinite fetch loop.
func (p Page[T]) HasMore() bool {
	return p.Last != nil && !*p.Last
}

// PageNumber returns the server-reported page index, or fallback
// (normally the requested page) when the server omitted it.
func (p Page[T]) PageNumber(fallback int) int {
	if p.Number != nil {
		return *p.Number
	}
	return fallback
}

// ReviewSummary is the aggregated review insight for one product.
type ReviewSummary struct {
	ProductID       int64    `json:"productId"`
	Lang            string   `json:"lang,omitempty"`
	Source          string   `json:"source,omitempty"`
	AverageRating   float64  `json:"averageRating,omitempty"`
	ReviewCount     int64    `json:"reviewCount,omitempty"`
	ReviewCountUsed int64    `json:"reviewCountUsed,omitempty"`
	Takeaway        string   `json:"takeaway,omitempty"`
	Pros            []string `json:"pros,omitempty"`
	Cons            []string `json:"cons,omitempty"`
	TopTopics       []string `json:"topTopics,omitempty"`
	GeneratedAt     string   `json:"generatedAt,omitempty"`
}

// HelpfulVote is the result of toggling a helpful vote on a review.
type HelpfulVote struct {
	ReviewID     int64 `json:"reviewId"`
	HelpfulCount int64 `json:"helpfulCount"`
	HelpfulByMe  bool  `json:"helpfulByMe"`
}

// SubmitReviewInput is the payload for creating a review. Validation
// tags are enforced locally before any request is issued.
type SubmitReviewInput struct {
	ProductID    int64  `json:"productId" validate:"required,gt=0"`
	Comment      string `json:"comment,omitempty"`
	Rating       int    `json:"rating" validate:"min=1,max=5"`
	ReviewerName string `json:"reviewerName,omitempty"`
	DeviceID     string `json:"deviceId" validate:"required"`
}
