package data

import (
	"strconv"
	"strings"

	"github.com/lightbnb/lightbnb/internal/validator"
)

// DefaultLimit is the number of rows returned when no limit is given.
const DefaultLimit = 10

// MaxLimit caps the number of rows a single lookup may return.
const MaxLimit = 100

// Property defines a rental property. CostPerNight is stored in cents.
type Property struct {
	ID                int64  `json:"id" yaml:"-"`
	OwnerID           int64  `json:"owner_id" yaml:"owner_id"`
	Title             string `json:"title" yaml:"title"`
	Description       string `json:"description,omitempty" yaml:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" yaml:"thumbnail_photo_url"`
	CoverPhotoURL     string `json:"cover_photo_url" yaml:"cover_photo_url"`
	CostPerNight      int64  `json:"cost_per_night" yaml:"cost_per_night"`
	ParkingSpaces     int32  `json:"parking_spaces" yaml:"parking_spaces"`
	NumberOfBathrooms int32  `json:"number_of_bathrooms" yaml:"number_of_bathrooms"`
	NumberOfBedrooms  int32  `json:"number_of_bedrooms" yaml:"number_of_bedrooms"`
	Country           string `json:"country" yaml:"country"`
	Street            string `json:"street" yaml:"street"`
	City              string `json:"city" yaml:"city"`
	Province          string `json:"province" yaml:"province"`
	PostCode          string `json:"post_code" yaml:"post_code"`
	Active            bool   `json:"active" yaml:"active"`
}

// Listing is a property together with the average rating of its reviews.
type Listing struct {
	Property
	AverageRating float64 `json:"average_rating"`
}

// SearchCriteria holds the optional filters of a property search.
// A zero City or a nil pointer leaves that dimension unfiltered.
type SearchCriteria struct {
	City                 string   `json:"city,omitempty"`
	MinimumPricePerNight *int64   `json:"minimum_price_per_night,omitempty"`
	MaximumPricePerNight *int64   `json:"maximum_price_per_night,omitempty"`
	MinimumRating        *float64 `json:"minimum_rating,omitempty"`
}

// Key returns a canonical representation of the criteria, suitable as a cache key.
func (c SearchCriteria) Key() string {
	parts := []string{"city=" + strconv.Quote(c.City)}
	if c.MinimumPricePerNight != nil {
		parts = append(parts, "min="+strconv.FormatInt(*c.MinimumPricePerNight, 10))
	}
	if c.MaximumPricePerNight != nil {
		parts = append(parts, "max="+strconv.FormatInt(*c.MaximumPricePerNight, 10))
	}
	if c.MinimumRating != nil {
		parts = append(parts, "rating="+strconv.FormatFloat(*c.MinimumRating, 'g', -1, 64))
	}
	return strings.Join(parts, "&")
}

func ValidateSearchCriteria(v *validator.Validator, c SearchCriteria) {
	minPrice, maxPrice := c.MinimumPricePerNight, c.MaximumPricePerNight
	if minPrice != nil {
		v.Check(*minPrice >= 0, "minimum_price_per_night", "must not be negative")
	}
	if maxPrice != nil {
		v.Check(*maxPrice >= 0, "maximum_price_per_night", "must not be negative")
	}
	if minPrice != nil && maxPrice != nil {
		v.Check(*minPrice <= *maxPrice, "maximum_price_per_night", "must not be less than the minimum price")
	}
	if c.MinimumRating != nil {
		v.Check(*c.MinimumRating >= 0 && *c.MinimumRating <= 5, "minimum_rating", "must be between 0 and 5")
	}
}

func ValidateLimit(v *validator.Validator, limit int) {
	v.Check(limit >= 0, "limit", "must not be negative")
	v.Check(limit <= MaxLimit, "limit", "must not be more than "+strconv.Itoa(MaxLimit))
}

func ValidateProperty(v *validator.Validator, property *Property) {
	v.Check(property.OwnerID > 0, "owner_id", "must be provided")
	v.Check(property.Title != "", "title", "must be provided")
	v.Check(len(property.Title) <= 255, "title", "must not be more than 255 bytes long")
	v.Check(property.CostPerNight >= 0, "cost_per_night", "must not be negative")
	v.Check(property.ParkingSpaces >= 0, "parking_spaces", "must not be negative")
	v.Check(property.NumberOfBathrooms >= 0, "number_of_bathrooms", "must not be negative")
	v.Check(property.NumberOfBedrooms >= 0, "number_of_bedrooms", "must not be negative")
	v.Check(property.Country != "", "country", "must be provided")
	v.Check(property.Street != "", "street", "must be provided")
	v.Check(property.City != "", "city", "must be provided")
	v.Check(property.Province != "", "province", "must be provided")
	v.Check(property.PostCode != "", "post_code", "must be provided")
}
