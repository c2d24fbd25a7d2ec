package repository

import (
	"context"
	"fmt"

	"github.com/lightbnb/lightbnb/data"
	"github.com/lightbnb/lightbnb/internal/sqlplan"
)

type properties interface {
	GetAllProperties(criteria data.SearchCriteria, limit int) ([]*data.Listing, error)
	AddProperty(property *data.Property) error
}

// propertyColumns lists the properties table columns in the order scanProperty reads them.
const propertyColumns = `properties.id, properties.owner_id, properties.title, COALESCE(properties.description, ''),
		properties.thumbnail_photo_url, properties.cover_photo_url, properties.cost_per_night, properties.parking_spaces,
		properties.number_of_bathrooms, properties.number_of_bedrooms, properties.country, properties.street,
		properties.city, properties.province, properties.post_code, properties.active`

// propertySearch plans the listing lookup. Row-level filters are added in a
// fixed order (city, minimum price, maximum price) and the rating threshold is
// applied to the aggregated average after grouping.
func propertySearch(criteria data.SearchCriteria, limit int) *sqlplan.Plan {
	if limit <= 0 {
		limit = data.DefaultLimit
	}
	plan := sqlplan.New(`
		SELECT ` + propertyColumns + `, avg(property_reviews.rating) AS average_rating
		FROM properties
		JOIN property_reviews ON properties.id = property_reviews.property_id`)
	if criteria.City != "" {
		plan.Where("city LIKE ?", "%"+criteria.City+"%")
	}
	if criteria.MinimumPricePerNight != nil {
		plan.Where("cost_per_night >= ?", *criteria.MinimumPricePerNight)
	}
	if criteria.MaximumPricePerNight != nil {
		plan.Where("cost_per_night <= ?", *criteria.MaximumPricePerNight)
	}
	plan.GroupBy("properties.id")
	if criteria.MinimumRating != nil {
		plan.Having("avg(property_reviews.rating) >= ?", *criteria.MinimumRating)
	}
	return plan.OrderBy("cost_per_night").Limit(limit)
}

// GetAllProperties retrieves listings matching the search criteria, cheapest first.
// A non-positive limit means data.DefaultLimit.
func (r *repository) GetAllProperties(criteria data.SearchCriteria, limit int) ([]*data.Listing, error) {
	query, args := propertySearch(criteria, limit).Build()
	r.logger.PrintDebug("property search", map[string]string{
		"query": query,
		"args":  fmt.Sprint(args),
	})
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	listings := []*data.Listing{}
	for rows.Next() {
		var listing data.Listing
		dest := append(propertyDest(&listing.Property), &listing.AverageRating)
		err := rows.Scan(dest...)
		if err != nil {
			return nil, err
		}
		listings = append(listings, &listing)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

// AddProperty inserts a new property record. The ID is assigned by the database.
func (r *repository) AddProperty(property *data.Property) error {
	query := `
		INSERT INTO properties (owner_id, title, description, thumbnail_photo_url, cover_photo_url, cost_per_night,
			parking_spaces, number_of_bathrooms, number_of_bedrooms, country, street, city, province, post_code, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	args := []any{
		property.OwnerID,
		property.Title,
		property.Description,
		property.ThumbnailPhotoURL,
		property.CoverPhotoURL,
		property.CostPerNight,
		property.ParkingSpaces,
		property.NumberOfBathrooms,
		property.NumberOfBedrooms,
		property.Country,
		property.Street,
		property.City,
		property.Province,
		property.PostCode,
		property.Active,
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	return r.db.QueryRowContext(ctx, query, args...).Scan(&property.ID)
}

// propertyDest returns scan destinations matching propertyColumns.
func propertyDest(p *data.Property) []any {
	return []any{
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.ThumbnailPhotoURL,
		&p.CoverPhotoURL,
		&p.CostPerNight,
		&p.ParkingSpaces,
		&p.NumberOfBathrooms,
		&p.NumberOfBedrooms,
		&p.Country,
		&p.Street,
		&p.City,
		&p.Province,
		&p.PostCode,
		&p.Active,
	}
}
