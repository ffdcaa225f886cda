// File: internal/model/property.go
package model

// Property is a row of the properties table. CostPerNight is in cents.
type Property struct {
	ID                int    `db:"id" json:"id"`
	OwnerID           int    `db:"owner_id" json:"owner_id" validate:"required"`
	Title             string `db:"title" json:"title" validate:"required"`
	Description       string `db:"description" json:"description"`
	ThumbnailPhotoURL string `db:"thumbnail_photo_url" json:"thumbnail_photo_url"`
	CoverPhotoURL     string `db:"cover_photo_url" json:"cover_photo_url"`
	CostPerNight      int    `db:"cost_per_night" json:"cost_per_night" validate:"gte=0"`
	Street            string `db:"street" json:"street"`
	City              string `db:"city" json:"city"`
	Province          string `db:"province" json:"province"`
	PostCode          string `db:"post_code" json:"post_code"`
	Country           string `db:"country" json:"country"`
	ParkingSpaces     int    `db:"parking_spaces" json:"parking_spaces" validate:"gte=0"`
	NumberOfBathrooms int    `db:"number_of_bathrooms" json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int    `db:"number_of_bedrooms" json:"number_of_bedrooms" validate:"gte=0"`
}

// PropertyListing is a property with the average of its review ratings.
// AverageRating is nil when the property has no reviews.
type PropertyListing struct {
	Property
	AverageRating *float64 `db:"average_rating" json:"average_rating"`
}

// PropertySearch holds the optional filters of a property search. A zero
// value means the filter is not applied. Prices are in cents.
type PropertySearch struct {
	City                 string  `json:"city,omitempty"`
	OwnerID              int     `json:"owner_id,omitempty"`
	MinimumPricePerNight int     `json:"minimum_price_per_night,omitempty"`
	MaximumPricePerNight int     `json:"maximum_price_per_night,omitempty"`
	MinimumRating        float64 `json:"minimum_rating,omitempty"`
}
