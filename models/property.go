package models

// Property is a row of the properties table. CostPerNight is in cents.
type Property struct {
	ID                int64  `json:"id" db:"id"`
	OwnerID           int64  `json:"owner_id" db:"owner_id"`
	Title             string `json:"title" db:"title"`
	Description       string `json:"description" db:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" db:"thumbnail_photo_url"`
	CoverPhotoURL     string `json:"cover_photo_url" db:"cover_photo_url"`
	CostPerNight      int    `json:"cost_per_night" db:"cost_per_night"`
	ParkingSpaces     int    `json:"parking_spaces" db:"parking_spaces"`
	NumberOfBathrooms int    `json:"number_of_bathrooms" db:"number_of_bathrooms"`
	NumberOfBedrooms  int    `json:"number_of_bedrooms" db:"number_of_bedrooms"`
	Country           string `json:"country" db:"country"`
	Street            string `json:"street" db:"street"`
	City              string `json:"city" db:"city"`
	Province          string `json:"province" db:"province"`
	PostCode          string `json:"post_code" db:"post_code"`
}

// PropertyListing is a property with its average review rating.
type PropertyListing struct {
	Property
	AverageRating float64 `json:"average_rating" db:"average_rating"`
}

// NewProperty holds the columns supplied when a property is listed.
type NewProperty struct {
	OwnerID           int64  `json:"owner_id" yaml:"owner_id" validate:"required,gt=0"`
	Title             string `json:"title" yaml:"title" validate:"required,max=255"`
	Description       string `json:"description" yaml:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" yaml:"thumbnail_photo_url" validate:"omitempty,url"`
	CoverPhotoURL     string `json:"cover_photo_url" yaml:"cover_photo_url" validate:"omitempty,url"`
	CostPerNight      int    `json:"cost_per_night" yaml:"cost_per_night" validate:"min=0"`
	ParkingSpaces     int    `json:"parking_spaces" yaml:"parking_spaces" validate:"min=0"`
	NumberOfBathrooms int    `json:"number_of_bathrooms" yaml:"number_of_bathrooms" validate:"min=0"`
	NumberOfBedrooms  int    `json:"number_of_bedrooms" yaml:"number_of_bedrooms" validate:"min=0"`
	Country           string `json:"country" yaml:"country" validate:"required"`
	Street            string `json:"street" yaml:"street" validate:"required"`
	City              string `json:"city" yaml:"city" validate:"required"`
	Province          string `json:"province" yaml:"province" validate:"required"`
	PostCode          string `json:"post_code" yaml:"post_code" validate:"required"`
}

// PropertyFilter narrows a property search. A zero field is not applied.
// Costs are whole currency units; the query scales them to cents.
type PropertyFilter struct {
	City                string `json:"city,omitempty"`
	MinimumCostPerNight int    `json:"minimum_cost_per_night,omitempty"`
	MaximumCostPerNight int    `json:"maximum_cost_per_night,omitempty"`
	OwnerID             int64  `json:"owner_id,omitempty"`
	MinimumRating       int    `json:"minimum_rating,omitempty"`
}
