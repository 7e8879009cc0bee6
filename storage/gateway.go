package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"lightbnb/models"
)

// propertyColumns lists the properties table in models.Property field
// order. description is the one nullable text column.
const propertyColumns = `properties.id, properties.owner_id, properties.title,
	COALESCE(properties.description, '') AS description,
	properties.thumbnail_photo_url, properties.cover_photo_url,
	properties.cost_per_night, properties.parking_spaces,
	properties.number_of_bathrooms, properties.number_of_bedrooms,
	properties.country, properties.street, properties.city,
	properties.province, properties.post_code`

// Gateway is the data-access surface of the application. It holds no
// state besides the pool handle and is safe for concurrent use.
type Gateway struct {
	db       DB
	log      zerolog.Logger
	validate *validator.Validate
}

func NewGateway(db DB, logger zerolog.Logger) *Gateway {
	return &Gateway{
		db:       db,
		log:      logger.With().Str("component", "gateway").Logger(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// fail logs err against op and returns it wrapped with the op name.
func (g *Gateway) fail(op string, err error) error {
	err = classify(err)
	g.log.Error().Err(err).Str("op", op).Msg("query failed")
	return fmt.Errorf("%s: %w", op, err)
}

func (g *Gateway) invalid(op string, err error) error {
	g.log.Warn().Err(err).Str("op", op).Msg("rejected input")
	return fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
}

func propertyDest(p *models.Property) []any {
	return []any{
		&p.ID, &p.OwnerID, &p.Title, &p.Description,
		&p.ThumbnailPhotoURL, &p.CoverPhotoURL,
		&p.CostPerNight, &p.ParkingSpaces,
		&p.NumberOfBathrooms, &p.NumberOfBedrooms,
		&p.Country, &p.Street, &p.City, &p.Province, &p.PostCode,
	}
}

// =============================================================================
// Users
// =============================================================================

// GetUserByEmail returns the user whose email matches case-insensitively,
// or nil when there is none.
func (g *Gateway) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password
		FROM users
		WHERE users.email ILIKE $1
		ORDER BY id
		LIMIT 1`

	var u models.User
	err := g.db.QueryRow(ctx, query, escapeLike(strings.ToLower(email))).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, g.fail("GetUserByEmail", err)
	}
	return &u, nil
}

func (g *Gateway) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, name, email, password
		FROM users
		WHERE id = $1`

	var u models.User
	err := g.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, g.fail("GetUserByID", err)
	}
	return &u, nil
}

// AddUser inserts u and returns the stored row. The email is stored
// lower-cased so the unique constraint also rejects case variants. The
// password is written as given; hashing is the caller's job.
func (g *Gateway) AddUser(ctx context.Context, u models.NewUser) (*models.User, error) {
	if err := g.validate.Struct(u); err != nil {
		return nil, g.invalid("AddUser", err)
	}

	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password`

	var out models.User
	err := g.db.QueryRow(ctx, query, u.Name, strings.ToLower(u.Email), u.Password).Scan(
		&out.ID, &out.Name, &out.Email, &out.Password,
	)
	if err != nil {
		return nil, g.fail("AddUser", err)
	}

	g.log.Info().Int64("user_id", out.ID).Msg("user added")
	return &out, nil
}

// =============================================================================
// Reservations
// =============================================================================

// GetReservationsForGuest returns the guest's reservations, most recent
// start date first. A non-positive limit means the default of 10.
func (g *Gateway) GetReservationsForGuest(ctx context.Context, guestID int64, limit int) ([]models.GuestReservation, error) {
	query := `
		SELECT reservations.id, reservations.start_date, reservations.end_date,
			reservations.property_id, reservations.guest_id,
			` + propertyColumns + `,
			avg(property_reviews.rating)::float8 AS average_rating
		FROM reservations
		JOIN properties ON reservations.property_id = properties.id
		JOIN property_reviews ON properties.id = property_reviews.property_id
		WHERE reservations.guest_id = $1
		GROUP BY properties.id, reservations.id
		ORDER BY reservations.start_date DESC
		LIMIT $2`

	rows, err := g.db.Query(ctx, query, guestID, normalizeLimit(limit))
	if err != nil {
		return nil, g.fail("GetReservationsForGuest", err)
	}
	defer rows.Close()

	var out []models.GuestReservation
	for rows.Next() {
		var gr models.GuestReservation
		dest := []any{
			&gr.Reservation.ID, &gr.Reservation.StartDate, &gr.Reservation.EndDate,
			&gr.Reservation.PropertyID, &gr.Reservation.GuestID,
		}
		dest = append(dest, propertyDest(&gr.Property)...)
		dest = append(dest, &gr.AverageRating)
		if err := rows.Scan(dest...); err != nil {
			return nil, g.fail("GetReservationsForGuest", err)
		}
		out = append(out, gr)
	}
	if err := rows.Err(); err != nil {
		return nil, g.fail("GetReservationsForGuest", err)
	}
	return out, nil
}

// =============================================================================
// Properties
// =============================================================================

// GetProperties returns reviewed properties matching filter, cheapest
// first. A non-positive limit means the default of 10.
func (g *Gateway) GetProperties(ctx context.Context, filter models.PropertyFilter, limit int) ([]models.PropertyListing, error) {
	query, args := buildPropertiesQuery(filter, limit)

	rows, err := g.db.Query(ctx, query, args...)
	if err != nil {
		return nil, g.fail("GetProperties", err)
	}
	defer rows.Close()

	var out []models.PropertyListing
	for rows.Next() {
		var pl models.PropertyListing
		dest := append(propertyDest(&pl.Property), &pl.AverageRating)
		if err := rows.Scan(dest...); err != nil {
			return nil, g.fail("GetProperties", err)
		}
		out = append(out, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, g.fail("GetProperties", err)
	}
	return out, nil
}

// AddProperty inserts p and returns the stored row. An unknown owner
// surfaces as ErrForeignKey.
func (g *Gateway) AddProperty(ctx context.Context, p models.NewProperty) (*models.Property, error) {
	if err := g.validate.Struct(p); err != nil {
		return nil, g.invalid("AddProperty", err)
	}

	query := `
		INSERT INTO properties (
			title, description, number_of_bedrooms, number_of_bathrooms,
			parking_spaces, cost_per_night, thumbnail_photo_url, cover_photo_url,
			street, country, city, province, post_code, owner_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		RETURNING ` + propertyColumns

	var out models.Property
	err := g.db.QueryRow(ctx, query,
		p.Title, p.Description, p.NumberOfBedrooms, p.NumberOfBathrooms,
		p.ParkingSpaces, p.CostPerNight, p.ThumbnailPhotoURL, p.CoverPhotoURL,
		p.Street, p.Country, p.City, p.Province, p.PostCode, p.OwnerID,
	).Scan(propertyDest(&out)...)
	if err != nil {
		return nil, g.fail("AddProperty", err)
	}

	g.log.Info().Int64("property_id", out.ID).Int64("owner_id", out.OwnerID).Msg("property added")
	return &out, nil
}
