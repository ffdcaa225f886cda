package store

import (
	"context"
	"strings"

	"lightbnb/internal/model"
)

// propertyColumns is the column order matched by propertyFields.
var propertyColumns = []string{
	"id",
	"owner_id",
	"title",
	"description",
	"thumbnail_photo_url",
	"cover_photo_url",
	"cost_per_night",
	"street",
	"city",
	"province",
	"post_code",
	"country",
	"parking_spaces",
	"number_of_bathrooms",
	"number_of_bedrooms",
}

func propertyFields(p *model.Property) []any {
	return []any{
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.ThumbnailPhotoURL,
		&p.CoverPhotoURL,
		&p.CostPerNight,
		&p.Street,
		&p.City,
		&p.Province,
		&p.PostCode,
		&p.Country,
		&p.ParkingSpaces,
		&p.NumberOfBathrooms,
		&p.NumberOfBedrooms,
	}
}

// qualified prefixes each property column with table.
func qualified(table string) []string {
	cols := make([]string, len(propertyColumns))
	for i, c := range propertyColumns {
		cols[i] = table + "." + c
	}
	return cols
}

var insertPropertySQL = `INSERT INTO properties (` + strings.Join(propertyColumns[1:], ", ") + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING ` + strings.Join(propertyColumns, ", ")

// AddProperty inserts p and returns the stored row including its new id.
// p.ID is ignored.
func (g *Gateway) AddProperty(ctx context.Context, p *model.Property) (*model.Property, error) {
	row := g.db.QueryRow(ctx, insertPropertySQL,
		p.OwnerID,
		p.Title,
		p.Description,
		p.ThumbnailPhotoURL,
		p.CoverPhotoURL,
		p.CostPerNight,
		p.Street,
		p.City,
		p.Province,
		p.PostCode,
		p.Country,
		p.ParkingSpaces,
		p.NumberOfBathrooms,
		p.NumberOfBedrooms,
	)
	created := &model.Property{}
	if err := row.Scan(propertyFields(created)...); err != nil {
		return nil, g.fail("AddProperty", err)
	}
	return created, nil
}

// GetAllProperties lists properties matching opts, cheapest first.
func (g *Gateway) GetAllProperties(ctx context.Context, opts model.PropertySearch, limit int) ([]model.PropertyListing, error) {
	query, args, err := propertySearchQuery(opts, g.limit(limit))
	if err != nil {
		return nil, g.fail("GetAllProperties", err)
	}

	rows, err := g.db.Query(ctx, query, args...)
	if err != nil {
		return nil, g.fail("GetAllProperties", err)
	}
	defer rows.Close()

	listings := []model.PropertyListing{}
	for rows.Next() {
		var l model.PropertyListing
		dest := append(propertyFields(&l.Property), &l.AverageRating)
		if err := rows.Scan(dest...); err != nil {
			return nil, g.fail("GetAllProperties", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, g.fail("GetAllProperties", err)
	}
	return listings, nil
}
