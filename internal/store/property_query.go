package store

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"lightbnb/internal/model"
)

var dialect = goqu.Dialect("postgres")

var averageRating = goqu.AVG(goqu.I("property_reviews.rating"))

// propertySearchQuery renders the search for opts. Only the filters set in
// opts are emitted and every value is bound as a parameter.
func propertySearchQuery(opts model.PropertySearch, limit int) (string, []any, error) {
	var (
		where  []exp.Expression
		having []exp.Expression
	)
	if opts.City != "" {
		where = append(where, goqu.I("properties.city").ILike("%"+opts.City+"%"))
	}
	if opts.OwnerID != 0 {
		where = append(where, goqu.I("properties.owner_id").Eq(opts.OwnerID))
	}
	if opts.MinimumPricePerNight != 0 {
		where = append(where, goqu.I("properties.cost_per_night").Gte(opts.MinimumPricePerNight))
	}
	if opts.MaximumPricePerNight != 0 {
		where = append(where, goqu.I("properties.cost_per_night").Lte(opts.MaximumPricePerNight))
	}
	if opts.MinimumRating != 0 {
		having = append(having, averageRating.Gte(opts.MinimumRating))
	}

	cols := make([]any, 0, len(propertyColumns)+1)
	for _, c := range qualified("properties") {
		cols = append(cols, goqu.I(c))
	}
	cols = append(cols, averageRating.As("average_rating"))

	ds := dialect.From("properties").
		Prepared(true).
		Select(cols...).
		LeftJoin(
			goqu.T("property_reviews"),
			goqu.On(goqu.I("property_reviews.property_id").Eq(goqu.I("properties.id"))),
		).
		Where(where...).
		GroupBy(goqu.I("properties.id")).
		Having(having...).
		Order(goqu.I("properties.cost_per_night").Asc()).
		Limit(uint(limit))

	return ds.ToSQL()
}
