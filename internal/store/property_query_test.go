package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lightbnb/internal/model"
)

func TestPropertySearchQueryNoFilters(t *testing.T) {
	query, args, err := propertySearchQuery(model.PropertySearch{}, 10)
	require.NoError(t, err)

	require.Contains(t, query, `FROM "properties" LEFT JOIN "property_reviews" ON ("property_reviews"."property_id" = "properties"."id")`)
	require.Contains(t, query, `AVG("property_reviews"."rating") AS "average_rating"`)
	require.Contains(t, query, `GROUP BY "properties"."id"`)
	require.Contains(t, query, `ORDER BY "properties"."cost_per_night" ASC`)
	require.True(t, strings.HasSuffix(query, "LIMIT $1"), query)
	require.NotContains(t, query, "WHERE")
	require.NotContains(t, query, "HAVING")
	require.Len(t, args, 1)
	require.EqualValues(t, 10, args[0])
}

func TestPropertySearchQueryAllFilters(t *testing.T) {
	query, args, err := propertySearchQuery(model.PropertySearch{
		City:                 "Vancouver",
		OwnerID:              3,
		MinimumPricePerNight: 10000,
		MaximumPricePerNight: 20000,
		MinimumRating:        4,
	}, 5)
	require.NoError(t, err)

	require.Contains(t, query, `"properties"."city" ILIKE $1`)
	require.Contains(t, query, `"properties"."owner_id" = $2`)
	require.Contains(t, query, `"properties"."cost_per_night" >= $3`)
	require.Contains(t, query, `"properties"."cost_per_night" <= $4`)
	require.Contains(t, query, `HAVING (AVG("property_reviews"."rating") >= $5)`)
	require.True(t, strings.HasSuffix(query, "LIMIT $6"), query)
	require.Less(t, strings.Index(query, "WHERE"), strings.Index(query, "GROUP BY"))
	require.Less(t, strings.Index(query, "GROUP BY"), strings.Index(query, "HAVING"))

	require.Len(t, args, 6)
	require.Equal(t, "%Vancouver%", args[0])
	require.EqualValues(t, 3, args[1])
	require.EqualValues(t, 10000, args[2])
	require.EqualValues(t, 20000, args[3])
	require.EqualValues(t, 4, args[4])
	require.EqualValues(t, 5, args[5])
}

func TestPropertySearchQueryEveryCombination(t *testing.T) {
	placeholder := regexp.MustCompile(`\$(\d+)`)

	for mask := 0; mask < 1<<5; mask++ {
		var opts model.PropertySearch
		want := 0
		if mask&1 != 0 {
			opts.City = "Qzx"
			want++
		}
		if mask&2 != 0 {
			opts.OwnerID = 7
			want++
		}
		if mask&4 != 0 {
			opts.MinimumPricePerNight = 100
			want++
		}
		if mask&8 != 0 {
			opts.MaximumPricePerNight = 900
			want++
		}
		if mask&16 != 0 {
			opts.MinimumRating = 3.5
			want++
		}

		t.Run(fmt.Sprintf("mask %05b", mask), func(t *testing.T) {
			query, args, err := propertySearchQuery(opts, 10)
			require.NoError(t, err)
			require.Len(t, args, want+1)

			matches := placeholder.FindAllStringSubmatch(query, -1)
			require.Len(t, matches, len(args))
			for i, m := range matches {
				require.Equal(t, strconv.Itoa(i+1), m[1])
			}
			require.Equal(t, mask&15 != 0, strings.Contains(query, "WHERE"))
			require.Equal(t, mask&16 != 0, strings.Contains(query, "HAVING"))
			require.NotContains(t, query, "Qzx")
		})
	}
}
