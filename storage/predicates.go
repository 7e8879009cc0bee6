package storage

import (
	"fmt"
	"strings"

	"lightbnb/models"
)

const defaultLimit = 10

// predicates accumulates WHERE and HAVING clauses together with their
// positional arguments. Each clause carries a single %s that is replaced
// by the next placeholder.
type predicates struct {
	where  []string
	having []string
	args   []any
}

// bind appends arg and returns its placeholder.
func (p *predicates) bind(arg any) string {
	p.args = append(p.args, arg)
	return fmt.Sprintf("$%d", len(p.args))
}

func (p *predicates) addWhere(clause string, arg any) {
	p.where = append(p.where, fmt.Sprintf(clause, p.bind(arg)))
}

func (p *predicates) addHaving(clause string, arg any) {
	p.having = append(p.having, fmt.Sprintf(clause, p.bind(arg)))
}

func (p *predicates) whereSQL() string {
	if len(p.where) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(p.where, " AND ")
}

func (p *predicates) havingSQL() string {
	if len(p.having) == 0 {
		return ""
	}
	return "HAVING " + strings.Join(p.having, " AND ")
}

// buildPropertiesQuery renders the listing search for filter. The
// placeholders follow the order the filter fields are checked in, with the
// limit always last.
func buildPropertiesQuery(filter models.PropertyFilter, limit int) (string, []any) {
	var p predicates

	if filter.City != "" {
		p.addWhere("properties.city LIKE %s", "%"+escapeLike(filter.City)+"%")
	}
	if filter.MinimumCostPerNight > 0 {
		p.addWhere("properties.cost_per_night > (%s * 100)", filter.MinimumCostPerNight)
	}
	if filter.MaximumCostPerNight > 0 {
		p.addWhere("properties.cost_per_night < (%s * 100)", filter.MaximumCostPerNight)
	}
	if filter.OwnerID > 0 {
		p.addWhere("properties.owner_id = %s", filter.OwnerID)
	}
	if filter.MinimumRating > 0 {
		p.addHaving("avg(property_reviews.rating) >= %s", filter.MinimumRating)
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(propertyColumns)
	b.WriteString(", avg(property_reviews.rating)::float8 AS average_rating\n")
	b.WriteString("FROM properties\n")
	b.WriteString("JOIN property_reviews ON properties.id = property_reviews.property_id\n")
	if w := p.whereSQL(); w != "" {
		b.WriteString(w)
		b.WriteString("\n")
	}
	b.WriteString("GROUP BY properties.id\n")
	if h := p.havingSQL(); h != "" {
		b.WriteString(h)
		b.WriteString("\n")
	}
	b.WriteString("ORDER BY properties.cost_per_night\n")
	b.WriteString("LIMIT ")
	b.WriteString(p.bind(normalizeLimit(limit)))

	return b.String(), p.args
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
