package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/vin/internal/domain/entity"
	"github.com/jhoicas/vin/internal/domain/wine"
)

// whereBuilder acumula condiciones y argumentos numerados ($1, $2, ...).
type whereBuilder struct {
	conds []string
	args  []any
}

func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) add(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *whereBuilder) sql() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildWineWhere traduce el filtro de colección a WHERE parametrizado.
func buildWineWhere(f wine.ListFilter, today entity.Date) (string, []any) {
	b := &whereBuilder{}
	if f.SearchTerm != "" {
		p := b.arg("%" + likeEscaper.Replace(f.SearchTerm) + "%")
		b.add(fmt.Sprintf("(name ILIKE %s OR producer ILIKE %s)", p, p))
	}
	if f.Type != "" {
		b.add("type = " + b.arg(f.Type))
	}
	if f.Vintage != nil {
		b.add("vintage = " + b.arg(*f.Vintage))
	}
	if f.Country != "" {
		b.add("country = " + b.arg(f.Country))
	}
	if f.District != "" {
		b.add("district = " + b.arg(f.District))
	}
	if f.Subdistrict != "" {
		b.add("subdistrict = " + b.arg(f.Subdistrict))
	}
	if f.DrinkingWindowStatus != "" {
		t := b.arg(today.Time)
		switch f.DrinkingWindowStatus {
		case wine.StatusReadyToDrink:
			b.add(fmt.Sprintf("drink_after_date IS NOT NULL AND drink_before_date IS NOT NULL AND drink_after_date <= %s AND drink_before_date >= %s", t, t))
		case wine.StatusApproachingDeadline:
			limit := b.arg(today.AddDays(wine.ApproachingDeadlineDays).Time)
			b.add(fmt.Sprintf("drink_before_date IS NOT NULL AND drink_before_date >= %s AND drink_before_date <= %s", t, limit))
		case wine.StatusNotReady:
			b.add(fmt.Sprintf("drink_after_date IS NOT NULL AND drink_after_date > %s", t))
		}
		b.add("quantity > 0")
	}
	return b.sql(), b.args
}

// orderBy traduce el orden; id desempata para resultados estables.
func orderBy(s wine.Sort) string {
	col, ok := wine.SortFields[s.Field]
	if !ok {
		col = wine.SortFields["id"]
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}
