// Package sqlplan assembles parameterized PostgreSQL SELECT statements from an
// ordered list of optional conditions.
//
// Conditions are collected without any knowledge of the keyword that joins them.
// The WHERE/HAVING/AND keywords and the $n placeholders are produced once, by
// Build, in the same pass that collects the bound arguments, so the Nth
// placeholder always binds the Nth argument.
//
//	p := sqlplan.New("SELECT * FROM properties")
//	p.Where("city LIKE ?", "%Vancouver%")
//	p.Where("cost_per_night <= ?", 20000)
//	p.OrderBy("cost_per_night")
//	p.Limit(10)
//	query, args := p.Build()
package sqlplan

import (
	"strconv"
	"strings"
)

// Placeholder marks where a condition's value is bound in its template.
const Placeholder = "?"

type condition struct {
	template string
	value    any
}

// Plan is an ordered accumulator of SQL clauses. The zero value is not usable;
// create plans with New.
type Plan struct {
	base    string
	where   []condition
	groupBy string
	having  []condition
	orderBy string
	limit   int
	limited bool
}

// New starts a plan from a base statement holding the SELECT list, the FROM
// clause and any joins.
func New(base string) *Plan {
	return &Plan{base: strings.TrimSpace(base)}
}

// Where appends a row-level condition. The template must contain exactly one
// Placeholder, which is bound to value.
func (p *Plan) Where(template string, value any) *Plan {
	p.where = append(p.where, newCondition(template, value))
	return p
}

// Having appends a condition on aggregated values. It is rendered after GROUP BY.
func (p *Plan) Having(template string, value any) *Plan {
	p.having = append(p.having, newCondition(template, value))
	return p
}

// GroupBy sets the grouping expression.
func (p *Plan) GroupBy(expr string) *Plan {
	p.groupBy = expr
	return p
}

// OrderBy sets the ordering expression.
func (p *Plan) OrderBy(expr string) *Plan {
	p.orderBy = expr
	return p
}

// Limit caps the number of rows. The limit is bound as the final argument.
func (p *Plan) Limit(n int) *Plan {
	p.limit = n
	p.limited = true
	return p
}

// Build renders the statement and its positional arguments.
func (p *Plan) Build() (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(p.where)+len(p.having)+1)
	bind := func(value any) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}
	b.WriteString(p.base)
	writeConditions(&b, "WHERE", p.where, bind)
	if p.groupBy != "" {
		b.WriteString("\nGROUP BY ")
		b.WriteString(p.groupBy)
	}
	writeConditions(&b, "HAVING", p.having, bind)
	if p.orderBy != "" {
		b.WriteString("\nORDER BY ")
		b.WriteString(p.orderBy)
	}
	if p.limited {
		b.WriteString("\nLIMIT ")
		b.WriteString(bind(p.limit))
	}
	return b.String(), args
}

func writeConditions(b *strings.Builder, keyword string, conditions []condition, bind func(any) string) {
	for i, c := range conditions {
		if i == 0 {
			b.WriteString("\n" + keyword + " ")
		} else {
			b.WriteString("\nAND ")
		}
		b.WriteString(strings.Replace(c.template, Placeholder, bind(c.value), 1))
	}
}

func newCondition(template string, value any) condition {
	if strings.Count(template, Placeholder) != 1 {
		panic("sqlplan: condition template must contain exactly one placeholder: " + template)
	}
	return condition{template: template, value: value}
}
