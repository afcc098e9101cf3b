package access

import (
	"strings"

	"gorm.io/gorm"
)

// Filter is a declarative row restriction. Set fields combine with AND;
// Or is a disjunction of sub-filters. The zero Filter matches every row.
type Filter struct {
	// ID restricts to the row with this primary key.
	ID string
	// UserID restricts to rows owned by this user (user_id column).
	UserID string
	// OrderUserID restricts to rows whose parent order is owned by this
	// user (order_id column).
	OrderUserID string
	// Status restricts to rows with this status value.
	Status string
	// Or is a disjunction of alternative filters.
	Or []Filter
}

// Apply narrows a query to the rows the filter matches.
func (f Filter) Apply(tx *gorm.DB) *gorm.DB {
	cond, args := f.expr()
	if cond == "" {
		return tx
	}
	return tx.Where(cond, args...)
}

func (f Filter) expr() (string, []interface{}) {
	var conds []string
	var args []interface{}
	if f.ID != "" {
		conds = append(conds, "id = ?")
		args = append(args, f.ID)
	}
	if f.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.OrderUserID != "" {
		conds = append(conds, "order_id IN (SELECT id FROM orders WHERE user_id = ?)")
		args = append(args, f.OrderUserID)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if len(f.Or) > 0 {
		var parts []string
		for _, sub := range f.Or {
			cond, subArgs := sub.expr()
			if cond == "" {
				continue
			}
			parts = append(parts, "("+cond+")")
			args = append(args, subArgs...)
		}
		if len(parts) > 0 {
			conds = append(conds, "("+strings.Join(parts, " OR ")+")")
		}
	}
	return strings.Join(conds, " AND "), args
}
