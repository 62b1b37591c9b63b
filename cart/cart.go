// Package cart normalizes the line-item list a client submits at checkout
// and computes the authoritative total from it.
package cart

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is one raw entry from the client's stored cart. Raw entries may be
// duplicated product objects; the Quantity field on a raw product payload is
// its stock count, not a desired cart quantity, and is ignored.
type Item struct {
	ID       primitive.ObjectID `json:"_id"`
	Name     string             `json:"name"`
	Price    float64            `json:"price"`
	Quantity int                `json:"quantity"`
}

// Line is one normalized cart entry, keyed by product id with an aggregated
// quantity.
type Line struct {
	ID       primitive.ObjectID `json:"_id"`
	Name     string             `json:"name"`
	Price    float64            `json:"price"`
	Quantity int                `json:"quantity"`
}

// Normalize reduces the raw list into one line per product id. Entries
// without an id are dropped. The first occurrence of an id seeds its line
// with quantity 1 and fixes the price and display fields; every repeat
// occurrence of the same id increments the line's quantity by 1. Line order
// follows first occurrence.
func Normalize(items []Item) []Line {
	index := make(map[primitive.ObjectID]int, len(items))
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		if it.ID.IsZero() {
			continue
		}
		if i, ok := index[it.ID]; ok {
			lines[i].Quantity++
			continue
		}
		index[it.ID] = len(lines)
		lines = append(lines, Line{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: 1,
		})
	}
	return lines
}

// Total sums price x quantity across all lines.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		price := decimal.NewFromFloat(l.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// FormatTotal renders a total with exactly two decimal places.
func FormatTotal(total decimal.Decimal) string {
	return total.StringFixed(2)
}
