package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeDeduplicates(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	raw := []Item{
		{ID: a, Name: "Keyboard", Price: 49.99, Quantity: 12},
		{ID: b, Name: "Mouse", Price: 19.50, Quantity: 30},
		{ID: a, Name: "Keyboard", Price: 49.99, Quantity: 12},
		{ID: a, Name: "Keyboard", Price: 49.99, Quantity: 12},
	}

	lines := Normalize(raw)
	require.Len(t, lines, 2)

	assert.Equal(t, a, lines[0].ID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, b, lines[1].ID)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestNormalizeIgnoresStockQuantity(t *testing.T) {
	a := primitive.NewObjectID()

	// A raw product object carries its stock count in Quantity; a single
	// occurrence must still become a cart line of quantity 1.
	lines := Normalize([]Item{{ID: a, Name: "Lamp", Price: 25, Quantity: 99}})
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestNormalizeKeepsFirstOccurrenceFields(t *testing.T) {
	a := primitive.NewObjectID()

	lines := Normalize([]Item{
		{ID: a, Name: "Chair", Price: 80},
		{ID: a, Name: "Chair (stale)", Price: 75},
	})
	require.Len(t, lines, 1)
	assert.Equal(t, "Chair", lines[0].Name)
	assert.Equal(t, 80.0, lines[0].Price)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestNormalizeDropsEntriesWithoutID(t *testing.T) {
	a := primitive.NewObjectID()

	lines := Normalize([]Item{
		{Name: "ghost", Price: 10},
		{ID: a, Name: "Desk", Price: 120},
	})
	require.Len(t, lines, 1)
	assert.Equal(t, a, lines[0].ID)
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize([]Item{}))
}

func TestTotal(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	tests := []struct {
		name  string
		lines []Line
		want  string
	}{
		{"empty", nil, "0.00"},
		{"single line", []Line{{ID: a, Price: 100, Quantity: 1}}, "100.00"},
		{"two lines", []Line{
			{ID: a, Price: 100, Quantity: 1},
			{ID: b, Price: 200, Quantity: 1},
		}, "300.00"},
		{"quantities multiply", []Line{
			{ID: a, Price: 19.99, Quantity: 3},
			{ID: b, Price: 0.01, Quantity: 7},
		}, "60.04"},
		{"no float drift", []Line{
			{ID: a, Price: 0.1, Quantity: 3},
		}, "0.30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTotal(Total(tt.lines)))
		})
	}
}
