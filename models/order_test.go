package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusNotProcess, StatusProcessing, StatusShipped, StatusDelivered, StatusCancel} {
		assert.True(t, ValidStatus(s), s)
	}

	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Cancelled"))
	assert.False(t, ValidStatus("not process"))
}
