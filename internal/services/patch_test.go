package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterFields(t *testing.T) {
	patch := map[string]any{"username": "ana", "status": "", "email": "a@x.com"}

	filtered := filterFields(patch, "username", "status")
	assert.Equal(t, map[string]any{"username": "ana", "status": ""}, filtered)

	assert.Empty(t, filterFields(patch, "name"))
}

func TestSetIfPresent(t *testing.T) {
	val := "kept"

	setIfPresent(&val, "")
	assert.Equal(t, "kept", val, "empty patch values never clear a field")

	setIfPresent(&val, "replaced")
	assert.Equal(t, "replaced", val)
}

func TestStringField(t *testing.T) {
	patch := map[string]any{"username": "ana", "count": 3, "none": nil}

	assert.Equal(t, "ana", stringField(patch, "username"))
	assert.Empty(t, stringField(patch, "count"))
	assert.Empty(t, stringField(patch, "none"))
	assert.Empty(t, stringField(patch, "missing"))
}
