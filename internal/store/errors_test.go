package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityNotFoundErrors(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ErrItemNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrSettingsNotFound, ErrNotFound)

	assert.True(t, IsNotFoundError(ErrItemNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("get: %w", ErrSettingsNotFound)))
	assert.False(t, IsNotFoundError(ErrStorageUnavailable))
	assert.False(t, IsNotFoundError(errors.New("other")))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	inner := errors.New("column mismatch")
	err := NewStoreError("review_item", "put", "failed to scan row", inner)

	assert.Contains(t, err.Error(), "put operation on review_item failed")
	assert.Contains(t, err.Error(), "column mismatch")
	assert.ErrorIs(t, err, inner)

	var storeErr *StoreError
	assert.ErrorAs(t, fmt.Errorf("wrap: %w", err), &storeErr)
	assert.Equal(t, "review_item", storeErr.Entity)
}
