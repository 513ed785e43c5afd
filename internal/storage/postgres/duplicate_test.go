package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sqlStateError string

func (e sqlStateError) Error() string    { return "pg: " + string(e) }
func (e sqlStateError) SQLState() string { return string(e) }

func TestIsDuplicateKeyError(t *testing.T) {
	assert.True(t, isDuplicateKeyError(sqlStateError("23505")))
	assert.True(t, isDuplicateKeyError(fmt.Errorf("insert: %w", sqlStateError("23505"))))
	assert.False(t, isDuplicateKeyError(sqlStateError("23503")))
	assert.False(t, isDuplicateKeyError(errors.New("connection refused")))
	assert.False(t, isDuplicateKeyError(nil))
}
