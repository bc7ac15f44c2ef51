package postgres

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolationChecks(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(gorm.ErrDuplicatedKey, "insert failed")))
	assert.False(t, isUniqueConstraintViolation(gorm.ErrForeignKeyViolated))

	assert.True(t, isForeignKeyConstraintViolation(errors.Wrap(gorm.ErrForeignKeyViolated, "delete failed")))
	assert.False(t, isForeignKeyConstraintViolation(gorm.ErrDuplicatedKey))

	assert.True(t, isCheckConstraintViolation(errors.Wrap(gorm.ErrCheckConstraintViolated, "update failed")))
	assert.False(t, isCheckConstraintViolation(errors.New("plain failure")))

	assert.True(t, isNotNullConstraintViolation(
		errors.New(`null value in column "email" violates not-null constraint (SQLSTATE 23502)`)))
	assert.False(t, isNotNullConstraintViolation(errors.New("plain failure")))
}
