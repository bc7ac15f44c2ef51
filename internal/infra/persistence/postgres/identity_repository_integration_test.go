package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"librarium/internal/domain/entity"
	"librarium/internal/domain/repository"
	"librarium/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func openIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("LIBRARIUM_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("LIBRARIUM_TEST_POSTGRES_DSN not set, skipping integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	// The id columns default to uuid_generate_v7(); provide it on test
	// databases that lack the extension.
	require.NoError(t, db.Exec(
		"CREATE OR REPLACE FUNCTION uuid_generate_v7() RETURNS uuid AS 'SELECT gen_random_uuid()' LANGUAGE sql",
	).Error)

	require.NoError(t, db.AutoMigrate(
		&model.IdentityModel{},
		&model.AdminProfileModel{},
		&model.EmployeeProfileModel{},
		&model.CustomerProfileModel{},
		&model.LoanModel{},
		&model.BookModel{},
	))

	return db
}

func TestIdentityRepository_Delete_RemovesLoanHistory(t *testing.T) {
	db := openIntegrationDB(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	identity := &entity.Identity{
		Email: "delete-" + uuid.NewString() + "@library.test",
		Customer: &entity.CustomerProfile{
			RoleProfile: entity.RoleProfile{
				Role:           entity.RoleCustomer,
				SecretHash:     "hash",
				Name:           "Dana",
				LastName:       "Reyes",
				DocumentType:   "CC",
				DocumentNumber: uuid.NewString(),
				Birthday:       now.AddDate(-30, 0, 0),
			},
			Loans: []*entity.Loan{
				entity.NewLoan("978-0134190440", now),
				entity.NewLoan("978-0201633610", now),
			},
		},
	}
	require.NoError(t, repo.Create(ctx, identity))
	t.Cleanup(func() {
		db.Delete(&model.LoanModel{}, "customer_id = ?", identity.ID)
		db.Select(clause.Associations).Delete(&model.IdentityModel{ID: identity.ID})
	})

	require.NoError(t, repo.Delete(ctx, identity.ID))

	var loanCount int64
	require.NoError(t, db.Model(&model.LoanModel{}).
		Where("customer_id = ?", identity.ID).Count(&loanCount).Error)
	assert.Zero(t, loanCount, "loan history must go with the identity")

	var profileCount int64
	require.NoError(t, db.Model(&model.CustomerProfileModel{}).
		Where("identity_id = ?", identity.ID).Count(&profileCount).Error)
	assert.Zero(t, profileCount)

	_, err := repo.FindByID(ctx, identity.ID)
	assert.True(t, errors.Is(err, repository.ErrIdentityNotFound))
}
