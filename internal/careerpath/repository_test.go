package careerpath_test

import (
	"context"
	"testing"

	"orientation-service/internal/apperr"
	"orientation-service/internal/careerpath"
	"orientation-service/internal/metrics"
	"orientation-service/internal/program"
	"orientation-service/internal/schema"
	"orientation-service/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCareerPathRepository_Shared(t *testing.T) {
	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t, schema.Tables()...)

	repo := careerpath.NewRepository(pgContainer.DB, metrics.NewMock())
	service := careerpath.NewService(repo)
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)
		specific := "Data Science"

		created, err := service.CreateCareerPath(ctx, careerpath.CreateCareerPathRequest{GeneralField: "Engineering", SpecificCareerPath: &specific})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		found, err := service.GetCareerPathByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Data Science", found.Name())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)

		_, err := service.GetCareerPathByID(ctx, 404)
		assert.ErrorIs(t, err, careerpath.ErrCareerPathNotFound)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("GetAll_Empty", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)

		all, err := service.GetAllCareerPaths(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("GetByIDs", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)
		var ids []int
		for _, field := range []string{"Law", "Medicine", "Arts"} {
			cp, err := service.CreateCareerPath(ctx, careerpath.CreateCareerPathRequest{GeneralField: field})
			require.NoError(t, err)
			ids = append(ids, cp.ID)
		}

		found, err := service.GetCareerPathsByIDs(ctx, []int{ids[2], ids[0], 999})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "Law", found[0].GeneralField)
		assert.Equal(t, "Arts", found[1].GeneralField)

		none, err := service.GetCareerPathsByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Delete_InUseByProgram", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)
		cp, err := service.CreateCareerPath(ctx, careerpath.CreateCareerPathRequest{GeneralField: "Engineering"})
		require.NoError(t, err)
		_, err = pgContainer.DB.NewInsert().Model(&program.Program{ProgramName: "CS", ProgramType: "Bachelor", CareerPathID: cp.ID}).Exec(ctx)
		require.NoError(t, err)

		err = service.DeleteCareerPath(ctx, cp.ID)
		assert.ErrorIs(t, err, careerpath.ErrCareerPathInUse)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("Delete", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)
		cp, err := service.CreateCareerPath(ctx, careerpath.CreateCareerPathRequest{GeneralField: "Arts"})
		require.NoError(t, err)

		require.NoError(t, service.DeleteCareerPath(ctx, cp.ID))
		assert.ErrorIs(t, service.DeleteCareerPath(ctx, cp.ID), careerpath.ErrCareerPathNotFound)
	})
}
