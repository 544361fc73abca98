package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croftview/fieldops-backend-go/internal/database"
	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/repository"
)

const seedYAML = `products:
  - id: glyfo-480
    name: Glyfo 480 SL
    cropId: wheat
    category: HERBICIDE
  - id: proline-250
    name: Proline 250 EC
    cropId: wheat
    category: FUNGICIDE
`

func newProductRepo(t *testing.T) *repository.ProductRepository {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator := database.NewMigrationManager(db, filepath.Join("..", "..", "migrations"))
	require.NoError(t, migrator.RunMigrations())

	return repository.NewProductRepository(db)
}

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	products, err := LoadFile(writeSeed(t, seedYAML))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "glyfo-480", products[0].ID)
	assert.Equal(t, "wheat", products[0].CropID)
	assert.Equal(t, models.CategoryHerbicide, products[0].Category)
}

func TestLoadFile_Malformed(t *testing.T) {
	_, err := LoadFile(writeSeed(t, "products: {not a list"))
	assert.Error(t, err)
}

func TestSeedIfEmpty_SeedsOnce(t *testing.T) {
	repo := newProductRepo(t)
	path := writeSeed(t, seedYAML)

	require.NoError(t, SeedIfEmpty(path, repo))
	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// Second run is a no-op against a non-empty table.
	require.NoError(t, SeedIfEmpty(path, repo))
	count, err = repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestSeedIfEmpty_SkipsWhenCatalogPresent(t *testing.T) {
	repo := newProductRepo(t)
	require.NoError(t, repo.UpsertBatch([]models.Product{
		{ID: "synced", CropID: "wheat", Name: "Synced", Category: models.CategoryHerbicide},
	}))

	require.NoError(t, SeedIfEmpty(writeSeed(t, seedYAML), repo))

	products, err := repo.List("")
	require.NoError(t, err)
	require.Len(t, products, 1, "seed must not clobber a synced catalog")
	assert.Equal(t, "synced", products[0].ID)
}

func TestSeedIfEmpty_MissingFileIsNotAnError(t *testing.T) {
	repo := newProductRepo(t)
	assert.NoError(t, SeedIfEmpty(filepath.Join(t.TempDir(), "absent.yaml"), repo))
	assert.NoError(t, SeedIfEmpty("", repo))
}
