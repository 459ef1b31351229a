package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"qcmeta-go/internal/config"
	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
	"qcmeta-go/pkg/database"
)

func newTestProcessor(t *testing.T) (*Processor, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	p := NewProcessor(
		config.ElasticsearchConfig{IndexName: "catalog-test"},
		repository.NewCatalogRepository[model.MethodFamily](db),
		repository.NewCatalogRepository[model.SpinState](db),
		repository.NewCatalogRepository[model.ElectronicState](db),
		repository.NewCatalogRepository[model.Molecule](db),
		repository.NewBaseMethodRepository(db),
		repository.NewCatalogRepository[model.ElectronicStateMethodFamilySimple](db),
		repository.NewCatalogRepository[model.SpinStateElectronicStateMethodFamilySimple](db),
		repository.NewCatalogRepository[model.FullMethodSimple](db),
		repository.NewExperimentRepository(db),
	)
	return p, db
}

func TestLoadMetaResolvesEveryEntityType(t *testing.T) {
	p, db := newTestProcessor(t)

	family := &model.MethodFamily{EntityMeta: model.NewEntityMeta("WFT", "Wave Function Theory")}
	require.NoError(t, db.Create(family).Error)
	method := &model.BaseMethodSimple{
		EntityMeta:     model.NewEntityMeta("HF", "Hartree-Fock"),
		MethodFamilyID: family.ID,
	}
	require.NoError(t, db.Create(method).Error)

	meta, err := p.loadMeta(model.EntityTypeMethodFamily, family.ID)
	require.NoError(t, err)
	assert.Equal(t, "WFT", meta.Keyword)
	assert.Equal(t, "Wave Function Theory/WFT", meta.Label())

	meta, err = p.loadMeta(model.EntityTypeBaseMethod, method.ID)
	require.NoError(t, err)
	assert.Equal(t, "HF", meta.Keyword)
	assert.False(t, meta.Archived)
}

func TestLoadMetaIncludesArchivedEntities(t *testing.T) {
	p, db := newTestProcessor(t)

	molecule := &model.Molecule{EntityMeta: model.NewEntityMeta("H2O", "Water"), Formula: "H2O"}
	require.NoError(t, db.Create(molecule).Error)
	require.NoError(t, db.Model(molecule).Update("archived", true).Error)

	// 归档记录也要能加载出来，处理器据此决定移除索引文档
	meta, err := p.loadMeta(model.EntityTypeMolecule, molecule.ID)
	require.NoError(t, err)
	assert.True(t, meta.Archived)
}

func TestLoadMetaRejectsUnknownEntityType(t *testing.T) {
	p, _ := newTestProcessor(t)

	_, err := p.loadMeta("attachment", 1)
	require.Error(t, err)
}

func TestLoadMetaMissingRecord(t *testing.T) {
	p, _ := newTestProcessor(t)

	_, err := p.loadMeta(model.EntityTypeSpinState, 42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
