package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"qcmeta-go/internal/model"
	"qcmeta-go/pkg/database"
)

// newTestDB 打开一个内存数据库并完成建表，每个测试用例互相隔离。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestCatalogRepositoryCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository[model.MethodFamily](db)

	family := &model.MethodFamily{EntityMeta: model.NewEntityMeta("DFT", "Density Functional Theory")}
	require.NoError(t, repo.Create(family))
	require.NotZero(t, family.ID)

	got, err := repo.FindByID(family.ID)
	require.NoError(t, err)
	assert.Equal(t, "DFT", got.Keyword)
	assert.Equal(t, "Density Functional Theory", got.Name)
	assert.False(t, got.Archived)

	byKeyword, err := repo.FindByKeyword("DFT")
	require.NoError(t, err)
	assert.Equal(t, family.ID, byKeyword.ID)

	_, err = repo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCatalogRepositoryArchiveHidesByDefault(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository[model.SpinState](db)

	singlet := &model.SpinState{EntityMeta: model.NewEntityMeta("S", "Singlet"), Multiplicity: 1}
	doublet := &model.SpinState{EntityMeta: model.NewEntityMeta("D", "Doublet"), Multiplicity: 2}
	require.NoError(t, repo.Create(singlet))
	require.NoError(t, repo.Create(doublet))

	require.NoError(t, repo.Archive(doublet.ID))

	// 归档只是打标记，记录本身仍然可以按 ID 取到
	archived, err := repo.FindByID(doublet.ID)
	require.NoError(t, err)
	assert.True(t, archived.Archived)

	visible, err := repo.FindAll(false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "S", visible[0].Keyword)

	all, err := repo.FindAll(true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// 已归档的记录不再参与 Keyword 查找
	_, err = repo.FindByKeyword("D")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Restore(doublet.ID))
	visible, err = repo.FindAll(false)
	require.NoError(t, err)
	assert.Len(t, visible, 2)
}

func TestCatalogRepositoryArchiveMissingRecord(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository[model.Molecule](db)

	err := repo.Archive(42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCatalogRepositoryPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository[model.ElectronicState](db)

	keywords := []string{"X", "A", "B", "C", "a3"}
	for _, kw := range keywords {
		require.NoError(t, repo.Create(&model.ElectronicState{EntityMeta: model.NewEntityMeta(kw, "State "+kw)}))
	}

	page, total, err := repo.FindWithPagination(false, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "X", page[0].Keyword)

	page, total, err = repo.FindWithPagination(false, 4, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page, 1)
}

func TestCatalogRepositoryRecordsProjection(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository[model.MethodFamily](db)

	require.NoError(t, repo.Create(&model.MethodFamily{EntityMeta: model.NewEntityMeta("WFT", "Wave Function Theory")}))
	require.NoError(t, repo.Create(&model.MethodFamily{EntityMeta: model.NewEntityMeta("DFT", "Density Functional Theory")}))
	hidden := &model.MethodFamily{EntityMeta: model.NewEntityMeta("SEMI", "Semi-empirical")}
	require.NoError(t, repo.Create(hidden))
	require.NoError(t, repo.Archive(hidden.ID))

	records, err := repo.FindRecords()
	require.NoError(t, err)
	require.Len(t, records, 2)
	// 下拉列表按 Keyword 排序，且不包含已归档的记录
	assert.Equal(t, "DFT", records[0].Keyword)
	assert.Equal(t, "WFT", records[1].Keyword)
	// Name 与 Keyword 都存在时，标签为 "Name/Keyword"
	assert.Equal(t, "Density Functional Theory/DFT", records[0].Label())
}

func TestCatalogRepositoryFindAllIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewCatalogRepository[model.Molecule](db)

	water := &model.Molecule{EntityMeta: model.NewEntityMeta("H2O", "Water"), Formula: "H2O"}
	methane := &model.Molecule{EntityMeta: model.NewEntityMeta("CH4", "Methane"), Formula: "CH4"}
	require.NoError(t, repo.Create(water))
	require.NoError(t, repo.Create(methane))
	require.NoError(t, repo.Archive(methane.ID))

	ids, err := repo.FindAllIDs(false)
	require.NoError(t, err)
	assert.Equal(t, []uint{water.ID}, ids)

	ids, err = repo.FindAllIDs(true)
	require.NoError(t, err)
	assert.Equal(t, []uint{water.ID, methane.ID}, ids)
}

func TestBaseMethodRepositoryCountByFamily(t *testing.T) {
	db := newTestDB(t)
	familyRepo := NewCatalogRepository[model.MethodFamily](db)
	methodRepo := NewBaseMethodRepository(db)

	dft := &model.MethodFamily{EntityMeta: model.NewEntityMeta("DFT", "Density Functional Theory")}
	wft := &model.MethodFamily{EntityMeta: model.NewEntityMeta("WFT", "Wave Function Theory")}
	require.NoError(t, familyRepo.Create(dft))
	require.NoError(t, familyRepo.Create(wft))

	b3lyp := &model.BaseMethodSimple{EntityMeta: model.NewEntityMeta("B3LYP", "B3LYP"), MethodFamilyID: dft.ID}
	pbe := &model.BaseMethodSimple{EntityMeta: model.NewEntityMeta("PBE", "PBE"), MethodFamilyID: dft.ID}
	hf := &model.BaseMethodSimple{EntityMeta: model.NewEntityMeta("HF", "Hartree-Fock"), MethodFamilyID: wft.ID}
	require.NoError(t, methodRepo.Create(b3lyp))
	require.NoError(t, methodRepo.Create(pbe))
	require.NoError(t, methodRepo.Create(hf))
	require.NoError(t, methodRepo.Archive(pbe.ID))

	count, err := methodRepo.CountByMethodFamilyID(dft.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = methodRepo.CountByMethodFamilyID(wft.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestExperimentRepositoryFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewExperimentRepository(db)

	energy := -76.4
	first := &model.ExperimentSimple{
		EntityMeta:   model.NewEntityMeta("h2o-b3lyp", "Water B3LYP single point"),
		MoleculeID:   1,
		FullMethodID: 10,
		TotalEnergy:  &energy,
		EnergyUnit:   "Hartree",
	}
	second := &model.ExperimentSimple{
		EntityMeta:   model.NewEntityMeta("h2o-hf", "Water HF single point"),
		MoleculeID:   1,
		FullMethodID: 11,
	}
	third := &model.ExperimentSimple{
		EntityMeta:   model.NewEntityMeta("ch4-b3lyp", "Methane B3LYP single point"),
		MoleculeID:   2,
		FullMethodID: 10,
	}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))
	require.NoError(t, repo.Create(third))
	require.NoError(t, repo.Archive(second.ID))

	byMolecule, err := repo.FindByMoleculeID(1, false)
	require.NoError(t, err)
	require.Len(t, byMolecule, 1)
	assert.Equal(t, "h2o-b3lyp", byMolecule[0].Keyword)
	require.NotNil(t, byMolecule[0].TotalEnergy)
	assert.InDelta(t, -76.4, *byMolecule[0].TotalEnergy, 1e-9)

	byMolecule, err = repo.FindByMoleculeID(1, true)
	require.NoError(t, err)
	assert.Len(t, byMolecule, 2)

	byMethod, err := repo.FindByFullMethodID(10, false)
	require.NoError(t, err)
	assert.Len(t, byMethod, 2)
}

func TestAttachmentRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttachmentRepository(db)

	attachment := &model.Attachment{
		ExperimentID: 7,
		FileName:     "output.log",
		ObjectKey:    "experiments/7/output.log",
		ContentType:  "text/plain",
		Size:         2048,
		UploadedBy:   1,
	}
	require.NoError(t, repo.Create(attachment))
	require.NotZero(t, attachment.ID)

	list, err := repo.FindByExperimentID(7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "output.log", list[0].FileName)

	require.NoError(t, repo.Delete(attachment.ID))
	err = repo.Delete(attachment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
