package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"qcmeta-go/internal/model"
	"qcmeta-go/internal/repository"
	"qcmeta-go/pkg/database"
	"qcmeta-go/pkg/tasks"
)

// recordingPublisher 把投递的索引任务收集起来供断言。
type recordingPublisher struct {
	tasks []tasks.IndexTask
}

func (p *recordingPublisher) PublishIndexTask(task tasks.IndexTask) {
	p.tasks = append(p.tasks, task)
}

type serviceFixture struct {
	methods     MethodService
	states      StateService
	molecules   MoleculeService
	experiments ExperimentService
	publisher   *recordingPublisher
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	familyRepo := repository.NewCatalogRepository[model.MethodFamily](db)
	spinStateRepo := repository.NewCatalogRepository[model.SpinState](db)
	stateRepo := repository.NewCatalogRepository[model.ElectronicState](db)
	moleculeRepo := repository.NewCatalogRepository[model.Molecule](db)
	baseMethodRepo := repository.NewBaseMethodRepository(db)
	esmfRepo := repository.NewCatalogRepository[model.ElectronicStateMethodFamilySimple](db)
	ssesmfRepo := repository.NewCatalogRepository[model.SpinStateElectronicStateMethodFamilySimple](db)
	fullMethodRepo := repository.NewCatalogRepository[model.FullMethodSimple](db)
	experimentRepo := repository.NewExperimentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	hydrator := NewHydrator(
		familyRepo, spinStateRepo, stateRepo, moleculeRepo,
		baseMethodRepo, esmfRepo, ssesmfRepo, fullMethodRepo, experimentRepo,
	)
	publisher := &recordingPublisher{}
	notifier := NoopChangeNotifier{}

	return &serviceFixture{
		methods:     NewMethodService(familyRepo, baseMethodRepo, fullMethodRepo, ssesmfRepo, hydrator, publisher, notifier),
		states:      NewStateService(spinStateRepo, stateRepo, familyRepo, esmfRepo, ssesmfRepo, hydrator, publisher, notifier),
		molecules:   NewMoleculeService(moleculeRepo, publisher, notifier),
		experiments: NewExperimentService(experimentRepo, moleculeRepo, fullMethodRepo, attachmentRepo, hydrator, publisher, notifier, "test-bucket"),
		publisher:   publisher,
	}
}

func TestCreateBaseMethodRequiresExistingFamily(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.methods.CreateBaseMethod(BaseMethodInput{
		CatalogInput:   CatalogInput{Keyword: "HF", Name: "Hartree-Fock"},
		MethodFamilyID: 999,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	family, err := f.methods.CreateMethodFamily(CatalogInput{Keyword: "WFT", Name: "Wave Function Theory"})
	require.NoError(t, err)

	method, err := f.methods.CreateBaseMethod(BaseMethodInput{
		CatalogInput:   CatalogInput{Keyword: "HF", Name: "Hartree-Fock"},
		MethodFamilyID: family.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, family.ID, method.MethodFamily.ID)
	assert.Equal(t, "Wave Function Theory/WFT", method.MethodFamily.Label())
}

func TestCreateCatalogEntryRejectsBlankLabels(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.methods.CreateMethodFamily(CatalogInput{Keyword: "  ", Name: ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetFullMethodHydratesWholeGraph(t *testing.T) {
	f := newServiceFixture(t)

	family, err := f.methods.CreateMethodFamily(CatalogInput{Keyword: "DFT", Name: "Density Functional Theory"})
	require.NoError(t, err)
	base, err := f.methods.CreateBaseMethod(BaseMethodInput{
		CatalogInput:   CatalogInput{Keyword: "B3LYP"},
		MethodFamilyID: family.ID,
	})
	require.NoError(t, err)
	spin, err := f.states.CreateSpinState(SpinStateInput{
		CatalogInput: CatalogInput{Keyword: "T", Name: "Triplet"},
		Multiplicity: 3,
	})
	require.NoError(t, err)
	state, err := f.states.CreateElectronicState(CatalogInput{Keyword: "GS", Name: "Ground State"})
	require.NoError(t, err)
	esmf, err := f.states.CreateElectronicStateMethodFamily(ElectronicStateMethodFamilyInput{
		CatalogInput:      CatalogInput{Keyword: "GS-DFT"},
		ElectronicStateID: state.ID,
		MethodFamilyID:    &family.ID,
	})
	require.NoError(t, err)
	triple, err := f.states.CreateSpinStateElectronicStateMethodFamily(SpinStateElectronicStateMethodFamilyInput{
		CatalogInput:                  CatalogInput{Keyword: "T-GS-DFT"},
		SpinStateID:                   spin.ID,
		ElectronicStateMethodFamilyID: esmf.ID,
	})
	require.NoError(t, err)
	fullMethod, err := f.methods.CreateFullMethod(FullMethodInput{
		CatalogInput:                           CatalogInput{Keyword: "B3LYP/T-GS"},
		BaseMethodID:                           base.ID,
		SpinStateElectronicStateMethodFamilyID: &triple.ID,
	})
	require.NoError(t, err)

	got, err := f.methods.GetFullMethod(fullMethod.ID)
	require.NoError(t, err)

	// 详情视图递归展开整个关联对象图
	require.NotNil(t, got.BaseMethod)
	require.NotNil(t, got.BaseMethod.MethodFamily)
	assert.Equal(t, "DFT", got.BaseMethod.MethodFamily.Keyword)
	require.NotNil(t, got.SpinStateElectronicStateMethodFamily)
	assert.EqualValues(t, 3, got.SpinStateElectronicStateMethodFamily.SpinState.Multiplicity)
	combination := got.SpinStateElectronicStateMethodFamily.ElectronicStateMethodFamily
	require.NotNil(t, combination)
	assert.Equal(t, "GS", combination.ElectronicState.Keyword)
	require.NotNil(t, combination.MethodFamily)
	assert.Equal(t, family.ID, combination.MethodFamily.ID)
}

func TestFullMethodWithoutCombination(t *testing.T) {
	f := newServiceFixture(t)

	family, err := f.methods.CreateMethodFamily(CatalogInput{Keyword: "WFT"})
	require.NoError(t, err)
	base, err := f.methods.CreateBaseMethod(BaseMethodInput{
		CatalogInput:   CatalogInput{Keyword: "CCSD(T)"},
		MethodFamilyID: family.ID,
	})
	require.NoError(t, err)

	fullMethod, err := f.methods.CreateFullMethod(FullMethodInput{
		CatalogInput: CatalogInput{Keyword: "CCSD(T)/plain"},
		BaseMethodID: base.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, fullMethod.SpinStateElectronicStateMethodFamily)

	got, err := f.methods.GetFullMethod(fullMethod.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SpinStateElectronicStateMethodFamily)
}

func TestArchiveMethodFamilyBlockedByReferences(t *testing.T) {
	f := newServiceFixture(t)

	family, err := f.methods.CreateMethodFamily(CatalogInput{Keyword: "DFT"})
	require.NoError(t, err)
	base, err := f.methods.CreateBaseMethod(BaseMethodInput{
		CatalogInput:   CatalogInput{Keyword: "PBE"},
		MethodFamilyID: family.ID,
	})
	require.NoError(t, err)

	err = f.methods.ArchiveMethodFamily(family.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, f.methods.ArchiveBaseMethod(base.ID))
	require.NoError(t, f.methods.ArchiveMethodFamily(family.ID))

	// 已归档的方法族不能再被新的基础方法引用
	_, err = f.methods.CreateBaseMethod(BaseMethodInput{
		CatalogInput:   CatalogInput{Keyword: "B3LYP"},
		MethodFamilyID: family.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnnouncePublishesIndexTasks(t *testing.T) {
	f := newServiceFixture(t)

	family, err := f.methods.CreateMethodFamily(CatalogInput{Keyword: "DFT"})
	require.NoError(t, err)
	require.Len(t, f.publisher.tasks, 1)
	assert.Equal(t, tasks.ActionIndex, f.publisher.tasks[0].Action)
	assert.Equal(t, model.EntityTypeMethodFamily, f.publisher.tasks[0].EntityType)
	assert.Equal(t, family.ID, f.publisher.tasks[0].EntityID)

	// 归档从索引中移除，恢复重新写入
	require.NoError(t, f.methods.ArchiveMethodFamily(family.ID))
	require.Len(t, f.publisher.tasks, 2)
	assert.Equal(t, tasks.ActionDelete, f.publisher.tasks[1].Action)

	require.NoError(t, f.methods.RestoreMethodFamily(family.ID))
	require.Len(t, f.publisher.tasks, 3)
	assert.Equal(t, tasks.ActionIndex, f.publisher.tasks[2].Action)
}

func TestExperimentServiceEndToEnd(t *testing.T) {
	f := newServiceFixture(t)

	family, err := f.methods.CreateMethodFamily(CatalogInput{Keyword: "DFT"})
	require.NoError(t, err)
	base, err := f.methods.CreateBaseMethod(BaseMethodInput{
		CatalogInput:   CatalogInput{Keyword: "B3LYP"},
		MethodFamilyID: family.ID,
	})
	require.NoError(t, err)
	fullMethod, err := f.methods.CreateFullMethod(FullMethodInput{
		CatalogInput: CatalogInput{Keyword: "B3LYP/def2"},
		BaseMethodID: base.ID,
	})
	require.NoError(t, err)
	water, err := f.molecules.Create(MoleculeInput{
		CatalogInput: CatalogInput{Keyword: "H2O", Name: "Water"},
		Formula:      "H2O",
	})
	require.NoError(t, err)

	energy := -76.42
	experiment, err := f.experiments.Create(ExperimentInput{
		CatalogInput: CatalogInput{Keyword: "h2o-b3lyp", Name: "Water B3LYP single point"},
		MoleculeID:   water.ID,
		FullMethodID: fullMethod.ID,
		TotalEnergy:  &energy,
		EnergyUnit:   "Hartree",
	})
	require.NoError(t, err)
	assert.Equal(t, water.ID, experiment.Molecule.ID)

	// 能量有值时必须带单位
	_, err = f.experiments.Create(ExperimentInput{
		CatalogInput: CatalogInput{Keyword: "bad"},
		MoleculeID:   water.ID,
		FullMethodID: fullMethod.ID,
		TotalEnergy:  &energy,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	got, err := f.experiments.Get(experiment.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Molecule)
	assert.Equal(t, "H2O", got.Molecule.Formula)
	require.NotNil(t, got.FullMethod)
	assert.Equal(t, "B3LYP", got.FullMethod.BaseMethod.Keyword)
	require.NotNil(t, got.TotalEnergy)
	assert.InDelta(t, -76.42, *got.TotalEnergy, 1e-9)

	byMolecule, err := f.experiments.ListByMolecule(water.ID, false)
	require.NoError(t, err)
	require.Len(t, byMolecule, 1)
	assert.Equal(t, "h2o-b3lyp", byMolecule[0].Keyword)
}
