package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpinState(id uint, keyword, name string, multiplicity uint) *SpinState {
	state := &SpinState{EntityMeta: NewEntityMeta(keyword, name), Multiplicity: multiplicity}
	state.ID = id
	return state
}

// buildTestCombination 组装一个完整的 自旋态-电子态-方法族 对象图。
func buildTestCombination(t *testing.T) *SpinStateElectronicStateMethodFamilyFull {
	t.Helper()

	esmfSimple := ElectronicStateMethodFamilySimple{
		EntityMeta:        NewEntityMeta("X1S", ""),
		ElectronicStateID: 2,
	}
	esmfSimple.ID = 21
	esmfFull, err := esmfSimple.ToFull(newTestElectronicState(2, "X1S"), nil)
	require.NoError(t, err)

	simple := SpinStateElectronicStateMethodFamilySimple{
		EntityMeta:                    NewEntityMeta("S-X1S", ""),
		SpinStateID:                   1,
		ElectronicStateMethodFamilyID: 21,
	}
	simple.ID = 31
	combination, err := simple.ToFull(newTestSpinState(1, "S", "Singlet", 1), esmfFull)
	require.NoError(t, err)
	return combination
}

func TestSSESMFNilArgumentsRejected(t *testing.T) {
	simple := SpinStateElectronicStateMethodFamilySimple{
		EntityMeta:                    NewEntityMeta("S-X1S", ""),
		SpinStateID:                   1,
		ElectronicStateMethodFamilyID: 21,
	}

	_, err := simple.ToFull(nil, &ElectronicStateMethodFamilyFull{})
	require.ErrorIs(t, err, ErrNilRelation)

	_, err = simple.ToFull(newTestSpinState(1, "S", "Singlet", 1), nil)
	require.ErrorIs(t, err, ErrNilRelation)

	spinRecord := Record{ID: 1, Keyword: "S"}
	_, err = simple.ToIntermediate(&spinRecord, nil)
	require.ErrorIs(t, err, ErrNilRelation)
}

func TestSSESMFRoundTrip(t *testing.T) {
	combination := buildTestCombination(t)

	back := combination.ToSimple()
	assert.Equal(t, combination.EntityMeta, back.EntityMeta)
	assert.Equal(t, uint(1), back.SpinStateID)
	assert.Equal(t, uint(21), back.ElectronicStateMethodFamilyID)

	inter := combination.ToIntermediate()
	assert.Equal(t, combination.SpinState.ToRecord(), inter.SpinState)
	assert.Equal(t, combination.ElectronicStateMethodFamily.ToRecord(), inter.ElectronicStateMethodFamily)
}

func TestFullMethodWithoutCombination(t *testing.T) {
	simple := FullMethodSimple{EntityMeta: NewEntityMeta("HF/X", ""), BaseMethodID: 1}
	simple.ID = 41

	baseSimple := BaseMethodSimple{EntityMeta: NewEntityMeta("HF", ""), MethodFamilyID: 3}
	baseSimple.ID = 1
	base, err := baseSimple.ToFull(newTestFamily(3, "HF", "Hartree-Fock"))
	require.NoError(t, err)

	full, err := simple.ToFull(base, nil)
	require.NoError(t, err)
	assert.Nil(t, full.SpinStateElectronicStateMethodFamily)

	back := full.ToSimple()
	assert.Nil(t, back.SpinStateElectronicStateMethodFamilyID)
	assert.Equal(t, simple, back)
}

func TestFullMethodNestedGraphAndIntermediateAgreement(t *testing.T) {
	combination := buildTestCombination(t)
	combinationID := combination.ID

	baseSimple := BaseMethodSimple{EntityMeta: NewEntityMeta("CCSD", ""), MethodFamilyID: 5}
	baseSimple.ID = 2
	base, err := baseSimple.ToFull(newTestFamily(5, "CC", "Coupled Cluster"))
	require.NoError(t, err)

	simple := FullMethodSimple{
		EntityMeta:                             NewEntityMeta("CCSD-S-X1S", ""),
		BaseMethodID:                           2,
		SpinStateElectronicStateMethodFamilyID: &combinationID,
	}
	simple.ID = 42

	full, err := NewFullMethodFull(simple, base, combination)
	require.NoError(t, err)

	// 嵌套对象图是完整展开的
	assert.Equal(t, "Coupled Cluster", full.BaseMethod.MethodFamily.Name)
	assert.Equal(t, "Singlet", full.SpinStateElectronicStateMethodFamily.SpinState.Name)
	assert.Equal(t, "X1S", full.SpinStateElectronicStateMethodFamily.ElectronicStateMethodFamily.ElectronicState.Keyword)

	baseRecord := base.ToRecord()
	combinationRecord := combination.ToRecord()
	viaSimple, err := full.ToSimple().ToIntermediate(&baseRecord, &combinationRecord)
	require.NoError(t, err)
	assert.Equal(t, full.ToIntermediate(), *viaSimple)
}

func TestFullMethodNilBaseMethodRejected(t *testing.T) {
	simple := FullMethodSimple{EntityMeta: NewEntityMeta("HF/X", ""), BaseMethodID: 1}

	_, err := simple.ToFull(nil, nil)
	require.ErrorIs(t, err, ErrNilRelation)

	_, err = simple.ToIntermediate(nil, nil)
	require.ErrorIs(t, err, ErrNilRelation)
}
