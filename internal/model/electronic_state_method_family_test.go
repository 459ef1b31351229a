package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestElectronicState(id uint, keyword string) *ElectronicState {
	state := &ElectronicState{EntityMeta: NewEntityMeta(keyword, "")}
	state.ID = id
	return state
}

func TestESMFOptionalFamilyNilPropagation(t *testing.T) {
	// 未绑定方法族的组合：可选关联在所有形态中保持为空
	simple := ElectronicStateMethodFamilySimple{
		EntityMeta:        NewEntityMeta("X1S", "Ground state"),
		ElectronicStateID: 2,
	}
	simple.ID = 11

	full, err := simple.ToFull(newTestElectronicState(2, "X1S"), nil)
	require.NoError(t, err)
	assert.Nil(t, full.MethodFamily)

	back := full.ToSimple()
	assert.Nil(t, back.MethodFamilyID)
	assert.Equal(t, simple, back)

	inter := full.ToIntermediate()
	assert.Nil(t, inter.MethodFamily)
}

func TestESMFWithFamilyRoundTrip(t *testing.T) {
	familyID := uint(3)
	simple := ElectronicStateMethodFamilySimple{
		EntityMeta:        NewEntityMeta("A2P", ""),
		ElectronicStateID: 2,
		MethodFamilyID:    &familyID,
	}
	simple.ID = 12

	full, err := simple.ToFull(newTestElectronicState(2, "A2P"), newTestFamily(3, "DFT", "Density Functional Theory"))
	require.NoError(t, err)
	require.NotNil(t, full.MethodFamily)

	back := full.ToSimple()
	require.NotNil(t, back.MethodFamilyID)
	assert.Equal(t, familyID, *back.MethodFamilyID)
	assert.Equal(t, simple.EntityMeta, back.EntityMeta)
}

func TestESMFNilStateRejected(t *testing.T) {
	simple := ElectronicStateMethodFamilySimple{EntityMeta: NewEntityMeta("X1S", ""), ElectronicStateID: 2}

	_, err := simple.ToFull(nil, newTestFamily(3, "DFT", ""))
	require.ErrorIs(t, err, ErrNilRelation)

	_, err = simple.ToIntermediate(nil, nil)
	require.ErrorIs(t, err, ErrNilRelation)
}

func TestESMFIntermediateAgreesWithFull(t *testing.T) {
	familyID := uint(5)
	simple := ElectronicStateMethodFamilySimple{
		EntityMeta:        NewEntityMeta("B3S", ""),
		ElectronicStateID: 7,
		MethodFamilyID:    &familyID,
	}
	state := newTestElectronicState(7, "B3S")
	family := newTestFamily(5, "CC", "Coupled Cluster")

	full, err := simple.ToFull(state, family)
	require.NoError(t, err)

	stateRecord := state.ToRecord()
	familyRecord := family.ToRecord()
	viaSimple, err := full.ToSimple().ToIntermediate(&stateRecord, &familyRecord)
	require.NoError(t, err)

	assert.Equal(t, full.ToIntermediate(), *viaSimple)
}
