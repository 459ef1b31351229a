package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMolecule(id uint, formula string) *Molecule {
	molecule := &Molecule{EntityMeta: NewEntityMeta(formula, ""), Formula: formula}
	molecule.ID = id
	return molecule
}

func newTestFullMethod(t *testing.T, id uint) *FullMethodFull {
	t.Helper()

	baseSimple := BaseMethodSimple{EntityMeta: NewEntityMeta("HF", ""), MethodFamilyID: 3}
	baseSimple.ID = 1
	base, err := baseSimple.ToFull(newTestFamily(3, "HF", "Hartree-Fock"))
	require.NoError(t, err)

	simple := FullMethodSimple{EntityMeta: NewEntityMeta("HF/X", ""), BaseMethodID: 1}
	simple.ID = id
	full, err := simple.ToFull(base, nil)
	require.NoError(t, err)
	return full
}

func TestExperimentEndToEnd(t *testing.T) {
	energy := -76.026765
	simple := ExperimentSimple{
		EntityMeta:   NewEntityMeta("", "Water ground state energy"),
		MoleculeID:   8,
		FullMethodID: 42,
		TotalEnergy:  &energy,
		EnergyUnit:   "Hartree",
	}
	simple.ID = 100
	simple.Archived = true
	simple.CreatedDate = time.Date(2023, 9, 1, 8, 0, 0, 0, time.UTC)
	simple.LastUpdatedDate = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	full, err := simple.ToFull(newTestMolecule(8, "H2O"), newTestFullMethod(t, 42))
	require.NoError(t, err)

	assert.Equal(t, "H2O", full.Molecule.Formula)
	assert.Equal(t, "Hartree-Fock", full.FullMethod.BaseMethod.MethodFamily.Name)

	// 归档标记、两个时间戳与能量字段在整条转换链上原样保留
	back := full.ToSimple()
	assert.Equal(t, simple, back)

	inter := full.ToIntermediate()
	assert.True(t, inter.Archived)
	assert.Equal(t, simple.CreatedDate, inter.CreatedDate)
	assert.Equal(t, simple.LastUpdatedDate, inter.LastUpdatedDate)
	require.NotNil(t, inter.TotalEnergy)
	assert.Equal(t, energy, *inter.TotalEnergy)
	assert.Equal(t, inter.ToSimple(), simple)
}

func TestExperimentNilArgumentsRejected(t *testing.T) {
	simple := ExperimentSimple{EntityMeta: NewEntityMeta("", "run"), MoleculeID: 8, FullMethodID: 42}

	_, err := simple.ToFull(nil, newTestFullMethod(t, 42))
	require.ErrorIs(t, err, ErrNilRelation)

	_, err = simple.ToFull(newTestMolecule(8, "H2O"), nil)
	require.ErrorIs(t, err, ErrNilRelation)

	moleculeRecord := Record{ID: 8, Keyword: "H2O"}
	_, err = simple.ToIntermediate(nil, &moleculeRecord)
	require.ErrorIs(t, err, ErrNilRelation)
	_, err = simple.ToIntermediate(&moleculeRecord, nil)
	require.ErrorIs(t, err, ErrNilRelation)
}
