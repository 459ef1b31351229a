package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFamily(id uint, keyword, name string) *MethodFamily {
	family := &MethodFamily{EntityMeta: NewEntityMeta(keyword, name)}
	family.ID = id
	return family
}

func TestBaseMethodSimpleToFullToSimpleRoundTrip(t *testing.T) {
	simple := BaseMethodSimple{
		EntityMeta: EntityMeta{
			ID:               1,
			Keyword:          "HF",
			Name:             "Hartree-Fock method",
			RichDescription:  "<p>mean field</p>",
			PlainDescription: "mean field",
			CreatedDate:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			LastUpdatedDate:  time.Date(2024, 5, 2, 11, 30, 0, 0, time.UTC),
			Archived:         true,
		},
		MethodFamilyID: 3,
	}

	full, err := simple.ToFull(newTestFamily(3, "HF", "Hartree-Fock"))
	require.NoError(t, err)

	back := full.ToSimple()
	assert.Equal(t, simple, back)
}

func TestBaseMethodFullHydration(t *testing.T) {
	simple := BaseMethodSimple{EntityMeta: NewEntityMeta("HF", ""), MethodFamilyID: 3}
	simple.ID = 1

	full, err := NewBaseMethodFull(simple, newTestFamily(3, "", "Hartree-Fock"))
	require.NoError(t, err)

	assert.Equal(t, "Hartree-Fock", full.MethodFamily.Name)
	assert.Equal(t, uint(3), full.ToSimple().MethodFamilyID)
}

func TestBaseMethodNilFamilyRejected(t *testing.T) {
	simple := BaseMethodSimple{EntityMeta: NewEntityMeta("HF", ""), MethodFamilyID: 3}

	full, err := simple.ToFull(nil)
	require.ErrorIs(t, err, ErrNilRelation)
	assert.Nil(t, full)

	inter, err := simple.ToIntermediate(nil)
	require.ErrorIs(t, err, ErrNilRelation)
	assert.Nil(t, inter)

	full, err = NewBaseMethodFull(simple, nil)
	require.ErrorIs(t, err, ErrNilRelation)
	assert.Nil(t, full)
}

func TestBaseMethodIntermediateAgreesWithFull(t *testing.T) {
	simple := BaseMethodSimple{EntityMeta: NewEntityMeta("CCSD", "Coupled Cluster SD"), MethodFamilyID: 5}
	simple.ID = 9
	family := newTestFamily(5, "CC", "Coupled Cluster")

	full, err := simple.ToFull(family)
	require.NoError(t, err)

	record := family.ToRecord()
	viaSimple, err := full.ToSimple().ToIntermediate(&record)
	require.NoError(t, err)

	assert.Equal(t, full.ToIntermediate(), *viaSimple)
}

func TestBaseMethodIntermediateToSimple(t *testing.T) {
	inter := BaseMethodIntermediate{
		EntityMeta:   NewEntityMeta("MP2", "Møller-Plesset 2"),
		MethodFamily: Record{ID: 4, Keyword: "MP", Name: "Møller-Plesset"},
	}
	inter.ID = 2

	simple := inter.ToSimple()
	assert.Equal(t, inter.EntityMeta, simple.EntityMeta)
	assert.Equal(t, uint(4), simple.MethodFamilyID)
}
