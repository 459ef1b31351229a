package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelPolicy(t *testing.T) {
	cases := []struct {
		name    string
		keyword string
		want    string
	}{
		{"Doublet", "", "Doublet"},
		{"", "D", "D"},
		{"Doublet", "D", "Doublet/D"},
		{"", "", ""},
	}
	for _, c := range cases {
		meta := EntityMeta{Name: c.name, Keyword: c.keyword}
		assert.Equal(t, c.want, meta.Label())
		assert.Equal(t, c.want, meta.String())
		record := Record{Name: c.name, Keyword: c.keyword}
		assert.Equal(t, c.want, record.Label())
		assert.Equal(t, c.want, record.String())
	}
}

func TestNewEntityMetaDefaults(t *testing.T) {
	before := time.Now()
	meta := NewEntityMeta("HF", "Hartree-Fock")
	after := time.Now()

	assert.Equal(t, "HF", meta.Keyword)
	assert.Equal(t, "Hartree-Fock", meta.Name)
	assert.False(t, meta.Archived)
	require.False(t, meta.CreatedDate.Before(before))
	require.False(t, meta.CreatedDate.After(after))
	assert.Equal(t, meta.CreatedDate, meta.LastUpdatedDate)
}

func TestTouchOnlyMovesLastUpdated(t *testing.T) {
	meta := NewEntityMeta("HF", "Hartree-Fock")
	created := meta.CreatedDate
	time.Sleep(time.Millisecond)
	meta.Touch()

	assert.Equal(t, created, meta.CreatedDate)
	assert.True(t, meta.LastUpdatedDate.After(created))
}

func TestToRecordCopiesWithoutMutation(t *testing.T) {
	family := MethodFamily{EntityMeta: NewEntityMeta("CC", "Coupled Cluster")}
	family.ID = 7
	snapshot := family

	record := family.ToRecord()

	assert.Equal(t, Record{ID: 7, Keyword: "CC", Name: "Coupled Cluster"}, record)
	assert.Equal(t, snapshot, family)
}
