package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/models"
)

func TestStoreGetBeforeSet(t *testing.T) {
	s := NewDataStore()

	_, err := s.Get(models.RoleEnrollment)
	require.Error(t, err)
	_, ok := err.(*NotLoadedError)
	assert.True(t, ok, "expected *NotLoadedError, got %T", err)
	assert.False(t, s.ReadyForAnalysis())
}

func TestStoreLastWriterWins(t *testing.T) {
	s := NewDataStore()
	first := &models.Table{Columns: []string{"date"}}
	second := &models.Table{Columns: []string{"date", "state"}}

	s.Set(models.RoleEnrollment, first)
	v1 := s.Version()
	s.Set(models.RoleEnrollment, second)

	got, err := s.Get(models.RoleEnrollment)
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.Greater(t, s.Version(), v1, "each commit bumps the version")
}

func TestStoreReadyForAnalysis(t *testing.T) {
	s := NewDataStore()
	s.Set(models.RoleEnrollment, &models.Table{})
	assert.False(t, s.ReadyForAnalysis())

	s.Set(models.RoleBiometric, &models.Table{})
	assert.True(t, s.ReadyForAnalysis())

	s.Reset()
	assert.False(t, s.ReadyForAnalysis())
}
