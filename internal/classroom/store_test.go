package classroom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddClass(t *testing.T) {
	s := NewStore()

	cls, err := s.AddClass("CS101", "Mon 10:00")
	require.NoError(t, err)
	assert.Equal(t, "CS101", cls.Name)
	assert.Equal(t, "Mon 10:00", cls.Slot)
	assert.NotZero(t, cls.ID)
	assert.Empty(t, cls.Assignments)
}

func TestAddClass_BlankFields(t *testing.T) {
	s := NewStore()

	_, err := s.AddClass("", "Mon 10:00")
	assert.ErrorIs(t, err, ErrBlankField)

	_, err = s.AddClass("CS101", "   ")
	assert.ErrorIs(t, err, ErrBlankField)

	assert.Empty(t, s.Classes())
}

func TestAddClass_IDsUniqueWithinSameMillisecond(t *testing.T) {
	s := NewStore()
	// Freeze the clock so every class lands on the same millisecond.
	fixed := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	a, err := s.AddClass("CS101", "Mon 10:00")
	require.NoError(t, err)
	b, err := s.AddClass("CS102", "Tue 10:00")
	require.NoError(t, err)
	c, err := s.AddClass("CS103", "Wed 10:00")
	require.NoError(t, err)

	assert.Equal(t, fixed.UnixMilli(), a.ID)
	assert.Equal(t, a.ID+1, b.ID)
	assert.Equal(t, b.ID+1, c.ID)
}

func TestAddAssignment(t *testing.T) {
	s := NewStore()
	cls, err := s.AddClass("G1", "Fri 09:00")
	require.NoError(t, err)

	require.NoError(t, s.AddAssignment(cls.ID, "HW1", "2025-01-01"))

	got, err := s.Assignment(cls.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "HW1", got.Title)
	assert.Equal(t, "2025-01-01", got.Due)
	assert.False(t, got.Completed)
}

func TestAddAssignment_UnknownClass(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.AddAssignment(42, "HW1", "2025-01-01"), ErrClassNotFound)
}

func TestSetCompletion(t *testing.T) {
	s := NewStore()
	cls, err := s.AddClass("G1", "Fri 09:00")
	require.NoError(t, err)
	require.NoError(t, s.AddAssignment(cls.ID, "HW1", "2025-01-01"))

	// false -> true is a transition.
	transitioned, err := s.SetCompletion(cls.ID, 0, true)
	require.NoError(t, err)
	assert.True(t, transitioned)

	// true -> true is not.
	transitioned, err = s.SetCompletion(cls.ID, 0, true)
	require.NoError(t, err)
	assert.False(t, transitioned)

	// true -> false is not.
	transitioned, err = s.SetCompletion(cls.ID, 0, false)
	require.NoError(t, err)
	assert.False(t, transitioned)

	// false -> true transitions again after the toggle back.
	transitioned, err = s.SetCompletion(cls.ID, 0, true)
	require.NoError(t, err)
	assert.True(t, transitioned)
}

func TestSetCompletion_BadReferences(t *testing.T) {
	s := NewStore()
	cls, err := s.AddClass("G1", "Fri 09:00")
	require.NoError(t, err)
	require.NoError(t, s.AddAssignment(cls.ID, "HW1", "2025-01-01"))

	_, err = s.SetCompletion(999, 0, true)
	assert.ErrorIs(t, err, ErrClassNotFound)

	_, err = s.SetCompletion(cls.ID, 1, true)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	_, err = s.SetCompletion(cls.ID, -1, true)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestClasses_SnapshotIsolatedFromMutation(t *testing.T) {
	s := NewStore()
	cls, err := s.AddClass("G1", "Fri 09:00")
	require.NoError(t, err)
	require.NoError(t, s.AddAssignment(cls.ID, "HW1", "2025-01-01"))

	snapshot := s.Classes()
	require.Len(t, snapshot, 1)
	require.Len(t, snapshot[0].Assignments, 1)

	// Mutations after the snapshot must not leak into it.
	require.NoError(t, s.AddAssignment(cls.ID, "HW2", "2025-02-01"))
	_, err = s.SetCompletion(cls.ID, 0, true)
	require.NoError(t, err)

	assert.Len(t, snapshot[0].Assignments, 1)
	assert.False(t, snapshot[0].Assignments[0].Completed)

	fresh := s.Classes()
	assert.Len(t, fresh[0].Assignments, 2)
	assert.True(t, fresh[0].Assignments[0].Completed)
}

func TestClasses_CreationOrder(t *testing.T) {
	s := NewStore()
	for _, name := range []string{"A", "B", "C"} {
		_, err := s.AddClass(name, "Mon 10:00")
		require.NoError(t, err)
	}

	classes := s.Classes()
	require.Len(t, classes, 3)
	assert.Equal(t, "A", classes[0].Name)
	assert.Equal(t, "B", classes[1].Name)
	assert.Equal(t, "C", classes[2].Name)
}
