package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCourse struct {
	Title       string    `json:"title"`
	TeacherID   string    `json:"teacher_id"`
	DoubtsCount int       `json:"doubts_count"`
	CreatedAt   time.Time `json:"created_at"`
	Meta        struct {
		Level string `json:"level"`
	} `json:"meta"`
}

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	err := m.Set(ctx, "courses/c1", map[string]interface{}{
		"title":      "Operating Systems",
		"teacher_id": "t1",
		"created_at": ServerTimestamp,
	})
	require.NoError(t, err)

	var got testCourse
	require.NoError(t, m.Get(ctx, "courses/c1", &got))
	assert.Equal(t, "Operating Systems", got.Title)
	assert.False(t, got.CreatedAt.IsZero(), "server timestamp should be resolved")

	err = m.Get(ctx, "courses/missing", &got)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemory_InvalidPaths(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	assert.ErrorIs(t, m.Set(ctx, "courses", map[string]interface{}{}), ErrInvalidPath)
	assert.ErrorIs(t, m.Get(ctx, "courses//x", nil), ErrInvalidPath)
	_, err := m.Add(ctx, "courses/c1", map[string]interface{}{})
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestMemory_MergeDeep(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Merge(ctx, "users/u1", map[string]interface{}{
		"email":   "a@b.c",
		"profile": map[string]interface{}{"name": "Asha", "branch": "CSE"},
	}))
	require.NoError(t, m.Merge(ctx, "users/u1", map[string]interface{}{
		"profile": map[string]interface{}{"branch": "ECE"},
	}))

	var got struct {
		Email   string `json:"email"`
		Profile struct {
			Name   string `json:"name"`
			Branch string `json:"branch"`
		} `json:"profile"`
	}
	require.NoError(t, m.Get(ctx, "users/u1", &got))
	assert.Equal(t, "a@b.c", got.Email)
	assert.Equal(t, "Asha", got.Profile.Name)
	assert.Equal(t, "ECE", got.Profile.Branch)
}

func TestMemory_UpdateIncrement(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	err := m.Update(ctx, "courses/c1", []Update{{Field: "doubts_count", Value: Increment(1)}})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "courses/c1", map[string]interface{}{"doubts_count": 0}))
	for i := 0; i < 3; i++ {
		require.NoError(t, m.Update(ctx, "courses/c1", []Update{{Field: "doubts_count", Value: Increment(1)}}))
	}
	require.NoError(t, m.Update(ctx, "courses/c1", []Update{{Field: "meta.level", Value: "advanced"}}))

	var got testCourse
	require.NoError(t, m.Get(ctx, "courses/c1", &got))
	assert.Equal(t, 3, got.DoubtsCount)
	assert.Equal(t, "advanced", got.Meta.Level)
}

func TestMemory_StreamFiltersAndSubcollections(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "courses/c1", map[string]interface{}{"teacher_id": "t1"}))
	require.NoError(t, m.Set(ctx, "courses/c2", map[string]interface{}{"teacher_id": "t2"}))
	require.NoError(t, m.Set(ctx, "courses/c3", map[string]interface{}{"teacher_id": "t1"}))
	require.NoError(t, m.Set(ctx, "courses/c1/students/s1", map[string]interface{}{"student_id": "s1"}))

	var ids []string
	err := m.Stream(ctx, "courses", []Filter{Where("teacher_id", "t1")}, func(d Document) error {
		ids = append(ids, d.ID())
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1", "c3"}, ids)

	ids = nil
	require.NoError(t, m.Stream(ctx, "courses/c1/students", nil, func(d Document) error {
		ids = append(ids, d.ID())
		return nil
	}))
	assert.Equal(t, []string{"s1"}, ids)

	stop := errors.New("stop")
	err = m.Stream(ctx, "courses", nil, func(d Document) error { return stop })
	assert.ErrorIs(t, err, stop)
}

func TestMemory_DeleteKeepsSubcollections(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "courses/c1", map[string]interface{}{"title": "x"}))
	require.NoError(t, m.Set(ctx, "courses/c1/students/s1", map[string]interface{}{"student_id": "s1"}))
	require.NoError(t, m.Delete(ctx, "courses/c1"))

	assert.ErrorIs(t, m.Get(ctx, "courses/c1", nil), ErrNotFound)
	assert.NoError(t, m.Get(ctx, "courses/c1/students/s1", nil))
}

func TestMemory_AddGeneratesIDs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id1, err := m.Add(ctx, "doubts", map[string]interface{}{"status": "open"})
	require.NoError(t, err)
	id2, err := m.Add(ctx, "doubts", map[string]interface{}{"status": "open"})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, m.Len())
}

func TestMatches_NumericEquality(t *testing.T) {
	data := map[string]interface{}{"year": 3, "cgpa": 7.5}
	assert.True(t, Matches(data, []Filter{Where("year", int64(3))}))
	assert.True(t, Matches(data, []Filter{Where("cgpa", 7.5)}))
	assert.False(t, Matches(data, []Filter{Where("cgpa", 7.9)}))
	assert.False(t, Matches(data, []Filter{Where("missing", "x")}))
}

func TestMemory_ConcurrentMergeAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "users/u1", map[string]interface{}{"name": "Asha", "meta": map[string]interface{}{"level": "1"}}))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.NoError(t, m.Merge(ctx, "users/u1", map[string]interface{}{
					"meta": map[string]interface{}{"level": fmt.Sprint(i, j)},
				}))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				var out map[string]interface{}
				assert.NoError(t, m.Get(ctx, "users/u1", &out))
				assert.Equal(t, "Asha", out["name"])
			}
		}()
	}
	wg.Wait()
}
