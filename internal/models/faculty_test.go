package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryPrefix(t *testing.T) {
	assert.Equal(t, "钢琴", CategoryPrefix("钢琴基础课"))
	assert.Equal(t, "声乐", CategoryPrefix("声乐"))
	assert.Equal(t, "琴", CategoryPrefix("琴"))
}

func TestFacultyForCategory(t *testing.T) {
	assert.Equal(t, FacultyPiano, FacultyForCategory(CategoryPiano))
	assert.Equal(t, FacultyVocal, FacultyForCategory(CategoryVocal))
	assert.Equal(t, FacultyInstrument, FacultyForCategory(CategoryInstrument))
	assert.Equal(t, FacultyTheory, FacultyForCategory("视唱"))
}

func TestIsLargeGroupInstrument(t *testing.T) {
	assert.True(t, IsLargeGroupInstrument("古筝"))
	assert.True(t, IsLargeGroupInstrument("竹笛演奏"))
	assert.True(t, IsLargeGroupInstrument("葫芦丝"))
	assert.False(t, IsLargeGroupInstrument("二胡"))
	assert.False(t, IsLargeGroupInstrument(""))
}

func TestMaxGroupSize(t *testing.T) {
	assert.Equal(t, 8, MaxGroupSize(CategoryInstrument))
	assert.Equal(t, 5, MaxGroupSize(CategoryPiano))
	assert.Equal(t, 5, MaxGroupSize(CategoryVocal))
}

func TestGradeCode(t *testing.T) {
	assert.Equal(t, 23, GradeCode("音乐学2301"))
	assert.Equal(t, 22, GradeCode("22声乐2班"))
	assert.Equal(t, 0, GradeCode("音乐学"))
	assert.Equal(t, 0, GradeCode(""))
}
