package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterAcceptFile(t *testing.T) {
	filter := Filter{
		IncludeFiles: []string{".go", ".py"},
		ExcludeFiles: []string{"_test", "gen."},
	}.Normalize()

	assert.True(t, filter.AcceptFile("main.go", "main.go", 10))
	assert.True(t, filter.AcceptFile("tool.py", "scripts/tool.py", 10))
	assert.False(t, filter.AcceptFile("main_test.go", "main_test.go", 10))
	assert.False(t, filter.AcceptFile("gen.go", "gen.go", 10))
	assert.False(t, filter.AcceptFile("README.md", "README.md", 10))
}

func TestFilterSubstringNotGlob(t *testing.T) {
	filter := Filter{ExcludeFiles: []string{"*.txt"}}.Normalize()

	// 模式按子串匹配，* 不是通配符。
	assert.True(t, filter.AcceptFile("a.txt", "a.txt", 1))
	assert.False(t, filter.AcceptFile("*.txt", "*.txt", 1))
}

func TestFilterAcceptDir(t *testing.T) {
	filter := Filter{ExcludeDirs: []string{".git", "images"}}.Normalize()

	assert.True(t, filter.AcceptDir("."))
	assert.True(t, filter.AcceptDir("pkg"))
	assert.False(t, filter.AcceptDir(".git"))
	assert.False(t, filter.AcceptDir("assets/images"))
	assert.False(t, filter.AcceptDir("assets/images-large"))
}

func TestFilterMaxFileSize(t *testing.T) {
	filter := Filter{MaxFileSize: 100}

	assert.True(t, filter.AcceptFile("a.go", "a.go", 100))
	assert.False(t, filter.AcceptFile("a.go", "a.go", 101))
	assert.True(t, Filter{}.AcceptFile("a.go", "a.go", 1<<40))
}

func TestFilterNormalizeDropsEmptyPatterns(t *testing.T) {
	filter := Filter{
		IncludeFiles: []string{"", " .go "},
		ExcludeFiles: []string{""},
	}.Normalize()

	assert.Equal(t, []string{".go"}, filter.IncludeFiles)
	assert.Empty(t, filter.ExcludeFiles)
	assert.Nil(t, filter.ExcludeDirs)
}

func TestReason(t *testing.T) {
	assert.Equal(t, "decode", Reason(ErrDecode))
	assert.Equal(t, "permission", Reason(ErrPermission))
	assert.Equal(t, "not-found", Reason(ErrPathNotFound))
	assert.Equal(t, "io", Reason(assert.AnError))
}
