package scanner

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linecount/internal/model"
)

// sampleContent 每个文件固定为 lines=10, sloc=4, comment=2, blank=4。
var sampleContent = strings.Join([]string{
	"// header",
	"package main",
	"",
	"func a() {}",
	"   ",
	"/* block */",
	"x := 1",
	"",
	"y := 2",
	"\t",
}, "\n") + "\n"

// writeFixtureFile 是测试辅助函数，用于在临时目录快速落地测试文件。
func writeFixtureFile(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// assertAggregate 校验总计恰好等于文件明细之和，且每个文件满足分区约束。
func assertAggregate(t *testing.T, result model.Result) {
	t.Helper()

	sum := model.LineStats{Path: result.Root}
	for _, item := range result.Files {
		assert.True(t, item.Balanced(), "unbalanced stats for %s: %+v", item.Path, item)
		sum = sum.Add(item)
	}
	assert.Equal(t, sum, result.Total)
}

func TestCountFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.go")
	writeFixtureFile(t, path, sampleContent)

	stats, err := NewService().CountFile(path)
	require.NoError(t, err)

	assert.Equal(t, model.LineStats{
		Path:         path,
		Lines:        10,
		SourceLines:  4,
		CommentLines: 2,
		BlankLines:   4,
	}, stats)
}

func TestCountFileUnterminatedLastLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tail.txt")
	writeFixtureFile(t, path, "a\nb\n\nc")

	stats, err := NewService().CountFile(path)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.Lines)
	assert.Equal(t, int64(3), stats.SourceLines)
	assert.Equal(t, int64(1), stats.BlankLines)
}

func TestCountFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	writeFixtureFile(t, path, "")

	stats, err := NewService().CountFile(path)
	require.NoError(t, err)
	assert.Equal(t, model.LineStats{Path: path}, stats)
}

func TestCountFileCRLFAndBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "windows.c")
	writeFixtureFile(t, path, "\ufeff// doc\r\nint x;\r\n\r\n")

	stats, err := NewService().CountFile(path)
	require.NoError(t, err)

	assert.Equal(t, model.LineStats{Path: path, Lines: 3, SourceLines: 1, CommentLines: 1, BlankLines: 1}, stats)
}

func TestCountFileBlockCommentSpan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "block.c")
	writeFixtureFile(t, path, strings.Join([]string{
		"/* start",
		" * body",
		"end */ real_code();",
		`printf("/* not a comment */");`,
	}, "\n"))

	stats, err := NewService().CountFile(path)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.CommentLines)
	assert.Equal(t, int64(1), stats.SourceLines)
}

func TestCountFileDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary.bin")
	writeFixtureFile(t, path, "ok\n\xff\xfe\x00\x01\n")

	_, err := NewService().CountFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, "decode", Reason(err))
}

func TestCountFileMissing(t *testing.T) {
	_, err := NewService().CountFile(filepath.Join(t.TempDir(), "missing.txt"))

	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestCountFilePermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}

	path := filepath.Join(t.TempDir(), "secret.txt")
	writeFixtureFile(t, path, "x\n")
	require.NoError(t, os.Chmod(path, 0o000))

	_, err := NewService().CountFile(path)
	assert.ErrorIs(t, err, ErrPermission)
	assert.Equal(t, "permission", Reason(err))
}

func TestCountDirectoryVersusRecursive(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "a.go"), sampleContent)
	writeFixtureFile(t, filepath.Join(root, "b.go"), sampleContent)
	writeFixtureFile(t, filepath.Join(root, "nested", "c.go"), sampleContent)

	service := NewService()

	flat, err := service.CountDirectory(context.Background(), root, Filter{})
	require.NoError(t, err)
	require.Len(t, flat.Files, 2)
	assert.Equal(t, model.LineStats{Path: root, Lines: 20, SourceLines: 8, CommentLines: 4, BlankLines: 8}, flat.Total)
	assert.Equal(t, model.TargetDirectory, flat.Target)
	assert.False(t, flat.Recursive)
	assertAggregate(t, flat)

	deep, err := service.CountDirectoryRecursive(context.Background(), root, Filter{})
	require.NoError(t, err)
	require.Len(t, deep.Files, 3)
	assert.Equal(t, model.LineStats{Path: root, Lines: 30, SourceLines: 12, CommentLines: 6, BlankLines: 12}, deep.Total)
	assert.True(t, deep.Recursive)
	assertAggregate(t, deep)

	// 遍历顺序为字典序。
	assert.Equal(t, []string{
		filepath.Join(root, "a.go"),
		filepath.Join(root, "b.go"),
		filepath.Join(root, "nested", "c.go"),
	}, []string{deep.Files[0].Path, deep.Files[1].Path, deep.Files[2].Path})
}

func TestCountDirectoryFilters(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.txt", "b.cpp", "c.txt"} {
		writeFixtureFile(t, filepath.Join(root, name), sampleContent)
	}

	service := NewService()

	excluded, err := service.CountDirectory(context.Background(), root, Filter{ExcludeFiles: []string{".txt"}})
	require.NoError(t, err)
	require.Len(t, excluded.Files, 1)
	assert.Equal(t, filepath.Join(root, "b.cpp"), excluded.Files[0].Path)

	included, err := service.CountDirectory(context.Background(), root, Filter{IncludeFiles: []string{".cpp"}})
	require.NoError(t, err)
	require.Len(t, included.Files, 1)
	assert.Equal(t, filepath.Join(root, "b.cpp"), included.Files[0].Path)

	// 排除优先于包含。
	both, err := service.CountDirectory(context.Background(), root, Filter{
		IncludeFiles: []string{".cpp", "a."},
		ExcludeFiles: []string{"a.txt"},
	})
	require.NoError(t, err)
	require.Len(t, both.Files, 1)
	assert.Empty(t, both.Skipped)
}

func TestCountDirectoryIgnoresEmptyPatterns(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "a.txt"), sampleContent)

	result, err := NewService().CountDirectory(context.Background(), root, Filter{ExcludeFiles: []string{"", " "}})
	require.NoError(t, err)
	assert.Len(t, result.Files, 1)
}

func TestCountDirectoryDecodeIsolation(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "a.go"), sampleContent)
	writeFixtureFile(t, filepath.Join(root, "b.bin"), "\xff\xfe\xfd")
	writeFixtureFile(t, filepath.Join(root, "c.go"), sampleContent)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	result, err := NewService(WithLogger(logger)).CountDirectory(context.Background(), root, Filter{})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, model.LineStats{Path: root, Lines: 20, SourceLines: 8, CommentLines: 4, BlankLines: 8}, result.Total)
	assertAggregate(t, result)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, model.SkippedFile{Path: filepath.Join(root, "b.bin"), Reason: "decode"}, result.Skipped[0])
	assert.Contains(t, logs.String(), "skipping file")
}

func TestCountDirectorySkipsSubdirectoriesAndSymlinks(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "a.go"), sampleContent)
	writeFixtureFile(t, filepath.Join(root, "sub", "b.go"), sampleContent)
	require.NoError(t, os.Symlink(filepath.Join(root, "sub"), filepath.Join(root, "link-dir")))
	require.NoError(t, os.Symlink(filepath.Join(root, "a.go"), filepath.Join(root, "link-file.go")))
	require.NoError(t, os.Symlink(filepath.Join(root, "gone.go"), filepath.Join(root, "broken.go")))

	result, err := NewService().CountDirectory(context.Background(), root, Filter{})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(root, "a.go"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(root, "link-file.go"), result.Files[1].Path)
}

func TestCountDirectoryRecursiveExcludeDirs(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "main.go"), sampleContent)
	writeFixtureFile(t, filepath.Join(root, ".git", "config"), sampleContent)
	writeFixtureFile(t, filepath.Join(root, "pkg", "images", "x.svg"), sampleContent)
	writeFixtureFile(t, filepath.Join(root, "pkg", "lib.go"), sampleContent)

	result, err := NewService().CountDirectoryRecursive(context.Background(), root, Filter{
		ExcludeDirs: []string{".git", "images"},
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(root, "main.go"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(root, "pkg", "lib.go"), result.Files[1].Path)
	assertAggregate(t, result)
}

func TestCountDirectoryRecursiveExcludeDirsUsesRelativePath(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "build-output")
	writeFixtureFile(t, filepath.Join(root, "a.go"), sampleContent)

	// 根目录自身的名字不参与目录排除匹配。
	result, err := NewService().CountDirectoryRecursive(context.Background(), root, Filter{
		ExcludeDirs: []string{"build"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Files, 1)
}

func TestCountDirectorySkipVendored(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "main.go"), sampleContent)
	writeFixtureFile(t, filepath.Join(root, "vendor", "dep", "dep.go"), sampleContent)
	writeFixtureFile(t, filepath.Join(root, "node_modules", "x", "index.js"), sampleContent)

	service := NewService()

	all, err := service.CountDirectoryRecursive(context.Background(), root, Filter{})
	require.NoError(t, err)
	assert.Len(t, all.Files, 3)

	own, err := service.CountDirectoryRecursive(context.Background(), root, Filter{SkipVendored: true})
	require.NoError(t, err)
	require.Len(t, own.Files, 1)
	assert.Equal(t, filepath.Join(root, "main.go"), own.Files[0].Path)
}

func TestCountDirectoryMaxFileSize(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "small.go"), "x := 1\n")
	writeFixtureFile(t, filepath.Join(root, "large.go"), strings.Repeat("x := 1\n", 100))

	result, err := NewService().CountDirectory(context.Background(), root, Filter{MaxFileSize: 64})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, filepath.Join(root, "small.go"), result.Files[0].Path)
}

func TestCountDirectoryCancelled(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "a.go"), sampleContent)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService().CountDirectory(ctx, root, Filter{})
	require.ErrorIs(t, err, context.Canceled)

	_, err = NewService().CountDirectoryRecursive(ctx, root, Filter{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCountDirectoryOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.go")
	writeFixtureFile(t, path, sampleContent)

	_, err := NewService().CountDirectory(context.Background(), path, Filter{})
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestCountPathSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.go")
	writeFixtureFile(t, path, sampleContent)

	result, err := NewService().CountPath(context.Background(), path, true, Filter{ExcludeFiles: []string{".go"}})
	require.NoError(t, err)

	// 单文件模式不应用过滤规则。
	assert.Equal(t, model.TargetFile, result.Target)
	require.Len(t, result.Files, 1)
	assert.Equal(t, result.Files[0], result.Total)
}

func TestCountPathSingleFileDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	writeFixtureFile(t, path, "\xc3\x28")

	_, err := NewService().CountPath(context.Background(), path, false, Filter{})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestCountPathMissing(t *testing.T) {
	_, err := NewService().CountPath(context.Background(), filepath.Join(t.TempDir(), "nope"), false, Filter{})

	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestCountPathDirectoryDispatch(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "a.go"), sampleContent)
	writeFixtureFile(t, filepath.Join(root, "nested", "b.go"), sampleContent)

	service := NewService()

	flat, err := service.CountPath(context.Background(), root, false, Filter{})
	require.NoError(t, err)
	assert.Len(t, flat.Files, 1)

	deep, err := service.CountPath(context.Background(), root, true, Filter{})
	require.NoError(t, err)
	assert.Len(t, deep.Files, 2)
}
