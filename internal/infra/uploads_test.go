package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"landadmin.com/internal/config"
)

func TestResolveURL(t *testing.T) {
	store, err := NewImageStore(config.UploadsConfig{Dir: t.TempDir(), MaxSize: 1024}, "http://localhost:2000")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:2000/Uploads/a.jpg", store.ResolveURL("/Uploads/a.jpg"))
	assert.Equal(t, "", store.ResolveURL(""))
	// 已经是绝对 URL 的保持原样
	assert.Equal(t, "https://cdn.example.com/a.jpg", store.ResolveURL("https://cdn.example.com/a.jpg"))
}

func TestRemoveMissingFile(t *testing.T) {
	store, err := NewImageStore(config.UploadsConfig{Dir: t.TempDir(), MaxSize: 1024}, "http://localhost:2000")
	require.NoError(t, err)

	// 删除不存在的文件不报错
	assert.NoError(t, store.Remove("/Uploads/never-saved.jpg"))
}
