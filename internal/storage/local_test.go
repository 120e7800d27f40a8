package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	st, err := NewLocal(dir)
	require.NoError(t, err)
	ctx := context.Background()

	info, err := st.Put(ctx, "resume.pdf", strings.NewReader("first"), PutObjectOptions{Size: 5, ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resume.pdf"), info.Key)
	assert.Equal(t, int64(5), info.Size)

	// Same name overwrites.
	_, err = st.Put(ctx, "resume.pdf", strings.NewReader("second"), PutObjectOptions{Size: 6})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "resume.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestLocalStorage_StaysInDir(t *testing.T) {
	dir := t.TempDir()
	st, err := NewLocal(dir)
	require.NoError(t, err)

	info, err := st.Put(context.Background(), "../../etc/cv.docx", strings.NewReader("x"), PutObjectOptions{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "cv.docx"), info.Key)
	loc, err := st.Locate(context.Background(), "../../etc/cv.docx")
	require.NoError(t, err)
	assert.Equal(t, info.Key, loc)
}

func TestNewLocal_RequiresDir(t *testing.T) {
	_, err := NewLocal("")
	assert.Error(t, err)
}
