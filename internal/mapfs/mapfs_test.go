/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mapfs

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	mfs := New()

	w, err := mfs.Create("/out/report.csv")
	require.NoError(t, err)
	assert.True(t, mfs.Exists("/out/report.csv"), "file exists before close")

	_, err = w.Write([]byte("a,b\r\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := mfs.ReadFile("out/report.csv")
	require.NoError(t, err)
	assert.Equal(t, "a,b\r\n", string(data))

	_, err = w.Write([]byte("late"))
	assert.ErrorIs(t, err, fs.ErrClosed)
	assert.ErrorIs(t, w.Close(), fs.ErrClosed)
}

func TestRename(t *testing.T) {
	mfs := New()
	mfs.AddFile("/a.tmp", "new", 0644)
	mfs.AddFile("/a", "old", 0644)

	require.NoError(t, mfs.Rename("/a.tmp", "/a"))
	assert.False(t, mfs.Exists("/a.tmp"))

	data, err := mfs.ReadFile("/a")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	err = mfs.Rename("/missing", "/b")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFailWrites(t *testing.T) {
	mfs := New()
	boom := errors.New("boom")
	mfs.FailWrites("/x", boom)

	assert.ErrorIs(t, mfs.WriteFile("x", []byte("1"), 0644), boom)
	_, err := mfs.Create("/x")
	assert.ErrorIs(t, err, boom)
	assert.False(t, mfs.Exists("/x"))
}

func TestStatDir(t *testing.T) {
	mfs := New()
	mfs.AddDir("/project/searches", 0755)
	require.NoError(t, mfs.MkdirAll("/out", 0755))

	for _, dir := range []string{"/project/searches", "/out"} {
		info, err := mfs.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
}
