package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fimgo"
	"github.com/hupe1980/fimgo/blobstore"
	minioblob "github.com/hupe1980/fimgo/blobstore/minio"
)

func TestLocate(t *testing.T) {
	ctx := context.Background()

	loc, err := locate(ctx, filepath.Join("data", "retail.dat"))
	require.NoError(t, err)
	assert.IsType(t, &blobstore.LocalStore{}, loc.store)
	assert.Equal(t, "retail.dat", loc.name)

	loc, err = locate(ctx, "file:///tmp/in.dat.zst")
	require.NoError(t, err)
	assert.Equal(t, "in.dat.zst", loc.name)

	loc, err = locate(ctx, "minio://localhost:9000/bucket/runs/out.lz4")
	require.NoError(t, err)
	assert.IsType(t, &minioblob.Store{}, loc.store)
	assert.Equal(t, "runs/out.lz4", loc.name)

	for _, bad := range []string{"minio://localhost:9000/bucket", "s3://bucket", "ftp://host/x"} {
		_, err := locate(ctx, bad)
		assert.Error(t, err, bad)
	}
}

func TestParseMinSupport(t *testing.T) {
	v, err := parseMinSupport("12")
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	_, err = parseMinSupport("2.5")
	assert.Error(t, err)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	mineOpts = mineFlags{breadth: -1}
	mineCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeInput(t *testing.T) string {
	t.Helper()

	in := filepath.Join(t.TempDir(), "in.dat")
	require.NoError(t, os.WriteFile(in, []byte("1 2 3\n1 2\n1 3\n2 3\n"), 0o600))
	return in
}

func TestMine_ToFile(t *testing.T) {
	in := writeInput(t)
	out := filepath.Join(t.TempDir(), "out.txt")

	_, stderr, err := execute(t, "mine", "--workers", "2", "--sort-items", in, "2", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "7 patterns from 4 transactions")

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.ElementsMatch(t, []string{"4\t", "3\t1", "3\t2", "3\t3", "2\t1 2", "2\t1 3", "2\t2 3"}, lines)
}

func TestMine_BoltRoundTrip(t *testing.T) {
	in := writeInput(t)
	db := filepath.Join(t.TempDir(), "patterns.db")

	_, _, err := execute(t, "mine", "-k", "1", "-t", "1", "--bolt-run", "top1", in, "2", db)
	require.NoError(t, err)

	stdout, _, err := execute(t, "show", db, "top1")
	require.NoError(t, err)
	assert.Equal(t, "3\t1\n3\t2\n3\t3\n", stdout)
}

func TestMine_MissingInputLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt.zst")

	_, _, err := execute(t, "mine", filepath.Join(dir, "missing.dat"), "2", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMine_InvalidArguments(t *testing.T) {
	in := writeInput(t)

	_, _, err := execute(t, "mine", in, "0")
	assert.Error(t, err)

	_, _, err = execute(t, "mine", "--bolt-run", "x", in, "2")
	assert.Error(t, err)

	_, _, err = execute(t, "mine", "--workers=-2", in, "2")
	assert.ErrorIs(t, err, fimgo.ErrInvalidWorkers)

	_, _, err = execute(t, "mine", "--top-k=-1", in, "2")
	assert.ErrorIs(t, err, fimgo.ErrInvalidK)
}
