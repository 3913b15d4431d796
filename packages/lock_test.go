package packages

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLockFile(t *testing.T) {
	t.Parallel()

	root := manifestFixture("Root", "", "DepB", "DepA")
	resolver := mapResolver{
		"DepA": manifestFixture("DepA", "0x01", "DepC"),
		"DepB": manifestFixture("DepB", ""),
		"DepC": manifestFixture("DepC", "0x03"),
	}

	lock, err := BuildLockFile(root, resolver)
	require.NoError(t, err)

	assert.Equal(t, 0, lock.Version)

	// Root dependencies keep their sorted manifest order.
	require.Len(t, lock.Dependencies, 2)
	assert.Equal(t, "DepA", lock.Dependencies[0].Name)
	assert.Equal(t, "DepB", lock.Dependencies[1].Name)

	// Transitive packages are pinned, sorted by name.
	require.Len(t, lock.Packages, 3)
	assert.Equal(t, "DepA", lock.Packages[0].Name)
	assert.Equal(t, "DepB", lock.Packages[1].Name)
	assert.Equal(t, "DepC", lock.Packages[2].Name)

	require.Len(t, lock.Packages[0].Dependencies, 1)
	assert.Equal(t, "DepC", lock.Packages[0].Dependencies[0].Name)
}

func TestLockFileEncode_Layout(t *testing.T) {
	t.Parallel()

	root := manifestFixture("Root", "", "DepA")
	resolver := mapResolver{"DepA": manifestFixture("DepA", "0x01")}

	lock, err := BuildLockFile(root, resolver)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, lock.Encode(&buf))

	expected := "# @generated by objectledger, please check-in and do not edit manually.\n" +
		"\n" +
		"[move]\n" +
		"version = 0\n" +
		"\n" +
		"dependencies = [\n" +
		"  { name = \"DepA\" },\n" +
		"]\n" +
		"\n" +
		"[[move.package]]\n" +
		"name = \"DepA\"\n" +
		"source = { local = \"../DepA\" }\n"

	assert.Equal(t, expected, buf.String())
}

func TestLockFileEncode_Deterministic(t *testing.T) {
	t.Parallel()

	resolver := mapResolver{
		"DepA": manifestFixture("DepA", "0x01", "DepC"),
		"DepB": manifestFixture("DepB", ""),
		"DepC": manifestFixture("DepC", "0x03"),
	}

	encode := func() []byte {
		root := manifestFixture("Root", "", "DepB", "DepA")

		lock, err := BuildLockFile(root, resolver)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, lock.Encode(&buf))

		return buf.Bytes()
	}

	assert.Equal(t, encode(), encode())
}
