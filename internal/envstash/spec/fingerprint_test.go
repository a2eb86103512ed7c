package spec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDeterminism(t *testing.T) {
	content := []byte("name: env-a\ndependencies:\n  - python=3.11\n  - tensorflow=2.15\n")

	first := Compute(content)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Compute(content))
	}

	// A fresh copy of the same bytes hashes identically
	clone := append([]byte(nil), content...)
	assert.Equal(t, first, Compute(clone))
}

func TestComputeSensitivity(t *testing.T) {
	base := []byte("name: env-a\nchannels:\n  - conda-forge\ndependencies:\n  - python=3.11\n  - numpy=1.26\n")
	baseFp := Compute(base)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		mutated := append([]byte(nil), base...)
		pos := rng.Intn(len(mutated))
		old := mutated[pos]
		for mutated[pos] == old {
			mutated[pos] = byte(rng.Intn(256))
		}
		assert.NotEqual(t, baseFp, Compute(mutated),
			"single-byte mutation at offset %d did not change fingerprint", pos)
	}
}

func TestComputeSensitivityVersionBump(t *testing.T) {
	v1 := []byte("name: env-a\ndependencies:\n  - tensorflow=2.15\n")
	v2 := []byte("name: env-a\ndependencies:\n  - tensorflow=2.16\n")
	assert.NotEqual(t, Compute(v1), Compute(v2))
}

func TestFingerprintFormat(t *testing.T) {
	fp := Compute([]byte("anything"))

	require.NoError(t, fp.Validate())
	assert.Len(t, string(fp), 64)
	assert.Equal(t, string(fp[:12]), fp.Short())
}

func TestParse(t *testing.T) {
	valid := string(Compute([]byte("x")))

	fp, err := Parse(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, fp.String())

	_, err = Parse("deadbeef")
	assert.Error(t, err, "short value must be rejected")

	_, err = Parse(valid[:62] + "zz")
	assert.Error(t, err, "non-hex value must be rejected")
}

func TestShortOnShortValue(t *testing.T) {
	assert.Equal(t, "abc", Fingerprint("abc").Short())
}
