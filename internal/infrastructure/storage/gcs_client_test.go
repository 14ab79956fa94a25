package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNameFromPublicURL(t *testing.T) {
	url := PublicURL("deye.appspot.com", "products/u1/1700000000000_a.png")
	name, err := ObjectNameFromURL("deye.appspot.com", url)
	require.NoError(t, err)
	assert.Equal(t, "products/u1/1700000000000_a.png", name)
}

func TestObjectNameFromFirebaseURL(t *testing.T) {
	url := "https://firebasestorage.googleapis.com/v0/b/deye.appspot.com/o/logos%2Fu1%2Flogo.png?alt=media&token=abc"
	name, err := ObjectNameFromURL("deye.appspot.com", url)
	require.NoError(t, err)
	assert.Equal(t, "logos/u1/logo.png", name)
}

func TestObjectNameFromURLRejectsForeignBucket(t *testing.T) {
	_, err := ObjectNameFromURL("deye.appspot.com", "https://storage.googleapis.com/other/x.png")
	assert.Error(t, err)

	_, err = ObjectNameFromURL("deye.appspot.com", "https://example.com/x.png")
	assert.Error(t, err)
}
