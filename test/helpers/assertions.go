package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkurganov/gift-marketplace/internal/certificates"
	"github.com/dkurganov/gift-marketplace/internal/tags"
)

// AssertCertificateEqual asserts that two certificates match, comparing
// timestamps by instant rather than location
func AssertCertificateEqual(t *testing.T, expected, actual *certificates.GiftCertificate) {
	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.Name, actual.Name)
	assert.Equal(t, expected.Description, actual.Description)
	assert.Equal(t, expected.Duration, actual.Duration)
	assert.Equal(t, expected.Price, actual.Price)
	assert.True(t, expected.CreateDate.Equal(actual.CreateDate))
	assert.True(t, expected.LastUpdateDate.Equal(actual.LastUpdateDate))
	AssertTagsEqual(t, expected.Tags, actual.Tags)
}

// AssertTagsEqual asserts that two tag lists match in order and content
func AssertTagsEqual(t *testing.T, expected, actual []tags.Tag) {
	assert.Equal(t, len(expected), len(actual))
	for i := range expected {
		if i >= len(actual) {
			return
		}
		assert.Equal(t, expected[i].ID, actual[i].ID)
		assert.Equal(t, expected[i].Name, actual[i].Name)
	}
}
