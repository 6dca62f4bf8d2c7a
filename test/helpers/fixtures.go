package helpers

import (
	"github.com/dkurganov/gift-marketplace/internal/certificates"
	"github.com/dkurganov/gift-marketplace/internal/tags"
	"github.com/dkurganov/gift-marketplace/internal/users"
)

// CreateTestTag creates a test tag with default values
func CreateTestTag(id int64, name string) tags.Tag {
	return tags.Tag{
		ID:   id,
		Name: name,
	}
}

// CreateTestUser creates a test user with default values
func CreateTestUser() *users.User {
	return &users.User{
		Name: "alice",
	}
}

// CreateTestCertificateRequest creates a valid certificate create payload
func CreateTestCertificateRequest() *certificates.CreateRequest {
	price := 199.99
	return &certificates.CreateRequest{
		Name:        "Skydiving",
		Description: "Tandem jump from 4000m",
		Duration:    30,
		Price:       &price,
		Tags: []tags.TagRequest{
			{Name: "extreme"},
			{Name: "outdoor"},
		},
	}
}
