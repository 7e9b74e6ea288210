package repository

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
)

// SessionKey is the single key the logged-in user is stored under.
const SessionKey = "usuario"

// userRecord keeps the field names the web storefront used for its local snapshot.
type userRecord struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Document string `json:"documento"`
}

func marshalUser(user domain.User) (string, error) {
	data, err := json.Marshal(userRecord{
		Name:     user.Name,
		Email:    user.Email,
		Document: user.DocumentID,
	})
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}
	return string(data), nil
}

func unmarshalUser(value string) (*domain.User, error) {
	var rec userRecord
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return &domain.User{
		Name:       rec.Name,
		Email:      rec.Email,
		DocumentID: rec.Document,
	}, nil
}
