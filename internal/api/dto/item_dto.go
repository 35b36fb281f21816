package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// CreateItemRequest payload for new items. There is no owner field;
// ownership comes from the authenticated principal.
type CreateItemRequest struct {
	Name   string  `json:"name"`
	Model  *string `json:"model"`
	Serial *string `json:"serial"`
}

func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Model, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Serial, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

// UpdateItemRequest payload for item updates.
type UpdateItemRequest struct {
	Name   *string `json:"name"`
	Model  *string `json:"model"`
	Serial *string `json:"serial"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Model, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Serial, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

// ItemResponse serialized item record.
type ItemResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Model     *string   `json:"model,omitempty"`
	Serial    *string   `json:"serial,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
