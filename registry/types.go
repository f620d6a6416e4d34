package registry

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Language is a registered target language for database content. Exactly one
// language may be flagged as the default at any time.
type Language struct {
	bun.BaseModel `bun:"table:dbtr_languages,alias:lang"`

	ID         uuid.UUID `bun:",pk,type:uuid"                   json:"id"`
	Code       string    `bun:"code,notnull,unique"             json:"code"`
	Display    string    `bun:"display_name,notnull"            json:"display_name"`
	NativeName *string   `bun:"native_name"                     json:"native_name,omitempty"`
	IsActive   bool      `bun:"is_active,notnull,default:true"  json:"is_active"`
	IsDefault  bool      `bun:"is_default,notnull,default:false" json:"is_default"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Field declares one translatable slot definition: a named field on an owner
// model whose content requires a text rendering per language.
type Field struct {
	bun.BaseModel `bun:"table:dbtr_fields,alias:fld"`

	ID        uuid.UUID `bun:",pk,type:uuid"                       json:"id"`
	Model     string    `bun:"model,notnull,unique:uq_model_field" json:"model"`
	Name      string    `bun:"field_name,notnull,unique:uq_model_field" json:"field_name"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}
