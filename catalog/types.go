package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Item anchors one translatable slot instance: the pair of an owner row and a
// declared Field. It carries no payload of its own; owner rows hold a stable
// foreign key to it and Translation rows hang off it per language.
type Item struct {
	bun.BaseModel `bun:"table:dbtr_items,alias:itm"`

	ID        uuid.UUID `bun:",pk,type:uuid"                            json:"id"`
	FieldID   uuid.UUID `bun:"field_id,notnull,type:uuid,unique:uq_field_owner" json:"field_id"`
	OwnerID   uuid.UUID `bun:"owner_id,notnull,type:uuid,unique:uq_field_owner" json:"owner_id"`
	Model     string    `bun:"model,notnull"                            json:"model"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Translation stores the localized text for one Item in one Language. Rows are
// created blank by the lifecycle controller and only ever mutated by editors.
type Translation struct {
	bun.BaseModel `bun:"table:dbtr_translations,alias:trn"`

	ID         uuid.UUID `bun:",pk,type:uuid"                                json:"id"`
	ItemID     uuid.UUID `bun:"item_id,notnull,type:uuid,unique:uq_item_language" json:"item_id"`
	LanguageID uuid.UUID `bun:"language_id,notnull,type:uuid,unique:uq_item_language" json:"language_id"`
	Text       string    `bun:"text,notnull,default:''"                      json:"text"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Item *Item `bun:"rel:belongs-to,join:item_id=id" json:"item,omitempty"`
}
