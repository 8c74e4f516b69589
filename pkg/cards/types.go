package cards

import (
	"encoding/json"
	"strings"
)

// CardType is the closed set of primary card types. Raw values coming out
// of the database or a request are mapped through ParseCardType, which
// never fails: anything unrecognized becomes TypeUnknown.
type CardType string

const (
	TypeArtifact     CardType = "Artifact"
	TypeBattle       CardType = "Battle"
	TypeConspiracy   CardType = "Conspiracy"
	TypeCreature     CardType = "Creature"
	TypeDungeon      CardType = "Dungeon"
	TypeEnchantment  CardType = "Enchantment"
	TypeInstant      CardType = "Instant"
	TypeKindred      CardType = "Kindred"
	TypeLand         CardType = "Land"
	TypePhenomenon   CardType = "Phenomenon"
	TypePlane        CardType = "Plane"
	TypePlaneswalker CardType = "Planeswalker"
	TypeScheme       CardType = "Scheme"
	TypeSorcery      CardType = "Sorcery"
	TypeVanguard     CardType = "Vanguard"
	TypeUnknown      CardType = "Unknown"
)

// CardTypes lists every valid CardType in canonical order.
var CardTypes = []CardType{
	TypeArtifact,
	TypeBattle,
	TypeConspiracy,
	TypeCreature,
	TypeDungeon,
	TypeEnchantment,
	TypeInstant,
	TypeKindred,
	TypeLand,
	TypePhenomenon,
	TypePlane,
	TypePlaneswalker,
	TypeScheme,
	TypeSorcery,
	TypeVanguard,
	TypeUnknown,
}

var cardTypesByName = func() map[string]CardType {
	m := make(map[string]CardType, len(CardTypes))
	for _, t := range CardTypes {
		m[strings.ToLower(string(t))] = t
	}
	return m
}()

// ParseCardType maps a raw string to a CardType, case-insensitively.
// Unrecognized or empty input yields TypeUnknown.
func ParseCardType(s string) CardType {
	if t, ok := cardTypesByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t
	}
	return TypeUnknown
}

func (t CardType) String() string {
	return string(t)
}

// SearchField identifies a column that a free-text query can match against.
type SearchField string

const (
	FieldName SearchField = "name"
	FieldType SearchField = "type"
)

// ParseSearchField maps a raw field token to a SearchField,
// case-insensitively. Unrecognized tokens fall back to FieldName so a
// query always matches against something.
func ParseSearchField(s string) SearchField {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(FieldType):
		return FieldType
	default:
		return FieldName
	}
}

// Column returns the card table column the field matches against.
func (f SearchField) Column() string {
	switch f {
	case FieldType:
		return "main_type"
	default:
		return "name"
	}
}

// SearchFilters narrows a card search. The zero value applies no
// restriction: no type filter and, when a query is present, matching
// against the name field only.
type SearchFilters struct {
	// MainType restricts results to a single card type.
	MainType *CardType `json:"card_type,omitempty"`

	// Fields are the columns a free-text query is matched against.
	// Empty means name only.
	Fields []SearchField `json:"fields,omitempty"`
}

// DefaultSearchFilters returns an unrestricted filter set.
func DefaultSearchFilters() SearchFilters {
	return SearchFilters{}
}

// Card is a single catalog entry. Only ID, Name and MainType are
// guaranteed present; every other attribute is optional and nil when the
// stored column is null.
type Card struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	MainType CardType `json:"main_type"`

	TypeLine      *string         `json:"type_line,omitempty"`
	OracleText    *string         `json:"oracle_text,omitempty"`
	Keywords      []string        `json:"keywords,omitempty"`
	CMC           *float64        `json:"cmc,omitempty"`
	ManaCost      *string         `json:"mana_cost,omitempty"`
	Colors        []string        `json:"colors,omitempty"`
	ColorIdentity []string        `json:"color_identity,omitempty"`
	Power         *string         `json:"power,omitempty"`
	Toughness     *string         `json:"toughness,omitempty"`
	Games         []string        `json:"games,omitempty"`
	Legalities    json.RawMessage `json:"legalities,omitempty"`
	Reserved      *bool           `json:"reserved,omitempty"`
	GameChanger   *bool           `json:"game_changer,omitempty"`

	// Embedding is the precomputed similarity vector. Nil means the card
	// has not been embedded, which is distinct from an all-zero vector.
	Embedding []float32 `json:"embedding,omitempty"`
}

// HasEmbedding reports whether the card carries a similarity vector.
func (c *Card) HasEmbedding() bool {
	return len(c.Embedding) > 0
}
