package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/manaql/manaql-mcp/pkg/cards"
)

// ToolHandler handles MCP tool calls against the card catalog.
type ToolHandler struct {
	svc cards.CardAPI
}

// NewToolHandler creates a new tool handler.
func NewToolHandler(svc cards.CardAPI) *ToolHandler {
	return &ToolHandler{svc: svc}
}

// Handle dispatches a tool call and returns the human-readable result
// text.
func (h *ToolHandler) Handle(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	switch name {
	case "search_cards":
		return h.handleSearchCards(ctx, args)
	case "get_card_by_id":
		return h.handleGetCardByID(ctx, args)
	case "get_card_count":
		return h.handleGetCardCount(ctx)
	case "find_similar_cards":
		return h.handleFindSimilarCards(ctx, args)
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

func (h *ToolHandler) handleSearchCards(ctx context.Context, args map[string]interface{}) (string, error) {
	filters := cards.SearchFilters{}
	if f, ok := args["filters"].(map[string]interface{}); ok {
		if ct, ok := f["card_type"].(string); ok && ct != "" {
			t := cards.ParseCardType(ct)
			filters.MainType = &t
		}
		if fs, ok := f["fields"].([]interface{}); ok {
			for _, v := range fs {
				if str, ok := v.(string); ok {
					filters.Fields = append(filters.Fields, cards.ParseSearchField(str))
				}
			}
		}
	}

	query, _ := args["query"].(string)
	limit := intArg(args, "limit", cards.DefaultSearchLimit)
	offset := intArg(args, "offset", 0)

	results, err := h.svc.SearchCards(ctx, filters, query, limit, offset)
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		if query != "" {
			return fmt.Sprintf("No cards found matching the specified filters and query (offset: %d)", offset), nil
		}
		return fmt.Sprintf("No cards found matching the specified filters (offset: %d)", offset), nil
	}

	names := make([]string, len(results))
	for i, c := range results {
		names[i] = c.Name
	}
	filterDesc := "with filters"
	if query != "" {
		filterDesc = "with filters and query"
	}
	return fmt.Sprintf("Found %d cards %s (offset: %d, limit: %d): %s",
		len(results), filterDesc, offset, limit, strings.Join(names, ", ")), nil
}

func (h *ToolHandler) handleGetCardByID(ctx context.Context, args map[string]interface{}) (string, error) {
	id, ok := int64Arg(args, "id")
	if !ok {
		return "", fmt.Errorf("id is required")
	}

	card, err := h.svc.GetCardByID(ctx, id)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Card: %s (ID: %d, Type: %s)", card.Name, card.ID, card.MainType), nil
}

func (h *ToolHandler) handleGetCardCount(ctx context.Context) (string, error) {
	count, err := h.svc.GetCardCount(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Total cards in database: %d", count), nil
}

func (h *ToolHandler) handleFindSimilarCards(ctx context.Context, args map[string]interface{}) (string, error) {
	cardName, _ := args["card_name"].(string)
	if cardName == "" {
		return "", fmt.Errorf("card_name is required")
	}
	limit := intArg(args, "limit", cards.DefaultSimilarLimit)

	results, err := h.svc.FindSimilarCards(ctx, cardName, limit)
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return fmt.Sprintf("No similar cards found for '%s'", cardName), nil
	}

	details := make([]string, len(results))
	for i, c := range results {
		details[i] = "- " + formatCardDetails(c)
	}
	return fmt.Sprintf("Found %d similar cards to '%s':\n%s",
		len(results), cardName, strings.Join(details, "\n")), nil
}

// formatCardDetails renders one similarity result as a pipe-separated
// detail line, skipping attributes the card does not have.
func formatCardDetails(c *cards.Card) string {
	parts := []string{fmt.Sprintf("%s (%s)", c.Name, c.MainType)}

	if c.CMC != nil {
		parts = append(parts, "CMC: "+strconv.FormatFloat(*c.CMC, 'f', -1, 64))
	}
	if c.ManaCost != nil {
		parts = append(parts, "Cost: "+*c.ManaCost)
	}
	if len(c.Colors) > 0 {
		parts = append(parts, "Colors: "+strings.Join(c.Colors, ", "))
	}
	if len(c.Keywords) > 0 {
		parts = append(parts, "Keywords: "+strings.Join(c.Keywords, ", "))
	}
	if c.Power != nil && c.Toughness != nil {
		parts = append(parts, *c.Power+"/"+*c.Toughness)
	}
	if c.OracleText != nil && *c.OracleText != "" {
		parts = append(parts, "Text: "+*c.OracleText)
	}

	return strings.Join(parts, " | ")
}

// intArg reads an integer tool argument, which JSON decoding delivers as
// float64.
func intArg(args map[string]interface{}, key string, def int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return def
}

func int64Arg(args map[string]interface{}, key string) (int64, bool) {
	if v, ok := args[key].(float64); ok {
		return int64(v), true
	}
	return 0, false
}

func getToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "search_cards",
			Description: "Search for cards using filters (name, type) and optional query for " +
				"additional filtering across multiple fields with pagination support",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filters": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"card_type": map[string]interface{}{
								"type": "string",
								"description": "Card type to filter by - options are: Artifact, Battle, " +
									"Conspiracy, Creature, Dungeon, Enchantment, Instant, Kindred, Land, " +
									"Phenomenon, Plane, Planeswalker, Scheme, Sorcery, Vanguard, Unknown",
							},
							"fields": map[string]interface{}{
								"type":        "array",
								"items":       map[string]interface{}{"type": "string"},
								"description": "Fields to search across when a query is provided - options are: name, type",
							},
						},
					},
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Text query for searching across specified fields (optional)",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of results to return (default 10)",
					},
					"offset": map[string]interface{}{
						"type":        "integer",
						"description": "Number of results to skip for pagination (default 0)",
					},
				},
				"required": []string{"filters"},
			},
		},
		{
			Name:        "get_card_by_id",
			Description: "Get a card by its ID",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "integer",
						"description": "Card ID to retrieve",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "get_card_count",
			Description: "Get total number of cards in database",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name: "find_similar_cards",
			Description: "Find similar cards using vector similarity search based on card " +
				"characteristics like type, mana cost, function, etc.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"card_name": map[string]interface{}{
						"type":        "string",
						"description": "Name of the card to find similar cards for",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of similar cards to return (default 10)",
					},
				},
				"required": []string{"card_name"},
			},
		},
	}
}
