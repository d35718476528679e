package v1alpha1

import (
	"encoding/json"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/iniside/velesarc-craft/internal/engine/recipe"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/station"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/errors"
	"github.com/iniside/velesarc-craft/internal/orchestrators/craft"
)

// decode reads a request Struct into a request type through its JSON form
func decode(req *structpb.Struct, out any) error {
	if req == nil {
		return nil
	}
	data, err := protojson.Marshal(req)
	if err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}
	return nil
}

// encode turns a response value into a Struct through its JSON form
func encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}

type itemRequest struct {
	DefinitionID string   `json:"definitionId"`
	Amount       int      `json:"amount"`
	Tags         []string `json:"tags"`
}

func toItemInputs(in []itemRequest) []craft.ItemInput {
	if len(in) == 0 {
		return nil
	}
	out := make([]craft.ItemInput, len(in))
	for i, it := range in {
		out[i] = craft.ItemInput{
			DefinitionID: it.DefinitionID,
			Amount:       it.Amount,
			Tags:         tags.FromStrings(it.Tags...),
		}
	}
	return out
}

type createStationRequest struct {
	ID           string   `json:"id"`
	Tags         []string `json:"tags"`
	TimeMode     string   `json:"timeMode"`
	MaxQueueSize int      `json:"maxQueueSize"`
}

type stationRequest struct {
	StationID string `json:"stationId"`
}

type depositItemsRequest struct {
	StationID string        `json:"stationId"`
	Items     []itemRequest `json:"items"`
}

type withdrawOutputRequest struct {
	StationID string `json:"stationId"`
	Count     int    `json:"count"`
}

type queueRecipeRequest struct {
	StationID      string   `json:"stationId"`
	RecipeID       string   `json:"recipeId"`
	Amount         int      `json:"amount"`
	InstigatorTags []string `json:"instigatorTags"`
}

type cancelEntryRequest struct {
	StationID string `json:"stationId"`
	EntryID   string `json:"entryId"`
}

type tickRequest struct {
	StationID    string  `json:"stationId"`
	DeltaSeconds float64 `json:"deltaSeconds"`
}

func (r tickRequest) delta() time.Duration {
	return time.Duration(r.DeltaSeconds * float64(time.Second))
}

type evaluateRequest struct {
	RecipeID    string        `json:"recipeId"`
	Ingredients []itemRequest `json:"ingredients"`
	Iterations  int           `json:"iterations"`
	Seed        uint64        `json:"seed"`
}

// queueEntry is the wire form of a queue entry with times in seconds
type queueEntry struct {
	*station.QueueEntry
	ElapsedSeconds float64 `json:"elapsedTickTime"`
	Remaining      int     `json:"remaining"`
}

func toQueueEntry(e *station.QueueEntry) *queueEntry {
	if e == nil {
		return nil
	}
	return &queueEntry{
		QueueEntry:     e,
		ElapsedSeconds: e.ElapsedTickTime.Seconds(),
		Remaining:      e.Remaining(),
	}
}

func toQueueEntries(in []*station.QueueEntry) []*queueEntry {
	out := make([]*queueEntry, len(in))
	for i, e := range in {
		out[i] = toQueueEntry(e)
	}
	return out
}

type progressResponse struct {
	Entry     *queueEntry  `json:"entry,omitempty"`
	Completed int          `json:"completed"`
	Removed   bool         `json:"removed"`
	Outputs   []*item.Spec `json:"outputs"`
}

func toProgress(p craft.Progress) progressResponse {
	outputs := p.Outputs
	if outputs == nil {
		outputs = []*item.Spec{}
	}
	return progressResponse{
		Entry:     toQueueEntry(p.Entry),
		Completed: p.Completed,
		Removed:   p.Removed,
		Outputs:   outputs,
	}
}

type ingredientSummary struct {
	Kind           recipe.IngredientKind `json:"type"`
	Amount         int                   `json:"amount"`
	ConsumeOnCraft bool                  `json:"consume"`
	ItemDefinition string                `json:"itemDefinition,omitempty"`
	RequiredTags   []string              `json:"requiredTags,omitempty"`
}

type recipeSummary struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name,omitempty"`
	CraftTimeSeconds    float64             `json:"craftTime"`
	RequiredStationTags []string            `json:"requiredStationTags"`
	OutputItem          string              `json:"outputItemDefinition"`
	OutputAmount        int                 `json:"outputAmount"`
	Ingredients         []ingredientSummary `json:"ingredients"`
	OutputModifiers     int                 `json:"outputModifiers"`
}

func toRecipeSummary(d *recipe.Definition) recipeSummary {
	out := recipeSummary{
		ID:                  d.ID,
		Name:                d.Name,
		CraftTimeSeconds:    d.CraftTime.Seconds(),
		RequiredStationTags: d.RequiredStationTags.Strings(),
		OutputItem:          d.OutputItemDefinition.Path,
		OutputAmount:        d.OutputAmount,
		Ingredients:         make([]ingredientSummary, 0, len(d.Ingredients)),
		OutputModifiers:     len(d.OutputModifiers),
	}
	for _, ing := range d.Ingredients {
		if ing == nil {
			continue
		}
		s := ingredientSummary{
			Kind:           ing.Kind(),
			Amount:         ing.Common().Amount,
			ConsumeOnCraft: ing.Common().ConsumeOnCraft,
		}
		switch v := ing.(type) {
		case *recipe.ItemDef:
			s.ItemDefinition = v.ItemDefinition
		case *recipe.TagsIngredient:
			s.RequiredTags = v.RequiredTags.Strings()
		}
		out.Ingredients = append(out.Ingredients, s)
	}
	return out
}
