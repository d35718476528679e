package craft

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iniside/velesarc-craft/internal/engine/recipe"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/station"
	"github.com/iniside/velesarc-craft/internal/errors"
	craftqueue "github.com/iniside/velesarc-craft/internal/repositories/craft_queue"
	"github.com/iniside/velesarc-craft/internal/repositories/stations"
)

func (o *orchestrator) listQueue(ctx context.Context, stationID string) ([]*station.QueueEntry, error) {
	out, err := o.queueRepo.ListByStation(ctx, craftqueue.ListByStationInput{StationID: stationID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list queue of station %s", stationID)
	}
	return out.Entries, nil
}

// activeEntry is the entry with the lowest priority
func activeEntry(queue []*station.QueueEntry) *station.QueueEntry {
	var active *station.QueueEntry
	for _, e := range queue {
		if active == nil || e.Priority < active.Priority {
			active = e
		}
	}
	return active
}

func nextPriority(queue []*station.QueueEntry) int {
	if len(queue) == 0 {
		return 0
	}
	highest := queue[0].Priority
	for _, e := range queue[1:] {
		highest = max(highest, e.Priority)
	}
	return highest + 1
}

func snapshot(d *recipe.Definition, m *recipe.Match) []station.MatchedIngredient {
	out := make([]station.MatchedIngredient, 0, len(m.Items))
	for slot, st := range m.Items {
		if st == nil {
			continue
		}
		mi := station.MatchedIngredient{
			Slot:              slot,
			DefinitionID:      st.DefinitionID,
			Tags:              st.Tags,
			QualityMultiplier: m.QualityMultipliers[slot],
		}
		if len(st.Stats) > 0 {
			mi.Stats = append([]item.StatModifier(nil), st.Stats...)
		}
		if ing := d.Ingredient(slot); ing != nil && ing.Common().ConsumeOnCraft {
			mi.ConsumedAmount = ing.Common().Amount
		}
		out = append(out, mi)
	}
	return out
}

// QueueRecipe matches and consumes the recipe's ingredients from the station
// inventory and appends an entry to the queue
func (o *orchestrator) QueueRecipe(ctx context.Context, input *QueueRecipeInput) (*QueueRecipeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.RecipeID == "" {
		return nil, errors.InvalidArgument("recipe ID is required")
	}
	amount := input.Amount
	if amount == 0 {
		amount = 1
	}
	if amount < 0 {
		return nil, errors.InvalidArgumentf("amount must be >= 1 (got %d)", input.Amount)
	}

	st, err := o.getStation(ctx, input.StationID)
	if err != nil {
		return nil, err
	}
	def, err := o.assets.Recipe(ctx, input.RecipeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recipe")
	}
	if !def.MatchesStation(st.Tags) {
		return nil, errors.FailedPreconditionf("station %s cannot craft recipe %s", st.ID, def.ID).
			WithMeta(errors.MetaStationID, st.ID).
			WithMeta("required_station_tags", def.RequiredStationTags.Strings())
	}
	if def.OutputItemDefinition.Get() == nil {
		return nil, errors.FailedPreconditionf("recipe %s has no loaded output item definition", def.ID)
	}
	if !def.RequiredInstigatorTags.IsEmpty() && !input.InstigatorTags.HasAll(def.RequiredInstigatorTags) {
		return nil, errors.FailedPreconditionf("instigator cannot craft recipe %s", def.ID).
			WithMeta("required_instigator_tags", def.RequiredInstigatorTags.Strings())
	}

	unlock := o.lockStation(st.ID)
	defer unlock()

	queue, err := o.listQueue(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	if st.MaxQueueSize > 0 && len(queue) >= st.MaxQueueSize {
		return nil, errors.ResourceExhaustedf("queue of station %s is full (%d entries)", st.ID, st.MaxQueueSize).
			WithMeta(errors.MetaStationID, st.ID)
	}

	inventory, err := o.getInventory(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	match, err := recipe.MatchIngredients(def, inventory, def.TierTable())
	if err != nil {
		return nil, errors.Wrapf(err, "cannot queue recipe %s", def.ID)
	}

	remaining := recipe.Consume(inventory, match.Consumption)
	if err := o.saveInventory(ctx, st.ID, remaining); err != nil {
		return nil, err
	}

	mode := st.TimeMode
	if mode == "" {
		mode = station.TimeModeAutoTick
	}
	entry := &station.QueueEntry{
		EntryID:        o.idGen.Generate(),
		StationID:      st.ID,
		RecipeID:       input.RecipeID,
		Amount:         amount,
		Priority:       nextPriority(queue),
		StartTimestamp: o.clock.Now(),
		TimeMode:       mode,
		Ingredients:    snapshot(def, match),
	}
	if _, err := o.queueRepo.Create(ctx, craftqueue.CreateInput{Entry: entry}); err != nil {
		if restoreErr := o.saveInventory(ctx, st.ID, inventory); restoreErr != nil {
			slog.Error("Failed to restore inventory after queue failure",
				"station_id", st.ID,
				"error", restoreErr,
			)
		}
		return nil, errors.Wrap(err, "failed to queue recipe")
	}

	slog.Info("Recipe queued",
		"station_id", st.ID,
		"recipe_id", def.ID,
		"entry_id", entry.EntryID,
		"amount", entry.Amount,
		"priority", entry.Priority,
		"average_quality", match.AverageQuality(def),
	)

	return &QueueRecipeOutput{Entry: entry, Inventory: remaining}, nil
}

// CancelEntry removes an entry from the queue. The consumed ingredients go
// back into the inventory while no craft of the entry has finished.
func (o *orchestrator) CancelEntry(ctx context.Context, input *CancelEntryInput) (*CancelEntryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntryID == "" {
		return nil, errors.InvalidArgument("entry ID is required")
	}

	st, err := o.getStation(ctx, input.StationID)
	if err != nil {
		return nil, err
	}

	unlock := o.lockStation(st.ID)
	defer unlock()

	got, err := o.queueRepo.Get(ctx, craftqueue.GetInput{StationID: st.ID, EntryID: input.EntryID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get queue entry")
	}
	entry := got.Entry

	refunded := []*item.Stack{}
	if entry.CompletedAmount == 0 {
		for _, mi := range entry.Ingredients {
			if mi.ConsumedAmount > 0 {
				refunded = append(refunded, mi.Stack(o.idGen.Generate(), mi.ConsumedAmount))
			}
		}
	}

	inventory, err := o.getInventory(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	if len(refunded) > 0 {
		inventory = append(inventory, refunded...)
		if err := o.saveInventory(ctx, st.ID, inventory); err != nil {
			return nil, err
		}
	}

	if _, err := o.queueRepo.Delete(ctx, craftqueue.DeleteInput{StationID: st.ID, EntryID: entry.EntryID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete queue entry")
	}

	slog.Info("Queue entry cancelled",
		"station_id", st.ID,
		"entry_id", entry.EntryID,
		"completed", entry.CompletedAmount,
		"refunded_stacks", len(refunded),
	)

	return &CancelEntryOutput{Refunded: refunded, Inventory: inventory}, nil
}

// advanceFunc moves an entry forward and returns how many crafts finished
type advanceFunc func(e *station.QueueEntry, craftTime time.Duration) int

// progressActive applies advance to the station's active entry, builds one
// output per finished craft and stores the result
func (o *orchestrator) progressActive(ctx context.Context, stationID string, advance advanceFunc) (*Progress, error) {
	st, err := o.getStation(ctx, stationID)
	if err != nil {
		return nil, err
	}

	unlock := o.lockStation(st.ID)
	defer unlock()

	queue, err := o.listQueue(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	entry := activeEntry(queue)
	if entry == nil {
		return &Progress{}, nil
	}

	def, err := o.assets.Recipe(ctx, entry.RecipeID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load recipe of entry %s", entry.EntryID)
	}
	if def.OutputItemDefinition.Get() == nil {
		return nil, errors.FailedPreconditionf("recipe %s has no loaded output item definition", def.ID).
			WithMeta(errors.MetaEntryID, entry.EntryID)
	}

	done := advance(entry, def.CraftTime)
	progress := &Progress{Entry: entry, Completed: done}

	if done > 0 {
		progress.Outputs = o.buildCompletions(def, entry, done)
		if _, err := o.stationRepo.AddOutputs(ctx, stations.AddOutputsInput{StationID: st.ID, Outputs: progress.Outputs}); err != nil {
			return nil, errors.Wrap(err, "failed to deliver outputs")
		}
	}

	if entry.IsComplete() {
		if _, err := o.queueRepo.Delete(ctx, craftqueue.DeleteInput{StationID: st.ID, EntryID: entry.EntryID}); err != nil {
			return nil, errors.Wrap(err, "failed to remove finished entry")
		}
		progress.Removed = true
	} else if _, err := o.queueRepo.Update(ctx, craftqueue.UpdateInput{Entry: entry}); err != nil {
		return nil, errors.Wrap(err, "failed to update queue entry")
	}

	if done > 0 {
		slog.Info("Crafts completed",
			"station_id", st.ID,
			"entry_id", entry.EntryID,
			"recipe_id", entry.RecipeID,
			"completed", done,
			"remaining", entry.Remaining(),
		)
	}

	return progress, nil
}

// buildCompletions evaluates n outputs from the entry's ingredient snapshot
func (o *orchestrator) buildCompletions(def *recipe.Definition, entry *station.QueueEntry, n int) []*item.Spec {
	ingredients := make([]*item.Stack, len(def.Ingredients))
	multipliers := make([]float64, len(def.Ingredients))
	for i := range multipliers {
		multipliers[i] = 1.0
	}
	for _, mi := range entry.Ingredients {
		if mi.Slot < 0 || mi.Slot >= len(ingredients) {
			continue
		}
		amount := 1
		if ing := def.Ingredient(mi.Slot); ing != nil {
			amount = ing.Common().Amount
		}
		ingredients[mi.Slot] = mi.Stack(fmt.Sprintf("%s/%d", entry.EntryID, mi.Slot), amount)
		multipliers[mi.Slot] = mi.QualityMultiplier
	}
	avg := recipe.AverageQuality(def, multipliers)

	o.randMu.Lock()
	defer o.randMu.Unlock()

	out := make([]*item.Spec, 0, n)
	for range n {
		spec, _ := recipe.Build(recipe.BuildInput{
			Recipe:             def,
			Ingredients:        ingredients,
			QualityMultipliers: multipliers,
			AverageQuality:     avg,
			Source:             o.random,
		})
		if spec == nil {
			continue
		}
		spec.ID = o.idGen.Generate()
		out = append(out, spec)
	}
	return out
}

// Tick advances the active entry when it runs on ticks
func (o *orchestrator) Tick(ctx context.Context, input *TickInput) (*TickOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.DeltaTime < 0 {
		return nil, errors.InvalidArgumentf("delta time must be >= 0 (got %s)", input.DeltaTime)
	}

	p, err := o.progressActive(ctx, input.StationID, func(e *station.QueueEntry, craftTime time.Duration) int {
		if e.TimeMode != station.TimeModeAutoTick {
			return 0
		}
		return e.AdvanceTicks(input.DeltaTime, craftTime)
	})
	if err != nil {
		return nil, err
	}
	return &TickOutput{Progress: *p}, nil
}

// Interact completes what the active entry has finished: wall-clock time for
// interaction entries, accumulated ticks for tick entries
func (o *orchestrator) Interact(ctx context.Context, input *InteractInput) (*InteractOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	now := o.clock.Now()
	p, err := o.progressActive(ctx, input.StationID, func(e *station.QueueEntry, craftTime time.Duration) int {
		if e.TimeMode == station.TimeModeInteractionCheck {
			return e.CheckInteraction(now, craftTime)
		}
		return e.CompleteDueTicks(craftTime)
	})
	if err != nil {
		return nil, err
	}
	return &InteractOutput{Progress: *p}, nil
}
