// Package station holds craft station state: its inventory, its craft queue
// and the outputs waiting to be withdrawn.
package station

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
)

// EntityType is the core.Entity type of stations
const EntityType = "craft_station"

// TimeMode selects how a queue entry makes progress
type TimeMode string

// Time modes
const (
	// TimeModeAutoTick advances with explicit ticks
	TimeModeAutoTick TimeMode = "AutoTick"
	// TimeModeInteractionCheck completes by wall clock when someone interacts
	TimeModeInteractionCheck TimeMode = "InteractionCheck"
)

// Station is a crafting station
type Station struct {
	ID       string         `json:"id"`
	Tags     tags.Container `json:"tags"`
	TimeMode TimeMode       `json:"timeMode"`
	// MaxQueueSize caps queued entries; zero means unlimited
	MaxQueueSize int `json:"maxQueueSize,omitempty"`
}

// GetID implements core.Entity
func (s *Station) GetID() string {
	return s.ID
}

// GetType implements core.Entity
func (s *Station) GetType() string {
	return EntityType
}

var _ core.Entity = (*Station)(nil)

// MatchedIngredient is the snapshot of one consumed ingredient slot kept on a
// queue entry so every completion evaluates against what was actually put in.
type MatchedIngredient struct {
	Slot              int                 `json:"slot"`
	DefinitionID      string              `json:"definitionId"`
	Tags              tags.Container      `json:"tags"`
	Stats             []item.StatModifier `json:"stats,omitempty"`
	QualityMultiplier float64             `json:"qualityMultiplier"`
	// ConsumedAmount is what was taken from the inventory, zero for
	// ingredients that are not consumed
	ConsumedAmount int `json:"consumedAmount,omitempty"`
}

// Stack rebuilds the ingredient as an item stack
func (m MatchedIngredient) Stack(id string, amount int) *item.Stack {
	st := &item.Stack{
		ID:           id,
		DefinitionID: m.DefinitionID,
		Amount:       amount,
		Tags:         tags.Union(m.Tags),
	}
	if len(m.Stats) > 0 {
		st.Stats = append([]item.StatModifier(nil), m.Stats...)
	}
	return st
}

// QueueEntry is one queued recipe on a station
type QueueEntry struct {
	EntryID         string              `json:"entryId"`
	StationID       string              `json:"stationId"`
	RecipeID        string              `json:"recipeId"`
	Amount          int                 `json:"amount"`
	CompletedAmount int                 `json:"completedAmount"`
	Priority        int                 `json:"priority"`
	StartTimestamp  time.Time           `json:"startTimestamp"`
	ElapsedTickTime time.Duration       `json:"elapsedTickTime"`
	TimeMode        TimeMode            `json:"timeMode"`
	Ingredients     []MatchedIngredient `json:"ingredients"`
}

// Remaining returns how many crafts are still pending
func (e *QueueEntry) Remaining() int {
	if e.CompletedAmount >= e.Amount {
		return 0
	}
	return e.Amount - e.CompletedAmount
}

// IsComplete reports whether every queued craft has finished
func (e *QueueEntry) IsComplete() bool {
	return e.CompletedAmount >= e.Amount
}

// AdvanceTicks adds dt to the entry and returns how many crafts finished.
// Leftover time carries into the next craft.
func (e *QueueEntry) AdvanceTicks(dt, craftTime time.Duration) int {
	if e.IsComplete() || dt <= 0 {
		return 0
	}
	if craftTime <= 0 {
		done := e.Remaining()
		e.CompletedAmount = e.Amount
		e.ElapsedTickTime = 0
		return done
	}

	e.ElapsedTickTime += dt
	return e.CompleteDueTicks(craftTime)
}

// CompleteDueTicks finishes the crafts the accumulated tick time already
// covers without adding any time
func (e *QueueEntry) CompleteDueTicks(craftTime time.Duration) int {
	if e.IsComplete() || craftTime <= 0 {
		return 0
	}
	done := 0
	for e.ElapsedTickTime >= craftTime && !e.IsComplete() {
		e.ElapsedTickTime -= craftTime
		e.CompletedAmount++
		done++
	}
	if e.IsComplete() {
		e.ElapsedTickTime = 0
	}
	return done
}

// CheckInteraction completes the crafts that fit in the wall-clock time since
// StartTimestamp. The start is moved forward by the consumed time so partial
// progress is kept.
func (e *QueueEntry) CheckInteraction(now time.Time, craftTime time.Duration) int {
	if e.IsComplete() {
		return 0
	}
	if craftTime <= 0 {
		done := e.Remaining()
		e.CompletedAmount = e.Amount
		return done
	}

	elapsed := now.Sub(e.StartTimestamp)
	if elapsed < craftTime {
		return 0
	}

	done := int(elapsed / craftTime)
	if remaining := e.Remaining(); done > remaining {
		done = remaining
	}
	e.CompletedAmount += done
	leftover := elapsed - time.Duration(done)*craftTime
	e.StartTimestamp = now.Add(-leftover)
	return done
}
