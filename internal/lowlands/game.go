// Package lowlands is the "lift the fog" checklist: completing small
// self-care tasks clears fog, brightens the world and collects rewards.
package lowlands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"moodwell/internal/kv"
	"moodwell/internal/logging"
)

// Key is the storage key holding the game state
const Key = "lowlandsGameState"

const (
	initialFog        = 85
	initialBrightness = 15
)

// Items records which rewards have been collected
type Items struct {
	WarmSocks      bool `json:"warmSocks"`
	SunlightRing   bool `json:"sunlightRing"`
	SparkleBuff    bool `json:"sparkleBuff"`
	ComfortBlanket bool `json:"comfortBlanket"`
	MorningCoffee  bool `json:"morningCoffee"`
	FreshClothes   bool `json:"freshClothes"`
}

// Has reports whether item has been collected
func (it Items) Has(item Item) bool {
	switch item {
	case WarmSocks:
		return it.WarmSocks
	case SunlightRing:
		return it.SunlightRing
	case SparkleBuff:
		return it.SparkleBuff
	case ComfortBlanket:
		return it.ComfortBlanket
	case MorningCoffee:
		return it.MorningCoffee
	case FreshClothes:
		return it.FreshClothes
	}
	return false
}

func (it *Items) collect(item Item) {
	switch item {
	case WarmSocks:
		it.WarmSocks = true
	case SunlightRing:
		it.SunlightRing = true
	case SparkleBuff:
		it.SparkleBuff = true
	case ComfortBlanket:
		it.ComfortBlanket = true
	case MorningCoffee:
		it.MorningCoffee = true
	case FreshClothes:
		it.FreshClothes = true
	}
}

// State is the persisted game
type State struct {
	FogLevel       int        `json:"fogLevel"`
	Brightness     int        `json:"brightness"`
	Items          Items      `json:"items"`
	CompletedTasks []string   `json:"completedTasks"`
	Streak         int        `json:"streak"`
	LastTaskTime   *time.Time `json:"lastTaskTime"`
}

// InitialState is a fresh, foggy morning
func InitialState() State {
	return State{
		FogLevel:       initialFog,
		Brightness:     initialBrightness,
		CompletedTasks: []string{},
	}
}

// Completed reports whether taskID is done
func (s State) Completed(taskID string) bool {
	for _, id := range s.CompletedTasks {
		if id == taskID {
			return true
		}
	}
	return false
}

// ProgressMessage describes the world at the current fog level
func (s State) ProgressMessage() string {
	switch {
	case s.FogLevel <= 20:
		return "The sun is shining brightly! Your world is beautiful and clear! 🌞"
	case s.FogLevel <= 40:
		return "The fog is lifting! You can see hope on the horizon! 🌤️"
	case s.FogLevel <= 60:
		return "Small patches of light are breaking through! Keep going! ⛅"
	case s.FogLevel <= 80:
		return "You're making progress! The fog is starting to thin! 🌫️"
	default:
		return "The world feels heavy, but you're here. That's what matters. 🤗"
	}
}

func (s State) clone() State {
	s.CompletedTasks = append([]string{}, s.CompletedTasks...)
	if s.LastTaskTime != nil {
		t := *s.LastTaskTime
		s.LastTaskTime = &t
	}
	return s
}

// Game owns the persisted state
type Game struct {
	mu     sync.Mutex
	doc    *kv.Document[State]
	logger *logging.Logger
	now    func() time.Time
}

// NewGame loads the game from backend
func NewGame(ctx context.Context, backend kv.Backend, logger *logging.Logger) *Game {
	return &Game{
		doc:    kv.LoadDocument(ctx, backend, Key, InitialState, logger),
		logger: logger,
		now:    time.Now,
	}
}

// State returns a copy of the current state
func (g *Game) State() State {
	return g.doc.Get().clone()
}

// Complete marks taskID done. An unknown or already completed task is a
// no-op and returns false.
func (g *Game) Complete(ctx context.Context, taskID string) (State, Task, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	task, ok := FindTask(taskID)
	if !ok {
		return g.State(), Task{}, false, nil
	}

	applied := false
	next, err := g.doc.Update(ctx, func(cur State) (State, bool) {
		if cur.Completed(taskID) {
			return cur, false
		}
		s := cur.clone()
		s.FogLevel = max(0, s.FogLevel-task.FogReduction)
		s.Brightness = min(100, s.Brightness+task.BrightnessIncrease)
		s.Items.collect(task.Reward)
		s.CompletedTasks = append(s.CompletedTasks, taskID)
		s.Streak++
		now := g.now()
		s.LastTaskTime = &now
		applied = true
		return s, true
	})
	if err != nil {
		return g.State(), task, false, fmt.Errorf("failed to save game state: %w", err)
	}
	if applied {
		g.logger.WithFields(logging.Fields{"task": taskID, "fog": next.FogLevel, "streak": next.Streak}).Info("task completed")
	}
	return next.clone(), task, applied, nil
}

// Reset clears the stored state and starts over
func (g *Game) Reset(ctx context.Context) (State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, err := g.doc.Reset(ctx)
	if err != nil {
		return g.State(), fmt.Errorf("failed to reset game: %w", err)
	}
	g.logger.Info("game reset")
	return s.clone(), nil
}
