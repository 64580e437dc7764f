package metrics

import (
	"reversi/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth     int
	Pruning   bool
	Heuristic string
	Duration  time.Duration
	Nodes     int // Positions visited, root excluded
	Leaves    int // Heuristic evaluations
	Cutoffs   int // Alpha-beta prunes
	Score     float64
}

type MoveMetric struct {
	Step   int
	Player game.Color
	Move   game.Position
	Pass   bool
	Hash   game.StateHash // State after the move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Color
	Winner         string // Color name, "" on a draw
	LightScore     int
	DarkScore      int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(depth int, pruning bool, heuristic string)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete(score float64) SearchMetric
}

type collector struct {
	depth     int
	pruning   bool
	heuristic string
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(depth int, pruning bool, heuristic string) {
	m.startTime = time.Now()
	m.depth = depth
	m.pruning = pruning
	m.heuristic = heuristic
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete(score float64) SearchMetric {
	return SearchMetric{
		Depth:     m.depth,
		Pruning:   m.pruning,
		Heuristic: m.heuristic,
		Duration:  time.Since(m.startTime),
		Nodes:     int(m.nodes.Load()),
		Leaves:    int(m.leaves.Load()),
		Cutoffs:   int(m.cutoffs.Load()),
		Score:     score,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int, pruning bool, heuristic string) {}
func (m *dummyCollector) AddNode()                                        {}
func (m *dummyCollector) AddLeaf()                                        {}
func (m *dummyCollector) AddCutoff()                                      {}
func (m *dummyCollector) Complete(score float64) SearchMetric             { return SearchMetric{} }
