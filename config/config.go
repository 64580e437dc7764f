package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"reversi/experiments/metrics"
	"reversi/meta"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
)

var (
	cfgFile = "reversi/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type BoardConfig struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

type ExperimentConfig struct {
	Name       string `json:"name"`
	Games      int    `json:"games"`
	ResultsDir string `json:"results_dir"`
	// Each match-up pairs two agent IDs, the first one plays Light
	MatchUps [][2]int `json:"match_ups"`
}

type Config struct {
	Board      BoardConfig           `json:"board"`
	Agents     []metrics.AgentConfig `json:"agents"`
	Experiment ExperimentConfig      `json:"experiment"`
}

// DefaultConfig mirrors the original series: a shallow composite agent
// against a deeper one.
var DefaultConfig = Config{
	Board: BoardConfig{Rows: meta.BOARD_ROWS, Columns: meta.BOARD_COLUMNS},
	Agents: []metrics.AgentConfig{
		{ID: 1, Depth: 1, Pruning: true, Seed: 1, Score: meta.SCORE_WEIGHT, Mobility: meta.MOBILITY_WEIGHT, Corners: meta.CORNERS_WEIGHT},
		{ID: 2, Depth: meta.DEPTH, Pruning: true, Seed: 2, Score: meta.SCORE_WEIGHT, Mobility: meta.MOBILITY_WEIGHT, Corners: meta.CORNERS_WEIGHT},
	},
	Experiment: ExperimentConfig{
		Name:       "series",
		Games:      meta.GAMES,
		ResultsDir: meta.RESULTS_DIR,
		MatchUps:   [][2]int{{1, 2}},
	},
}

// Default returns a copy of DefaultConfig that shares no slices with it.
func Default() Config {
	c := DefaultConfig
	c.Agents = append([]metrics.AgentConfig(nil), DefaultConfig.Agents...)
	c.Experiment.MatchUps = append([][2]int(nil), DefaultConfig.Experiment.MatchUps...)
	return c
}

// InitConfig loads the user config file when there is one, on top of the
// defaults.
func InitConfig() (*Config, error) {
	config := Default()
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err = readOverDefaults(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads a config file from an explicit path.
func Load(path string) (*Config, error) {
	config := Default()
	if err := readOverDefaults(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Agent looks up an agent config by ID.
func (c *Config) Agent(id int) (metrics.AgentConfig, bool) {
	for _, a := range c.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return metrics.AgentConfig{}, false
}

func (c *Config) Validate() error {
	if c.Board.Rows < 2 || c.Board.Columns < 2 {
		return &InvalidConfig{fmt.Sprintf("board must be at least 2x2, got %dx%d", c.Board.Rows, c.Board.Columns)}
	}
	seen := make(map[int]bool, len(c.Agents))
	for _, a := range c.Agents {
		if seen[a.ID] {
			return &InvalidConfig{fmt.Sprintf("duplicate agent id %d", a.ID)}
		}
		seen[a.ID] = true
		if a.Random {
			continue
		}
		if a.Depth <= 0 {
			return &InvalidConfig{fmt.Sprintf("agent %d: depth must be positive", a.ID)}
		}
		if a.Score == 0 && a.Mobility == 0 && a.Corners == 0 {
			return &InvalidConfig{fmt.Sprintf("agent %d: at least one heuristic weight must be non-zero", a.ID)}
		}
	}
	if c.Experiment.Games <= 0 {
		return &InvalidConfig{"experiment needs at least one game"}
	}
	for _, m := range c.Experiment.MatchUps {
		for _, id := range m {
			if !seen[id] {
				return &InvalidConfig{fmt.Sprintf("match-up references unknown agent %d", id)}
			}
		}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return errors.Wrap(err, "failed to locate config file")
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	err = os.WriteFile(filePath, jsonData, perm)
	if err != nil {
		return errors.Wrapf(err, "failed to write config %s", filePath)
	}
	return nil
}

// readOverDefaults decodes a config file on top of config. Lists given in
// the file replace the defaults instead of being merged element-wise.
func readOverDefaults(filePath string, config *Config) error {
	agents, matchUps := config.Agents, config.Experiment.MatchUps
	config.Agents, config.Experiment.MatchUps = nil, nil
	if err := readCfgFile(filePath, config); err != nil {
		return err
	}
	if config.Agents == nil {
		config.Agents = agents
	}
	if config.Experiment.MatchUps == nil {
		config.Experiment.MatchUps = matchUps
	}
	return nil
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read config %s", filePath)
	}
	err = json.Unmarshal(data, a)
	if err != nil {
		return errors.Wrapf(err, "failed to parse config %s", filePath)
	}
	return nil
}
