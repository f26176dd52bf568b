// Package config holds the microarchitectural parameters that
// configure an out-of-order core: stage widths, structural sizes,
// memory latency, and branch predictor geometry. Grounded on
// timing/latency.TimingConfig: a flat JSON-tagged struct with a
// defaults constructor, file load/save, and validation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds every tunable microarchitectural parameter of the core.
type Config struct {
	// FetchWidth is the number of instructions fetched per cycle.
	FetchWidth int `json:"fetch_width"`
	// DecodeWidth is the number of instructions decoded/dispatched per cycle.
	DecodeWidth int `json:"decode_width"`
	// CommitWidth is the number of reorder-buffer entries retired per cycle.
	CommitWidth int `json:"commit_width"`

	// ROBSize is the number of entries in the reorder buffer.
	ROBSize int `json:"rob_size"`
	// ReservationStations is the number of reservation station entries
	// shared by the ALU, multiplier, and branch functional units.
	ReservationStations int `json:"reservation_stations"`

	// MemLatency is the number of cycles a load or store occupies the
	// memory unit before its result is available.
	MemLatency int `json:"mem_latency"`

	// ALULatency is the number of cycles an arithmetic/logic/move
	// instruction occupies the ALU functional unit.
	ALULatency int `json:"alu_latency"`
	// MultiplyLatency is the number of cycles a MULT occupies the
	// multiplier functional unit.
	MultiplyLatency int `json:"multiply_latency"`
	// DivideLatency is the number of cycles a DIV or MOD occupies the
	// multiplier functional unit.
	DivideLatency int `json:"divide_latency"`
	// BranchLatency is the number of cycles a branch or jump occupies
	// the branch functional unit.
	BranchLatency int `json:"branch_latency"`

	// MemSize is the number of addressable 32-bit words of data memory.
	MemSize int `json:"mem_size"`

	// PredictorWidth is P from spec.md §4.6: 0 selects a static
	// always-fall-through predictor, 1 a one-bit predictor, and P>=2 a
	// P-bit saturating counter predictor.
	PredictorWidth int `json:"predictor_width"`

	// PredictorTableBits is m from spec.md §4.6: the BHT/BTB each have
	// 2^PredictorTableBits entries, indexed by the low bits of the
	// branch PC.
	PredictorTableBits int `json:"predictor_table_bits"`
}

// Default returns the simulator's default configuration, matching the
// widths and sizes spec.md §2-§4 give as defaults.
func Default() *Config {
	return &Config{
		FetchWidth:          5,
		DecodeWidth:         5,
		CommitWidth:         5,
		ROBSize:             32,
		ReservationStations: 16,
		MemLatency:          2,
		MemSize:             1024,
		ALULatency:          1,
		MultiplyLatency:     2,
		DivideLatency:       3,
		BranchLatency:       1,
		PredictorWidth:      2,
		PredictorTableBits:  10,
	}
}

// Load reads a Config from a JSON file, overlaying it on Default() so a
// partial file only needs to set the fields it wants to change.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the Config to path as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if c.FetchWidth <= 0 {
		return fmt.Errorf("fetch_width must be > 0")
	}
	if c.DecodeWidth <= 0 {
		return fmt.Errorf("decode_width must be > 0")
	}
	if c.CommitWidth <= 0 {
		return fmt.Errorf("commit_width must be > 0")
	}
	if c.ROBSize <= 0 {
		return fmt.Errorf("rob_size must be > 0")
	}
	if c.ReservationStations <= 0 {
		return fmt.Errorf("reservation_stations must be > 0")
	}
	if c.MemLatency <= 0 {
		return fmt.Errorf("mem_latency must be > 0")
	}
	if c.ALULatency <= 0 {
		return fmt.Errorf("alu_latency must be > 0")
	}
	if c.MultiplyLatency <= 0 {
		return fmt.Errorf("multiply_latency must be > 0")
	}
	if c.DivideLatency <= 0 {
		return fmt.Errorf("divide_latency must be > 0")
	}
	if c.BranchLatency <= 0 {
		return fmt.Errorf("branch_latency must be > 0")
	}
	if c.MemSize <= 0 {
		return fmt.Errorf("mem_size must be > 0")
	}
	if c.PredictorWidth < 0 {
		return fmt.Errorf("predictor_width must be >= 0")
	}
	if c.PredictorTableBits <= 0 {
		return fmt.Errorf("predictor_table_bits must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
