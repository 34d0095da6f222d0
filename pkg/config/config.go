package config

import "github.com/i5heu/GoQueueRace/internal/testbench"

// Config is an alias for testbench.Config. This allows other programs to import
// the race configuration without pulling in the entire testbench package.
type Config = testbench.Config
