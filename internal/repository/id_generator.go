package repository

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// IDGenerator hands out customer identifiers
type IDGenerator interface {
	NextID() string
}

type snowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator returns a time-ordered id generator for the given node (0-1023)
func NewSnowflakeGenerator(nodeID int64) (IDGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &snowflakeGenerator{node: node}, nil
}

// NextID returns a new monotonic id
func (g *snowflakeGenerator) NextID() string {
	return g.node.Generate().String()
}
