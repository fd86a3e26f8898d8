package uid

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/labstack/gommon/log"
)

const defaultNodeID = 1

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// Init binds the generator to a snowflake node. Only the first call has any
// effect, later calls return nil.
func Init(nodeID int64) error {
	var err error
	nodeOnce.Do(func() {
		node, err = snowflake.NewNode(nodeID)
		if err == nil {
			log.Debugf("snowflake node %d ready", nodeID)
		}
	})
	return err
}

// Generate returns a new unique id, lazily binding to the default node when
// Init was never called.
func Generate() int64 {
	if node == nil {
		if err := Init(defaultNodeID); err != nil || node == nil {
			log.Fatalf("failed to initialize snowflake node: %v", err)
		}
	}
	return node.Generate().Int64()
}
