package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// maxNodeID is the largest node id that fits in snowflake's 10 node bits.
const maxNodeID = 1<<10 - 1

//nolint:gochecknoglobals // snowflake.Epoch is package state in the library
var setEpoch sync.Once

// Snowflake generates numeric IDs using the Snowflake algorithm.
type Snowflake struct {
	node *snowflake.Node
}

func generateRandomNodeID() (int64, error) {
	var nodeID int64
	err := binary.Read(rand.Reader, binary.BigEndian, &nodeID)
	if err != nil {
		return 0, err
	}

	return nodeID & maxNodeID, nil
}

// NewSnowflake constructs a Snowflake generator.
//
// A nodeID outside 0..1023 picks a random node, which is fine for a single
// replica and unlikely to collide for a handful of them.
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		id, err := generateRandomNodeID()
		if err != nil {
			return nil, err
		}
		nodeID = id
	}

	setEpoch.Do(func() {
		snowflake.Epoch = 1764522000000 // Mon Dec 01 2025 00:00:00.000 WIB
	})

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new unique numeric ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

// FormatID renders a numeric ID the way it is exposed over HTTP and in logs.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
