package runtime

import (
	"strings"

	idspkg "github.com/drblury/ros2bridge/internal/runtime/ids"
)

const nodePrefix = "make87_"

// NodeName joins namespace and a node id into the bridge node name, e.g.
// "/make87/make87_01j9...". An empty id gets a fresh one.
func NodeName(namespace, id string) string {
	if id == "" {
		id = idspkg.NewNodeID()
	}
	namespace = strings.TrimRight(namespace, "/")
	return namespace + "/" + nodePrefix + id
}
