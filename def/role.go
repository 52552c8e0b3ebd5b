package def

import (
	"strings"
)

/*
	Role names one logical position in the cluster under test,
	e.g. "client.0" or "backup.client.1".

	The cluster segment is optional; a bare "type.id" role belongs to
	the default cluster.
*/
type Role string

// Cluster name implied when a role omits its cluster segment.
const DefaultCluster = "ceph"

// Split decomposes a role into its (cluster, type, id) triple.
func (r Role) Split() (cluster, typ, id string) {
	parts := strings.Split(string(r), ".")
	switch len(parts) {
	case 2:
		return DefaultCluster, parts[0], parts[1]
	case 3:
		return parts[0], parts[1], parts[2]
	default:
		panic(ValidationError.New("invalid role %q: want [cluster.]type.id", string(r)))
	}
}

// Cluster returns the cluster segment of the role.
func (r Role) Cluster() string {
	cluster, _, _ := r.Split()
	return cluster
}

/*
	ClientID returns the id segment of a client role.

	Workunits only ever run on client roles; asking for the client id
	of any other role type is refused loudly rather than silently
	running tests somewhere they don't belong.
*/
func (r Role) ClientID() string {
	_, typ, id := r.Split()
	if typ != "client" {
		panic(ValidationError.New("role %q is not a client role", string(r)))
	}
	return id
}
