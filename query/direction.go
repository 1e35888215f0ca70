package query

import "fmt"

// Direction selects which edges a traversal follows from an entity.
type Direction int

const (
	// Outgoing follows edges whose source is the entity.
	Outgoing Direction = iota
	// Incoming follows edges whose target is the entity.
	Incoming
	// Both follows edges in either orientation.
	Both
)

func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "outgoing"
	case Incoming:
		return "incoming"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection maps "outgoing", "incoming", or "both" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "outgoing", "out":
		return Outgoing, nil
	case "incoming", "in":
		return Incoming, nil
	case "both", "":
		return Both, nil
	default:
		return Both, fmt.Errorf("unknown direction %q (want outgoing, incoming, or both)", s)
	}
}

// Role selects which end of an edge an entity occupies.
type Role int

const (
	// RoleSource matches entities appearing as edge sources.
	RoleSource Role = iota
	// RoleTarget matches entities appearing as edge targets.
	RoleTarget
)

func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleTarget:
		return "target"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole maps "source" or "target" to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "source":
		return RoleSource, nil
	case "target":
		return RoleTarget, nil
	default:
		return RoleSource, fmt.Errorf("unknown role %q (want source or target)", s)
	}
}
