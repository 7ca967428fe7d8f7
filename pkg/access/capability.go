package access

import "github.com/chris/behavior-points/pkg/models"

// Tier is the data path a capability grants.
type Tier int

const (
	// Restricted confines the caller to its own subject.
	Restricted Tier = iota + 1
	// Elevated allows cross-subject access.
	Elevated
)

func (t Tier) String() string {
	switch t {
	case Restricted:
		return "restricted"
	case Elevated:
		return "elevated"
	default:
		return "none"
	}
}

// SystemRole identifies capabilities issued to background jobs.
const SystemRole models.Role = "system"

// Capability is the proof of authorization threaded through ledger, balance
// and award calls. Only this package can produce a non-zero Capability; the
// zero value permits nothing.
type Capability struct {
	tier      Tier
	actorID   string
	role      models.Role
	subject   string
	operation Operation
	mutating  bool
	degraded  bool
}

func (c Capability) Tier() Tier           { return c.tier }
func (c Capability) ActorID() string      { return c.actorID }
func (c Capability) Role() models.Role    { return c.role }
func (c Capability) Operation() Operation { return c.operation }

// Subject is the subject the caller is acting on. For a degraded capability
// this is the caller itself, not the subject it asked for.
func (c Capability) Subject() string { return c.subject }

// Degraded reports whether a read was narrowed to the caller's own subject.
func (c Capability) Degraded() bool { return c.degraded }

// CanMutate reports whether the capability was granted for a ledger write.
func (c Capability) CanMutate() bool { return c.mutating }

// Permits reports whether the capability covers subjectID.
func (c Capability) Permits(subjectID string) bool {
	switch c.tier {
	case Elevated:
		return true
	case Restricted:
		return subjectID != "" && subjectID == c.subject
	default:
		return false
	}
}

// ForSystem returns an elevated, mutating capability attributed to a background actor
// such as the reconciliation sweep.
func ForSystem(actorID string) Capability {
	return Capability{
		tier:      Elevated,
		actorID:   actorID,
		role:      SystemRole,
		operation: "system",
		mutating:  true,
	}
}
