package access

import "github.com/chris/behavior-points/pkg/models"

// Operation names a gated ledger, balance or award operation.
type Operation string

const (
	LedgerRead     Operation = "ledger.read"
	LedgerWrite    Operation = "ledger.write"
	BalanceRead    Operation = "balance.read"
	BalanceSync    Operation = "balance.sync"
	BalanceInspect Operation = "balance.inspect"
	AwardsEvaluate Operation = "awards.evaluate"
	AwardsRead     Operation = "awards.read"
	CatalogRead    Operation = "catalog.read"
)

// Policy describes who may use the elevated path for an operation.
//
// Callers outside ElevatedRoles are confined to their own subject. For a
// non-mutating operation aimed at another subject they are degraded to
// their own subject; for a mutating one they are refused. SelfService
// allows a restricted caller to run a mutating operation on itself.
type Policy struct {
	ElevatedRoles []models.Role
	Mutating      bool
	SelfService   bool
	// Public operations are not subject-scoped and open to every authenticated role.
	Public bool
}

// Elevates reports whether role is allow-listed for the elevated path.
func (p Policy) Elevates(role models.Role) bool {
	for _, r := range p.ElevatedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Policies is the operation allow-list.
var Policies = map[Operation]Policy{
	LedgerRead:     {ElevatedRoles: []models.Role{models.ADMIN, models.TEACHER}},
	LedgerWrite:    {ElevatedRoles: []models.Role{models.ADMIN, models.TEACHER}, Mutating: true},
	BalanceRead:    {ElevatedRoles: []models.Role{models.ADMIN, models.TEACHER}},
	BalanceSync:    {ElevatedRoles: []models.Role{models.ADMIN}},
	BalanceInspect: {ElevatedRoles: []models.Role{models.ADMIN}},
	AwardsEvaluate: {ElevatedRoles: []models.Role{models.ADMIN}},
	AwardsRead:     {ElevatedRoles: []models.Role{models.ADMIN, models.TEACHER}},
	CatalogRead:    {Public: true},
}
