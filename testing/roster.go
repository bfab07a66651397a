package testing

import (
	"fmt"

	"github.com/arloliu/seatplan/types"
)

// RosterSpec describes a generated event roster.
type RosterSpec struct {
	// Participants is the number of participants (IDs p1..pN).
	Participants int
	// VIPs marks the first VIPs participants as VIP.
	VIPs int
	// Companies spreads participants round-robin over c1..cN; 0 leaves them without company.
	Companies int
	// TableCapacities creates one table per entry (IDs t1..tN, names "Table N").
	TableCapacities []int
	// VIPTables marks the first VIPTables tables as VIP tables.
	VIPTables int
}

// Roster generates participants and tables from spec.
//
// Example:
//
//	participants, tables := seattest.Roster(seattest.RosterSpec{
//	    Participants:    10,
//	    VIPs:            2,
//	    TableCapacities: []int{5, 5},
//	    VIPTables:       1,
//	})
func Roster(spec RosterSpec) ([]types.Participant, []types.Table) {
	participants := make([]types.Participant, spec.Participants)
	for i := range participants {
		p := types.Participant{
			ID:    fmt.Sprintf("p%d", i+1),
			Name:  fmt.Sprintf("Participant %d", i+1),
			IsVIP: i < spec.VIPs,
		}
		if spec.Companies > 0 {
			c := i%spec.Companies + 1
			p.CompanyID = fmt.Sprintf("c%d", c)
			p.CompanyName = fmt.Sprintf("Company %d", c)
		}
		participants[i] = p
	}

	tables := make([]types.Table, len(spec.TableCapacities))
	for i, c := range spec.TableCapacities {
		tables[i] = types.Table{
			ID:         fmt.Sprintf("t%d", i+1),
			Name:       fmt.Sprintf("Table %d", i+1),
			Capacity:   c,
			IsVIPTable: i < spec.VIPTables,
		}
	}

	return participants, tables
}
