package parking

import "fmt"

// Ticket is the claim check handed out on park. It names the lot by its index
// in the group and the serial the lot minted for the stay.
type Ticket struct {
	LotIndex int
	Serial   int
}

func (t Ticket) String() string {
	return fmt.Sprintf("lot %d serial %d", t.LotIndex, t.Serial)
}
