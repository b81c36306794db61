package entity

// Claimant is one wallet's entitlement within a distributor, fetched per
// (distributor, claimant) pair. Absence of a record ("no entitlement") is not
// an error state and is modeled as a nil *Claimant by the fetch layer.
type Claimant struct {
	Chain              string  `json:"chain"`
	Proof              []Bytes `json:"proof"`
	DistributorAddress string  `json:"distributorAddress"`
	Address            string  `json:"address"`
	AmountClaimed      string  `json:"amountClaimed"`
	AmountUnlocked     string  `json:"amountUnlocked"`
	AmountLocked       string  `json:"amountLocked"`
}
