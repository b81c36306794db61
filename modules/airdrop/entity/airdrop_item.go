package entity

// AirdropItem is the per-wallet aggregate view of one distributor, used for
// discovery. ClaimableValue is an off-chain USD figure computed by the
// backend, independent of on-chain base units.
type AirdropItem struct {
	Chain              string `json:"chain"`
	DistributorAddress string `json:"distributorAddress"`
	Address            string `json:"address"`
	AmountUnlocked     string `json:"amountUnlocked"`
	AmountLocked       string `json:"amountLocked"`
	AmountClaimed      string `json:"amountClaimed"`
	Mint               string `json:"mint"`
	ClaimableValue     string `json:"claimableValue"`
}

// AirdropList is the paged discovery response from the distributor API.
type AirdropList struct {
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Items  []AirdropItem `json:"items"`
}
