package common

type Network string

const (
	// NetworkMainnet is the production environment.
	NetworkMainnet Network = "mainnet"

	// NetworkDevnet is the staging environment. Distributors deployed on
	// devnet are served by the staging distributor API and the devnet cluster.
	NetworkDevnet Network = "devnet"
)

var supportedNetworks = map[Network]struct{}{
	NetworkMainnet: {},
	NetworkDevnet:  {},
}

// Cluster monikers understood by the Solana RPC layer.
var clusters = map[Network]string{
	NetworkMainnet: "mainnet-beta",
	NetworkDevnet:  "devnet",
}

func (n Network) IsSupported() bool {
	_, ok := supportedNetworks[n]
	return ok
}

// Cluster returns the Solana cluster moniker for the network.
func (n Network) Cluster() string {
	return clusters[n]
}

func (n Network) String() string {
	return string(n)
}
