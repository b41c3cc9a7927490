// Package metrics holds the prometheus collectors of the SPV services.
package metrics

import "github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"

const (
	namespace = "blockinsight7000"

	statusSuccess = "success"
	statusError   = "error"

	unknownLabel = "unknown"
)

// chainLabels identifies the chain a collector reports for.
type chainLabels struct {
	coin    string
	network string
}

func newChainLabels(coin model.Coin, network model.Network) chainLabels {
	l := chainLabels{coin: string(coin), network: string(network)}
	if l.coin == "" {
		l.coin = unknownLabel
	}
	if l.network == "" {
		l.network = unknownLabel
	}
	return l
}

func (l chainLabels) values(extra ...string) []string {
	return append([]string{l.coin, l.network}, extra...)
}

func statusOf(err error) string {
	if err != nil {
		return statusError
	}
	return statusSuccess
}
