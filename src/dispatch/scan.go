package dispatch

import (
	"liftsim/src/lift"
	"liftsim/src/request"
	"liftsim/src/types"
)

// DirectionalScan is a declared strategy variant without an algorithm yet;
// its exact reversal rule is still undecided. The selector refuses to
// construct it, so Decide is unreachable through any supported path.
type DirectionalScan struct{}

func (s *DirectionalScan) Name() types.StrategyName {
	return types.DirectionalScan
}

func (s *DirectionalScan) Decide(l *lift.Lift, pending []*request.Request, tick int) Decision {
	panic("dispatch: directional scan is not implemented")
}
