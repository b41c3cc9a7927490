package follower

import "time"

const (
	defaultWorkerCount = 8

	headerBatchLimit = 2000

	// reorgLookback is how far the fetch window moves back each time the node
	// serves a header whose parent is unknown.
	reorgLookback   = 6
	maxRewindBlocks = 2016

	sleepDuration     = 5 * time.Second
	longSleepDuration = 1 * time.Minute
)
