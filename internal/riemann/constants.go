package riemann

const (
	// ProgressBlockSize is the number of iterations a calculator runs between
	// two progress reports and context checks. The summation order inside a
	// worker is unaffected by the block boundaries.
	ProgressBlockSize = 1 << 20

	// DefaultThreads is the worker count used by the driver when none is
	// configured.
	DefaultThreads = 4

	// DefaultPartitions is the rectangle count used by the driver when none
	// is configured.
	DefaultPartitions = 500_000_000

	// unitRoundoff is the unit roundoff of IEEE 754 double precision (2^-53).
	unitRoundoff = 0x1p-53
)
