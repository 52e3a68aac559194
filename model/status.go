package model

// Sense is the optimization direction of the objective.
type Sense int

// Objective senses.
const (
	FeasibilitySense Sense = iota
	MinSense
	MaxSense
)

// String returns a string representation of the Sense.
func (s Sense) String() string {
	switch s {
	case FeasibilitySense:
		return "Feasibility"
	case MinSense:
		return "Min"
	case MaxSense:
		return "Max"
	default:
		return "Unknown"
	}
}

// TerminationStatusCode explains why a solve stopped.
type TerminationStatusCode int

// Termination statuses.
const (
	TerminationOptimizeNotCalled TerminationStatusCode = iota
	TerminationOptimal
	TerminationInfeasible
	TerminationDualInfeasible
	TerminationLimit
	TerminationError
)

// String returns a string representation of the TerminationStatusCode.
func (t TerminationStatusCode) String() string {
	switch t {
	case TerminationOptimizeNotCalled:
		return "OptimizeNotCalled"
	case TerminationOptimal:
		return "Optimal"
	case TerminationInfeasible:
		return "Infeasible"
	case TerminationDualInfeasible:
		return "DualInfeasible"
	case TerminationLimit:
		return "Limit"
	case TerminationError:
		return "Error"
	default:
		return "Unknown"
	}
}

// ResultStatusCode describes one primal or dual result vector.
type ResultStatusCode int

// Result statuses.
const (
	ResultNoSolution ResultStatusCode = iota
	ResultFeasiblePoint
	ResultInfeasiblePoint
	ResultUnknown
)

// String returns a string representation of the ResultStatusCode.
func (r ResultStatusCode) String() string {
	switch r {
	case ResultNoSolution:
		return "NoSolution"
	case ResultFeasiblePoint:
		return "FeasiblePoint"
	case ResultInfeasiblePoint:
		return "InfeasiblePoint"
	case ResultUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}
