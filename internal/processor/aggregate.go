package processor

// Failure is one failed file in a Report.
type Failure struct {
	Name    string
	Message string
}

type Report struct {
	Succeeded int
	Failures  []Failure
}

// Aggregator tallies outcomes into a Report. It is a Sink.
type Aggregator struct {
	report Report
}

func (a *Aggregator) Accept(out Outcome) {
	switch out.Status {
	case StatusSucceeded:
		a.report.Succeeded++
	case StatusFailed:
		a.report.Failures = append(a.report.Failures, Failure{Name: out.Name, Message: out.Message()})
	}
}

// Report returns the totals accumulated so far.
func (a *Aggregator) Report() Report {
	r := a.report
	r.Failures = append([]Failure(nil), a.report.Failures...)
	return r
}
