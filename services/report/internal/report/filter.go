package report

import "strings"

// ReportFilter narrows the triage board. Query is a case-insensitive
// substring match over description and reporter identity; the other
// fields are exact matches applied independently.
type ReportFilter struct {
	Query    string
	Category string
	Status   string
	Role     string
}

func FilterReports(reports []*ProblemReport, f ReportFilter) []*ProblemReport {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]*ProblemReport, 0, len(reports))
	for _, r := range reports {
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Role != "" && r.ReporterRole != f.Role {
			continue
		}
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesQuery(r *ProblemReport, query string) bool {
	return strings.Contains(strings.ToLower(r.Description), query) ||
		strings.Contains(strings.ToLower(r.ReporterName), query) ||
		strings.Contains(strings.ToLower(r.ReporterEmail), query)
}
