// Package report merges violation streams into a single pass/fail report.
package report

import (
	"sort"
	"time"

	"github.com/archgate/archgate/internal/domain"
)

// Aggregate merges all violations into a RunReport: grouped by rule in the
// fixed taxonomy order, each group sorted by file then line, with a bounded
// sample and an overflow count. The gate is binary: any violation fails the
// run. Output is deterministic, so two runs over an unchanged file set
// produce identical reports.
func Aggregate(
	projectPath string,
	violations []domain.Violation,
	filesScanned, edgeCount, sampleSize int,
) *domain.RunReport {
	if sampleSize <= 0 {
		sampleSize = domain.DefaultSampleSize
	}

	byRule := make(map[string][]domain.Violation)
	for _, v := range violations {
		byRule[v.RuleID] = append(byRule[v.RuleID], v)
	}

	var groups []domain.RuleGroup
	for _, ruleID := range domain.RuleOrder {
		vs := byRule[ruleID]
		if len(vs) == 0 {
			continue
		}
		sort.Slice(vs, func(i, j int) bool {
			if vs[i].File != vs[j].File {
				return vs[i].File < vs[j].File
			}
			if vs[i].Line != vs[j].Line {
				return vs[i].Line < vs[j].Line
			}
			return vs[i].Message < vs[j].Message
		})

		sample := vs
		overflow := 0
		if len(vs) > sampleSize {
			sample = vs[:sampleSize]
			overflow = len(vs) - sampleSize
		}

		groups = append(groups, domain.RuleGroup{
			RuleID:     ruleID,
			Total:      len(vs),
			Sample:     sample,
			Overflow:   overflow,
			SampleSize: sampleSize,
		})
	}

	return &domain.RunReport{
		ProjectPath:  projectPath,
		Timestamp:    time.Now().UTC(),
		FilesScanned: filesScanned,
		EdgeCount:    edgeCount,
		Total:        len(violations),
		Passed:       len(violations) == 0,
		Groups:       groups,
	}
}
