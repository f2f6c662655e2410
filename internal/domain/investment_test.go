package domain

import (
	"testing"
	"time"
)

func TestNeedsRepayment(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	investment := Investment{Modified: start, TermYears: 1}

	if investment.NeedsRepayment(start.Add(300 * 24 * time.Hour)) {
		t.Error("not matured before 365 days")
	}
	if !investment.NeedsRepayment(start.Add(365 * 24 * time.Hour)) {
		t.Error("matured at exactly 365 days")
	}
	if !investment.NeedsRepayment(start.Add(400 * 24 * time.Hour)) {
		t.Error("matured past 365 days")
	}
}

func TestNeedsRepaymentMultiYearTerm(t *testing.T) {
	start := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
	investment := Investment{Modified: start, TermYears: 3}

	if investment.NeedsRepayment(start.Add(3 * 364 * 24 * time.Hour)) {
		t.Error("not matured before the full term")
	}
	if !investment.NeedsRepayment(start.Add(3 * 365 * 24 * time.Hour)) {
		t.Error("matured at the full term")
	}
}
