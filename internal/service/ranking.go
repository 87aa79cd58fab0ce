package service

import (
	"cmp"
	"slices"

	"buildboard-api/internal/model"
)

// Rank returns requests ordered for display: by requester role (VM, ID,
// Sales, then anything else), then by earliest project due date. The sort is
// stable, so exact ties keep their insertion order. The input is not modified.
func Rank(requests []model.BuildRequest) []model.BuildRequest {
	out := make([]model.BuildRequest, len(requests))
	copy(out, requests)
	slices.SortStableFunc(out, compareRequests)
	return out
}

func compareRequests(a, b model.BuildRequest) int {
	if c := cmp.Compare(a.RequesterRole.Priority(), b.RequesterRole.Priority()); c != 0 {
		return c
	}
	return a.ProjectDueDate.Compare(b.ProjectDueDate)
}
