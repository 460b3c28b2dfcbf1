package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "github.com/horizon-academy/academy-gateway/pkg/errors"
)

func TestBranchListFallsBackToGlobalListAndFilters(t *testing.T) {
	api := newStubUpstream()
	api.errs["/api/Branches/ByAcademy/A1"] = notFoundErr()
	api.responses["/api/Branches"] = []interface{}{
		map[string]interface{}{"id": "B1", "academyId": "A1", "branchNameL1": "Downtown"},
		map[string]interface{}{"id": "B2", "academyId": "A2", "branchNameL1": "Elsewhere"},
		map[string]interface{}{"id": "B3", "branchNameL1": "No academy"},
	}

	svc := NewBranchService(api, nil, nil)
	branches, err := svc.ListByAcademy(context.Background(), nil, "A1")
	require.NoError(t, err)
	require.Len(t, branches, 2)
	require.Equal(t, "Downtown", branches[0].Name)
	require.Equal(t, "No academy", branches[1].Name)
}

func TestBranchListRequiresAcademyID(t *testing.T) {
	svc := NewBranchService(newStubUpstream(), nil, nil)
	_, err := svc.ListByAcademy(context.Background(), nil, "  ")
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBranchCreateValidatesBeforeCalling(t *testing.T) {
	api := newStubUpstream()
	svc := NewBranchService(api, nil, nil)

	_, err := svc.Create(context.Background(), SaveBranchRequest{AcademyID: "A1"})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.Empty(t, api.calls)
}

func TestBranchCreateStripsEmptyPayloadFields(t *testing.T) {
	api := newStubUpstream()
	api.responses["/api/Branches"] = map[string]interface{}{
		"id": "B9", "academyId": "A1", "branchNameL1": "Downtown",
	}

	svc := NewBranchService(api, nil, nil)
	branch, err := svc.Create(context.Background(), SaveBranchRequest{
		AcademyID: "A1",
		Name:      "Downtown",
		Phone:     "  ",
	})
	require.NoError(t, err)
	require.Equal(t, "B9", branch.ID)

	payload, ok := api.sent["/api/Branches"].(map[string]string)
	require.True(t, ok)
	require.Equal(t, map[string]string{"academyId": "A1", "branchNameL1": "Downtown"}, payload)
}

func TestBranchUpdateFallsBackToRequestEcho(t *testing.T) {
	api := newStubUpstream()
	api.responses["/api/Branches/B1"] = map[string]interface{}{"ok": true}

	svc := NewBranchService(api, nil, nil)
	branch, err := svc.Update(context.Background(), "B1", SaveBranchRequest{AcademyID: "A1", Name: "Renamed"})
	require.NoError(t, err)
	require.Equal(t, "B1", branch.ID)
	require.Equal(t, "Renamed", branch.Name)
}

func TestBranchDeletePropagatesNotFound(t *testing.T) {
	api := newStubUpstream()
	api.errs["/api/Branches/B404"] = notFoundErr()

	svc := NewBranchService(api, nil, nil)
	err := svc.Delete(context.Background(), "B404")
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
