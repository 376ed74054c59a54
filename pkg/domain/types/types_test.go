package types_test

import (
	"testing"

	"github.com/hrops-lab/exitclear/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestClearanceStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status types.ClearanceStatus
		want   bool
	}{
		{name: "valid pending", status: types.ClearancePending, want: true},
		{name: "valid done", status: types.ClearanceDone, want: true},
		{name: "invalid status", status: types.ClearanceStatus("inprogress"), want: false},
		{name: "empty status", status: types.ClearanceStatus(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want {
				gt.B(t, tt.status.IsValid()).True()
			} else {
				gt.B(t, tt.status.IsValid()).False()
			}
		})
	}
}

func TestParseCaseBucket(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.CaseBucket
		wantErr bool
	}{
		{name: "pending", input: "pending", want: types.CasePending},
		{name: "inprogress", input: "inprogress", want: types.CaseInProgress},
		{name: "done", input: "done", want: types.CaseDone},
		{name: "unknown", input: "open", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseCaseBucket(tt.input)
			if tt.wantErr {
				gt.Value(t, err).NotNil()
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestParseSeparationType(t *testing.T) {
	for _, sep := range types.AllSeparationTypes() {
		t.Run(sep.String(), func(t *testing.T) {
			got, err := types.ParseSeparationType(sep.String())
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(sep)
		})
	}

	t.Run("invalid separation type", func(t *testing.T) {
		_, err := types.ParseSeparationType("fired")
		gt.Value(t, err).NotNil()
	})
}

func TestParseRole(t *testing.T) {
	t.Run("hr", func(t *testing.T) {
		role, err := types.ParseRole("hr")
		gt.NoError(t, err).Required()
		gt.Value(t, role).Equal(types.RoleHR)
	})

	t.Run("department", func(t *testing.T) {
		role, err := types.ParseRole("department")
		gt.NoError(t, err).Required()
		gt.Value(t, role).Equal(types.RoleDepartment)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := types.ParseRole("admin")
		gt.Value(t, err).NotNil()
	})
}
