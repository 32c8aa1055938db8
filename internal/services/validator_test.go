package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/minedash/backend/internal/models"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	_, thisFile, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(thisFile), "..", "..", "schemas")
	v, err := NewValidator(context.Background(), dir)
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	return v
}

func TestValidateRecord(t *testing.T) {
	v := newTestValidator(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		kind    models.RecordKind
		payload string
		ok      bool
	}{
		{"mining log ok", models.KindMiningLog, `{"date":"2024-05-01","amount":0.0042}`, true},
		{"mining log zero amount", models.KindMiningLog, `{"date":"2024-05-01","amount":0}`, false},
		{"mining log negative amount", models.KindMiningLog, `{"date":"2024-05-01","amount":-1}`, false},
		{"mining log non-numeric amount", models.KindMiningLog, `{"date":"2024-05-01","amount":"lots"}`, false},
		{"mining log missing date", models.KindMiningLog, `{"amount":1}`, false},
		{"mining log caller-supplied owner", models.KindMiningLog, `{"date":"2024-05-01","amount":1,"owner_id":"x"}`, false},

		{"investor ok", models.KindInvestor, `{"name":"Davi","contribution":1000}`, true},
		{"investor zero contribution ok", models.KindInvestor, `{"name":"Davi","contribution":0}`, true},
		{"investor negative contribution", models.KindInvestor, `{"name":"Davi","contribution":-5}`, false},
		{"investor empty name", models.KindInvestor, `{"name":"","contribution":100}`, false},

		{"withdrawal ok", models.KindWithdrawal, `{"date":"2024-05-01","amount":250,"description":"energia"}`, true},
		{"withdrawal no description ok", models.KindWithdrawal, `{"date":"2024-05-01","amount":250}`, true},
		{"withdrawal zero amount", models.KindWithdrawal, `{"date":"2024-05-01","amount":0}`, false},
	}

	for _, tc := range cases {
		err := v.ValidateRecord(ctx, tc.kind, json.RawMessage(tc.payload))
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("%s: expected rejection", tc.name)
			} else if !errors.Is(err, ErrValidation) {
				t.Errorf("%s: error should wrap ErrValidation, got: %v", tc.name, err)
			}
		}
	}
}

func TestValidateRecordUnknownKind(t *testing.T) {
	v := newTestValidator(t)
	if err := v.ValidateRecord(context.Background(), "trades", json.RawMessage(`{}`)); err == nil {
		t.Error("expected error for unknown kind")
	}
}
