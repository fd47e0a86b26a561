package request

import (
	"encoding/json"
	"testing"
)

func TestBudgetRequest_ToCommand(t *testing.T) {
	raw := `{
		"client": {"name": "Ana", "email": "ana@example.com"},
		"project_name": "Reforma baño",
		"items": [
			{"service_id": " svc-1 ", "quantity": 10, "difficulty_factor": "1.5", "notes": " ojo "},
			{"service_id": "svc-2", "quantity": "2.5", "included_sub_items": ["Retirada de escombros"]}
		],
		"distance_km": 25,
		"global_difficulty_factor": 1.2,
		"number": 150
	}`
	var r BudgetRequest
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmd := r.ToCommand()
	if cmd.Client.Email != "ana@example.com" || cmd.ProjectName != "Reforma baño" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if len(cmd.Items) != 2 || cmd.Items[0].ServiceID != "svc-1" || cmd.Items[0].Notes != "ojo" {
		t.Fatalf("unexpected items: %+v", cmd.Items)
	}
	if cmd.Items[0].DifficultyFactor == nil || cmd.Items[0].DifficultyFactor.String() != "1.5" {
		t.Fatalf("difficulty factor not mapped: %+v", cmd.Items[0])
	}
	if cmd.Items[1].Quantity.String() != "2.5" || len(cmd.Items[1].IncludedSubItems) != 1 {
		t.Fatalf("unexpected second item: %+v", cmd.Items[1])
	}
	if cmd.DistanceKm.String() != "25" || cmd.GlobalDifficultyFactor.String() != "1.2" {
		t.Fatalf("unexpected distance/factor: %+v", cmd)
	}
	if cmd.Adjustment != nil {
		t.Fatalf("adjustment should be nil")
	}
	if cmd.Number == nil || *cmd.Number != 150 {
		t.Fatalf("number not mapped")
	}
}

func TestInvoiceRequest_ToCommand(t *testing.T) {
	r := InvoiceRequest{
		Client:       ClientRequest{Name: "Ana", Email: "ana@example.com"},
		Items:        []LineItemRequest{{ServiceID: "svc-1"}},
		EmailSubject: "Factura",
	}
	cmd := r.ToCommand()
	if cmd.Client.Name != "Ana" || len(cmd.Items) != 1 || cmd.EmailSubject != "Factura" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}
